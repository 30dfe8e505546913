package repository

import (
	"github.com/Rohang10/saas-copilot/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type userRow struct {
	ID           pgtype.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    pgtype.Timestamptz
}

func toEntityUser(row *userRow) *entity.User {
	userUUID := uuid.UUID(row.ID.Bytes)

	return &entity.User{
		ID:           userUUID.String(),
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt.Time,
	}
}

type chunkRow struct {
	ID         string
	DocID      string
	Title      string
	ChunkIndex int32
	Text       string
	Distance   float64
}

func toRetrievedChunk(row *chunkRow) entity.RetrievedChunk {
	return entity.RetrievedChunk{
		ID:       row.ID,
		Text:     row.Text,
		Distance: row.Distance,
		Metadata: entity.ChunkMetadata{
			DocID:      row.DocID,
			Title:      row.Title,
			ChunkIndex: int(row.ChunkIndex),
		},
	}
}
