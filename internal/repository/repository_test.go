package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Rohang10/saas-copilot/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDimensions = 384

func TestToEntityUser(t *testing.T) {
	id := uuid.New()
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	user := toEntityUser(&userRow{
		ID:           pgtype.UUID{Bytes: id, Valid: true},
		Name:         "Ada",
		Email:        "ada@example.com",
		PasswordHash: "hash",
		CreatedAt:    pgtype.Timestamptz{Time: created, Valid: true},
	})

	assert.Equal(t, id.String(), user.ID)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, created, user.CreatedAt)
}

func TestChunkPostgres_DimensionMismatch(t *testing.T) {
	r := NewChunkPostgres(nil, testDimensions)

	err := r.Add(context.Background(), []entity.Chunk{{ID: "D1_chunk_0", Embedding: []float32{1, 2}}})
	assert.ErrorIs(t, err, entity.ErrDimensionMismatch)

	_, err = r.Query(context.Background(), []float32{1}, 5)
	assert.ErrorIs(t, err, entity.ErrDimensionMismatch)
}

// setupPostgres connects to TEST_DATABASE_URL and resets the schema state.
func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	require.NoError(t, RunMigrations(url))

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, "TRUNCATE chunks, users")
	require.NoError(t, err)

	return pool
}

func unitVector(axis int) []float32 {
	v := make([]float32, testDimensions)
	v[axis] = 1
	return v
}

func TestChunkPostgres_Integration(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()
	store := NewChunkPostgres(pool, testDimensions)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	chunks := []entity.Chunk{
		{ID: entity.ChunkID("D1", 0), Text: "billing", Embedding: unitVector(0), Metadata: entity.ChunkMetadata{DocID: "D1", Title: "billing-faq", ChunkIndex: 0}},
		{ID: entity.ChunkID("D2", 0), Text: "refunds", Embedding: unitVector(1), Metadata: entity.ChunkMetadata{DocID: "D2", Title: "refunds", ChunkIndex: 0}},
	}
	require.NoError(t, store.Add(ctx, chunks))
	// re-adding the same ids updates in place
	require.NoError(t, store.Add(ctx, chunks))

	n, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	result, err := store.Query(ctx, unitVector(1), 5)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "D2_chunk_0", result[0].ID)
	assert.InDelta(t, 0.0, result[0].Distance, 1e-6)
	assert.InDelta(t, 1.0, result[1].Distance, 1e-6)
	assert.Equal(t, "refunds", result[0].Metadata.Title)

	result, err = store.Query(ctx, unitVector(0), 1)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "D1_chunk_0", result[0].ID)
}

func TestUserPostgres_Integration(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()
	repo := NewUserPostgres(pool)

	user := entity.User{ID: uuid.NewString(), Name: "Ada", Email: "ada@example.com", PasswordHash: "hash"}
	created, err := repo.Create(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, user.ID, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = repo.Create(ctx, entity.User{ID: uuid.NewString(), Name: "Eve", Email: "ada@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, entity.ErrEmailTaken)

	byEmail, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", byID.Name)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, entity.ErrUserNotFound)

	_, err = repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, entity.ErrUserNotFound)
}
