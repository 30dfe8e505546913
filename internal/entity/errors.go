package entity

import "errors"

// Domain errors
var (
	// Auth errors
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrPasswordTooLong    = errors.New("password must be at most 72 characters")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")

	// Ingestion errors
	ErrNoDocumentsFound = errors.New("no documents found")
	ErrNoChunksCreated  = errors.New("no chunks created")
	ErrInvalidDocument  = errors.New("invalid document")

	// Integration errors
	ErrEmbedding         = errors.New("embedding failed")
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	ErrEmptyGeneration   = errors.New("generator returned no content")
	ErrVectorStore       = errors.New("vector store unavailable")

	// Validation errors
	ErrValidation       = errors.New("validation failed")
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
