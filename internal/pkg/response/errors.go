package response

import (
	"errors"
	"net/http"

	"github.com/Rohang10/saas-copilot/internal/entity"
)

const internalErrorMessage = "Internal server error"

type errorKind struct {
	target  error
	status  int
	message string // empty means the error text is shown
}

// errorKinds maps domain errors to HTTP statuses. The first match wins.
var errorKinds = []errorKind{
	{target: entity.ErrForbidden, status: http.StatusForbidden, message: "Invalid admin key"},
	{target: entity.ErrUnauthorized, status: http.StatusUnauthorized, message: "Not authenticated"},
	{target: entity.ErrInvalidCredentials, status: http.StatusUnauthorized, message: "Invalid credentials"},
	{target: entity.ErrInvalidToken, status: http.StatusUnauthorized, message: "Invalid or expired token"},
	{target: entity.ErrPasswordTooShort, status: http.StatusBadRequest, message: "Password too short"},
	{target: entity.ErrPasswordTooLong, status: http.StatusBadRequest, message: "Password must be at most 72 characters"},
	{target: entity.ErrEmailTaken, status: http.StatusBadRequest, message: "Email already registered"},
	{target: entity.ErrValidation, status: http.StatusBadRequest},
	{target: entity.ErrInvalidParameter, status: http.StatusBadRequest},
	{target: entity.ErrMissingField, status: http.StatusBadRequest},
	{target: entity.ErrNoDocumentsFound, status: http.StatusUnprocessableEntity, message: "No documents found to ingest"},
	{target: entity.ErrNoChunksCreated, status: http.StatusUnprocessableEntity, message: "No chunks were created from the documents"},
	{target: entity.ErrInvalidDocument, status: http.StatusUnprocessableEntity},
	{target: entity.ErrUserNotFound, status: http.StatusNotFound, message: "User not found"},
}

// Classify returns the HTTP status and client-facing message for err.
// Unknown errors become 500 without leaking their text.
func Classify(err error) (int, string) {
	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			if k.message == "" {
				return k.status, err.Error()
			}
			return k.status, k.message
		}
	}
	return http.StatusInternalServerError, internalErrorMessage
}

// FromError writes the error response Classify picks for err
func FromError(w http.ResponseWriter, err error) {
	status, message := Classify(err)
	Error(w, status, message)
}
