package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/heimdex/heimdex-media-contracts/internal/schema"
)

// maxBodyBytes bounds request bodies; a long video's pipeline outputs stay
// well below it.
const maxBodyBytes = 32 << 20

// decodeBody reads a JSON body into v. Pipeline outputs are decoded
// leniently; ingest payloads strictly.
func decodeBody(w http.ResponseWriter, r *http.Request, v any, policy schema.FieldPolicy) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := schema.DecodeReader(body, v, policy); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			WriteError(w, http.StatusRequestEntityTooLarge, "request body too large", "BODY_TOO_LARGE")
		case errors.Is(err, io.EOF):
			WriteError(w, http.StatusBadRequest, "request body is empty", "BAD_REQUEST")
		default:
			writeDomainError(w, err)
		}
		return false
	}
	return true
}

// writeDomainError maps contract errors onto HTTP statuses: validation
// failures are 422 with per-field details, bad arguments 400, and anything
// else 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, schema.ErrValidation):
		WriteJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: fieldErrors(err),
		})
	case errors.Is(err, schema.ErrInvalidArgument):
		WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
	default:
		WriteError(w, http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

func fieldErrors(err error) []FieldErrorResponse {
	var out []FieldErrorResponse
	var walk func(error)
	walk = func(e error) {
		if fe, ok := e.(*schema.FieldError); ok {
			out = append(out, FieldErrorResponse{Field: fe.Field, Message: fe.Message})
			return
		}
		switch x := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range x.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(x.Unwrap())
		}
	}
	walk(err)
	return out
}
