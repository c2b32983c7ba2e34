package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"homestay/internal/models"
	"homestay/internal/validation"

	"github.com/go-chi/chi/v5"
	gojson "github.com/goccy/go-json"
)

type errorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type deleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = gojson.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, errorResponse{Message: message})
}

func writeFieldError(w http.ResponseWriter, statusCode int, message, field string) {
	writeJSON(w, statusCode, errorResponse{Message: message, Field: field})
}

// decodeJSON reads a size-capped JSON body into dst. On failure it has
// already written the 400 response. Bodies go through encoding/json so
// type errors carry the offending field path.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, models.MaxRequestBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var (
			typeErr   *json.UnmarshalTypeError
			syntaxErr *json.SyntaxError
			maxErr    *http.MaxBytesError
		)
		switch {
		case errors.Is(err, io.EOF):
			writeError(w, http.StatusBadRequest, "Request body is required")
		case errors.As(err, &typeErr):
			field := typeErr.Field
			if field == "" {
				writeError(w, http.StatusBadRequest, "Invalid request body")
				return false
			}
			writeFieldError(w, http.StatusBadRequest, fmt.Sprintf("%s has the wrong type", field), field)
		case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
			writeError(w, http.StatusBadRequest, "Malformed JSON body")
		case errors.As(err, &maxErr):
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
		default:
			writeError(w, http.StatusBadRequest, "Invalid request body")
		}
		return false
	}
	return true
}

// validateBody writes a 400 naming the first invalid field.
func validateBody(w http.ResponseWriter, v any) bool {
	if fe := validation.Struct(v); fe != nil {
		writeFieldError(w, http.StatusBadRequest, fe.Message, fe.Field)
		return false
	}
	return true
}

// decodeValid combines decodeJSON and validateBody.
func decodeValid[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var v T
	if !decodeJSON(w, r, &v) {
		return v, false
	}
	return v, validateBody(w, v)
}

// entity names a resource in client-facing messages.
type entity struct {
	Title string // "Project"
	Lower string // "project"
}

var (
	projectEntity = entity{"Project", "project"}
	serviceEntity = entity{"Service", "service"}
	postEntity    = entity{"Post", "post"}
	roomEntity    = entity{"Room", "room"}
)

func (e entity) invalidID() string {
	return "Invalid " + e.Lower + " ID"
}

func (e entity) notFound(id int64) string {
	return fmt.Sprintf("%s with ID %d not found", e.Title, id)
}

func (e entity) deleted() deleteResponse {
	return deleteResponse{Success: true, Message: e.Title + " deleted successfully"}
}

// pathID parses the {id} URL parameter. Non-positive and non-numeric ids
// are rejected with 400.
func pathID(w http.ResponseWriter, r *http.Request, e entity) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeFieldError(w, http.StatusBadRequest, e.invalidID(), "id")
		return 0, false
	}
	return id, true
}
