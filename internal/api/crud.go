package api

import (
	"context"
	"errors"
	"net/http"

	"homestay/internal/auth"
	"homestay/internal/database"
	"homestay/internal/events"
	"homestay/internal/metrics"
	"homestay/internal/models"
)

type patch interface {
	IsEmpty() bool
}

// writeStoreError maps repository sentinels to 409 and anything else to 500.
func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error, e entity, conflict string) {
	switch {
	case errors.Is(err, database.ErrConflict):
		writeError(w, http.StatusConflict, conflict)
	case errors.Is(err, database.ErrProjectInUse):
		writeError(w, http.StatusConflict, "Project still has rooms assigned to it")
	default:
		s.internalError(w, r, err, "failed to write "+e.Lower)
	}
}

// recordMutation counts an admin write and announces it on the bus.
func (s *Server) recordMutation(r *http.Request, e entity, op string, id int64) {
	metrics.IncContent(e.Lower, op)
	if s.events == nil {
		return
	}
	payload := events.ContentPayload{Entity: e.Lower, Op: op, ID: id}
	if user := auth.UserFromContext(r.Context()); user != nil {
		payload.UserID = user.ID
	}
	if err := s.events.PublishJSON(models.EventContentChanged, payload); err != nil {
		s.logger.Warn().Err(err).Str("entity", e.Lower).Msg("publish content_changed")
	}
}

func createEntity[I any, T any](
	s *Server, w http.ResponseWriter, r *http.Request, e entity,
	create func(context.Context, I) (*T, error),
	idOf func(*T) int64,
	conflict string,
) {
	in, ok := decodeValid[I](w, r)
	if !ok {
		return
	}
	created, err := create(r.Context(), in)
	if err != nil {
		s.writeStoreError(w, r, err, e, conflict)
		return
	}
	s.recordMutation(r, e, "create", idOf(created))
	writeJSON(w, http.StatusCreated, created)
}

func updateEntity[P patch, T any](
	s *Server, w http.ResponseWriter, r *http.Request, e entity,
	update func(context.Context, int64, P) (*T, error),
	conflict string,
) {
	id, ok := pathID(w, r, e)
	if !ok {
		return
	}
	var p P
	if !decodeJSON(w, r, &p) {
		return
	}
	if p.IsEmpty() {
		writeError(w, http.StatusBadRequest, "No update data provided")
		return
	}
	if !validateBody(w, p) {
		return
	}

	updated, err := update(r.Context(), id, p)
	if err != nil {
		s.writeStoreError(w, r, err, e, conflict)
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, e.notFound(id))
		return
	}
	s.recordMutation(r, e, "update", id)
	writeJSON(w, http.StatusOK, updated)
}

func deleteEntity(
	s *Server, w http.ResponseWriter, r *http.Request, e entity,
	del func(context.Context, int64) (bool, error),
) {
	id, ok := pathID(w, r, e)
	if !ok {
		return
	}
	found, err := del(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, err, e, "")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, e.notFound(id))
		return
	}
	s.recordMutation(r, e, "delete", id)
	writeJSON(w, http.StatusOK, e.deleted())
}

// getByID serves GET .../id/{id}.
func getByID[T any](
	s *Server, w http.ResponseWriter, r *http.Request, e entity,
	get func(context.Context, int64) (*T, error),
) {
	id, ok := pathID(w, r, e)
	if !ok {
		return
	}
	v, err := get(r.Context(), id)
	if err != nil {
		s.internalError(w, r, err, "failed to get "+e.Lower)
		return
	}
	if v == nil {
		writeError(w, http.StatusNotFound, e.notFound(id))
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func list[T any](s *Server, w http.ResponseWriter, r *http.Request, what string, fetch func(context.Context) ([]T, error)) {
	items, err := fetch(r.Context())
	if err != nil {
		s.internalError(w, r, err, "failed to list "+what)
		return
	}
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, items)
}
