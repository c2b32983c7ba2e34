package api

import (
	"fmt"
	"net/http"
	"strconv"

	"homestay/internal/models"
)

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	filter, field, ok := parseRoomFilter(r)
	if !ok {
		writeFieldError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s filter", field), field)
		return
	}
	rooms, err := s.repo.ListRooms(r.Context(), filter)
	if err != nil {
		s.internalError(w, r, err, "failed to list rooms")
		return
	}
	if rooms == nil {
		rooms = []models.Room{}
	}
	writeJSON(w, http.StatusOK, rooms)
}

// parseRoomFilter reads ?type=&status=&projectId=&minPrice=&maxPrice=.
// On failure it returns the offending parameter.
func parseRoomFilter(r *http.Request) (models.RoomFilter, string, bool) {
	q := r.URL.Query()
	filter := models.RoomFilter{
		Type:   q.Get("type"),
		Status: q.Get("status"),
	}
	if filter.Type != "" && !models.IsValidRoomType(filter.Type) {
		return filter, "type", false
	}
	if filter.Status != "" && !models.IsValidRoomStatus(filter.Status) {
		return filter, "status", false
	}

	ints := []struct {
		name string
		dst  **int64
	}{
		{"projectId", &filter.ProjectID},
		{"minPrice", &filter.MinPrice},
		{"maxPrice", &filter.MaxPrice},
	}
	for _, p := range ints {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			return filter, p.name, false
		}
		*p.dst = &v
	}
	return filter, "", true
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	getByID(s, w, r, roomEntity, s.repo.GetRoomByID)
}

// checkProjectRef rejects a projectId that names no project.
func (s *Server) checkProjectRef(w http.ResponseWriter, r *http.Request, projectID *int64) bool {
	if projectID == nil {
		return true
	}
	project, err := s.repo.GetProjectByID(r.Context(), *projectID)
	if err != nil {
		s.internalError(w, r, err, "failed to check room project")
		return false
	}
	if project == nil {
		writeFieldError(w, http.StatusBadRequest, fmt.Sprintf("projectId %d does not exist", *projectID), "projectId")
		return false
	}
	return true
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeValid[models.RoomInput](w, r)
	if !ok {
		return
	}
	s.createRoom(w, r, in)
}

func (s *Server) createRoom(w http.ResponseWriter, r *http.Request, in models.RoomInput) {
	if !s.checkProjectRef(w, r, in.ProjectID) {
		return
	}
	room, err := s.repo.CreateRoom(r.Context(), in)
	if err != nil {
		s.writeStoreError(w, r, err, roomEntity, "")
		return
	}
	s.recordMutation(r, roomEntity, "create", room.ID)
	writeJSON(w, http.StatusCreated, room)
}

func (s *Server) handleUpdateRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, roomEntity)
	if !ok {
		return
	}
	var p models.RoomPatch
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
	s.updateRoom(w, r, id, p)
}

func (s *Server) updateRoom(w http.ResponseWriter, r *http.Request, id int64, p models.RoomPatch) {
	if !s.checkProjectRef(w, r, p.ProjectID) {
		return
	}
	room, err := s.repo.UpdateRoom(r.Context(), id, p)
	if err != nil {
		s.writeStoreError(w, r, err, roomEntity, "")
		return
	}
	if room == nil {
		writeError(w, http.StatusNotFound, roomEntity.notFound(id))
		return
	}
	s.recordMutation(r, roomEntity, "update", id)
	writeJSON(w, http.StatusOK, room)
}

// handleSaveRoom creates when the body has no id and updates otherwise.
// Both branches validate the full room shape.
func (s *Server) handleSaveRoom(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeValid[models.RoomSaveRequest](w, r)
	if !ok {
		return
	}
	if req.ID == nil {
		s.createRoom(w, r, req.RoomInput)
		return
	}
	s.updateRoom(w, r, *req.ID, req.Patch())
}

func (s *Server) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	deleteEntity(s, w, r, roomEntity, s.repo.DeleteRoom)
}
