package api

import (
	"net/http"
	"testing"

	"homestay/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomSave(t *testing.T) {
	env := newTestEnv(t)
	env.login()

	resp, body := env.admin(http.MethodPost, "/api/admin/rooms/save", map[string]any{
		"name":      "Lake view",
		"type":      "double",
		"price":     500000,
		"amenities": []string{"wifi", "balcony"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	room := decode[models.Room](t, body)
	assert.Equal(t, models.RoomStatusAvailable, room.Status)
	assert.Equal(t, []string{"wifi", "balcony"}, room.Amenities)
	assert.Equal(t, []string{}, room.Images)

	t.Run("UpdateWithID", func(t *testing.T) {
		resp, body := env.admin(http.MethodPost, "/api/admin/rooms/save", map[string]any{
			"id":     room.ID,
			"name":   "Lake view deluxe",
			"type":   "suite",
			"price":  750000,
			"status": "maintenance",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		updated := decode[models.Room](t, body)
		assert.Equal(t, room.ID, updated.ID)
		assert.Equal(t, "suite", updated.Type)
		assert.Equal(t, int64(750000), updated.Price)
		assert.Equal(t, models.RoomStatusMaintenance, updated.Status)
		assert.Equal(t, room.Amenities, updated.Amenities)
	})

	t.Run("UpdateUnknownID", func(t *testing.T) {
		resp, body := env.admin(http.MethodPost, "/api/admin/rooms/save", map[string]any{
			"id": 9999, "name": "x", "type": "single", "price": 1,
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.JSONEq(t, `{"message":"Room with ID 9999 not found"}`, string(body))
	})

	t.Run("NegativePrice", func(t *testing.T) {
		resp, body := env.admin(http.MethodPost, "/api/admin/rooms/save", map[string]any{
			"name": "x", "type": "single", "price": -1,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "price", decode[errorResponse](t, body).Field)
	})

	t.Run("MissingPrice", func(t *testing.T) {
		resp, body := env.admin(http.MethodPost, "/api/admin/rooms", map[string]any{"name": "x", "type": "single"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "price", decode[errorResponse](t, body).Field)
	})

	t.Run("PriceWrongType", func(t *testing.T) {
		resp, body := env.admin(http.MethodPost, "/api/admin/rooms/save", `{"name":"x","type":"single","price":"cheap"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "price", decode[errorResponse](t, body).Field)
	})

	t.Run("BadType", func(t *testing.T) {
		resp, body := env.admin(http.MethodPost, "/api/admin/rooms", map[string]any{"name": "x", "type": "villa", "price": 1})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "type", decode[errorResponse](t, body).Field)
	})

	t.Run("UnknownProject", func(t *testing.T) {
		resp, body := env.admin(http.MethodPost, "/api/admin/rooms", map[string]any{
			"name": "x", "type": "single", "price": 1, "projectId": 77,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "projectId", decode[errorResponse](t, body).Field)
	})

	t.Run("GetAndDelete", func(t *testing.T) {
		path := "/api/admin/rooms/id/" + itoa(room.ID)
		resp, _ := env.admin(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, body := env.admin(http.MethodDelete, "/api/admin/rooms/"+itoa(room.ID), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"success":true,"message":"Room deleted successfully"}`, string(body))

		resp, _ = env.admin(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp, _ = env.admin(http.MethodDelete, "/api/admin/rooms/abc", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestRoomSplitEndpoints(t *testing.T) {
	env := newTestEnv(t)
	env.login()

	resp, body := env.admin(http.MethodPost, "/api/admin/projects", projectBody("tuoi"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	project := decode[models.Project](t, body)

	resp, body = env.admin(http.MethodPost, "/api/admin/rooms", map[string]any{
		"name": "Garden", "type": "twin", "price": 300000, "projectId": project.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	room := decode[models.Room](t, body)
	require.NotNil(t, room.ProjectID)

	resp, body = env.admin(http.MethodPut, "/api/admin/rooms/"+itoa(room.ID), map[string]any{"status": "occupied"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	updated := decode[models.Room](t, body)
	assert.Equal(t, models.RoomStatusOccupied, updated.Status)
	assert.Equal(t, "Garden", updated.Name)

	resp, _ = env.admin(http.MethodPut, "/api/admin/rooms/"+itoa(room.ID), map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	t.Run("Filters", func(t *testing.T) {
		resp, body := env.admin(http.MethodGet, "/api/admin/rooms?status=occupied&projectId="+itoa(project.ID), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, decode[[]models.Room](t, body), 1)

		resp, body = env.admin(http.MethodGet, "/api/admin/rooms?status=available", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `[]`, string(body))

		resp, body = env.admin(http.MethodGet, "/api/admin/rooms?minPrice=abc", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "minPrice", decode[errorResponse](t, body).Field)

		resp, _ = env.admin(http.MethodGet, "/api/admin/rooms?type=castle", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("ProjectInUse", func(t *testing.T) {
		resp, _ := env.admin(http.MethodDelete, "/api/admin/projects/"+itoa(project.ID), nil)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		resp, _ = env.admin(http.MethodDelete, "/api/admin/rooms/"+itoa(room.ID), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, _ = env.admin(http.MethodDelete, "/api/admin/projects/"+itoa(project.ID), nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestListFieldsSameOnCreateAndUpdate(t *testing.T) {
	env := newTestEnv(t)
	env.login()

	amenities := []string{"WiFi", ""}

	resp, body := env.admin(http.MethodPost, "/api/admin/rooms", map[string]any{
		"name": "Garden", "type": "single", "price": 1, "amenities": amenities,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	created := decode[models.Room](t, body)
	assert.Equal(t, amenities, created.Amenities)

	resp, body = env.admin(http.MethodPut, "/api/admin/rooms/"+itoa(created.ID), map[string]any{
		"amenities": amenities, "images": []string{"", "b.jpg"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	updated := decode[models.Room](t, body)
	assert.Equal(t, amenities, updated.Amenities)
	assert.Equal(t, []string{"", "b.jpg"}, updated.Images)

	resp, body = env.admin(http.MethodPost, "/api/admin/projects", map[string]any{
		"name": "Camf", "slug": "camf", "description": "d", "tags": []string{""},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	project := decode[models.Project](t, body)
	assert.Equal(t, []string{""}, project.Tags)

	resp, body = env.admin(http.MethodPut, "/api/admin/projects/"+itoa(project.ID), map[string]any{
		"tags": []string{"", "river"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, []string{"", "river"}, decode[models.Project](t, body).Tags)
}
