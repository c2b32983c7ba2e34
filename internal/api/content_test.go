package api

import (
	"context"
	"net/http"
	"testing"

	"homestay/internal/events"
	"homestay/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectBody(slug string) map[string]any {
	return map[string]any{
		"name":        "Camf Homestay",
		"slug":        slug,
		"description": "Quiet rooms near the lake",
		"isFeatured":  true,
		"tags":        []string{"lake", "quiet"},
		"images":      []string{"/img/a.jpg"},
	}
}

func TestProjects(t *testing.T) {
	env := newTestEnv(t)
	env.login()

	resp, body := env.anon(http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))

	resp, body = env.admin(http.MethodPost, "/api/admin/projects", projectBody("camf"))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	created := decode[models.Project](t, body)
	assert.NotZero(t, created.ID)
	assert.Equal(t, []string{"lake", "quiet"}, created.Tags)
	assert.Equal(t, models.DefaultProjectType, created.Type)

	t.Run("BySlug", func(t *testing.T) {
		resp, body := env.anon(http.MethodGet, "/api/projects/camf", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, created.ID, decode[models.Project](t, body).ID)

		resp, body = env.anon(http.MethodGet, "/api/projects/missing", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.JSONEq(t, `{"message":"Project not found"}`, string(body))
	})

	t.Run("ByID", func(t *testing.T) {
		resp, body := env.anon(http.MethodGet, "/api/projects/id/abc", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.JSONEq(t, `{"message":"Invalid project ID","field":"id"}`, string(body))

		resp, body = env.anon(http.MethodGet, "/api/projects/id/999", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.JSONEq(t, `{"message":"Project with ID 999 not found"}`, string(body))
	})

	t.Run("DuplicateSlug", func(t *testing.T) {
		before, err := env.db.CountProjects(context.Background())
		require.NoError(t, err)

		resp, _ := env.admin(http.MethodPost, "/api/admin/projects", projectBody("camf"))
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		after, err := env.db.CountProjects(context.Background())
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("ValidationNamesField", func(t *testing.T) {
		body := projectBody("Bad Slug")
		resp, data := env.admin(http.MethodPost, "/api/admin/projects", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "slug", decode[errorResponse](t, data).Field)

		delete(body, "name")
		resp, data = env.admin(http.MethodPost, "/api/admin/projects", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "name", decode[errorResponse](t, data).Field)
	})

	t.Run("PartialUpdate", func(t *testing.T) {
		resp, body := env.admin(http.MethodPut, "/api/admin/projects/"+itoa(created.ID), map[string]any{"slogan": "Slow down"})
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		updated := decode[models.Project](t, body)
		require.NotNil(t, updated.Slogan)
		assert.Equal(t, "Slow down", *updated.Slogan)
		assert.Equal(t, created.Name, updated.Name)
		assert.Equal(t, created.Tags, updated.Tags)
		assert.True(t, updated.IsFeatured)
	})

	t.Run("EmptyUpdate", func(t *testing.T) {
		resp, body := env.admin(http.MethodPut, "/api/admin/projects/"+itoa(created.ID), map[string]any{})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.JSONEq(t, `{"message":"No update data provided"}`, string(body))
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		resp, body := env.admin(http.MethodPut, "/api/admin/projects/4242", map[string]any{"name": "x"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.JSONEq(t, `{"message":"Project with ID 4242 not found"}`, string(body))
	})

	t.Run("WrongType", func(t *testing.T) {
		resp, body := env.admin(http.MethodPut, "/api/admin/projects/"+itoa(created.ID), map[string]any{"isFeatured": "yes"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "isFeatured", decode[errorResponse](t, body).Field)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		resp, _ := env.admin(http.MethodPost, "/api/admin/projects", "{not json")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("DeleteTwice", func(t *testing.T) {
		path := "/api/admin/projects/" + itoa(created.ID)
		resp, body := env.admin(http.MethodDelete, path, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"success":true,"message":"Project deleted successfully"}`, string(body))

		resp, _ = env.admin(http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestPostsAndServices(t *testing.T) {
	env := newTestEnv(t)
	env.login()

	resp, body := env.admin(http.MethodPost, "/api/admin/posts", map[string]any{
		"title":    "Awakening soul",
		"slug":     "awakening-soul",
		"content":  "...",
		"category": "travel",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	post := decode[models.Post](t, body)
	assert.False(t, post.PublishedAt.IsZero())

	resp, _ = env.anon(http.MethodGet, "/api/posts/awakening-soul", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = env.anon(http.MethodGet, "/api/posts/id/"+itoa(post.ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = env.anon(http.MethodGet, "/api/posts/id/0", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = env.admin(http.MethodPost, "/api/admin/services", map[string]any{
		"title":       "Design",
		"description": "Interior design",
		"icon":        "settings",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	svc := decode[models.Service](t, body)

	resp, body = env.admin(http.MethodPut, "/api/admin/services/"+itoa(svc.ID), map[string]any{"title": "Build"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Interior design", decode[models.Service](t, body).Description)

	resp, body = env.anon(http.MethodGet, "/api/services", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]models.Service](t, body), 1)

	resp, body = env.admin(http.MethodDelete, "/api/admin/services/"+itoa(svc.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"success":true,"message":"Service deleted successfully"}`, string(body))

	resp, _ = env.admin(http.MethodDelete, "/api/admin/posts/nope", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdminGate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	project, err := env.db.CreateProject(ctx, models.ProjectInput{Name: "Camf", Slug: "camf", Description: "d"})
	require.NoError(t, err)
	room, err := env.db.CreateRoom(ctx, models.RoomInput{
		Name: "Garden", Type: models.RoomTypeSingle, Price: ptr(int64(100)), ProjectID: &project.ID,
	})
	require.NoError(t, err)

	projectID, roomID := itoa(project.ID), itoa(room.ID)
	roomChange := map[string]any{"id": room.ID, "name": "Hijacked", "type": "suite", "price": 1}

	for _, tc := range []struct {
		method, path string
		body         any
	}{
		{http.MethodPost, "/api/admin/projects", projectBody("gate")},
		{http.MethodPut, "/api/admin/projects/" + projectID, map[string]any{"name": "Hijacked"}},
		{http.MethodDelete, "/api/admin/projects/" + projectID, nil},
		{http.MethodPost, "/api/admin/rooms", roomChange},
		{http.MethodPost, "/api/admin/rooms/save", roomChange},
		{http.MethodPut, "/api/admin/rooms/" + roomID, roomChange},
		{http.MethodDelete, "/api/admin/rooms/" + roomID, nil},
		{http.MethodGet, "/api/admin/rooms", nil},
		{http.MethodGet, "/api/admin/dashboard", nil},
		{http.MethodGet, "/api/admin/messages", nil},
		{http.MethodPost, "/api/admin/backup", nil},
	} {
		resp, body := env.anon(tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, tc.method+" "+tc.path)
		assert.JSONEq(t, `{"message":"Unauthorized"}`, string(body))
	}

	gotProject, err := env.db.GetProjectByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, project, gotProject)

	gotRoom, err := env.db.GetRoomByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, room, gotRoom)

	for table, count := range map[string]func(context.Context) (int, error){
		"projects": env.db.CountProjects,
		"rooms":    env.db.CountRooms,
	} {
		n, err := count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n, table)
	}
}

func TestContentEvents(t *testing.T) {
	env := newTestEnv(t)
	env.login()

	var ops []string
	env.bus.Subscribe(models.EventContentChanged, func(e *events.Event) error {
		ops = append(ops, string(e.Payload))
		return nil
	})

	resp, _ := env.admin(http.MethodPost, "/api/admin/projects", projectBody("evt"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, ops, 1)
	assert.Contains(t, ops[0], `"op":"create"`)
	assert.Contains(t, ops[0], `"entity":"project"`)
}
