package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"homestay/internal/auth"
	"homestay/internal/config"
	"homestay/internal/database"
	"homestay/internal/events"
	"homestay/internal/repository"
	"homestay/internal/service"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	t      *testing.T
	db     *database.DB
	bus    *events.EventBus
	ts     *httptest.Server
	client *http.Client
}

func testConfig() *config.Config {
	return &config.Config{
		HTTP:    config.HTTPConfig{CORSOrigins: []string{"*"}, ContactPerMinute: 100},
		Session: config.SessionConfig{Secret: "0123456789abcdef-test", CookieName: "sid", TTL: time.Hour},
		Auth:    config.AuthConfig{MaxFailedLogins: 5, LockoutWindow: 15 * time.Minute},
	}
}

func newTestEnv(t *testing.T, mutate ...func(*config.Config, *Deps)) *testEnv {
	t.Helper()

	db, err := database.NewDB(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := testConfig()
	store := repository.NewMemorySessionStore()
	bus := events.NewEventBus()

	deps := Deps{
		Config:    cfg,
		Repo:      db,
		Sessions:  auth.NewSessions(store, cfg.Session),
		Auth:      service.NewAuthService(db, store, bus, cfg.Auth, nil),
		Contact:   service.NewContactService(db, bus, nil),
		Dashboard: service.NewDashboardService(db),
		Events:    bus,
		DB:        db,
	}
	for _, m := range mutate {
		m(cfg, &deps)
	}
	deps.Auth = service.NewAuthService(db, store, bus, cfg.Auth, nil)

	ts := httptest.NewServer(NewServer(deps).Routes())
	t.Cleanup(ts.Close)

	return &testEnv{t: t, db: db, bus: bus, ts: ts, client: newClient(t)}
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

// do sends body as JSON (or raw when it is a string) and returns the response with its body read.
func (e *testEnv) do(client *http.Client, method, path string, body any) (*http.Response, []byte) {
	e.t.Helper()
	return e.doWithHeaders(client, method, path, body, nil)
}

func (e *testEnv) doWithHeaders(client *http.Client, method, path string, body any, headers map[string]string) (*http.Response, []byte) {
	e.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, e.ts.URL+path, reader)
	require.NoError(e.t, err)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	require.NoError(e.t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(e.t, err)
	return resp, data
}

// admin sends the request with the logged-in admin client.
func (e *testEnv) admin(method, path string, body any) (*http.Response, []byte) {
	e.t.Helper()
	return e.do(e.client, method, path, body)
}

// anon sends the request without cookies.
func (e *testEnv) anon(method, path string, body any) (*http.Response, []byte) {
	e.t.Helper()
	return e.do(http.DefaultClient, method, path, body)
}

func (e *testEnv) login() {
	e.t.Helper()
	resp, body := e.admin(http.MethodPost, "/api/auth/register", map[string]string{
		"fullName": "Admin",
		"email":    "admin@example.com",
		"password": "secret1",
	})
	require.Equal(e.t, http.StatusCreated, resp.StatusCode, string(body))
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return v
}

func ptr[T any](v T) *T {
	return &v
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
