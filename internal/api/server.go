package api

import (
	"context"
	"net/http"
	"time"

	"homestay/internal/auth"
	"homestay/internal/config"
	"homestay/internal/domain"
	"homestay/internal/service"

	"github.com/rs/zerolog"
)

// Backupper takes an on-demand database snapshot.
type Backupper interface {
	PerformBackup(ctx context.Context) (string, error)
}

// Pinger reports whether the store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps carries everything the HTTP layer needs. Backup and DB are optional.
type Deps struct {
	Config    *config.Config
	Repo      domain.Repository
	Sessions  *auth.Sessions
	Auth      *service.AuthService
	Contact   *service.ContactService
	Dashboard *service.DashboardService
	Events    domain.EventPublisher
	Backup    Backupper
	DB        Pinger
	Logger    *zerolog.Logger
}

// Server holds the handlers for the public, auth and admin routes.
type Server struct {
	cfg       *config.Config
	repo      domain.Repository
	sessions  *auth.Sessions
	auth      *service.AuthService
	contact   *service.ContactService
	dashboard *service.DashboardService
	events    domain.EventPublisher
	backup    Backupper
	db        Pinger
	limiter   *rateLimiter
	logger    *zerolog.Logger
}

func NewServer(d Deps) *Server {
	logger := d.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	cfg := d.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Server{
		cfg:       cfg,
		repo:      d.Repo,
		sessions:  d.Sessions,
		auth:      d.Auth,
		contact:   d.Contact,
		dashboard: d.Dashboard,
		events:    d.Events,
		backup:    d.Backup,
		db:        d.DB,
		limiter:   newRateLimiter(cfg.Auth.LoginRPS, cfg.Auth.LoginBurst),
		logger:    logger,
	}
}

// StartLimiterJanitor evicts idle per-client auth limiters until ctx is done.
func (s *Server) StartLimiterJanitor(ctx context.Context, interval time.Duration) {
	s.limiter.StartJanitor(ctx, interval)
}

// internalError logs err and answers with a generic 500.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	s.logger.Error().
		Err(err).
		Str("request_id", requestIDFrom(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg(msg)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
