package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"homestay/internal/config"
	"homestay/internal/domain"
	"homestay/internal/models"
)

// Sessions issues, resolves and destroys cookie-backed server sessions.
type Sessions struct {
	store  domain.SessionStore
	cfg    config.SessionConfig
	signer signer
	now    func() time.Time
}

func NewSessions(store domain.SessionStore, cfg config.SessionConfig) *Sessions {
	if cfg.TTL <= 0 {
		cfg.TTL = models.DefaultSessionTTL
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "sid"
	}
	return &Sessions{
		store:  store,
		cfg:    cfg,
		signer: signer{secret: []byte(cfg.Secret)},
		now:    time.Now,
	}
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Start creates a session for userID and sets the cookie. Any session the
// request already carried is destroyed first.
func (s *Sessions) Start(ctx context.Context, w http.ResponseWriter, r *http.Request, userID int64) (*models.Session, error) {
	if old := s.token(r); old != "" {
		if err := s.store.DeleteSession(ctx, old); err != nil {
			return nil, fmt.Errorf("drop previous session: %w", err)
		}
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := &models.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.TTL),
	}
	if err := s.store.SetSession(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    s.signer.sign(token),
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(s.cfg.TTL.Seconds()),
		Secure:   s.cfg.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return session, nil
}

// Resolve returns the live session named by the request cookie, or nil.
func (s *Sessions) Resolve(ctx context.Context, r *http.Request) (*models.Session, error) {
	token := s.token(r)
	if token == "" {
		return nil, nil
	}
	session, err := s.store.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Expired(s.now()) {
		return nil, nil
	}
	return session, nil
}

// End destroys the request's session, if any, and expires the cookie.
func (s *Sessions) End(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var err error
	if token := s.token(r); token != "" {
		err = s.store.DeleteSession(ctx, token)
	}
	s.clearCookie(w)
	return err
}

func (s *Sessions) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   s.cfg.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Sessions) token(r *http.Request) string {
	cookie, err := r.Cookie(s.cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	token, ok := s.signer.verify(cookie.Value)
	if !ok {
		return ""
	}
	return token
}

// CookieName is exposed for tests and middleware.
func (s *Sessions) CookieName() string {
	return s.cfg.CookieName
}
