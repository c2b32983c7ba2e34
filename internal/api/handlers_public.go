package api

import (
	"errors"
	"net/http"

	"homestay/internal/auth"
	"homestay/internal/models"
	"homestay/internal/service"
)

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeValid[models.MessageInput](w, r)
	if !ok {
		return
	}
	msg, err := s.contact.Submit(r.Context(), in)
	if err != nil {
		s.internalError(w, r, err, "failed to store contact message")
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

type authResponse struct {
	Message string             `json:"message"`
	User    *models.PublicUser `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeValid[models.RegisterInput](w, r)
	if !ok {
		return
	}

	user, err := s.auth.Register(r.Context(), in)
	switch {
	case errors.Is(err, service.ErrRegistrationClosed):
		writeError(w, http.StatusForbidden, "Registration is disabled")
		return
	case errors.Is(err, service.ErrEmailTaken):
		writeFieldError(w, http.StatusConflict, "Email already exists", "email")
		return
	case err != nil:
		s.internalError(w, r, err, "register failed")
		return
	}

	if _, err := s.sessions.Start(r.Context(), w, r, user.ID); err != nil {
		s.internalError(w, r, err, "start session after register")
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{Message: "Registration successful", User: user.Public()})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeValid[models.LoginInput](w, r)
	if !ok {
		return
	}

	user, err := s.auth.Login(r.Context(), in)
	switch {
	case errors.Is(err, service.ErrTooManyAttempts):
		writeError(w, http.StatusTooManyRequests, "Too many login attempts, please try again later")
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Incorrect email or password.")
		return
	case err != nil:
		s.internalError(w, r, err, "login failed")
		return
	}

	if _, err := s.sessions.Start(r.Context(), w, r, user.ID); err != nil {
		s.internalError(w, r, err, "start session")
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Message: "Login successful", User: user.Public()})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.End(r.Context(), w, r); err != nil {
		s.logger.Warn().Err(err).Str("request_id", requestIDFrom(r.Context())).Msg("end session")
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]*models.PublicUser{
		"user": auth.UserFromContext(r.Context()).Public(),
	})
}
