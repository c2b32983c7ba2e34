package api

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"homestay/internal/export"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.dashboard.Stats(r.Context())
	if err != nil {
		s.internalError(w, r, err, "failed to build dashboard")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stats": stats})
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	list(s, w, r, "messages", s.repo.ListMessages)
}

func (s *Server) handleExportMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.repo.ListMessages(r.Context())
	if err != nil {
		s.internalError(w, r, err, "failed to list messages")
		return
	}

	var buf bytes.Buffer
	if err := export.WriteMessages(&buf, msgs); err != nil {
		s.internalError(w, r, err, "failed to export messages")
		return
	}

	filename := fmt.Sprintf("messages_%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleBackup(w http.ResponseWriter, r *http.Request) {
	if s.backup == nil {
		writeError(w, http.StatusServiceUnavailable, "Backups are not configured")
		return
	}
	path, err := s.backup.PerformBackup(r.Context())
	if err != nil {
		s.internalError(w, r, err, "backup failed")
		return
	}
	s.logger.Info().Str("path", path).Msg("backup created")
	writeJSON(w, http.StatusOK, map[string]string{"file": filepath.Base(path)})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.PingContext(r.Context()); err != nil {
			s.logger.Warn().Err(err).Msg("readiness check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
