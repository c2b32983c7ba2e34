package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// Routes builds the full HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	if s.cfg.HTTP.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(s.accessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.HTTP.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(s.loadUser)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", s.handleListProjects)
		r.Get("/projects/id/{id}", s.handleGetProjectByID)
		r.Get("/projects/{slug}", s.handleGetProjectBySlug)
		r.Get("/services", s.handleListServices)
		r.Get("/posts", s.handleListPosts)
		r.Get("/posts/id/{id}", s.handleGetPostByID)
		r.Get("/posts/{slug}", s.handleGetPostBySlug)

		contactLimit := s.cfg.HTTP.ContactPerMinute
		if contactLimit <= 0 {
			contactLimit = 5
		}
		r.With(httprate.Limit(contactLimit, time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(tooManyRequests),
		)).Post("/contact", s.handleContact)

		r.Route("/auth", func(r chi.Router) {
			r.Use(s.limiter.middleware)
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.Post("/logout", s.handleLogout)
		})
		r.Get("/user", s.handleCurrentUser)

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAdmin)

			r.Get("/dashboard", s.handleDashboard)

			r.Get("/projects", s.handleListProjects)
			r.Post("/projects", s.handleCreateProject)
			r.Put("/projects/{id}", s.handleUpdateProject)
			r.Delete("/projects/{id}", s.handleDeleteProject)

			r.Get("/posts", s.handleListPosts)
			r.Post("/posts", s.handleCreatePost)
			r.Put("/posts/{id}", s.handleUpdatePost)
			r.Delete("/posts/{id}", s.handleDeletePost)

			r.Get("/services", s.handleListServices)
			r.Post("/services", s.handleCreateService)
			r.Put("/services/{id}", s.handleUpdateService)
			r.Delete("/services/{id}", s.handleDeleteService)

			r.Get("/messages", s.handleListMessages)
			r.Get("/messages/export", s.handleExportMessages)

			r.Get("/rooms", s.handleListRooms)
			r.Get("/rooms/id/{id}", s.handleGetRoom)
			r.Post("/rooms", s.handleCreateRoom)
			r.Post("/rooms/save", s.handleSaveRoom)
			r.Put("/rooms/{id}", s.handleUpdateRoom)
			r.Delete("/rooms/{id}", s.handleDeleteRoom)

			r.Post("/backup", s.handleBackup)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}

func tooManyRequests(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusTooManyRequests, "Too many requests, please try again later")
}
