package api

import (
	"net/http"

	"homestay/internal/models"

	"github.com/go-chi/chi/v5"
)

const (
	projectSlugTaken = "A project with this slug already exists"
	postSlugTaken    = "A post with this slug already exists"
)

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	list(s, w, r, "projects", s.repo.ListProjects)
}

func (s *Server) handleGetProjectByID(w http.ResponseWriter, r *http.Request) {
	getByID(s, w, r, projectEntity, s.repo.GetProjectByID)
}

func (s *Server) handleGetProjectBySlug(w http.ResponseWriter, r *http.Request) {
	project, err := s.repo.GetProjectBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.internalError(w, r, err, "failed to get project")
		return
	}
	if project == nil {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	createEntity(s, w, r, projectEntity, s.repo.CreateProject,
		func(p *models.Project) int64 { return p.ID }, projectSlugTaken)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	updateEntity(s, w, r, projectEntity, s.repo.UpdateProject, projectSlugTaken)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	deleteEntity(s, w, r, projectEntity, s.repo.DeleteProject)
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	list(s, w, r, "posts", s.repo.ListPosts)
}

func (s *Server) handleGetPostByID(w http.ResponseWriter, r *http.Request) {
	getByID(s, w, r, postEntity, s.repo.GetPostByID)
}

func (s *Server) handleGetPostBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := s.repo.GetPostBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.internalError(w, r, err, "failed to get post")
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	createEntity(s, w, r, postEntity, s.repo.CreatePost,
		func(p *models.Post) int64 { return p.ID }, postSlugTaken)
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	updateEntity(s, w, r, postEntity, s.repo.UpdatePost, postSlugTaken)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	deleteEntity(s, w, r, postEntity, s.repo.DeletePost)
}

func (s *Server) handleListServices(w http.ResponseWriter, r *http.Request) {
	list(s, w, r, "services", s.repo.ListServices)
}

func (s *Server) handleCreateService(w http.ResponseWriter, r *http.Request) {
	createEntity(s, w, r, serviceEntity, s.repo.CreateService,
		func(v *models.Service) int64 { return v.ID }, "")
}

func (s *Server) handleUpdateService(w http.ResponseWriter, r *http.Request) {
	updateEntity(s, w, r, serviceEntity, s.repo.UpdateService, "")
}

func (s *Server) handleDeleteService(w http.ResponseWriter, r *http.Request) {
	deleteEntity(s, w, r, serviceEntity, s.repo.DeleteService)
}
