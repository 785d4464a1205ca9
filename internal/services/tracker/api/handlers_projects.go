package api

import (
	"net/http"

	errs "github.com/soliyanakewani/Project-Management-System/internal/platform/errors"
	"github.com/soliyanakewani/Project-Management-System/internal/services/tracker/domain"
)

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (h *Handler) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := identityFrom(r.Context())
	if !ok {
		h.writeError(w, r, errs.New(errs.CodeUnauthenticated, "missing identity"))
		return
	}
	var request createProjectRequest
	if err := decodeJSON(r, &request); err != nil {
		h.writeError(w, r, err)
		return
	}
	record, err := h.projects.CreateProject(mutationContext(r), actor, domain.CreateProjectInput{
		Name:        request.Name,
		Description: request.Description,
		Status:      request.Status,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, projectToView(record))
}

func (h *Handler) handleListProjects(w http.ResponseWriter, r *http.Request) {
	records, err := h.projects.ListProjects(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projectsToViews(records))
}

func (h *Handler) handleGetProject(w http.ResponseWriter, r *http.Request) {
	record, err := h.projects.GetProject(r.Context(), r.PathValue("projectID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projectToView(record))
}

func (h *Handler) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := identityFrom(r.Context())
	if !ok {
		h.writeError(w, r, errs.New(errs.CodeUnauthenticated, "missing identity"))
		return
	}
	var request updateProjectRequest
	if err := decodeJSON(r, &request); err != nil {
		h.writeError(w, r, err)
		return
	}
	record, err := h.projects.UpdateProject(mutationContext(r), actor, r.PathValue("projectID"), domain.ProjectPatch{
		Name:        request.Name,
		Description: request.Description,
		Status:      request.Status,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projectToView(record))
}

func (h *Handler) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := identityFrom(r.Context())
	if !ok {
		h.writeError(w, r, errs.New(errs.CodeUnauthenticated, "missing identity"))
		return
	}
	if err := h.projects.DeleteProject(mutationContext(r), actor, r.PathValue("projectID")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	records, err := h.tasks.ListTasks(r.Context(), r.PathValue("projectID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasksToViews(records))
}
