package api

import (
	"net/http"

	errs "github.com/soliyanakewani/Project-Management-System/internal/platform/errors"
	"github.com/soliyanakewani/Project-Management-System/internal/services/tracker/domain"
)

type createTaskRequest struct {
	ProjectID   string  `json:"project_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	AssignedTo  *string `json:"assigned_to"`
	Progress    *int    `json:"progress"`
}

// updateTaskRequest fields are pointers so omitted keys keep their stored
// values. A JSON null progress decodes to nil and is treated as omitted.
type updateTaskRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	AssignedTo  *string `json:"assigned_to"`
	Progress    *int    `json:"progress"`
}

type assignTaskRequest struct {
	AssignedTo string `json:"assigned_to"`
}

func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := identityFrom(r.Context())
	if !ok {
		h.writeError(w, r, errs.New(errs.CodeUnauthenticated, "missing identity"))
		return
	}
	var request createTaskRequest
	if err := decodeJSON(r, &request); err != nil {
		h.writeError(w, r, err)
		return
	}
	record, err := h.tasks.CreateTask(mutationContext(r), actor, domain.CreateTaskInput{
		ProjectID:   request.ProjectID,
		Name:        request.Name,
		Description: request.Description,
		Status:      request.Status,
		AssignedTo:  request.AssignedTo,
		Progress:    request.Progress,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, taskToView(record))
}

func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
	record, err := h.tasks.GetTask(r.Context(), r.PathValue("taskID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, taskToView(record))
}

func (h *Handler) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := identityFrom(r.Context())
	if !ok {
		h.writeError(w, r, errs.New(errs.CodeUnauthenticated, "missing identity"))
		return
	}
	var request updateTaskRequest
	if err := decodeJSON(r, &request); err != nil {
		h.writeError(w, r, err)
		return
	}
	record, err := h.tasks.UpdateTask(mutationContext(r), actor, r.PathValue("taskID"), domain.TaskPatch{
		Name:        request.Name,
		Description: request.Description,
		Status:      request.Status,
		AssignedTo:  request.AssignedTo,
		Progress:    request.Progress,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, taskToView(record))
}

func (h *Handler) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := identityFrom(r.Context())
	if !ok {
		h.writeError(w, r, errs.New(errs.CodeUnauthenticated, "missing identity"))
		return
	}
	if err := h.tasks.DeleteTask(mutationContext(r), actor, r.PathValue("taskID")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAssignTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := identityFrom(r.Context())
	if !ok {
		h.writeError(w, r, errs.New(errs.CodeUnauthenticated, "missing identity"))
		return
	}
	var request assignTaskRequest
	if err := decodeJSON(r, &request); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.tasks.AssignTask(mutationContext(r), actor, r.PathValue("taskID"), request.AssignedTo); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleUnassignTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := identityFrom(r.Context())
	if !ok {
		h.writeError(w, r, errs.New(errs.CodeUnauthenticated, "missing identity"))
		return
	}
	if err := h.tasks.UnassignTask(mutationContext(r), actor, r.PathValue("taskID")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
