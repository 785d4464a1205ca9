// Package api exposes the tracker over an HTTP JSON surface.
package api

import (
	"net/http"

	"github.com/soliyanakewani/Project-Management-System/internal/platform/telemetry/metrics"
	"github.com/soliyanakewani/Project-Management-System/internal/services/tracker/account"
	"github.com/soliyanakewani/Project-Management-System/internal/services/tracker/domain"
	"github.com/soliyanakewani/Project-Management-System/internal/services/tracker/identity"
)

// Handler serves the tracker HTTP API.
type Handler struct {
	projects *domain.ProjectService
	tasks    *domain.TaskService
	accounts *account.Service
	issuer   *identity.Issuer
	metrics  *metrics.Metrics
}

// Config defines the collaborators the HTTP API needs.
type Config struct {
	Projects *domain.ProjectService
	Tasks    *domain.TaskService
	Accounts *account.Service
	Issuer   *identity.Issuer
	Metrics  *metrics.Metrics
}

// NewHandler builds the tracker HTTP handler with routing, CORS, and
// authentication wired in.
func NewHandler(config Config) http.Handler {
	h := &Handler{
		projects: config.Projects,
		tasks:    config.Tasks,
		accounts: config.Accounts,
		issuer:   config.Issuer,
		metrics:  config.Metrics,
	}

	mux := http.NewServeMux()

	mux.HandleFunc(http.MethodPost+" /auth/register", h.handleRegister)
	mux.HandleFunc(http.MethodPost+" /auth/login", h.handleLogin)

	mux.HandleFunc(http.MethodGet+" /users", h.requireAuth(h.handleListUsers))
	mux.HandleFunc(http.MethodGet+" /users/team-members", h.requireAuth(h.handleListTeamMembers))
	mux.HandleFunc(http.MethodGet+" /users/{userID}", h.requireAuth(h.handleGetUser))
	mux.HandleFunc(http.MethodPut+" /users/{userID}", h.requireAuth(h.handleUpdateUserRole))
	mux.HandleFunc(http.MethodDelete+" /users/{userID}", h.requireAuth(h.handleDeleteUser))
	mux.HandleFunc(http.MethodGet+" /profile", h.requireAuth(h.handleGetProfile))
	mux.HandleFunc(http.MethodPut+" /profile", h.requireAuth(h.handleUpdateProfile))

	mux.HandleFunc(http.MethodPost+" /projects", h.requireAuth(h.handleCreateProject))
	mux.HandleFunc(http.MethodGet+" /projects", h.requireAuth(h.handleListProjects))
	mux.HandleFunc(http.MethodGet+" /projects/{projectID}", h.requireAuth(h.handleGetProject))
	mux.HandleFunc(http.MethodPut+" /projects/{projectID}", h.requireAuth(h.handleUpdateProject))
	mux.HandleFunc(http.MethodDelete+" /projects/{projectID}", h.requireAuth(h.handleDeleteProject))
	mux.HandleFunc(http.MethodGet+" /projects/{projectID}/tasks", h.requireAuth(h.handleListTasks))

	mux.HandleFunc(http.MethodPost+" /tasks", h.requireAuth(h.handleCreateTask))
	mux.HandleFunc(http.MethodGet+" /tasks/{taskID}", h.requireAuth(h.handleGetTask))
	mux.HandleFunc(http.MethodPut+" /tasks/{taskID}", h.requireAuth(h.handleUpdateTask))
	mux.HandleFunc(http.MethodDelete+" /tasks/{taskID}", h.requireAuth(h.handleDeleteTask))
	mux.HandleFunc(http.MethodPut+" /tasks/{taskID}/assign", h.requireAuth(h.handleAssignTask))
	mux.HandleFunc(http.MethodPut+" /tasks/{taskID}/unassign", h.requireAuth(h.handleUnassignTask))

	return h.withCORS(h.withTracing(h.withMetrics(mux)))
}
