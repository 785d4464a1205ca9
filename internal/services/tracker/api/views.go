package api

import (
	"time"

	"github.com/soliyanakewani/Project-Management-System/internal/services/tracker/storage"
)

type projectView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type taskView struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	AssignedTo  *string   `json:"assigned_to"`
	Progress    *int      `json:"progress"`
	CreatedAt   time.Time `json:"created_at"`
}

// userView never carries the password hash.
type userView struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type loginView struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

func projectToView(record storage.ProjectRecord) projectView {
	return projectView{
		ID:          record.ID,
		Name:        record.Name,
		Description: record.Description,
		Status:      record.Status,
		CreatedAt:   record.CreatedAt,
	}
}

func projectsToViews(records []storage.ProjectRecord) []projectView {
	views := make([]projectView, 0, len(records))
	for _, record := range records {
		views = append(views, projectToView(record))
	}
	return views
}

func taskToView(record storage.TaskRecord) taskView {
	return taskView{
		ID:          record.ID,
		ProjectID:   record.ProjectID,
		Name:        record.Name,
		Description: record.Description,
		Status:      record.Status,
		AssignedTo:  record.AssignedTo,
		Progress:    record.Progress,
		CreatedAt:   record.CreatedAt,
	}
}

func tasksToViews(records []storage.TaskRecord) []taskView {
	views := make([]taskView, 0, len(records))
	for _, record := range records {
		views = append(views, taskToView(record))
	}
	return views
}

func userToView(record storage.UserRecord) userView {
	return userView{
		ID:        record.ID,
		Username:  record.Username,
		Email:     record.Email,
		Role:      record.Role,
		CreatedAt: record.CreatedAt,
	}
}

func usersToViews(records []storage.UserRecord) []userView {
	views := make([]userView, 0, len(records))
	for _, record := range records {
		views = append(views, userToView(record))
	}
	return views
}
