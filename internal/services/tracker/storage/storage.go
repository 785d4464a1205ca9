// Package storage defines the persistence boundary for tracker state.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a requested project, task, or user row is missing.
	ErrNotFound = errors.New("record not found")
	// ErrConflict indicates a requested write conflicts with uniqueness constraints.
	ErrConflict = errors.New("record conflict")
)

// ProjectRecord stores one project row.
type ProjectRecord struct {
	ID          string
	Name        string
	Description string
	Status      string
	CreatedAt   time.Time
}

// TaskRecord stores one task row. AssignedTo and Progress are nullable:
// a nil Progress means the task does not contribute to the project average.
type TaskRecord struct {
	ID          string
	ProjectID   string
	Name        string
	Description string
	Status      string
	AssignedTo  *string
	Progress    *int
	CreatedAt   time.Time
}

// UserRecord stores one registered user row.
type UserRecord struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// ProjectStore persists project rows.
type ProjectStore interface {
	PutProject(ctx context.Context, record ProjectRecord) error
	GetProject(ctx context.Context, projectID string) (ProjectRecord, error)
	ListProjects(ctx context.Context) ([]ProjectRecord, error)
	// UpdateProjectStatus is the derived-status write path; it touches only
	// the status column of an existing row.
	UpdateProjectStatus(ctx context.Context, projectID string, status string) error
	DeleteProject(ctx context.Context, projectID string) error
}

// TaskStore persists task rows.
type TaskStore interface {
	PutTask(ctx context.Context, record TaskRecord) error
	GetTask(ctx context.Context, taskID string) (TaskRecord, error)
	ListTasksByProject(ctx context.Context, projectID string) ([]TaskRecord, error)
	// ListTaskProgressByProject reads only the progress column for every task
	// of one project; nil entries are tasks with no progress set.
	ListTaskProgressByProject(ctx context.Context, projectID string) ([]*int, error)
	SetTaskAssignee(ctx context.Context, taskID string, assignee *string) error
	DeleteTask(ctx context.Context, taskID string) error
}

// UserStore persists registered users.
type UserStore interface {
	PutUser(ctx context.Context, record UserRecord) error
	GetUser(ctx context.Context, userID string) (UserRecord, error)
	GetUserByUsername(ctx context.Context, username string) (UserRecord, error)
	ListUsers(ctx context.Context) ([]UserRecord, error)
	ListUsersByRole(ctx context.Context, role string) ([]UserRecord, error)
	UpdateUserRole(ctx context.Context, userID string, role string) error
	UpdateUserProfile(ctx context.Context, userID string, username string, email string) error
	DeleteUser(ctx context.Context, userID string) error
}
