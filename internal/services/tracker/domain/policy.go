package domain

import (
	errs "github.com/soliyanakewani/Project-Management-System/internal/platform/errors"
)

// Role is the access role carried by an authenticated identity.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleProjectManager Role = "project_manager"
	RoleTeamMember     Role = "team_member"
)

// ValidRole reports whether value is a known role.
func ValidRole(value string) bool {
	switch Role(value) {
	case RoleAdmin, RoleProjectManager, RoleTeamMember:
		return true
	default:
		return false
	}
}

// Action is a mutation gated by the access policy.
type Action string

const (
	ActionCreateProject Action = "create_project"
	ActionUpdateProject Action = "update_project"
	ActionDeleteProject Action = "delete_project"
	ActionCreateTask    Action = "create_task"
	ActionUpdateTask    Action = "update_task"
	ActionDeleteTask    Action = "delete_task"
	ActionAssignTask    Action = "assign_task"
	ActionUnassignTask  Action = "unassign_task"
)

// Identity is the authenticated subject a request acts as.
type Identity struct {
	UserID   string
	Username string
	Role     Role
}

// Authorize checks whether identity's role may perform action. Denial is a
// Forbidden error value with no side effects. Team members hold every task
// action, but their UpdateTask grant covers only tasks assigned to them;
// the task service enforces that against the stored row.
func Authorize(identity Identity, action Action) error {
	switch identity.Role {
	case RoleAdmin, RoleProjectManager:
		return nil
	case RoleTeamMember:
		switch action {
		case ActionCreateTask, ActionUpdateTask, ActionDeleteTask,
			ActionAssignTask, ActionUnassignTask:
			return nil
		}
	}
	return errs.WithMetadata(errs.CodeForbidden, "role may not perform action", map[string]string{
		"role":   string(identity.Role),
		"action": string(action),
	})
}
