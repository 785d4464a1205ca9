package domain

import (
	"errors"
	"testing"

	errs "github.com/soliyanakewani/Project-Management-System/internal/platform/errors"
)

func TestAuthorize(t *testing.T) {
	taskActions := []Action{
		ActionCreateTask, ActionUpdateTask, ActionDeleteTask,
		ActionAssignTask, ActionUnassignTask,
	}
	projectActions := []Action{
		ActionCreateProject, ActionUpdateProject, ActionDeleteProject,
	}

	for _, role := range []Role{RoleAdmin, RoleProjectManager} {
		for _, action := range append(append([]Action{}, taskActions...), projectActions...) {
			if err := Authorize(Identity{Role: role}, action); err != nil {
				t.Errorf("Authorize(%s, %s) = %v, want nil", role, action, err)
			}
		}
	}

	for _, action := range taskActions {
		if err := Authorize(Identity{Role: RoleTeamMember}, action); err != nil {
			t.Errorf("Authorize(team_member, %s) = %v, want nil", action, err)
		}
	}
	for _, action := range projectActions {
		err := Authorize(Identity{Role: RoleTeamMember}, action)
		if errs.CodeOf(err) != errs.CodeForbidden {
			t.Errorf("Authorize(team_member, %s) code = %v, want Forbidden", action, errs.CodeOf(err))
		}
	}
}

func TestAuthorizeUnknownRoleDenied(t *testing.T) {
	err := Authorize(Identity{Role: "auditor"}, ActionCreateTask)
	if err == nil {
		t.Fatal("expected denial for unknown role")
	}
	var domainErr *errs.Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("error %v is not a domain error", err)
	}
	if domainErr.Metadata["role"] != "auditor" || domainErr.Metadata["action"] != string(ActionCreateTask) {
		t.Fatalf("denial metadata = %v", domainErr.Metadata)
	}
}

func TestValidRole(t *testing.T) {
	for _, value := range []string{"admin", "project_manager", "team_member"} {
		if !ValidRole(value) {
			t.Errorf("ValidRole(%q) = false, want true", value)
		}
	}
	for _, value := range []string{"", "Admin", "owner"} {
		if ValidRole(value) {
			t.Errorf("ValidRole(%q) = true, want false", value)
		}
	}
}
