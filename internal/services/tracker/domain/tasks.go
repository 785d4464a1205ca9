package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	errs "github.com/soliyanakewani/Project-Management-System/internal/platform/errors"
	"github.com/soliyanakewani/Project-Management-System/internal/platform/id"
	"github.com/soliyanakewani/Project-Management-System/internal/services/tracker/storage"
)

// TaskService coordinates task mutations and the status synchronization that
// follows them. Every mutation runs the same pipeline: authorize, execute,
// synchronize. Synchronization failures never change a mutation's outcome.
type TaskService struct {
	store   storage.TaskStore
	sync    *Synchronizer
	clock   func() time.Time
	newID   func() (string, error)
	timeout time.Duration
}

// NewTaskService creates a TaskService. sync may be nil in read-only setups.
func NewTaskService(store storage.TaskStore, sync *Synchronizer) *TaskService {
	return &TaskService{
		store:   store,
		sync:    sync,
		clock:   time.Now,
		newID:   id.NewID,
		timeout: defaultStoreTimeout,
	}
}

// CreateTaskInput carries the fields for a new task. AssignedTo and Progress
// are optional.
type CreateTaskInput struct {
	ProjectID   string
	Name        string
	Description string
	Status      string
	AssignedTo  *string
	Progress    *int
}

// TaskPatch is a partial task update. Nil fields keep their stored value;
// merge-by-presence, not SQL-level coalescing. A nil Progress means "not
// supplied": clearing progress is not supported, only setting a value.
type TaskPatch struct {
	Name        *string
	Description *string
	Status      *string
	AssignedTo  *string
	Progress    *int
}

// CreateTask validates input, writes the task, and schedules status
// synchronization for its project.
func (s *TaskService) CreateTask(ctx context.Context, identity Identity, input CreateTaskInput) (storage.TaskRecord, error) {
	if s == nil || s.store == nil {
		return storage.TaskRecord{}, fmt.Errorf("task service is not configured")
	}
	if err := Authorize(identity, ActionCreateTask); err != nil {
		return storage.TaskRecord{}, err
	}

	input.ProjectID = strings.TrimSpace(input.ProjectID)
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	input.Status = strings.TrimSpace(input.Status)
	if input.ProjectID == "" {
		return storage.TaskRecord{}, errs.New(errs.CodeTaskEmptyProjectID, "project id is required")
	}
	if input.Name == "" {
		return storage.TaskRecord{}, errs.New(errs.CodeTaskNameEmpty, "task name is required")
	}
	if input.Description == "" {
		return storage.TaskRecord{}, errs.New(errs.CodeTaskDescriptionEmpty, "task description is required")
	}
	if !ValidTaskStatus(input.Status) {
		return storage.TaskRecord{}, errs.WithMetadata(errs.CodeTaskInvalidStatus, "unknown task status",
			map[string]string{"status": input.Status})
	}
	if err := validateAssignee(input.AssignedTo); err != nil {
		return storage.TaskRecord{}, err
	}
	if err := validateProgress(input.Progress); err != nil {
		return storage.TaskRecord{}, err
	}

	taskID, err := s.newID()
	if err != nil {
		return storage.TaskRecord{}, fmt.Errorf("generate task id: %w", err)
	}
	record := storage.TaskRecord{
		ID:          taskID,
		ProjectID:   input.ProjectID,
		Name:        input.Name,
		Description: input.Description,
		Status:      input.Status,
		AssignedTo:  input.AssignedTo,
		Progress:    input.Progress,
		CreatedAt:   s.clock(),
	}

	storeCtx, cancel := boundedCtx(ctx, s.timeout)
	defer cancel()
	if err := s.store.PutTask(storeCtx, record); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.TaskRecord{}, errs.Wrap(errs.CodeProjectNotFound, "project does not exist", err)
		}
		return storage.TaskRecord{}, storeFailure("create task", err)
	}

	s.sync.Trigger(ctx, record.ProjectID)
	return record, nil
}

// UpdateTask merges patch into the stored task and schedules status
// synchronization for the task's project. The project ID used for
// synchronization comes from the row read during the merge. Team members may
// update only tasks assigned to them.
func (s *TaskService) UpdateTask(ctx context.Context, identity Identity, taskID string, patch TaskPatch) (storage.TaskRecord, error) {
	if s == nil || s.store == nil {
		return storage.TaskRecord{}, fmt.Errorf("task service is not configured")
	}
	if err := Authorize(identity, ActionUpdateTask); err != nil {
		return storage.TaskRecord{}, err
	}

	storeCtx, cancel := boundedCtx(ctx, s.timeout)
	defer cancel()

	record, err := s.store.GetTask(storeCtx, strings.TrimSpace(taskID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.TaskRecord{}, errs.Wrap(errs.CodeTaskNotFound, "task does not exist", err)
		}
		return storage.TaskRecord{}, storeFailure("read task", err)
	}
	if identity.Role == RoleTeamMember {
		if record.AssignedTo == nil || *record.AssignedTo != identity.UserID {
			return storage.TaskRecord{}, errs.New(errs.CodeForbidden, "team members may update only tasks assigned to them")
		}
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return storage.TaskRecord{}, errs.New(errs.CodeTaskNameEmpty, "task name is required")
		}
		record.Name = name
	}
	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		if description == "" {
			return storage.TaskRecord{}, errs.New(errs.CodeTaskDescriptionEmpty, "task description is required")
		}
		record.Description = description
	}
	if patch.Status != nil {
		status := strings.TrimSpace(*patch.Status)
		if !ValidTaskStatus(status) {
			return storage.TaskRecord{}, errs.WithMetadata(errs.CodeTaskInvalidStatus, "unknown task status",
				map[string]string{"status": status})
		}
		record.Status = status
	}
	if patch.AssignedTo != nil {
		if err := validateAssignee(patch.AssignedTo); err != nil {
			return storage.TaskRecord{}, err
		}
		record.AssignedTo = patch.AssignedTo
	}
	if patch.Progress != nil {
		if err := validateProgress(patch.Progress); err != nil {
			return storage.TaskRecord{}, err
		}
		record.Progress = patch.Progress
	}

	if err := s.store.PutTask(storeCtx, record); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.TaskRecord{}, errs.Wrap(errs.CodeProjectNotFound, "project does not exist", err)
		}
		return storage.TaskRecord{}, storeFailure("update task", err)
	}

	s.sync.Trigger(ctx, record.ProjectID)
	return record, nil
}

// DeleteTask removes the task and schedules status synchronization for the
// project it belonged to. The project ID is captured before the delete since
// the row is gone afterwards.
func (s *TaskService) DeleteTask(ctx context.Context, identity Identity, taskID string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("task service is not configured")
	}
	if err := Authorize(identity, ActionDeleteTask); err != nil {
		return err
	}

	storeCtx, cancel := boundedCtx(ctx, s.timeout)
	defer cancel()

	record, err := s.store.GetTask(storeCtx, strings.TrimSpace(taskID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errs.Wrap(errs.CodeTaskNotFound, "task does not exist", err)
		}
		return storeFailure("read task", err)
	}
	if err := s.store.DeleteTask(storeCtx, record.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errs.Wrap(errs.CodeTaskNotFound, "task does not exist", err)
		}
		return storeFailure("delete task", err)
	}

	s.sync.Trigger(ctx, record.ProjectID)
	return nil
}

// AssignTask sets the task's assignee. Progress is untouched, so no status
// synchronization is scheduled.
func (s *TaskService) AssignTask(ctx context.Context, identity Identity, taskID string, subjectID string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("task service is not configured")
	}
	if err := Authorize(identity, ActionAssignTask); err != nil {
		return err
	}
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return errs.New(errs.CodeTaskEmptyAssignee, "assignee is required")
	}

	storeCtx, cancel := boundedCtx(ctx, s.timeout)
	defer cancel()
	if err := s.store.SetTaskAssignee(storeCtx, strings.TrimSpace(taskID), &subjectID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errs.Wrap(errs.CodeTaskNotFound, "task does not exist", err)
		}
		return storeFailure("assign task", err)
	}
	return nil
}

// UnassignTask clears the task's assignee. No status synchronization.
func (s *TaskService) UnassignTask(ctx context.Context, identity Identity, taskID string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("task service is not configured")
	}
	if err := Authorize(identity, ActionUnassignTask); err != nil {
		return err
	}

	storeCtx, cancel := boundedCtx(ctx, s.timeout)
	defer cancel()
	if err := s.store.SetTaskAssignee(storeCtx, strings.TrimSpace(taskID), nil); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errs.Wrap(errs.CodeTaskNotFound, "task does not exist", err)
		}
		return storeFailure("unassign task", err)
	}
	return nil
}

// GetTask loads one task.
func (s *TaskService) GetTask(ctx context.Context, taskID string) (storage.TaskRecord, error) {
	if s == nil || s.store == nil {
		return storage.TaskRecord{}, fmt.Errorf("task service is not configured")
	}

	storeCtx, cancel := boundedCtx(ctx, s.timeout)
	defer cancel()
	record, err := s.store.GetTask(storeCtx, strings.TrimSpace(taskID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.TaskRecord{}, errs.Wrap(errs.CodeTaskNotFound, "task does not exist", err)
		}
		return storage.TaskRecord{}, storeFailure("read task", err)
	}
	return record, nil
}

// ListTasks lists a project's tasks. Read only, no synchronization.
func (s *TaskService) ListTasks(ctx context.Context, projectID string) ([]storage.TaskRecord, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("task service is not configured")
	}
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, errs.New(errs.CodeTaskEmptyProjectID, "project id is required")
	}

	storeCtx, cancel := boundedCtx(ctx, s.timeout)
	defer cancel()
	records, err := s.store.ListTasksByProject(storeCtx, projectID)
	if err != nil {
		return nil, storeFailure("list tasks", err)
	}
	return records, nil
}

func validateAssignee(assignee *string) error {
	if assignee == nil {
		return nil
	}
	if strings.TrimSpace(*assignee) == "" {
		return errs.New(errs.CodeTaskEmptyAssignee, "assignee is required")
	}
	return nil
}

func validateProgress(progress *int) error {
	if progress == nil {
		return nil
	}
	if *progress < 0 || *progress > 100 {
		return errs.New(errs.CodeTaskInvalidProgress, "progress must be between 0 and 100")
	}
	return nil
}
