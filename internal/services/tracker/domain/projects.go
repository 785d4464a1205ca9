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

// ProjectService handles project CRUD. Project status written here is the
// manually chosen one; the synchronizer overwrites it after task mutations.
type ProjectService struct {
	store   storage.ProjectStore
	clock   func() time.Time
	newID   func() (string, error)
	timeout time.Duration
}

// NewProjectService creates a ProjectService.
func NewProjectService(store storage.ProjectStore) *ProjectService {
	return &ProjectService{
		store:   store,
		clock:   time.Now,
		newID:   id.NewID,
		timeout: defaultStoreTimeout,
	}
}

// CreateProjectInput carries the fields for a new project. Status is
// optional and defaults to New.
type CreateProjectInput struct {
	Name        string
	Description string
	Status      string
}

// ProjectPatch is a partial project update with per-field presence pointers.
type ProjectPatch struct {
	Name        *string
	Description *string
	Status      *string
}

// CreateProject validates input and writes the project.
func (s *ProjectService) CreateProject(ctx context.Context, identity Identity, input CreateProjectInput) (storage.ProjectRecord, error) {
	if s == nil || s.store == nil {
		return storage.ProjectRecord{}, fmt.Errorf("project service is not configured")
	}
	if err := Authorize(identity, ActionCreateProject); err != nil {
		return storage.ProjectRecord{}, err
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	input.Status = strings.TrimSpace(input.Status)
	if input.Name == "" {
		return storage.ProjectRecord{}, errs.New(errs.CodeProjectNameEmpty, "project name is required")
	}
	if input.Description == "" {
		return storage.ProjectRecord{}, errs.New(errs.CodeProjectDescriptionEmpty, "project description is required")
	}
	if input.Status == "" {
		input.Status = string(StatusNew)
	}
	if !ValidProjectStatus(input.Status) {
		return storage.ProjectRecord{}, errs.WithMetadata(errs.CodeProjectInvalidStatus, "invalid project status", map[string]string{
			"status": input.Status,
		})
	}

	projectID, err := s.newID()
	if err != nil {
		return storage.ProjectRecord{}, fmt.Errorf("generate project id: %w", err)
	}
	record := storage.ProjectRecord{
		ID:          projectID,
		Name:        input.Name,
		Description: input.Description,
		Status:      input.Status,
		CreatedAt:   s.clock(),
	}

	storeCtx, cancel := boundedCtx(ctx, s.timeout)
	defer cancel()
	if err := s.store.PutProject(storeCtx, record); err != nil {
		return storage.ProjectRecord{}, storeFailure("create project", err)
	}
	return record, nil
}

// GetProject loads one project.
func (s *ProjectService) GetProject(ctx context.Context, projectID string) (storage.ProjectRecord, error) {
	if s == nil || s.store == nil {
		return storage.ProjectRecord{}, fmt.Errorf("project service is not configured")
	}

	storeCtx, cancel := boundedCtx(ctx, s.timeout)
	defer cancel()
	record, err := s.store.GetProject(storeCtx, strings.TrimSpace(projectID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.ProjectRecord{}, errs.Wrap(errs.CodeProjectNotFound, "project does not exist", err)
		}
		return storage.ProjectRecord{}, storeFailure("read project", err)
	}
	return record, nil
}

// ListProjects lists every project oldest-first.
func (s *ProjectService) ListProjects(ctx context.Context) ([]storage.ProjectRecord, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("project service is not configured")
	}

	storeCtx, cancel := boundedCtx(ctx, s.timeout)
	defer cancel()
	records, err := s.store.ListProjects(storeCtx)
	if err != nil {
		return nil, storeFailure("list projects", err)
	}
	return records, nil
}

// UpdateProject merges patch into the stored project. A status supplied here
// is a manual choice and stands only until the next task mutation triggers
// derivation.
func (s *ProjectService) UpdateProject(ctx context.Context, identity Identity, projectID string, patch ProjectPatch) (storage.ProjectRecord, error) {
	if s == nil || s.store == nil {
		return storage.ProjectRecord{}, fmt.Errorf("project service is not configured")
	}
	if err := Authorize(identity, ActionUpdateProject); err != nil {
		return storage.ProjectRecord{}, err
	}

	storeCtx, cancel := boundedCtx(ctx, s.timeout)
	defer cancel()

	record, err := s.store.GetProject(storeCtx, strings.TrimSpace(projectID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.ProjectRecord{}, errs.Wrap(errs.CodeProjectNotFound, "project does not exist", err)
		}
		return storage.ProjectRecord{}, storeFailure("read project", err)
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return storage.ProjectRecord{}, errs.New(errs.CodeProjectNameEmpty, "project name is required")
		}
		record.Name = name
	}
	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		if description == "" {
			return storage.ProjectRecord{}, errs.New(errs.CodeProjectDescriptionEmpty, "project description is required")
		}
		record.Description = description
	}
	if patch.Status != nil {
		status := strings.TrimSpace(*patch.Status)
		if !ValidProjectStatus(status) {
			return storage.ProjectRecord{}, errs.WithMetadata(errs.CodeProjectInvalidStatus, "invalid project status", map[string]string{
				"status": status,
			})
		}
		record.Status = status
	}

	if err := s.store.PutProject(storeCtx, record); err != nil {
		return storage.ProjectRecord{}, storeFailure("update project", err)
	}
	return record, nil
}

// DeleteProject removes the project. Its tasks cascade away with it.
func (s *ProjectService) DeleteProject(ctx context.Context, identity Identity, projectID string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("project service is not configured")
	}
	if err := Authorize(identity, ActionDeleteProject); err != nil {
		return err
	}

	storeCtx, cancel := boundedCtx(ctx, s.timeout)
	defer cancel()
	if err := s.store.DeleteProject(storeCtx, strings.TrimSpace(projectID)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errs.Wrap(errs.CodeProjectNotFound, "project does not exist", err)
		}
		return storeFailure("delete project", err)
	}
	return nil
}
