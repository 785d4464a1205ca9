package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/soliyanakewani/Project-Management-System/internal/services/tracker/storage"
)

// fakeStore is an in-memory ProjectStore + TaskStore for service tests.
type fakeStore struct {
	projects map[string]storage.ProjectRecord
	tasks    map[string]storage.TaskRecord
	order    []string

	putTaskErr        error
	getTaskErr        error
	updateStatusErr   error
	listProgressErr   error
	statusWrites      []string
	progressReadCount int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		projects: make(map[string]storage.ProjectRecord),
		tasks:    make(map[string]storage.TaskRecord),
	}
}

func (f *fakeStore) PutProject(_ context.Context, record storage.ProjectRecord) error {
	f.projects[record.ID] = record
	return nil
}

func (f *fakeStore) GetProject(_ context.Context, projectID string) (storage.ProjectRecord, error) {
	record, ok := f.projects[projectID]
	if !ok {
		return storage.ProjectRecord{}, storage.ErrNotFound
	}
	return record, nil
}

func (f *fakeStore) ListProjects(_ context.Context) ([]storage.ProjectRecord, error) {
	var results []storage.ProjectRecord
	for _, record := range f.projects {
		results = append(results, record)
	}
	return results, nil
}

func (f *fakeStore) UpdateProjectStatus(ctx context.Context, projectID string, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.updateStatusErr != nil {
		return f.updateStatusErr
	}
	record, ok := f.projects[projectID]
	if !ok {
		return storage.ErrNotFound
	}
	record.Status = status
	f.projects[projectID] = record
	f.statusWrites = append(f.statusWrites, status)
	return nil
}

func (f *fakeStore) DeleteProject(_ context.Context, projectID string) error {
	if _, ok := f.projects[projectID]; !ok {
		return storage.ErrNotFound
	}
	delete(f.projects, projectID)
	for taskID, record := range f.tasks {
		if record.ProjectID == projectID {
			delete(f.tasks, taskID)
		}
	}
	return nil
}

func (f *fakeStore) PutTask(_ context.Context, record storage.TaskRecord) error {
	if f.putTaskErr != nil {
		return f.putTaskErr
	}
	if _, ok := f.projects[record.ProjectID]; !ok {
		return storage.ErrNotFound
	}
	if _, exists := f.tasks[record.ID]; !exists {
		f.order = append(f.order, record.ID)
	}
	f.tasks[record.ID] = record
	return nil
}

func (f *fakeStore) GetTask(_ context.Context, taskID string) (storage.TaskRecord, error) {
	if f.getTaskErr != nil {
		return storage.TaskRecord{}, f.getTaskErr
	}
	record, ok := f.tasks[taskID]
	if !ok {
		return storage.TaskRecord{}, storage.ErrNotFound
	}
	return record, nil
}

func (f *fakeStore) ListTasksByProject(_ context.Context, projectID string) ([]storage.TaskRecord, error) {
	var results []storage.TaskRecord
	for _, taskID := range f.order {
		record, ok := f.tasks[taskID]
		if ok && record.ProjectID == projectID {
			results = append(results, record)
		}
	}
	return results, nil
}

func (f *fakeStore) ListTaskProgressByProject(ctx context.Context, projectID string) ([]*int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.progressReadCount++
	if f.listProgressErr != nil {
		return nil, f.listProgressErr
	}
	var results []*int
	for _, taskID := range f.order {
		record, ok := f.tasks[taskID]
		if ok && record.ProjectID == projectID {
			results = append(results, record.Progress)
		}
	}
	return results, nil
}

func (f *fakeStore) SetTaskAssignee(_ context.Context, taskID string, assignee *string) error {
	record, ok := f.tasks[taskID]
	if !ok {
		return storage.ErrNotFound
	}
	record.AssignedTo = assignee
	f.tasks[taskID] = record
	return nil
}

func (f *fakeStore) DeleteTask(_ context.Context, taskID string) error {
	if _, ok := f.tasks[taskID]; !ok {
		return storage.ErrNotFound
	}
	delete(f.tasks, taskID)
	return nil
}

func fixedClock() time.Time {
	return time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC)
}

func sequentialIDs(prefix string) func() (string, error) {
	next := 0
	return func() (string, error) {
		next++
		return fmt.Sprintf("%s-%d", prefix, next), nil
	}
}

func adminIdentity() Identity {
	return Identity{UserID: "user-admin", Username: "root", Role: RoleAdmin}
}

func memberIdentity(userID string) Identity {
	return Identity{UserID: userID, Username: "member", Role: RoleTeamMember}
}

func strPtr(value string) *string { return &value }

func intPtr(value int) *int { return &value }
