package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/soliyanakewani/Project-Management-System/internal/services/tracker/storage"
)

func seedProject(store *fakeStore, projectID string, status ProjectStatus) {
	store.projects[projectID] = storage.ProjectRecord{
		ID:          projectID,
		Name:        "Project",
		Description: "Seeded",
		Status:      string(status),
		CreatedAt:   fixedClock(),
	}
}

func seedTask(store *fakeStore, taskID, projectID string, progress *int) {
	store.order = append(store.order, taskID)
	store.tasks[taskID] = storage.TaskRecord{
		ID:          taskID,
		ProjectID:   projectID,
		Name:        "Task",
		Description: "Seeded",
		Progress:    progress,
		CreatedAt:   fixedClock(),
	}
}

func TestSynchronizeWritesDerivedStatus(t *testing.T) {
	store := newFakeStore()
	seedProject(store, "project-1", StatusNew)
	seedTask(store, "task-1", "project-1", intPtr(50))
	seedTask(store, "task-2", "project-1", intPtr(100))
	seedTask(store, "task-3", "project-1", nil)

	sync := NewSynchronizer(store, store, nil)
	if err := sync.Synchronize(context.Background(), "project-1"); err != nil {
		t.Fatalf("Synchronize returned error: %v", err)
	}
	if got := store.projects["project-1"].Status; got != string(StatusInProgress) {
		t.Fatalf("project status = %q, want In Progress", got)
	}
}

func TestSynchronizeOverwritesManualStatus(t *testing.T) {
	store := newFakeStore()
	seedProject(store, "project-1", StatusOnHold)
	seedTask(store, "task-1", "project-1", intPtr(100))

	sync := NewSynchronizer(store, store, nil)
	if err := sync.Synchronize(context.Background(), "project-1"); err != nil {
		t.Fatalf("Synchronize returned error: %v", err)
	}
	if got := store.projects["project-1"].Status; got != string(StatusCompleted) {
		t.Fatalf("project status = %q, want Completed over On Hold", got)
	}
}

func TestSynchronizeIsIdempotent(t *testing.T) {
	store := newFakeStore()
	seedProject(store, "project-1", StatusNew)
	seedTask(store, "task-1", "project-1", intPtr(30))
	seedTask(store, "task-2", "project-1", intPtr(60))

	sync := NewSynchronizer(store, store, nil)
	if err := sync.Synchronize(context.Background(), "project-1"); err != nil {
		t.Fatalf("first Synchronize returned error: %v", err)
	}
	first := store.projects["project-1"].Status

	if err := sync.Synchronize(context.Background(), "project-1"); err != nil {
		t.Fatalf("second Synchronize returned error: %v", err)
	}
	second := store.projects["project-1"].Status

	if first != second {
		t.Fatalf("status changed between calls with no task writes: %q then %q", first, second)
	}
	if first != string(StatusInProgress) {
		t.Fatalf("status = %q, want In Progress", first)
	}
	if got := store.statusWrites; len(got) != 2 || got[0] != got[1] {
		t.Fatalf("status writes = %v, want the same value written twice", got)
	}
}

func TestSynchronizeProjectWithoutTasks(t *testing.T) {
	store := newFakeStore()
	seedProject(store, "project-1", StatusInProgress)

	sync := NewSynchronizer(store, store, nil)
	if err := sync.Synchronize(context.Background(), "project-1"); err != nil {
		t.Fatalf("Synchronize returned error: %v", err)
	}
	if got := store.projects["project-1"].Status; got != string(StatusNotStarted) {
		t.Fatalf("project status = %q, want Not Started", got)
	}
}

func TestSynchronizeSurfacesReadFailure(t *testing.T) {
	store := newFakeStore()
	seedProject(store, "project-1", StatusNew)
	store.listProgressErr = errors.New("disk gone")

	sync := NewSynchronizer(store, store, nil)
	if err := sync.Synchronize(context.Background(), "project-1"); err == nil {
		t.Fatal("expected read failure to surface")
	}
	if len(store.statusWrites) != 0 {
		t.Fatalf("status writes = %v, want none after read failure", store.statusWrites)
	}
}

func TestTriggerSwallowsFailures(t *testing.T) {
	store := newFakeStore()
	seedProject(store, "project-1", StatusNew)
	store.updateStatusErr = errors.New("disk gone")

	sync := NewSynchronizer(store, store, nil)
	sync.Trigger(context.Background(), "project-1")

	if got := store.projects["project-1"].Status; got != string(StatusNew) {
		t.Fatalf("project status = %q, want untouched New", got)
	}
}

func TestTriggerSkipsDeletedProject(t *testing.T) {
	store := newFakeStore()

	sync := NewSynchronizer(store, store, nil)
	sync.Trigger(context.Background(), "project-gone")

	if len(store.statusWrites) != 0 {
		t.Fatalf("status writes = %v, want none for deleted project", store.statusWrites)
	}
}

func TestTriggerIgnoresCanceledRequestContext(t *testing.T) {
	store := newFakeStore()
	seedProject(store, "project-1", StatusNew)
	seedTask(store, "task-1", "project-1", intPtr(100))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sync := NewSynchronizer(store, store, nil)
	sync.Trigger(ctx, "project-1")

	if got := store.projects["project-1"].Status; got != string(StatusCompleted) {
		t.Fatalf("project status = %q, want Completed despite canceled request", got)
	}
}
