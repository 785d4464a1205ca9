package domain

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/soliyanakewani/Project-Management-System/internal/platform/telemetry/metrics"
	"github.com/soliyanakewani/Project-Management-System/internal/services/tracker/storage"
)

// Synchronizer recomputes a project's derived status from its tasks after a
// task write commits. The status write is unconditional and overwrites any
// manually set status, including On Hold.
type Synchronizer struct {
	projects storage.ProjectStore
	tasks    storage.TaskStore
	metrics  *metrics.Metrics
	timeout  time.Duration
}

// NewSynchronizer creates a Synchronizer over the given stores. metrics may
// be nil when telemetry is disabled.
func NewSynchronizer(projects storage.ProjectStore, tasks storage.TaskStore, m *metrics.Metrics) *Synchronizer {
	return &Synchronizer{
		projects: projects,
		tasks:    tasks,
		metrics:  m,
		timeout:  defaultStoreTimeout,
	}
}

// Synchronize recomputes projectID's status from its tasks' progress values
// and persists it.
func (s *Synchronizer) Synchronize(ctx context.Context, projectID string) error {
	if s == nil || s.projects == nil || s.tasks == nil {
		return fmt.Errorf("synchronizer is not configured")
	}
	if projectID == "" {
		return fmt.Errorf("project id is required")
	}

	progress, err := s.tasks.ListTaskProgressByProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("read task progress: %w", err)
	}
	status := DeriveStatus(progress)
	if err := s.projects.UpdateProjectStatus(ctx, projectID, string(status)); err != nil {
		return fmt.Errorf("write project status: %w", err)
	}
	return nil
}

// Trigger runs synchronization for projectID on a detached context and
// swallows any failure: the task mutation that triggered it has already
// committed, so a stale project status is logged and counted but never
// surfaced to the caller. There is no retry; the status stays stale until
// the next task mutation on the project.
func (s *Synchronizer) Trigger(ctx context.Context, projectID string) {
	if s == nil {
		return
	}
	timeout := s.timeout
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}
	detached, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if s.metrics != nil {
		s.metrics.SyncRuns.Add(detached, 1)
	}
	if err := s.Synchronize(detached, projectID); err != nil {
		if s.metrics != nil {
			s.metrics.SyncFailures.Add(detached, 1)
		}
		if errors.Is(err, storage.ErrNotFound) {
			// Project deleted between the task write and the recompute.
			log.Printf("status synchronization skipped, project %s is gone", projectID)
			return
		}
		log.Printf("status synchronization failed for project %s: %v", projectID, err)
	}
}
