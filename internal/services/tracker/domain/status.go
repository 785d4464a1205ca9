package domain

// ProjectStatus is the lifecycle status of a project.
type ProjectStatus string

const (
	StatusNew        ProjectStatus = "New"
	StatusNotStarted ProjectStatus = "Not Started"
	StatusInProgress ProjectStatus = "In Progress"
	StatusCompleted  ProjectStatus = "Completed"
	StatusOnHold     ProjectStatus = "On Hold"
)

// ValidProjectStatus reports whether clients may write this status directly.
// StatusNotStarted is excluded: only status derivation produces it.
func ValidProjectStatus(value string) bool {
	switch ProjectStatus(value) {
	case StatusNew, StatusInProgress, StatusCompleted, StatusOnHold:
		return true
	default:
		return false
	}
}

// TaskStatus is the lifecycle status of a single task. Unlike project status
// it is never derived; clients set it directly.
type TaskStatus string

const (
	TaskStatusToDo       TaskStatus = "To Do"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// ValidTaskStatus reports whether clients may write this task status. The
// empty string is allowed and means the status was not supplied.
func ValidTaskStatus(value string) bool {
	switch TaskStatus(value) {
	case "", TaskStatusToDo, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// DeriveStatus computes a project's status from its tasks' progress values.
// Entries are nil for tasks whose progress has not been set; those tasks do
// not contribute to the average. With no contributing tasks the project is
// Not Started.
func DeriveStatus(progress []*int) ProjectStatus {
	var sum float64
	var count int
	for _, value := range progress {
		if value == nil {
			continue
		}
		sum += float64(*value)
		count++
	}
	if count == 0 {
		return StatusNotStarted
	}
	average := sum / float64(count)
	switch {
	case average == 100:
		return StatusCompleted
	case average > 0:
		return StatusInProgress
	default:
		return StatusNotStarted
	}
}
