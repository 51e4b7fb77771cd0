package state

import "time"

// TaskStatus is the lifecycle state encoded by a status marker.
type TaskStatus string

// TaskStatus values.
const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskComplete   TaskStatus = "complete"
)

// Status markers as written in the task list.
const (
	MarkerPending    = "[ ]"
	MarkerInProgress = "[/]"
	MarkerComplete   = "[x]"
)

// Marker returns the marker token written for s.
func (s TaskStatus) Marker() string {
	switch s {
	case TaskInProgress:
		return MarkerInProgress
	case TaskComplete:
		return MarkerComplete
	default:
		return MarkerPending
	}
}

// Task is one line item of the task list.
type Task struct {
	// ID is the identifier written after the marker, or one inferred from
	// outline position when the line has none (Explicit is then false).
	ID       string
	Explicit bool
	Status   TaskStatus
	Text     string
	Depth    int
	// Line is the 0-based line index in the document.
	Line int

	markerCol int
	body      string
}

// LogStatus is the status recorded with a work log entry.
type LogStatus string

// LogStatus values.
const (
	LogStarted      LogStatus = "started"
	LogImplementing LogStatus = "implementing"
	LogVerified     LogStatus = "verified"
	LogBlocked      LogStatus = "blocked"
	LogComplete     LogStatus = "complete"
)

// LogStatuses lists every accepted LogStatus in lifecycle order.
var LogStatuses = []LogStatus{LogStarted, LogImplementing, LogVerified, LogBlocked, LogComplete}

// ParseLogStatus validates s.
func ParseLogStatus(s string) (LogStatus, error) {
	for _, st := range LogStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", InvalidStatusError{Status: s}
}

// TaskStatus returns the marker state a log status moves a task to, if any.
func (s LogStatus) TaskStatus() (TaskStatus, bool) {
	switch s {
	case LogStarted:
		return TaskInProgress, true
	case LogComplete:
		return TaskComplete, true
	}
	return "", false
}

// LogEntry is one work log record.
type LogEntry struct {
	Timestamp time.Time
	TaskID    string
	Status    LogStatus
	Summary   string
}
