package state

import (
	"errors"
	"fmt"
	"strings"
)

// InvalidStatusError reports a log status outside the accepted set.
type InvalidStatusError struct {
	Status string
}

func (e InvalidStatusError) Error() string {
	names := make([]string, len(LogStatuses))
	for i, s := range LogStatuses {
		names[i] = string(s)
	}
	return fmt.Sprintf("invalid status %q (expected one of %s)", e.Status, strings.Join(names, ", "))
}

// InvalidTaskIDError reports a task id that cannot be written as a single
// work log entry. Nothing has been written when this is returned.
type InvalidTaskIDError struct {
	TaskID string
	Reason string
}

func (e InvalidTaskIDError) Error() string {
	if e.TaskID == "" {
		return "invalid task id: " + e.Reason
	}
	return fmt.Sprintf("invalid task id %q: %s", e.TaskID, e.Reason)
}

// TaskNotFoundError reports a task id with no matching line in the task
// list. The work log entry has already been written when this is returned.
type TaskNotFoundError struct {
	TaskID string
	Path   string
}

func (e TaskNotFoundError) Error() string {
	return fmt.Sprintf("task %s not found in %s (progress was still logged)", e.TaskID, e.Path)
}

// TaskConflictError reports an attempt to start a task while another task
// of the same epic is in progress. The marker is left unchanged; the work
// log entry has already been written.
type TaskConflictError struct {
	TaskID   string
	ActiveID string
}

func (e TaskConflictError) Error() string {
	return fmt.Sprintf("cannot start task %s: task %s is already in progress in the same epic (progress was still logged)", e.TaskID, e.ActiveID)
}

// IsInvalidStatus checks if an error is an InvalidStatusError.
func IsInvalidStatus(err error) bool {
	var e InvalidStatusError
	return errors.As(err, &e)
}

// IsInvalidTaskID checks if an error is an InvalidTaskIDError.
func IsInvalidTaskID(err error) bool {
	var e InvalidTaskIDError
	return errors.As(err, &e)
}

// IsTaskNotFound checks if an error is a TaskNotFoundError.
func IsTaskNotFound(err error) bool {
	var e TaskNotFoundError
	return errors.As(err, &e)
}

// IsTaskConflict checks if an error is a TaskConflictError.
func IsTaskConflict(err error) bool {
	var e TaskConflictError
	return errors.As(err, &e)
}
