package state

import (
	"strings"
	"time"
	"unicode"

	"github.com/thruflo/context-engine/internal/config"
	"github.com/thruflo/context-engine/internal/logging"
)

// Tracker records progress in the work log and moves task markers forward.
//
// There is no locking: each call is a whole-file read-modify-write of the
// task list, so two processes updating the same project concurrently can
// overwrite each other's marker changes. The work log is appended with
// O_APPEND and is not affected.
type Tracker struct {
	now func() time.Time
}

// NewTracker creates a Tracker using the wall clock.
func NewTracker() *Tracker {
	return &Tracker{now: time.Now}
}

// LogProgress appends an entry for taskID to the work log and, for
// "started" and "complete", rewrites the task's marker in the task list.
//
// The log append happens first and unconditionally. If the task list is
// missing, the task cannot be found, or the start would put two tasks of
// one epic in progress, the returned entry is still valid and the error
// describes why the marker was not changed.
func (t *Tracker) LogProgress(projectRoot string, cfg *config.ProjectConfig, taskID, status, summary string) (LogEntry, error) {
	st, err := ParseLogStatus(status)
	if err != nil {
		return LogEntry{}, err
	}

	taskID = strings.TrimSpace(taskID)
	if err := validateTaskID(taskID); err != nil {
		return LogEntry{}, err
	}

	entry := LogEntry{
		Timestamp: t.now(),
		TaskID:    taskID,
		Status:    st,
		Summary:   oneLine(summary),
	}

	store := NewStore(projectRoot, cfg)
	log := logging.With("task", taskID, "status", string(st))

	if err := store.AppendLog(entry); err != nil {
		return LogEntry{}, err
	}
	log.Debug("progress logged", "path", store.LogPath())

	target, moves := st.TaskStatus()
	if !moves {
		return entry, nil
	}

	list, err := store.LoadTaskList()
	if err != nil {
		log.Warn("task list unavailable, marker not updated", "error", err)
		return entry, err
	}

	changed, err := transition(list, taskID, target)
	if err != nil {
		log.Warn("marker not updated", "error", err)
		if IsTaskNotFound(err) {
			return entry, TaskNotFoundError{TaskID: taskID, Path: cfg.Docs[config.DocTasks]}
		}
		return entry, err
	}
	if !changed {
		return entry, nil
	}

	if err := store.SaveTaskList(list); err != nil {
		return entry, err
	}
	log.Info("task marker updated", "marker", target.Marker())

	return entry, nil
}

// transition applies the forward-only marker state machine:
//
//	pending --started--> in_progress --complete--> complete
//
// pending may also go straight to complete. complete is terminal.
func transition(list *TaskList, taskID string, target TaskStatus) (bool, error) {
	i := list.Match(taskID)
	if i < 0 {
		return false, TaskNotFoundError{TaskID: taskID}
	}
	task := list.Tasks[i]

	if task.Status == TaskComplete {
		if target != TaskComplete {
			logging.Info("task already complete, marker left unchanged", "task", taskID)
		}
		return false, nil
	}

	if target == TaskInProgress && task.Status != TaskInProgress {
		if active, busy := list.ActiveConflict(task); busy {
			return false, TaskConflictError{TaskID: taskID, ActiveID: active.ID}
		}
	}

	return list.SetStatus(i, target), nil
}

// validateTaskID rejects ids that would not fit in one log line or would
// break the backtick quoting around the id.
func validateTaskID(id string) error {
	if id == "" {
		return InvalidTaskIDError{Reason: "task id is required"}
	}
	if strings.ContainsRune(id, '`') {
		return InvalidTaskIDError{TaskID: id, Reason: "must not contain a backtick"}
	}
	if strings.IndexFunc(id, unicode.IsControl) >= 0 {
		return InvalidTaskIDError{TaskID: id, Reason: "must not contain control characters"}
	}
	return nil
}
