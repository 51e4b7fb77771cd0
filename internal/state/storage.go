package state

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/thruflo/context-engine/internal/config"
	"github.com/thruflo/context-engine/internal/docs"
)

// workLogHeader starts a newly created work log.
const workLogHeader = "# Work Log\n"

// Store reads and writes a project's task list and work log. It holds no
// document content between calls; every method goes to disk.
type Store struct {
	root string
	cfg  *config.ProjectConfig
}

// NewStore creates a Store for the project at root, resolving document
// paths through cfg.
func NewStore(root string, cfg *config.ProjectConfig) *Store {
	return &Store{root: root, cfg: cfg}
}

// TasksPath returns the absolute path of the task list.
func (s *Store) TasksPath() string {
	p, _ := docs.Path(s.root, s.cfg, config.DocTasks)
	return p
}

// LogPath returns the absolute path of the work log.
func (s *Store) LogPath() string {
	p, _ := docs.Path(s.root, s.cfg, config.DocLog)
	return p
}

// LoadTaskList reads and parses the task list. A missing document is
// reported as docs.DocumentNotFoundError.
func (s *Store) LoadTaskList() (*TaskList, error) {
	content, err := docs.Read(s.root, s.cfg, config.DocTasks)
	if err != nil {
		return nil, err
	}
	return ParseTaskList(content), nil
}

// SaveTaskList replaces the task list with l's content.
func (s *Store) SaveTaskList(l *TaskList) error {
	if err := writeFileAtomic(s.TasksPath(), []byte(l.String())); err != nil {
		return fmt.Errorf("failed to write task list: %w", err)
	}
	return nil
}

// AppendLog appends one entry to the work log, creating it (and any parent
// directories) with a header when absent. Existing content is never
// rewritten.
func (s *Store) AppendLog(entry LogEntry) error {
	path := s.LogPath()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create work log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open work log: %w", err)
	}
	defer file.Close()

	prefix, err := logPrefix(file)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(file, prefix+FormatEntry(entry)+"\n"); err != nil {
		return fmt.Errorf("failed to append to work log: %w", err)
	}
	return nil
}

// logPrefix returns what must precede a new entry: the header for an empty
// file, a newline when the last line is unterminated.
func logPrefix(f *os.File) (string, error) {
	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat work log: %w", err)
	}
	if info.Size() == 0 {
		return workLogHeader, nil
	}

	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return "", fmt.Errorf("failed to read work log: %w", err)
	}
	if last[0] != '\n' {
		return "\n", nil
	}
	return "", nil
}

// TailLog returns up to n of the most recent work log entries, oldest
// first. Lines that are not entries are skipped.
func (s *Store) TailLog(n int) ([]LogEntry, error) {
	content, err := docs.Read(s.root, s.cfg, config.DocLog)
	if err != nil {
		return nil, err
	}

	entries := ParseLog(content)
	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}

// writeFileAtomic writes data to a temp file beside path and renames it into
// place, so readers see either the old or the new content. The existing
// file mode is kept. A symlinked path is followed so the link survives and
// its target is the file that changes.
func writeFileAtomic(path string, data []byte) error {
	if target, err := filepath.EvalSymlinks(path); err == nil {
		path = target
	} else if !os.IsNotExist(err) {
		return err
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
