package state

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// "- [ ] 2.1 Add widget", "  * [x] ...", "1. [/] ..."
	listItemPattern = regexp.MustCompile(`^([ \t]*)(?:[-*+]|\d+[.)])[ \t]+\[([ /xX])\]`)
	// "| [ ] 3.1 | Report query |"
	tableRowPattern = regexp.MustCompile(`^[ \t]*\|[ \t]*\[([ /xX])\]`)
	// "2.1", "3.2.1", "Epic 4", "Epic 4.2"
	explicitIDPattern = regexp.MustCompile(`^(?:[Ee]pic[ \t]+)?\d+(?:\.\d+)*`)
)

// TaskList is a parsed task list document. Only status markers are ever
// rewritten; every other byte of the document is preserved.
type TaskList struct {
	Tasks []Task
	lines []string
}

type markerLine struct {
	col    int
	status TaskStatus
	indent int
	table  bool
	body   string
}

// ParseTaskList parses every line carrying a status marker. Lines without
// a marker (headings, prose, table headers) are kept but not returned as
// tasks.
func ParseTaskList(content string) *TaskList {
	l := &TaskList{lines: strings.Split(content, "\n")}

	var indents []int
	var counters []int

	for i, line := range l.lines {
		ml, ok := parseMarkerLine(line)
		if !ok {
			continue
		}

		depth := 0
		if !ml.table {
			for len(indents) > 0 && indents[len(indents)-1] >= ml.indent {
				indents = indents[:len(indents)-1]
			}
			depth = len(indents)
			indents = append(indents, ml.indent)
		}

		for len(counters) <= depth {
			counters = append(counters, 0)
		}
		counters = counters[:depth+1]
		counters[depth]++

		task := Task{
			Status:    ml.status,
			Line:      i,
			markerCol: ml.col,
			body:      ml.body,
		}

		if id := explicitIDPattern.FindString(ml.body); id != "" && idBoundary(ml.body, len(id)) {
			task.ID = id
			task.Explicit = true
			task.Depth = len(idSegments(id)) - 1
			task.Text = taskText(ml.body[len(id):], ml.table)
		} else {
			task.ID = joinCounters(counters)
			task.Depth = depth
			task.Text = taskText(ml.body, ml.table)
		}

		l.Tasks = append(l.Tasks, task)
	}

	return l
}

func parseMarkerLine(line string) (markerLine, bool) {
	if m := listItemPattern.FindStringSubmatchIndex(line); m != nil {
		return markerLine{
			col:    m[1] - len(MarkerPending),
			status: statusFromMarker(line[m[4]]),
			indent: indentWidth(line[m[2]:m[3]]),
			body:   strings.TrimLeft(line[m[1]:], " \t"),
		}, true
	}
	if m := tableRowPattern.FindStringSubmatchIndex(line); m != nil {
		return markerLine{
			col:    m[1] - len(MarkerPending),
			status: statusFromMarker(line[m[2]]),
			table:  true,
			body:   strings.TrimLeft(line[m[1]:], " \t"),
		}, true
	}
	return markerLine{}, false
}

func statusFromMarker(c byte) TaskStatus {
	switch c {
	case '/':
		return TaskInProgress
	case 'x', 'X':
		return TaskComplete
	default:
		return TaskPending
	}
}

func indentWidth(s string) int {
	w := 0
	for _, c := range s {
		if c == '\t' {
			w += 4
		} else {
			w++
		}
	}
	return w
}

func taskText(rest string, table bool) string {
	rest = strings.TrimLeft(rest, ".:")
	if table {
		rest = strings.TrimLeft(rest, " \t|")
		if idx := strings.Index(rest, "|"); idx >= 0 {
			rest = rest[:idx]
		}
	}
	return strings.TrimSpace(rest)
}

func joinCounters(counters []int) string {
	parts := make([]string, len(counters))
	for i, c := range counters {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ".")
}

func isAlnum(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// idBoundary reports whether s[i:] cannot continue an identifier that ends
// at i. "2.1" ends cleanly in "2.1 Add" and "2.1. Add", but not in "2.10"
// or "2.1.3".
func idBoundary(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	c := s[i]
	if isAlnum(c) {
		return false
	}
	if (c == '.' || c == '-' || c == '_') && i+1 < len(s) && isAlnum(s[i+1]) {
		return false
	}
	return true
}

func idSegments(id string) []string {
	lower := strings.ToLower(id)
	if strings.HasPrefix(lower, "epic") {
		id = strings.TrimSpace(id[len("epic"):])
	}
	return strings.Split(id, ".")
}

// IsAncestor reports whether a is an outline ancestor of b.
func IsAncestor(a, b Task) bool {
	as, bs := idSegments(a.ID), idSegments(b.ID)
	if len(as) >= len(bs) {
		return false
	}
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func sameEpic(a, b Task) bool {
	return idSegments(a.ID)[0] == idSegments(b.ID)[0]
}

// Match returns the index of the first task whose text after the marker
// starts with taskID, or -1.
func (l *TaskList) Match(taskID string) int {
	if taskID == "" {
		return -1
	}
	for i, t := range l.Tasks {
		if strings.HasPrefix(t.body, taskID) && idBoundary(t.body, len(taskID)) {
			return i
		}
	}
	return -1
}

// Find returns the task with exactly the given (explicit or inferred) id.
func (l *TaskList) Find(id string) (Task, bool) {
	for _, t := range l.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Ancestors returns the tasks t depends on, outermost first.
func (l *TaskList) Ancestors(t Task) []Task {
	var out []Task
	for _, other := range l.Tasks {
		if IsAncestor(other, t) {
			out = append(out, other)
		}
	}
	return out
}

// ActiveConflict returns an in-progress task of the same epic that is
// neither an ancestor nor a descendant of t.
func (l *TaskList) ActiveConflict(t Task) (Task, bool) {
	for _, other := range l.Tasks {
		if other.Line == t.Line || other.Status != TaskInProgress || !sameEpic(other, t) {
			continue
		}
		if IsAncestor(other, t) || IsAncestor(t, other) {
			continue
		}
		return other, true
	}
	return Task{}, false
}

// Next returns the first pending task that could be started without
// violating one-active-task-per-epic.
func (l *TaskList) Next() (Task, bool) {
	for _, t := range l.Tasks {
		if t.Status != TaskPending {
			continue
		}
		if _, busy := l.ActiveConflict(t); busy {
			continue
		}
		return t, true
	}
	return Task{}, false
}

// Progress returns the number of complete tasks and the total.
func (l *TaskList) Progress() (complete, total int) {
	for _, t := range l.Tasks {
		if t.Status == TaskComplete {
			complete++
		}
	}
	return complete, len(l.Tasks)
}

// SetStatus rewrites the marker of Tasks[i]. It reports whether the
// document changed.
func (l *TaskList) SetStatus(i int, status TaskStatus) bool {
	t := &l.Tasks[i]
	if t.Status == status {
		return false
	}

	line := l.lines[t.Line]
	l.lines[t.Line] = line[:t.markerCol] + status.Marker() + line[t.markerCol+len(MarkerPending):]
	t.Status = status
	return true
}

// String returns the document with any rewritten markers.
func (l *TaskList) String() string {
	return strings.Join(l.lines, "\n")
}
