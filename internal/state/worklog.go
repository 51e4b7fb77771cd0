package state

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// TimestampFormat is the layout of work log timestamps.
const TimestampFormat = "2006-01-02 15:04"

var statusEmoji = map[LogStatus]string{
	LogStarted:      "🚀",
	LogImplementing: "🔨",
	LogVerified:     "✅",
	LogBlocked:      "🚧",
	LogComplete:     "✓",
}

var entryPattern = regexp.MustCompile("^\\*\\*\\[(\\d{4}-\\d{2}-\\d{2} \\d{2}:\\d{2})\\]\\*\\* \\S+ `([^`]+)` \\((\\w+)\\): ?(.*)$")

// FormatEntry renders e as a single work log line without a trailing
// newline:
//
//	**[2026-01-05 09:00]** 🚀 `2.1` (started): begin widget
func FormatEntry(e LogEntry) string {
	emoji, ok := statusEmoji[e.Status]
	if !ok {
		emoji = "•"
	}
	return fmt.Sprintf("**[%s]** %s `%s` (%s): %s",
		e.Timestamp.Format(TimestampFormat), emoji, e.TaskID, e.Status, e.Summary)
}

// ParseEntry parses a line written by FormatEntry.
func ParseEntry(line string) (LogEntry, bool) {
	m := entryPattern.FindStringSubmatch(strings.TrimRight(line, "\r"))
	if m == nil {
		return LogEntry{}, false
	}

	ts, err := time.ParseInLocation(TimestampFormat, m[1], time.Local)
	if err != nil {
		return LogEntry{}, false
	}

	return LogEntry{
		Timestamp: ts,
		TaskID:    m[2],
		Status:    LogStatus(m[3]),
		Summary:   m[4],
	}, true
}

// ParseLog returns every entry in a work log document, in file order.
func ParseLog(content string) []LogEntry {
	var out []LogEntry
	for _, line := range strings.Split(content, "\n") {
		if e, ok := ParseEntry(line); ok {
			out = append(out, e)
		}
	}
	return out
}

// oneLine collapses runs of whitespace, newlines included, to single spaces.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
