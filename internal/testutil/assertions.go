package testutil

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var logEntryLine = regexp.MustCompile("^\\*\\*\\[\\d{4}-\\d{2}-\\d{2} \\d{2}:\\d{2}\\]\\*\\* \\S+ `[^`]+` \\(\\w+\\): ")

// AssertNoPlaceholders checks that rendering left no delimiters behind.
func AssertNoPlaceholders(t *testing.T, text string) {
	t.Helper()
	assert.NotContains(t, text, "{{")
	assert.NotContains(t, text, "}}")
}

// AssertLineContains checks that exactly one line of content contains needle.
func AssertLineContains(t *testing.T, content, needle string) {
	t.Helper()

	count := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.Contains(line, needle) {
			count++
		}
	}
	assert.Equal(t, 1, count, "expected exactly one line containing %q in:\n%s", needle, content)
}

// LogLines returns the work log entry lines of content, in order.
func LogLines(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		if logEntryLine.MatchString(line) {
			out = append(out, line)
		}
	}
	return out
}

// AssertLogLines checks the number of work log entries in content.
func AssertLogLines(t *testing.T, content string, expected int) {
	t.Helper()
	assert.Len(t, LogLines(content), expected, "work log:\n%s", content)
}
