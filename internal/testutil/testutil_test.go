package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupSampleProject(t *testing.T) {
	t.Parallel()

	root := SetupSampleProject(t)

	for _, path := range []string{".context-engine.yaml", "docs/RULES.md", "INDEX.md", "README.md", "WORK_PLAN.md"} {
		assert.True(t, FileExists(root, path), path)
	}
	assert.False(t, FileExists(root, "WORK_LOG.md"))
	assert.Equal(t, SampleWorkPlan, ReadTestFile(t, root, "WORK_PLAN.md"))
}

func TestLogLines(t *testing.T) {
	t.Parallel()

	lines := LogLines(SampleWorkLog)
	require.Len(t, lines, 2)
	assert.True(t, strings.Contains(lines[0], "(started)"))
	assert.True(t, strings.Contains(lines[1], "(implementing)"))
}

func TestAssertLineContains(t *testing.T) {
	t.Parallel()

	AssertLineContains(t, SampleWorkPlan, "[/] 2.1 Add widget")
	AssertNoPlaceholders(t, SampleWorkPlan)
}
