package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/context-engine/internal/state"
	"github.com/thruflo/context-engine/internal/testutil"
)

func TestLogProgressCommand_Args(t *testing.T) {
	assert.Error(t, logProgressCmd.Args(logProgressCmd, []string{"2.1", "complete"}))
	assert.NoError(t, logProgressCmd.Args(logProgressCmd, []string{"2.1", "complete", "done"}))
	assert.NoError(t, logProgressCmd.Args(logProgressCmd, []string{"2.1", "complete", "all", "done"}))
}

func TestLogProgressCommand_Complete(t *testing.T) {
	root := testutil.SetupProject(t, map[string]string{"WORK_PLAN.md": "- [/] 2.1 Add widget\n"})
	useProject(t, root)

	var err error
	output := captureOutput(func() {
		err = runLogProgress(logProgressCmd, []string{"2.1", "complete", "widget", "shipped"})
	})
	require.NoError(t, err)

	assert.Contains(t, output, "Logged: ")
	assert.Contains(t, output, "`2.1` (complete): widget shipped")
	assert.Equal(t, "- [x] 2.1 Add widget\n", testutil.ReadTestFile(t, root, "WORK_PLAN.md"))

	lines := testutil.LogLines(testutil.ReadTestFile(t, root, "WORK_LOG.md"))
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "`2.1`")
}

func TestLogProgressCommand_StartedThenComplete(t *testing.T) {
	root := testutil.SetupProject(t, map[string]string{"WORK_PLAN.md": "- [ ] 1.1 First\n"})
	useProject(t, root)

	captureOutput(func() {
		require.NoError(t, runLogProgress(logProgressCmd, []string{"1.1", "started", "go"}))
	})
	assert.Equal(t, "- [/] 1.1 First\n", testutil.ReadTestFile(t, root, "WORK_PLAN.md"))

	captureOutput(func() {
		require.NoError(t, runLogProgress(logProgressCmd, []string{"1.1", "complete", "done"}))
	})
	assert.Equal(t, "- [x] 1.1 First\n", testutil.ReadTestFile(t, root, "WORK_PLAN.md"))
	testutil.AssertLogLines(t, testutil.ReadTestFile(t, root, "WORK_LOG.md"), 2)
}

func TestLogProgressCommand_InvalidStatus(t *testing.T) {
	root := testutil.SetupProject(t, map[string]string{"WORK_PLAN.md": "- [ ] 1.1 First\n"})
	useProject(t, root)

	var err error
	output := captureOutput(func() {
		err = runLogProgress(logProgressCmd, []string{"1.1", "finished", "done"})
	})
	require.Error(t, err)
	assert.True(t, state.IsInvalidStatus(err))
	assert.Empty(t, output)
	assert.False(t, testutil.FileExists(root, "WORK_LOG.md"))
}

func TestLogProgressCommand_UnknownTaskStillLogs(t *testing.T) {
	root := testutil.SetupProject(t, map[string]string{"WORK_PLAN.md": testutil.SampleWorkPlan})
	useProject(t, root)

	var err error
	output := captureOutput(func() {
		err = runLogProgress(logProgressCmd, []string{"8.8", "complete", "done"})
	})
	require.Error(t, err)
	assert.True(t, state.IsTaskNotFound(err))
	assert.Contains(t, output, "`8.8` (complete): done")
	testutil.AssertLogLines(t, testutil.ReadTestFile(t, root, "WORK_LOG.md"), 1)
}

func TestTasksCommand(t *testing.T) {
	useProject(t, testutil.SetupSampleProject(t))
	t.Cleanup(func() { tasksNext = false })

	var err error
	output := captureOutput(func() {
		err = runTasks(tasksCmd, nil)
	})
	require.NoError(t, err)

	assert.Contains(t, output, "[/] 2.1 Add widget")
	assert.Contains(t, output, "    [ ] 2.1.2 Widget storage")
	assert.Contains(t, output, "[ ] 3.1 Report query")
	assert.Contains(t, output, "3/9 complete")
}

func TestTasksCommand_Next(t *testing.T) {
	useProject(t, testutil.SetupSampleProject(t))
	tasksNext = true
	t.Cleanup(func() { tasksNext = false })

	var err error
	output := captureOutput(func() {
		err = runTasks(tasksCmd, nil)
	})
	require.NoError(t, err)
	assert.Contains(t, output, "[ ] 2.1.2 Widget storage")
	assert.NotContains(t, output, "Progress")
}

func TestTasksCommand_NothingReady(t *testing.T) {
	useProject(t, testutil.SetupProject(t, map[string]string{"WORK_PLAN.md": "- [x] 1 Done\n"}))
	tasksNext = true
	t.Cleanup(func() { tasksNext = false })

	output := captureOutput(func() {
		require.NoError(t, runTasks(tasksCmd, nil))
	})
	assert.Contains(t, output, "No task is ready to start.")
}

func TestTasksCommand_MissingWorkPlan(t *testing.T) {
	useProject(t, t.TempDir())

	err := runTasks(tasksCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WORK_PLAN.md")
}

func TestLogCommand(t *testing.T) {
	useProject(t, testutil.SetupProject(t, map[string]string{"WORK_LOG.md": testutil.SampleWorkLog}))
	logLines = 1
	t.Cleanup(func() { logLines = 10 })

	var err error
	output := captureOutput(func() {
		err = runLog(logCmd, nil)
	})
	require.NoError(t, err)
	assert.Contains(t, output, "(implementing): model done")
	assert.NotContains(t, output, "begin widget")
}

func TestLogCommand_Empty(t *testing.T) {
	useProject(t, t.TempDir())

	output := captureOutput(func() {
		require.NoError(t, runLog(logCmd, nil))
	})
	assert.Contains(t, output, "No progress logged yet.")
}

func TestLogCommand_DefaultLines(t *testing.T) {
	flag := logCmd.Flags().Lookup("lines")
	require.NotNil(t, flag)
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "10", flag.DefValue)
}

func TestLogProgressCommand_InvalidTaskID(t *testing.T) {
	root := testutil.SetupProject(t, map[string]string{"WORK_PLAN.md": "- [ ] 1.1 First\n"})
	useProject(t, root)

	var err error
	output := captureOutput(func() {
		err = runLogProgress(logProgressCmd, []string{"1.1\n**[2026-01-01 00:00]** fake", "complete", "done"})
	})
	require.Error(t, err)
	assert.True(t, state.IsInvalidTaskID(err))
	assert.Empty(t, output)
	assert.False(t, testutil.FileExists(root, "WORK_LOG.md"))
	assert.Equal(t, "- [ ] 1.1 First\n", testutil.ReadTestFile(t, root, "WORK_PLAN.md"))
}
