package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/context-engine/internal/docs"
	"github.com/thruflo/context-engine/internal/testutil"
	"github.com/thruflo/context-engine/internal/workflow"
)

func resetRenderFlags(t *testing.T) {
	t.Cleanup(func() {
		renderTaskID = ""
		renderRequirement = ""
		renderWorkflowsDir = ""
	})
}

func TestRenderCommand_RequiresWorkflowArg(t *testing.T) {
	assert.Equal(t, "render <workflow>", renderCmd.Use)
	assert.Error(t, renderCmd.Args(renderCmd, []string{}))
	assert.Error(t, renderCmd.Args(renderCmd, []string{"start", "plan"}))
	assert.NoError(t, renderCmd.Args(renderCmd, []string{"start"}))
}

func TestRenderCommand_Start(t *testing.T) {
	root := testutil.SetupSampleProject(t)
	useProject(t, root)
	resetRenderFlags(t)

	var err error
	output := captureOutput(func() {
		err = runRender(renderCmd, []string{"start"})
	})
	require.NoError(t, err)

	testutil.AssertNoPlaceholders(t, output)
	assert.Contains(t, output, testutil.SampleRules)
	assert.Contains(t, output, "- [/] 2.1 Add widget")
	assert.Contains(t, output, "`go test ./...`")
	assert.Contains(t, output, root)
}

func TestRenderCommand_TaskAndRequirement(t *testing.T) {
	root := testutil.SetupSampleProject(t)
	testutil.WriteTestFile(t, root, "WORK_LOG.md", testutil.SampleWorkLog)
	useProject(t, root)
	resetRenderFlags(t)

	renderTaskID = "2.1.2"
	renderRequirement = "Persist widgets to disk"

	var err error
	output := captureOutput(func() {
		err = runRender(renderCmd, []string{"execute-task"})
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(output, "# Active Task: 2.1.2\n"), output)
	assert.Contains(t, output, "# Requirement\n\nPersist widgets to disk")
	testutil.AssertNoPlaceholders(t, output)
}

func TestRenderCommand_MissingDocument(t *testing.T) {
	useProject(t, t.TempDir())
	resetRenderFlags(t)

	var err error
	output := captureOutput(func() {
		err = runRender(renderCmd, []string{"start"})
	})
	require.Error(t, err)
	assert.True(t, docs.IsDocumentNotFound(err))
	assert.Contains(t, output, "# Missing Document")
}

func TestRenderCommand_UnknownWorkflow(t *testing.T) {
	useProject(t, testutil.SetupSampleProject(t))
	resetRenderFlags(t)

	var err error
	output := captureOutput(func() {
		err = runRender(renderCmd, []string{"deploy"})
	})
	assert.ErrorIs(t, err, workflow.ErrUnknownWorkflow)
	assert.Empty(t, output)
}

func TestRenderCommand_WorkflowsDir(t *testing.T) {
	root := testutil.SetupSampleProject(t)
	testutil.WriteTestFile(t, root, "prompts/ship.md", "# Ship\n\nRun {{ commands.build }} then {{ commands.test }}.\n")
	useProject(t, root)
	resetRenderFlags(t)

	renderWorkflowsDir = "prompts"

	var err error
	output := captureOutput(func() {
		err = runRender(renderCmd, []string{"ship"})
	})
	require.NoError(t, err)
	assert.Equal(t, "# Ship\n\nRun go build ./... then go test ./....\n", output)

	// The built-in set is replaced, not extended.
	err = runRender(renderCmd, []string{"start"})
	assert.ErrorIs(t, err, workflow.ErrUnknownWorkflow)
}

func TestRenderCommand_TemplateError(t *testing.T) {
	root := testutil.SetupSampleProject(t)
	testutil.WriteTestFile(t, root, "prompts/broken.md", "Deploy with {{ commands.deploy }}\n")
	useProject(t, root)
	resetRenderFlags(t)

	renderWorkflowsDir = "prompts"

	var err error
	output := captureOutput(func() {
		err = runRender(renderCmd, []string{"broken"})
	})
	require.Error(t, err)
	assert.True(t, workflow.IsTemplateError(err))
	assert.Empty(t, output)
}

func TestWorkflowsCommand_ListsBuiltIns(t *testing.T) {
	useProject(t, t.TempDir())
	t.Cleanup(func() { workflowsDir = "" })

	var err error
	output := captureOutput(func() {
		err = runWorkflows(workflowsCmd, nil)
	})
	require.NoError(t, err)

	for _, name := range []string{"start", "plan", "execute-task", "review", "finish", "summarize", "refine"} {
		assert.Contains(t, output, name)
	}
	assert.Contains(t, output, "Load Project Context")
}

func TestWorkflowsCommand_EmptyOverride(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTestFile(t, root, "prompts/README.txt", "not a workflow")
	useProject(t, root)
	workflowsDir = "prompts"
	t.Cleanup(func() { workflowsDir = "" })

	output := captureOutput(func() {
		require.NoError(t, runWorkflows(workflowsCmd, nil))
	})
	assert.Contains(t, output, "No workflows found.")
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Review", title("intro\n\n# Review\n\n## Steps\n"))
	assert.Equal(t, "", title("no heading\n## Sub only\n"))
}
