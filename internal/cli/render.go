package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/thruflo/context-engine/internal/docs"
	"github.com/thruflo/context-engine/internal/workflow"
	"github.com/thruflo/context-engine/workflows"
)

var (
	renderTaskID       string
	renderRequirement  string
	renderWorkflowsDir string
)

var renderCmd = &cobra.Command{
	Use:   "render <workflow>",
	Short: "Render a workflow prompt for the project",
	Long: `Render a workflow prompt with every placeholder expanded against the
project's configuration and documents.

If a document the workflow reads is missing, a prompt asking for it to be
created is printed instead and the command exits with an error.

Templates come from the binary unless --workflows-dir names a directory of
*.md files to use instead. A relative --workflows-dir is resolved against
the project root.

Example:
  context-engine render start
  context-engine render execute-task --task-id 2.1
  context-engine render plan --requirement "Add CSV export"`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderTaskID, "task-id", "", "task to show as active above the prompt")
	renderCmd.Flags().StringVar(&renderRequirement, "requirement", "", "requirement to show above the prompt")
	renderCmd.Flags().StringVar(&renderWorkflowsDir, "workflows-dir", "", "directory of workflow templates to use instead of the built-in set")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}

	engine := newEngine(root, renderWorkflowsDir)
	out, err := engine.RenderWorkflow(args[0], root, workflow.Options{
		TaskID:      renderTaskID,
		Requirement: renderRequirement,
	})
	if err != nil {
		if docs.IsDocumentNotFound(err) {
			fmt.Print(out)
		}
		return err
	}

	fmt.Print(out)
	return nil
}

// newEngine creates a workflow engine over the built-in templates, or over
// dir when it names an existing directory.
func newEngine(root, dir string) *workflow.Engine {
	if dir != "" && !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	return workflow.NewEngine(resolver, workflows.FS(dir))
}
