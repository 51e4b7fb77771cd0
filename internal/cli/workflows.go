package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var workflowsDir string

var workflowsCmd = &cobra.Command{
	Use:   "workflows",
	Short: "List available workflows",
	Args:  cobra.NoArgs,
	RunE:  runWorkflows,
}

func init() {
	workflowsCmd.Flags().StringVar(&workflowsDir, "workflows-dir", "", "directory of workflow templates to use instead of the built-in set")
	rootCmd.AddCommand(workflowsCmd)
}

func runWorkflows(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}

	engine := newEngine(root, workflowsDir)
	names, err := engine.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No workflows found.")
		return nil
	}

	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}

	for _, name := range names {
		text, err := engine.Load(name)
		if err != nil {
			return err
		}
		fmt.Printf("%-*s  %s\n", width, name, title(text))
	}
	return nil
}

// title returns the first markdown heading of a template.
func title(text string) string {
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if heading, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(heading)
		}
	}
	return ""
}
