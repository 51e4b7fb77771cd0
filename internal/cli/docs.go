package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/thruflo/context-engine/internal/config"
	"github.com/thruflo/context-engine/internal/docs"
)

var docCmd = &cobra.Command{
	Use:   "doc <key>",
	Short: "Print a project document by its configured key",
	Long: `Print the document configured under docs.<key> in .context-engine.yaml.

Example:
  context-engine doc rules
  context-engine doc tasks`,
	Args: cobra.ExactArgs(1),
	RunE: runDoc,
}

func init() {
	rootCmd.AddCommand(docCmd)
}

func runDoc(cmd *cobra.Command, args []string) error {
	root, cfg, err := loadProject()
	if err != nil {
		return err
	}

	content, err := docs.Read(root, cfg, args[0])
	if err != nil {
		return err
	}
	fmt.Print(content)
	return nil
}

// missingDocs returns the sorted keys of configured documents that do not
// exist yet.
func missingDocs(root string, cfg *config.ProjectConfig) []string {
	var out []string
	for key := range cfg.Docs {
		if !docs.Exists(root, cfg, key) {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}
