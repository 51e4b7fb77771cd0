package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/thruflo/context-engine/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .context-engine.yaml with default settings",
	Long: `Creates .context-engine.yaml in the project root with every setting at
its default value and comments describing each section.

Missing documents are listed afterwards so they can be created before the
first workflow is rendered.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}

	path := filepath.Join(root, config.FileName)
	_, statErr := os.Stat(path)
	exists := statErr == nil
	if exists && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
	}

	if err := os.WriteFile(path, []byte(config.DefaultConfigYAML), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", config.FileName, err)
	}

	cfg, err := resolver.Reload(root)
	if err != nil {
		return err
	}

	if exists {
		fmt.Printf("Overwrote %s\n", path)
	} else {
		fmt.Printf("Created %s\n", path)
	}

	missing := missingDocs(root, cfg)
	if len(missing) > 0 {
		fmt.Println("\nDocuments not found yet:")
		for _, m := range missing {
			fmt.Printf("  docs.%s: %s\n", m, cfg.Docs[m])
		}
	}
	return nil
}
