package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/thruflo/context-engine/internal/config"
	"github.com/thruflo/context-engine/internal/logging"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	projectDir string
	verbose    bool
)

// resolver is shared by every command in the process. Tests replace it to
// start from an empty cache.
var resolver = config.NewResolver()

var rootCmd = &cobra.Command{
	Use:   "context-engine",
	Short: "Render agent workflow prompts and track task progress",
	Long: `context-engine serves an AI coding agent the context it needs for each
phase of work on a project.

Workflow prompts (start, plan, execute-task, review, finish, summarize,
refine) are templates expanded against the project's .context-engine.yaml
and its documents. Progress is recorded in an append-only work log, and
task markers in the work plan move forward as tasks start and complete.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: configureLogging,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("context-engine version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project", "p", "", "project root (default: current directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func configureLogging(cmd *cobra.Command, args []string) error {
	if verbose {
		logging.SetLevel(logging.LevelDebug)
		return nil
	}
	return logging.LevelFromEnv()
}

// projectRoot returns the absolute project root selected by --project.
func projectRoot() (string, error) {
	dir := projectDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		dir = cwd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve project root %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("project root %s is not a directory", abs)
	}
	return abs, nil
}

// loadProject resolves the project root and its configuration.
func loadProject() (string, *config.ProjectConfig, error) {
	root, err := projectRoot()
	if err != nil {
		return "", nil, err
	}
	cfg, err := resolver.Resolve(root)
	if err != nil {
		return "", nil, err
	}
	return root, cfg, nil
}
