package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thruflo/context-engine/internal/config"
	"github.com/thruflo/context-engine/internal/logging"
)

var configWatch bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective project configuration",
	Long: `Print the configuration in effect for the project: the values from
.context-engine.yaml merged over the defaults.

With --watch, keep running and print the configuration again each time
.context-engine.yaml changes. An edit that fails validation is reported and
the last good configuration stays in effect.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVarP(&configWatch, "watch", "w", false, "reprint when the config file changes")
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	root, cfg, err := loadProject()
	if err != nil {
		return err
	}
	if err := printConfig(cfg); err != nil {
		return err
	}
	if !configWatch {
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("\n--- Watching %s (Ctrl+C to stop) ---\n", config.FileName)

	return config.Watch(ctx, root, func() {
		cfg, err := resolver.Reload(root)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config not reloaded: %v\n", err)
			return
		}
		fmt.Println()
		if err := printConfig(cfg); err != nil {
			logging.Error("failed to print config", "error", err)
		}
	})
}

func printConfig(cfg *config.ProjectConfig) error {
	data, err := cfg.YAML()
	if err != nil {
		return err
	}
	fmt.Printf("# %s\n%s", cfg.ProjectPath, data)
	return nil
}
