package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thruflo/context-engine/internal/state"
)

var logProgressCmd = &cobra.Command{
	Use:   "log-progress <task-id> <status> <summary...>",
	Short: "Record progress on a task",
	Long: `Append an entry to the work log and update the task's marker.

Status is one of: started, implementing, verified, blocked, complete.
"started" marks the task [/] and "complete" marks it [x] in the work plan;
the other statuses only add a log entry.

The log entry is written even when the task cannot be found in the work
plan, in which case the command reports the problem and exits with an
error.

Example:
  context-engine log-progress 2.1 started "Beginning widget model"
  context-engine log-progress 2.1 complete Widget model and tests done`,
	Args: cobra.MinimumNArgs(3),
	RunE: runLogProgress,
}

func init() {
	rootCmd.AddCommand(logProgressCmd)
}

func runLogProgress(cmd *cobra.Command, args []string) error {
	root, cfg, err := loadProject()
	if err != nil {
		return err
	}

	summary := strings.Join(args[2:], " ")
	entry, err := state.NewTracker().LogProgress(root, cfg, args[0], args[1], summary)
	if entry.TaskID != "" {
		fmt.Printf("Logged: %s\n", state.FormatEntry(entry))
	}
	return err
}
