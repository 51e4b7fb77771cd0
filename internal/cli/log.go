package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thruflo/context-engine/internal/docs"
	"github.com/thruflo/context-engine/internal/state"
)

var logLines int

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent work log entries",
	Args:  cobra.NoArgs,
	RunE:  runLog,
}

func init() {
	logCmd.Flags().IntVarP(&logLines, "lines", "n", 10, "number of entries to show (0 for all)")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	root, cfg, err := loadProject()
	if err != nil {
		return err
	}

	entries, err := state.NewStore(root, cfg).TailLog(logLines)
	if err != nil {
		if docs.IsDocumentNotFound(err) {
			fmt.Println("No progress logged yet.")
			return nil
		}
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No progress logged yet.")
		return nil
	}
	for _, e := range entries {
		fmt.Println(state.FormatEntry(e))
	}
	return nil
}
