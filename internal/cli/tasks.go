package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/thruflo/context-engine/internal/state"
)

var tasksNext bool

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	completeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	activeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F5A623"))
	pendingStyle  = lipgloss.NewStyle()
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Show the work plan's tasks and progress",
	Long: `Show every task in the work plan with its status, nested by outline
depth, followed by overall progress.

With --next, print only the first pending task that can be started
without putting a second task of the same epic in progress.`,
	Args: cobra.NoArgs,
	RunE: runTasks,
}

func init() {
	tasksCmd.Flags().BoolVar(&tasksNext, "next", false, "show only the next task to start")
	rootCmd.AddCommand(tasksCmd)
}

func runTasks(cmd *cobra.Command, args []string) error {
	root, cfg, err := loadProject()
	if err != nil {
		return err
	}

	list, err := state.NewStore(root, cfg).LoadTaskList()
	if err != nil {
		return err
	}

	if tasksNext {
		next, ok := list.Next()
		if !ok {
			fmt.Println("No task is ready to start.")
			return nil
		}
		fmt.Println(formatTask(next))
		return nil
	}

	if len(list.Tasks) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}

	fmt.Println(headerStyle.Render("Tasks"))
	for _, t := range list.Tasks {
		fmt.Println(formatTask(t))
	}

	complete, total := list.Progress()
	fmt.Printf("\n%s %d/%d complete\n", headerStyle.Render("Progress:"), complete, total)
	return nil
}

func formatTask(t state.Task) string {
	line := fmt.Sprintf("%s%s %s %s", strings.Repeat("  ", t.Depth), t.Status.Marker(), t.ID, t.Text)
	switch t.Status {
	case state.TaskComplete:
		return completeStyle.Render(line)
	case state.TaskInProgress:
		return activeStyle.Render(line)
	default:
		return pendingStyle.Render(line)
	}
}
