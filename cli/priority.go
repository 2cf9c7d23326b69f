package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newPriorityCmd creates the priority subcommand.
func newPriorityCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "priority <id> <level>",
		Short: "Change a task's priority",
		Long: `Change a task's priority to low, medium, high or urgent
(case-insensitive). Unlike add, an unknown level is rejected.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}

			svc, err := e.openService()
			if err != nil {
				return err
			}
			if err := svc.SetPriority(id, args[1]); err != nil {
				return err
			}

			task, _ := svc.Get(id)
			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(fmt.Sprintf("Task #%d is now %s priority", id, task.Priority)))
			return nil
		},
	}
}
