package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskpilot/app"
)

// newListCmd creates the list subcommand.
func newListCmd(e *env) *cobra.Command {
	var (
		pending  bool
		category string
		priority string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, most urgent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := e.openService()
			if err != nil {
				return err
			}

			tasks := svc.List(app.ListOptions{
				PendingOnly: pending,
				Category:    category,
				Priority:    priority,
			})
			fmt.Fprintln(cmd.OutOrStdout(), renderTasks(tasks, "No tasks match."))
			return nil
		},
	}

	cmd.Flags().BoolVar(&pending, "pending", false, "only incomplete tasks")
	cmd.Flags().StringVarP(&category, "category", "c", "", "only this category")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "only this priority")

	return cmd
}
