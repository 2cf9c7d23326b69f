package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// newAddCmd creates the add subcommand.
func newAddCmd(e *env) *cobra.Command {
	var (
		description string
		priority    string
		due         string
		category    string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Long: `Add a task to the collection.

An unknown priority falls back to "medium". A due date that is not of
the form YYYY-MM-DD is dropped. Categories are stored lower-cased.

Examples:
  taskpilot add "Pay rent" --due 2026-09-01 -p high -c home
  taskpilot add "Refill stapler" -d "the red one"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := e.openService()
			if err != nil {
				return err
			}

			task, err := svc.Add(strings.Join(args, " "), description, priority, due, category)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(fmt.Sprintf("Added task #%d", task.ID)))
			fmt.Fprintln(cmd.OutOrStdout(), renderTaskLine(task))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "longer description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "low, medium, high or urgent (default medium)")
	cmd.Flags().StringVar(&due, "due", "", "due date, YYYY-MM-DD")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category (default general)")

	return cmd
}
