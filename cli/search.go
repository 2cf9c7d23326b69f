package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// newSearchCmd creates the search subcommand.
func newSearchCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search tasks by title, description or category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := e.openService()
			if err != nil {
				return err
			}

			tasks := svc.Search(strings.Join(args, " "))
			fmt.Fprintln(cmd.OutOrStdout(), renderTasks(tasks, "No matching tasks."))
			return nil
		},
	}
}
