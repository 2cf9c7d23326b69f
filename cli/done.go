package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// parseTaskID converts a positional id argument.
func parseTaskID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id %q", raw)
	}
	return id, nil
}

// newDoneCmd creates the done subcommand.
func newDoneCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}

			svc, err := e.openService()
			if err != nil {
				return err
			}
			if err := svc.Complete(id); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(fmt.Sprintf("Task #%d completed", id)))
			return nil
		},
	}
}
