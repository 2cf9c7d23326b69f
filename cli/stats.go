package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newStatsCmd creates the stats subcommand.
func newStatsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := e.openService()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderStats(svc.Stats()))
			return nil
		},
	}
}
