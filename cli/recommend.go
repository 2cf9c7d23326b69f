package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"taskpilot/recommend"
)

// newRecommendCmd creates the recommend subcommand.
func newRecommendCmd(e *env) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Suggest what to focus on next",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := e.openService()
			if err != nil {
				return err
			}

			if limit <= 0 {
				limit = e.cfg.Recommend.Limit
			}
			items := recommend.Recommend(svc.Tasks(), time.Now(), limit)
			fmt.Fprintln(cmd.OutOrStdout(), renderAdvice(items))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of suggestions (default from config)")

	return cmd
}
