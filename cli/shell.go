package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskpilot/app"
	"taskpilot/store"
	"taskpilot/tui"
)

// newShellCmd creates the shell subcommand, which runs the
// interactive full-screen interface.
func newShellCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Open the interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			fs := store.NewFileStore(e.dataFile())
			state, warning, err := fs.LoadWithRecovery()
			if err != nil {
				return fmt.Errorf("load tasks: %w", err)
			}
			if warning != "" {
				e.logger.Warn().Str("path", fs.Path).Msg(warning)
			}

			svc := app.NewService(state, fs, e.logger)
			return tui.Run(svc, e.cfg.Recommend.Limit, warning)
		},
	}
}
