// Package cli provides the taskpilot command-line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"taskpilot/app"
	"taskpilot/config"
	"taskpilot/store"
)

// GlobalFlags holds flags shared by every subcommand.
type GlobalFlags struct {
	// DataFile overrides the configured task file path.
	DataFile string
	Verbose  bool
	Quiet    bool
}

// env carries the resolved configuration and logger into subcommand
// handlers. It is populated by the root command's PersistentPreRunE.
type env struct {
	flags  *GlobalFlags
	cfg    *config.Config
	logger zerolog.Logger
}

// dataFile returns the effective task file path, flag over config.
func (e *env) dataFile() string {
	if e.flags.DataFile != "" {
		return e.flags.DataFile
	}
	return e.cfg.DataFile
}

// openService loads the task state and wraps it in a service with
// write-through persistence. A corrupt state file is recovered: the
// warning is logged and shown, and the store starts empty.
func (e *env) openService() (*app.Service, error) {
	fs := store.NewFileStore(e.dataFile())
	state, warning, err := fs.LoadWithRecovery()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if warning != "" {
		e.logger.Warn().Str("path", fs.Path).Msg(warning)
	}
	return app.NewService(state, fs, e.logger), nil
}

// newRootCmd creates the root command. Subcommands receive their
// dependencies through the shared env, which avoids package-level
// command globals.
func newRootCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taskpilot",
		Short: "taskpilot - personal task tracking with focus recommendations",
		Long: `taskpilot tracks your personal tasks in a local JSON file:
create, list, filter, search, complete and prioritize them, and ask
for heuristic recommendations about what to focus on next.

Run without arguments for this help, or 'taskpilot shell' for the
interactive screen.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.logger = InitLogger(e.flags.Verbose || cfg.Log.Verbose, e.flags.Quiet || cfg.Log.Quiet)
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&e.flags.DataFile, "data", "", "path of the task file (default from config)")
	cmd.PersistentFlags().BoolVarP(&e.flags.Verbose, "verbose", "v", false, "debug logging")
	cmd.PersistentFlags().BoolVarP(&e.flags.Quiet, "quiet", "q", false, "warnings and errors only")

	cmd.AddCommand(
		newAddCmd(e),
		newListCmd(e),
		newDoneCmd(e),
		newRemoveCmd(e),
		newPriorityCmd(e),
		newSearchCmd(e),
		newStatsCmd(e),
		newRecommendCmd(e),
		newShellCmd(e),
	)

	return cmd
}

// Execute runs the CLI.
func Execute(ctx context.Context) error {
	e := &env{flags: &GlobalFlags{}}
	cmd := newRootCmd(e)
	err := cmd.ExecuteContext(ctx)
	CloseLogFile()
	return err
}
