package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sghaida/dojo/app"
	"github.com/sghaida/dojo/combat"
	"github.com/sghaida/dojo/config"
	"github.com/sghaida/dojo/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// session carries what PersistentPreRunE builds for the running command.
type session struct {
	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	s := &session{}

	root := &cobra.Command{
		Use:           "dojo",
		Short:         "Choose a combatant and resolve it through chained bindings",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromEnv()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			s.cfg, s.logger = cfg, logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if s.logger != nil {
				_ = s.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withApp(cmd, func(ctx context.Context, a *app.App) error {
				return a.Run(ctx, cmd.OutOrStdout())
			})
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:       "choose <ninja|samurai>",
			Short:     "Store the active combatant",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{string(combat.ChoiceNinja), string(combat.ChoiceSamurai)},
			RunE: func(cmd *cobra.Command, args []string) error {
				choice, err := combat.ParseChoice(args[0])
				if err != nil {
					return err
				}
				return s.withApp(cmd, func(ctx context.Context, a *app.App) error {
					if err := a.Choose(ctx, choice); err != nil {
						return err
					}
					_, err := fmt.Fprintf(cmd.OutOrStdout(), "selected %s\n", choice)
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "current",
			Short: "Print the active combatant",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return s.withApp(cmd, func(ctx context.Context, a *app.App) error {
					return a.Describe(ctx, cmd.OutOrStdout())
				})
			},
		},
	)
	return root
}

// withApp builds the app under the configured deadline, runs fn and closes
// the app again.
func (s *session) withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) (err error) {
	ctx, cancel := context.WithTimeout(cmd.Context(), s.cfg.Timeout())
	defer cancel()

	a, err := app.Build(ctx, s.cfg, s.logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close app: %w", cerr)
		}
	}()
	return fn(ctx, a)
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "dojo:", err)
		os.Exit(1)
	}
}
