package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"inquiry-desk/app"
	"inquiry-desk/config"
	"inquiry-desk/utils"
)

var (
	appCtx *app.App
	cfg    *config.Config
	logger *utils.Logger

	stateDir     string
	stateBackend string
	debug        bool
)

func Execute() error {
	root := &cobra.Command{
		Use:           "inquiry-desk",
		Short:         "Collect and analyse real-estate inquiries",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = config.Load()
			if stateDir != "" {
				cfg.StateDir = stateDir
			}
			if stateBackend != "" {
				cfg.StateBackend = stateBackend
			}
			logger = utils.NewLoggerTo(os.Stdout, os.Stderr, cfg.LogDebug || debug)

			a, err := app.Open(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			appCtx = a
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if appCtx == nil {
				return nil
			}
			return appCtx.Close()
		},
	}

	root.PersistentFlags().StringVar(&stateDir, "state-dir", "", "directory for the file state store (default $STATE_DIR)")
	root.PersistentFlags().StringVar(&stateBackend, "state", "", "state backend: file or redis (default $STATE_BACKEND)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	root.AddCommand(
		serveCmd(),
		wizardCmd(),
		seedCmd(),
		insightsCmd(),
		exportCmd(),
		archiveCmd(),
		countriesCmd(),
		inquiriesCmd(),
	)

	err := root.ExecuteContext(context.Background())
	if err != nil {
		if logger == nil {
			logger = utils.NewLogger()
		}
		logger.Error("%v", err)
	}
	return err
}
