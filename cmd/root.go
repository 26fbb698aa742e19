package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Execute runs the CLI. SIGINT and SIGTERM cancel the command's context, which
// abandons any in-flight backend or model call.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var opts rootOptions
	app := &app{}

	rootCmd := &cobra.Command{
		Use:           "motorsense",
		Short:         "MotorSense: AI vehicle diagnostics from the terminal",
		Long:          "motorsense registers vehicles, runs the multi-agent analysis (issues, parts and a maintenance roadmap), chats with the diagnostics backend, identifies parts from photos and tunes ECU maps. `motorsense serve` starts the web front-end.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			wired, err := wireApp(opts)
			if err != nil {
				return err
			}
			*app = *wired
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default ~/.motorsense/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newVersionCmd(),
		newConfigCmd(&opts),
		newLoginCmd(app),
		newSignUpCmd(app),
		newLogoutCmd(app),
		newWhoAmICmd(app),
		newRegisterCmd(app),
		newAnalyzeCmd(app),
		newDiagnoseCmd(app),
		newIdentifyCmd(app),
		newPartsCmd(app),
		newTuneCmd(app),
		newServeCmd(app),
	)

	return rootCmd
}

// skipWiring replaces the root pre-run for commands that must work without
// a loadable config.
func skipWiring(_ *cobra.Command, _ []string) error {
	return nil
}
