package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/motorsense/internal/adapters/store/sqlite"
	"github.com/bnema/motorsense/internal/adapters/web"
	"github.com/bnema/motorsense/internal/application"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(app *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MotorSense web front-end",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = app.cfg.Server.Addr
			}

			sessions, err := sqlite.Open(ctx, app.cfg.Server.SessionDB, app.clock)
			if err != nil {
				return fmt.Errorf("open session database: %w", err)
			}
			defer func() {
				if err := sessions.Close(); err != nil {
					app.logger.Warn("close session database", zap.Error(err))
				}
			}()

			flows, prompts, err := app.analysisFlows(ctx)
			if err != nil {
				return err
			}

			notifier := web.RequestNotifier{}
			server, err := web.NewServer(web.Services{
				Analysis: application.NewAnalysisService(flows, flows, flows, notifier, app.logger),
				Chat:     app.chatService(),
				Tuning:   app.tuningService(notifier),
				Intake:   app.intakeService(notifier),
				Identify: app.identifyService(notifier),
				Accounts: app.accounts,
			}, sessions, web.Options{
				Addr:        addr,
				AccountsURL: app.cfg.Accounts.URL,
				SessionTTL:  app.cfg.Server.SessionTTL,
				Clock:       app.clock,
			}, app.logger)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "MotorSense listening on http://%s\n", addr)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return server.Run(gctx)
			})
			g.Go(func() error {
				if err := prompts.Watch(gctx); err != nil && !errors.Is(err, context.Canceled) {
					app.logger.Warn("prompt watcher stopped", zap.Error(err))
				}
				return nil
			})

			if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, 127.0.0.1:9002)")
	return cmd
}
