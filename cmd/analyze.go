package cmd

import (
	"context"
	"fmt"

	"github.com/bnema/motorsense/internal/adapters/render/terminal"
	"github.com/bnema/motorsense/internal/application"
	"github.com/bnema/motorsense/internal/domain"
	"github.com/bnema/motorsense/internal/ports"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newAnalyzeCmd(app *app) *cobra.Command {
	var (
		flags  vehicleFlags
		format string
		width  int
		plain  bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full analysis: detected issues, parts and a maintenance roadmap",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutput(format); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			vehicle, err := flags.results()
			if err != nil {
				if domain.IsMissingVehicleInfo(err) {
					rendered, renderErr := terminal.RenderMissingInfo(err)
					if renderErr == nil {
						_, _ = fmt.Fprintln(out, rendered)
					}
				}
				return err
			}

			flows, _, err := app.analysisFlows(cmd.Context())
			if err != nil {
				return err
			}

			run := func(ctx context.Context, observe application.Observer, notifier ports.Notifier) (domain.WorkflowState, error) {
				service := application.NewAnalysisService(flows, flows, flows, notifier, app.logger)
				return application.NewAnalysisRun(service, vehicle).Start(ctx, observe)
			}

			var state domain.WorkflowState
			if format == outputHuman {
				state, err = terminal.RunProgress(cmd.Context(), cmd.ErrOrStderr(), run)
			} else {
				state, err = run(cmd.Context(), nil, app.toasts(cmd.ErrOrStderr()))
			}
			if err != nil {
				if state.Phase == domain.PhaseError && format == outputHuman {
					if rendered, renderErr := terminal.RenderFailure(state.Err); renderErr == nil {
						_, _ = fmt.Fprintln(out, rendered)
					}
				}
				return err
			}

			analysis, ok := state.Result(vehicle)
			if !ok {
				return domain.ErrAnalysisIncomplete
			}
			app.logger.Debug("analysis complete",
				zap.String("vehicle", vehicle.Title()),
				zap.Int("issues", len(analysis.Analysis.DetectedIssues)),
				zap.Int("parts", len(analysis.Parts.Parts)))

			return writeOutput(cmd, format, analysis, func() (string, error) {
				return terminal.RenderDashboard(analysis, terminal.Options{Width: width, Plain: plain})
			})
		},
	}

	flags.register(cmd)
	addOutputFlag(cmd, &format)
	cmd.Flags().IntVar(&width, "width", 0, "Wrap width for the roadmap (default 80)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Render the roadmap without colours")
	return cmd
}
