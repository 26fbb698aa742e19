package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/bnema/motorsense/internal/adapters/render/terminal"
	"github.com/bnema/motorsense/internal/application"
	"github.com/bnema/motorsense/internal/domain"
	"github.com/spf13/cobra"
)

func newTuneCmd(app *app) *cobra.Command {
	var (
		goal   string
		params map[string]string
		state  map[string]string
		dryRun bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "tune",
		Short: "Optimize ECU parameters for a goal",
		Long:  "tune loads the ECU schema, applies --set overrides to its defaults and asks the backend for a recommendation. With --dry-run it only prints the schema and the adjusted parameters.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutput(format); err != nil {
				return err
			}

			session := app.tuningService(app.toasts(cmd.ErrOrStderr())).NewSession()
			if err := session.LoadSchema(cmd.Context()); err != nil {
				return err
			}

			keys := make([]string, 0, len(params))
			for key := range params {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				value, err := strconv.ParseFloat(params[key], 64)
				if err != nil {
					return fmt.Errorf("--set %s: %w", key, err)
				}
				if _, err := session.SetParam(key, value); err != nil {
					return fmt.Errorf("--set %s: %w", key, err)
				}
			}

			if dryRun {
				view := session.View()
				return writeOutput(cmd, format, view.Params, func() (string, error) {
					return terminal.RenderTuning(view)
				})
			}

			rec, err := session.Optimize(cmd.Context(), application.OptimizeCommand{
				VehicleState: state,
				Goal:         domain.Goal(goal),
			})
			if err != nil {
				return err
			}

			return writeOutput(cmd, format, rec, func() (string, error) {
				return terminal.RenderTuning(session.View())
			})
		},
	}

	cmd.Flags().StringVar(&goal, "goal", string(domain.GoalMaximize), "Optimization goal: maximize or minimize")
	cmd.Flags().StringToStringVar(&params, "set", nil, "ECU parameter override, e.g. --set boost_pressure=14")
	cmd.Flags().StringToStringVar(&state, "state", nil, "Vehicle state, e.g. --state engine_rpm=3000")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the adjusted parameters without optimizing")
	addOutputFlag(cmd, &format)
	return cmd
}
