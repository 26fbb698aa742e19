package cmd

import (
	"github.com/bnema/motorsense/internal/adapters/render/terminal"
	"github.com/bnema/motorsense/internal/domain"
	"github.com/spf13/cobra"
)

func newPartsCmd(app *app) *cobra.Command {
	var (
		query  domain.PartsQuery
		format string
	)

	cmd := &cobra.Command{
		Use:   "parts",
		Short: "Search the parts catalog for a vehicle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutput(format); err != nil {
				return err
			}

			result, err := app.partsService().Find(cmd.Context(), query)
			if err != nil {
				return err
			}

			return writeOutput(cmd, format, result, func() (string, error) {
				return terminal.RenderParts(result)
			})
		},
	}

	cmd.Flags().StringVar(&query.VehicleBrand, "brand", "", "Vehicle brand")
	cmd.Flags().StringVar(&query.VehicleModel, "model", "", "Vehicle model")
	cmd.Flags().StringVar(&query.VehicleYear, "year", "", "Model year")
	cmd.Flags().StringSliceVar(&query.Parts, "part", nil, "Part to search for (repeatable or comma separated)")
	addOutputFlag(cmd, &format)
	return cmd
}
