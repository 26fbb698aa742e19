package cmd

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/bnema/motorsense/internal/application"
	"github.com/bnema/motorsense/internal/domain"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newRegisterCmd(app *app) *cobra.Command {
	var vehicleType, brand, model, year, mileage string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a vehicle with your account",
		Long:  "register validates the vehicle, adds it to your account and prints the query string the other commands accept through --query.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			registration, fieldErrs := domain.ParseRegistration(vehicleType, brand, model, year, mileage)
			if len(fieldErrs) > 0 {
				var rest domain.ValidationErrors
				if errors.As(registration.Validate(app.clock.Now()), &rest) {
					for field, msg := range rest {
						if _, ok := fieldErrs[field]; !ok {
							fieldErrs[field] = msg
						}
					}
				}
				return fieldErrs
			}

			session, err := app.sessionService().Load(cmd.Context())
			if err != nil {
				return err
			}

			location, err := app.intakeService(app.toasts(cmd.ErrOrStderr())).Submit(cmd.Context(), application.RegisterVehicleCommand{
				Session:      session,
				Registration: registration,
			})
			if err != nil {
				return err
			}

			query := ""
			if u, err := url.Parse(location); err == nil {
				query = u.RawQuery
			}

			out := cmd.OutOrStdout()
			bold := color.New(color.Bold).SprintFunc()
			if _, err := fmt.Fprintf(out, "%s %s\n", bold("Next:"), location); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "%s %s\n", bold("Query:"), query)
			return err
		},
	}

	cmd.Flags().StringVar(&vehicleType, "type", "", "Vehicle type: car or bike")
	cmd.Flags().StringVar(&brand, "brand", "", "Vehicle brand")
	cmd.Flags().StringVar(&model, "model", "", "Vehicle model")
	cmd.Flags().StringVar(&year, "year", "", "Model year")
	cmd.Flags().StringVar(&mileage, "mileage", "", "Mileage")
	return cmd
}
