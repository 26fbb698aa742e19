package cmd

import (
	"fmt"

	"github.com/bnema/motorsense/internal/application"
	"github.com/bnema/motorsense/internal/domain"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the MotorSense accounts service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.sessionService().Login(cmd.Context(), application.LoginCommand{
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", displayName(session))
			return err
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	return cmd
}

func newSignUpCmd(app *app) *cobra.Command {
	var fullName, email, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a MotorSense account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.sessionService().SignUp(cmd.Context(), application.SignUpCommand{
				FullName: fullName,
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !session.IsAuthenticated() {
				_, err = fmt.Fprintln(out, "Account created. Run `motorsense login` to continue.")
				return err
			}
			_, err = fmt.Fprintf(out, "Account created, logged in as %s\n", displayName(session))
			return err
		},
	}

	cmd.Flags().StringVar(&fullName, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.sessionService().Logout(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return err
		},
	}
}

type whoAmIOutput struct {
	Authenticated bool         `json:"authenticated" yaml:"authenticated"`
	User          *domain.User `json:"user,omitempty" yaml:"user,omitempty"`
}

func newWhoAmICmd(app *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutput(format); err != nil {
				return err
			}

			session, err := app.sessionService().Load(cmd.Context())
			if err != nil {
				return err
			}

			result := whoAmIOutput{Authenticated: session.IsAuthenticated(), User: session.User}
			return writeOutput(cmd, format, result, func() (string, error) {
				if !result.Authenticated {
					return "Not logged in", nil
				}
				if session.User == nil {
					return "Logged in", nil
				}
				return fmt.Sprintf("%s <%s>", session.User.FullName, session.User.Email), nil
			})
		},
	}

	addOutputFlag(cmd, &format)
	return cmd
}

func displayName(session domain.AuthSession) string {
	if session.User == nil {
		return "unknown user"
	}
	if session.User.FullName != "" {
		return session.User.FullName
	}
	return session.User.Email
}
