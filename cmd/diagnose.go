package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bnema/motorsense/internal/adapters/render/terminal"
	"github.com/bnema/motorsense/internal/application"
	"github.com/bnema/motorsense/internal/domain"
	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newDiagnoseCmd(app *app) *cobra.Command {
	var (
		flags    vehicleFlags
		messages []string
	)

	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Chat with the diagnostics backend about a vehicle",
		Long:  "diagnose opens a conversation about the vehicle. Each message is matched against known failures and answered with the likely causes. Pass --message to run non-interactively; otherwise type messages and finish with exit, quit or end of input.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			vehicle, err := flags.vehicle()
			if err != nil {
				if domain.IsMissingVehicleInfo(err) {
					if rendered, renderErr := terminal.RenderMissingInfo(err); renderErr == nil {
						_, _ = fmt.Fprintln(cmd.OutOrStdout(), rendered)
					}
				}
				return err
			}

			chat := app.chatService().NewSession(vehicle)
			if len(messages) > 0 {
				return diagnoseBatch(cmd, chat, messages)
			}
			return diagnoseInteractive(cmd, chat)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringArrayVar(&messages, "message", nil, "Message to send (repeatable); skips the interactive prompt")
	return cmd
}

func diagnoseBatch(cmd *cobra.Command, chat *application.ChatSession, messages []string) error {
	for _, text := range messages {
		if _, err := chat.Submit(cmd.Context(), text); err != nil {
			return fmt.Errorf("send %q: %w", text, err)
		}
	}

	rendered, err := terminal.RenderTranscript(chat.View())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func diagnoseInteractive(cmd *cobra.Command, chat *application.ChatSession) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	prompt := color.New(color.FgCyan, color.Bold).SprintFunc()
	assistant := color.New(color.FgGreen).SprintFunc()

	if _, err := fmt.Fprintf(out, "Diagnosing %s. Describe the symptoms (exit to quit).\n", chat.Vehicle().Title()); err != nil {
		return err
	}

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	s.Suffix = " Thinking..."

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := fmt.Fprint(out, prompt("you> ")); err != nil {
			return err
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("read message: %w", err)
			}
			_, _ = fmt.Fprintln(out)
			return nil
		}

		text := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(text) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		s.Start()
		reply, err := chat.Submit(ctx, text)
		s.Stop()
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintf(out, "%s\n%s\n\n", assistant("motorsense>"), reply.Content); err != nil {
			return err
		}
	}
}
