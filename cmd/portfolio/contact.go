package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-portfolio/internal/app"
	"github.com/goliatone/go-portfolio/pkg/contact"
	"github.com/goliatone/go-portfolio/pkg/renderers/tui"
)

// contact: fill in the contact form from the terminal.
func contactCmd(rt *runtime) *cobra.Command {
	var attempts int
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message through the contact form from the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			a, err := app.New(ctx, rt.cfg, rt.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			controller := a.Site.NewController(contact.Values{})
			outcome, err := tui.CollectContact(ctx, controller,
				tui.WithPromptDriver(tui.NewSurveyDriver(cmd.OutOrStdout())),
				tui.WithMaxAttempts(attempts),
			)
			switch {
			case errors.Is(err, tui.ErrAborted):
				fmt.Fprintln(cmd.ErrOrStderr(), "Aborted.")
				return nil
			case err != nil:
				return err
			case !outcome.Acknowledged():
				return fmt.Errorf("message not sent: %s", outcome.Status)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&attempts, "attempts", 3, "maximum submit attempts")
	return cmd
}
