package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-portfolio/internal/app"
	"github.com/goliatone/go-portfolio/pkg/site"
)

// render: compose the page once and write it to stdout or a file.
func renderCmd(rt *runtime) *cobra.Command {
	var (
		format  string
		output  string
		theme   string
		variant string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the page as html or text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := app.New(ctx, rt.cfg, rt.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.Site.Compose(ctx, site.Request{
				Renderer:     format,
				ThemeName:    theme,
				ThemeVariant: variant,
			})
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(result.Body)
				return err
			}
			if err := os.WriteFile(output, result.Body, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Page written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "html", "renderer to use (html, text)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&theme, "theme", "", "theme name (default from config)")
	cmd.Flags().StringVar(&variant, "variant", "", "theme variant (default from config)")
	return cmd
}
