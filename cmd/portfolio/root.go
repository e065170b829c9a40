package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-portfolio/internal/config"
	"github.com/goliatone/go-portfolio/internal/logging"
)

// runtime is shared by every subcommand once the root pre-run has loaded it.
type runtime struct {
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	rt := &runtime{}
	root := &cobra.Command{
		Use:           "portfolio",
		Short:         "Portfolio page with gallery, testimonials and a contact form",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(rt.configPath, version)
			if err != nil {
				return err
			}
			logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
			if err != nil {
				return err
			}
			rt.cfg = cfg
			rt.logger = logger.With(zap.String("version", version))
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if rt.logger != nil {
				_ = rt.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&rt.configPath, "config", "c", "", fmt.Sprintf("config file (default %s when present)", config.DefaultConfigFile))

	root.AddCommand(serveCmd(rt), renderCmd(rt), contactCmd(rt))
	return root
}
