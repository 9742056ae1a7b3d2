package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"navboard/internal/config"
	"navboard/internal/logger"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile string
		cfg     config.Config
	)
	root := &cobra.Command{
		Use:          "navboard",
		Short:        "Serve the blog and the Focused portfolio NAV/drawdown view",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(cfgFile)
			if err != nil {
				return err
			}
			logger.Init("navboard", cfg.LogLevel)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "optional YAML config file (environment variables take precedence)")

	root.AddCommand(
		newServeCmd(&cfg),
		newReportCmd(&cfg),
		newPostsCmd(&cfg),
	)
	return root
}
