package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/foundry/app"
	"github.com/kilianp07/foundry/config"
	"github.com/kilianp07/foundry/infra/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "foundry",
	Short:         "Object factories, family catalogs and compositions",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// withService loads the configuration, builds the service and hands it to fn.
func withService(fn func(*app.Service) error) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return fn(svc)
}
