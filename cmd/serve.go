package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/foundry/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the play and audit API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return withService(func(svc *app.Service) error { return svc.Run(ctx) })
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
