package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/foundry/app"
	"github.com/kilianp07/foundry/connectors"
)

var connectCmd = &cobra.Command{
	Use:   "connect <path>",
	Short: "Open a payload with the connector matching its suffix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *app.Service) error {
			c, err := svc.Connect(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "%s connector: %s\n", c.Format(), c.Path()); err != nil {
				return err
			}
			if x, ok := c.(*connectors.XMLConnector); ok {
				_, err := fmt.Fprintf(out, "root element: %s\n", x.Root().Name)
				return err
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(c.Data())
		})
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)
}
