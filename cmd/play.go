package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/foundry/app"
	"github.com/kilianp07/foundry/world"
)

var (
	playWorld  string
	playPlayer string
	playAge    int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Compose a world and play one round",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("world") && cmd.Flags().Changed("age") {
			return fmt.Errorf("--world and --age are mutually exclusive")
		}
		name := playWorld
		if cmd.Flags().Changed("age") {
			name = world.ForAge(playAge)
		}
		return withService(func(svc *app.Service) error {
			round, err := svc.Play(name, playPlayer)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), round.Outcome)
			return err
		})
	},
}

var worldsCmd = &cobra.Command{
	Use:   "worlds",
	Short: "List the available worlds",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *app.Service) error {
			for _, w := range svc.Worlds() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), w); err != nil {
					return err
				}
			}
			return nil
		})
	},
}

func init() {
	playCmd.Flags().StringVar(&playWorld, "world", "", "world to play (defaults to game.world)")
	playCmd.Flags().StringVar(&playPlayer, "player", "", "player name (defaults to game.player)")
	playCmd.Flags().IntVar(&playAge, "age", 0, "pick the world suited to this age")
	rootCmd.AddCommand(playCmd, worldsCmd)
}
