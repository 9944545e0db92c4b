package main

import (
	"fmt"
	"math/rand"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/brensch/pokesim/selfplay"
)

func newDebugCmd(a *app) *cobra.Command {
	var seed int64
	cmd := &cobra.Command{
		Use:   "debug",
		Short: "Play one self-play battle and print every decision",
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := a.cfg.Generation()
			if err != nil {
				return err
			}
			p, err := a.player()
			if err != nil {
				return err
			}
			cfg := selfplay.Config{
				Generation: gen,
				TeamSize:   a.cfg.SelfPlay.TeamSize,
				MaxTurns:   a.cfg.SelfPlay.MaxTurns,
				Players:    [2]selfplay.Player{p, p},
			}
			id := selfplay.BattleID(seed, 0)
			rows, res, err := selfplay.PlayBattle(cmd.Context(), id, cfg, rand.New(rand.NewSource(seed)), nil)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TURN\tSIDE\tSELECTION\tSCORE")
			for _, r := range rows {
				fmt.Fprintf(w, "%d\t%s\t%s\t%.1f\n", r.Turn, r.Side, r.Selection, r.Score)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s: %s after %d turns, %d decisions\n", res.BattleID, res.Winner, res.Turns, res.Decisions)
			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 1, "battle seed")
	return cmd
}
