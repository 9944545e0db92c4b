package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/brensch/pokesim/game"
	"github.com/brensch/pokesim/observe"
	"github.com/brensch/pokesim/search"
)

type choice struct {
	Turn       int         `json:"turn"`
	Depth      string      `json:"depth"`
	Selection  string      `json:"selection"`
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Selection string  `json:"selection"`
	Score     float64 `json:"score"`
}

func newChooseCmd(a *app) *cobra.Command {
	var (
		seed    int64
		events  string
		foeSize int
	)
	cmd := &cobra.Command{
		Use:   "choose",
		Short: "Print the engine's choice for a position as JSON",
		Long: `Builds a position and prints the selection the engine picks.

The AI team is generated from --seed. With --events the foe is tracked from
an event log (see observe.Battle.Apply for the line format); without it the
foe team is generated from the same seed and fully visible.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := a.cfg.Generation()
			if err != nil {
				return err
			}
			p, err := a.player()
			if err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(seed))
			size := a.cfg.SelfPlay.TeamSize
			ai := game.GenerateTeam(gen, size, rng)

			var (
				best   game.Selection
				scored []search.ScoredSelection
				turn   int
			)
			if events != "" {
				f, err := os.Open(events)
				if err != nil {
					return err
				}
				defer f.Close()
				b := observe.NewBattle(gen, ai, foeSize)
				b.Log = a.log
				if err := b.ApplyLog(f); err != nil {
					return fmt.Errorf("%s: %w", events, err)
				}
				turn = b.Turn()
				best, scored, err = b.Choose(cmd.Context(), p.Depth, p.Weights, p.Options)
				if err != nil {
					return err
				}
			} else {
				s := game.NewState(gen, ai, game.GenerateTeam(gen, size, rng))
				best, scored, err = search.ChooseAction(cmd.Context(), s, p.Depth, p.Weights, p.Options)
				if err != nil {
					return err
				}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(choice{
				Turn:      turn,
				Depth:     p.Depth.String(),
				Selection: best.String(),
				Candidates: lo.Map(scored, func(s search.ScoredSelection, _ int) candidate {
					return candidate{Selection: s.Selection.String(), Score: s.Score}
				}),
			})
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 1, "seed for the generated teams")
	cmd.Flags().StringVar(&events, "events", "", "event log describing the battle so far")
	cmd.Flags().IntVar(&foeSize, "foe-size", game.MaxTeamSize, "foe team size when tracking an event log")
	return cmd
}
