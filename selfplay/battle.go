package selfplay

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/samber/lo"

	"github.com/brensch/pokesim/game"
	"github.com/brensch/pokesim/rules"
	"github.com/brensch/pokesim/search"
	"github.com/brensch/pokesim/store"
)

// Player is the search setup one side decides with.
type Player struct {
	Depth   search.Depth
	Weights search.Weights
	Options search.Options
}

// Config describes the battles a worker plays.
type Config struct {
	Generation game.Generation
	TeamSize   int
	// MaxTurns caps played turns; a battle that reaches it is undecided.
	MaxTurns int
	Players  [2]Player
}

type Result struct {
	BattleID  string
	Winner    rules.Result
	Turns     int
	Decisions int
}

// battle is one self-play game in progress. Both sides see the full state;
// the foe decides from the swapped view.
type battle struct {
	id    string
	cfg   Config
	rng   *rand.Rand
	state game.State
	turn  int
	rows  []store.DecisionRow

	onDecision func()
}

// PlayBattle plays one battle between freshly generated teams and returns a
// row per decision. The rng drives team generation and every random event,
// so the same seed replays the same battle. A cancelled ctx abandons the
// battle and returns ctx.Err().
func PlayBattle(ctx context.Context, id string, cfg Config, rng *rand.Rand, onDecision func()) ([]store.DecisionRow, Result, error) {
	ai := game.GenerateTeam(cfg.Generation, cfg.TeamSize, rng)
	foe := game.GenerateTeam(cfg.Generation, cfg.TeamSize, rng)
	b := &battle{
		id:         id,
		cfg:        cfg,
		rng:        rng,
		state:      game.NewState(cfg.Generation, ai, foe),
		onDecision: onDecision,
	}
	if err := b.play(ctx); err != nil {
		return nil, Result{BattleID: id, Turns: b.turn}, err
	}

	winner := rules.Winner(&b.state)
	for i := range b.rows {
		b.rows[i].Winner = winner.String()
	}
	return b.rows, Result{BattleID: id, Winner: winner, Turns: b.turn, Decisions: len(b.rows)}, nil
}

func (b *battle) play(ctx context.Context) error {
	// Replacement steps do not count as turns, but every loop makes progress
	// so the guard only trips on a bug.
	for steps := 0; b.turn < b.cfg.MaxTurns; steps++ {
		if steps > 4*b.cfg.MaxTurns {
			return fmt.Errorf("battle %s made no progress after %d steps", b.id, steps)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if rules.Winner(&b.state) != rules.Undecided {
			return nil
		}

		var sels [2]game.Selection
		for _, side := range [2]game.Side{game.AI, game.Foe} {
			sel, err := b.decide(ctx, side)
			if err != nil {
				return err
			}
			sels[side] = sel
		}

		if replacing(&b.state, game.AI) || replacing(&b.state, game.Foe) {
			for _, side := range [2]game.Side{game.AI, game.Foe} {
				if sels[side].IsSwitch() {
					rules.Switch(&b.state, side, sels[side].Slot)
				}
			}
			rules.ResetTurnFlags(&b.state)
			continue
		}

		if err := b.playTurn(ctx, sels); err != nil {
			return err
		}
		b.turn++
	}
	return nil
}

func replacing(s *game.State, side game.Side) bool {
	t := s.Team(side)
	return t.Count > 0 && (t.ActivePokemon().Fainted() || t.SelfSwitch)
}

func (b *battle) playTurn(ctx context.Context, sels [2]game.Selection) error {
	first, tie := rules.Order(&b.state, sels[game.AI], sels[game.Foe])
	if tie {
		first = game.Side(b.rng.Intn(2))
	}
	second := first.Other()

	b.act(first, sels[first], rules.OtherActionFor(&b.state, second, sels[second]))
	if err := b.selfSwitch(ctx, first); err != nil {
		return err
	}

	if rules.Winner(&b.state) == rules.Undecided && !b.state.Active(second).Fainted() {
		sel := sels[second]
		if sel.IsSwitch() && b.state.Team(second).Active == sel.Slot {
			sel = game.PassSelection
		}
		b.act(second, sel, rules.OtherActionFor(&b.state, first, game.PassSelection))
		if err := b.selfSwitch(ctx, second); err != nil {
			return err
		}
	}

	if rules.Winner(&b.state) != rules.Undecided {
		return nil
	}
	order, tie := rules.Faster(&b.state)
	if tie {
		order = game.Side(b.rng.Intn(2))
	}
	flags := sample(b.rng, rules.EndOfTurnFlagBranches(&b.state), func(f rules.FlagBranch) float64 { return f.Probability })
	rules.EndOfTurn(&b.state, order, flags.Flags)
	return nil
}

// act resolves side's selection and keeps one branch, drawn by probability.
func (b *battle) act(side game.Side, sel game.Selection, other rules.OtherAction) {
	branches := rules.Resolve(b.state, side, sel, other)
	b.state = sample(b.rng, branches, func(br rules.Branch) float64 { return br.Probability }).State
}

// selfSwitch brings in side's replacement after U-turn, Volt Switch or Baton
// Pass.
func (b *battle) selfSwitch(ctx context.Context, side game.Side) error {
	t := b.state.Team(side)
	if !t.SelfSwitch || rules.Winner(&b.state) != rules.Undecided {
		return nil
	}
	if len(t.SwitchTargets()) == 0 {
		t.SelfSwitch = false
		return nil
	}
	sel, err := b.decide(ctx, side)
	if err != nil {
		return err
	}
	if sel.IsSwitch() {
		rules.Switch(&b.state, side, sel.Slot)
	}
	return nil
}

// decide picks side's selection from its own view. A side with a single
// legal selection takes it without a search or a recorded row.
func (b *battle) decide(ctx context.Context, side game.Side) (game.Selection, error) {
	view := b.state
	if side == game.Foe {
		view = view.Swapped()
	}
	legal := rules.LegalSelections(&view, game.AI)
	if len(legal) == 1 {
		return legal[0], nil
	}

	p := b.cfg.Players[side]
	best, scored, err := search.ChooseAction(ctx, view, p.Depth, p.Weights, p.Options)
	if err != nil {
		return game.Selection{}, fmt.Errorf("%s decision on turn %d: %w", side, b.turn, err)
	}

	cands, err := store.EncodeCandidates(lo.Map(scored, func(s search.ScoredSelection, _ int) store.Candidate {
		return store.Candidate{Selection: s.Selection.String(), Score: s.Score}
	}))
	if err != nil {
		return game.Selection{}, err
	}
	row := store.DecisionRow{
		BattleID:   b.id,
		Turn:       int32(b.turn),
		Side:       side.String(),
		Generation: int32(b.cfg.Generation),
		Depth:      p.Depth.String(),
		Key:        search.Compress(&view).String(),
		Selection:  best.String(),
		Candidates: cands,
		Source:     "selfplay",
	}
	if len(scored) > 0 {
		row.Score = scored[0].Score
	}
	b.rows = append(b.rows, row)
	if b.onDecision != nil {
		b.onDecision()
	}
	return best, nil
}

// sample draws one of items with the given probabilities. Rounding slack
// falls to the last item.
func sample[T any](rng *rand.Rand, items []T, prob func(T) float64) T {
	r := rng.Float64()
	for _, it := range items[:len(items)-1] {
		r -= prob(it)
		if r < 0 {
			return it
		}
	}
	return items[len(items)-1]
}
