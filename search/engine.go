package search

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/brensch/pokesim/game"
	"github.com/brensch/pokesim/rules"
)

// Config holds the engine configuration.
type Config struct {
	Depth     Depth
	Weights   Weights
	TableBits int
	// Parallel bounds how many top-level selections are searched at once.
	Parallel int
}

func DefaultConfig() Config {
	return Config{
		Depth:     Depth{General: 2, Single: 0},
		Weights:   DefaultWeights(),
		TableBits: 16,
		Parallel:  4,
	}
}

// Engine is an expectimax search over full turns. The AI maximizes; the foe
// is averaged over its Predictor's distribution. One Engine may serve many
// decisions; its table persists between them.
type Engine struct {
	Config Config
	Foe    Predictor
	Table  *Table
	Log    logrus.FieldLogger
}

func NewEngine(cfg Config, foe Predictor) *Engine {
	if foe == nil {
		foe = Uniform{}
	}
	return &Engine{
		Config: cfg,
		Foe:    foe,
		Table:  NewTable(cfg.TableBits),
		Log:    logrus.StandardLogger(),
	}
}

// Choose scores every legal AI selection at depth d and returns the best one
// with the full ranking. The top-level selections are searched in parallel
// against the shared table. It panics if the AI has no Pokemon.
func (e *Engine) Choose(ctx context.Context, s game.State, d Depth) (game.Selection, []ScoredSelection, error) {
	if s.Team(game.AI).Empty() {
		panic("search: AI team is empty")
	}
	if err := ctx.Err(); err != nil {
		return game.Selection{}, nil, err
	}
	legal := rules.LegalSelections(&s, game.AI)
	if len(legal) == 1 {
		return legal[0], []ScoredSelection{{Selection: legal[0], Score: e.scoreSelection(&s, legal[0], d)}}, nil
	}

	scored := make([]ScoredSelection, len(legal))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(max(1, e.Config.Parallel))
	for i, sel := range legal {
		g.Go(func() error {
			scored[i] = ScoredSelection{Selection: sel, Score: e.scoreSelection(&s, sel, d)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return game.Selection{}, nil, err
	}
	rank(scored)
	e.Table.Store(Compress(&s), d, scored)

	e.Log.WithFields(logrus.Fields{
		"depth":     d.String(),
		"selection": scored[0].Selection.String(),
		"score":     scored[0].Score,
		"options":   len(scored),
	}).Debug("chose selection")
	return scored[0].Selection, append([]ScoredSelection(nil), scored...), nil
}

// rank sorts best first. Ties keep legal order.
func rank(scored []ScoredSelection) {
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
}

// scoreSelection is the expected score of the AI picking sel at s.
func (e *Engine) scoreSelection(s *game.State, sel game.Selection, d Depth) float64 {
	foe := e.Foe.Predict(s, game.Foe, rules.LegalSelections(s, game.Foe))
	total := 0.0
	for _, f := range foe {
		total += f.Probability * e.turn(s, [2]game.Selection{game.AI: sel, game.Foe: f.Selection}, d)
	}
	return total
}

// value is the score of s with the AI playing its best selection.
func (e *Engine) value(s *game.State, d Depth) float64 {
	if r := rules.Winner(s); r != rules.Undecided {
		return terminal(r, d, e.Config.Weights)
	}
	if stalled(s, game.AI) || stalled(s, game.Foe) {
		return Evaluate(s, e.Config.Weights)
	}
	key := Compress(s)
	if scored, ok := e.Table.Lookup(key, d); ok {
		return scored[0].Score
	}
	legal := rules.LegalSelections(s, game.AI)
	scored := make([]ScoredSelection, len(legal))
	for i, sel := range legal {
		scored[i] = ScoredSelection{Selection: sel, Score: e.scoreSelection(s, sel, d)}
	}
	rank(scored)
	e.Table.Store(key, d, scored)
	return scored[0].Score
}

// replacing reports whether side is choosing a replacement rather than
// playing a turn.
func replacing(s *game.State, side game.Side) bool {
	t := s.Team(side)
	if t.Count == 0 {
		return false
	}
	return t.ActivePokemon().Fainted() || t.SelfSwitch
}

// stalled reports whether side must replace a fainted Pokemon but has no
// revealed member to send in. Only a hidden member could come in, which the
// search cannot play, so the state is scored statically.
func stalled(s *game.State, side game.Side) bool {
	t := s.Team(side)
	return t.Count > 0 && t.ActivePokemon().Fainted() && len(t.SwitchTargets()) == 0
}

// turn plays one turn with both selections fixed.
func (e *Engine) turn(s *game.State, sels [2]game.Selection, d Depth) float64 {
	if replacing(s, game.AI) || replacing(s, game.Foe) {
		next := *s
		for _, side := range [2]game.Side{game.AI, game.Foe} {
			if sels[side].IsSwitch() {
				rules.Switch(&next, side, sels[side].Slot)
			}
		}
		rules.ResetTurnFlags(&next)
		return e.finish(&next, d, false)
	}
	first, tie := rules.Order(s, sels[game.AI], sels[game.Foe])
	if tie {
		return 0.5*e.ordered(s, game.AI, sels, d) + 0.5*e.ordered(s, game.Foe, sels, d)
	}
	return e.ordered(s, first, sels, d)
}

// ordered resolves the turn with first acting before the other side.
func (e *Engine) ordered(s *game.State, first game.Side, sels [2]game.Selection, d Depth) float64 {
	second := first.Other()
	other := rules.OtherActionFor(s, second, sels[second])
	total := 0.0
	for _, o := range rules.MoveOutcomes(s, first, sels[first], other) {
		next := *s
		rules.Apply(&next, first, sels[first], o.Used, other)
		total += o.Probability * e.afterSelfSwitch(&next, first, d, func(st *game.State) float64 {
			return e.secondAction(st, second, sels[second], d)
		})
	}
	return total
}

// secondAction resolves the slower side's selection, unless its Pokemon
// fainted or the battle ended first.
func (e *Engine) secondAction(s *game.State, side game.Side, sel game.Selection, d Depth) float64 {
	if rules.Winner(s) != rules.Undecided || s.Active(side).Fainted() {
		return e.endOfTurn(s, d)
	}
	if sel.IsSwitch() && s.Team(side).Active == sel.Slot {
		sel = game.PassSelection
	}
	other := rules.OtherActionFor(s, side.Other(), game.PassSelection)
	total := 0.0
	for _, o := range rules.MoveOutcomes(s, side, sel, other) {
		next := *s
		rules.Apply(&next, side, sel, o.Used, other)
		total += o.Probability * e.afterSelfSwitch(&next, side, d, func(st *game.State) float64 {
			return e.endOfTurn(st, d)
		})
	}
	return total
}

// afterSelfSwitch brings in side's replacement after U-turn, Volt Switch or
// Baton Pass, then continues.
func (e *Engine) afterSelfSwitch(s *game.State, side game.Side, d Depth, cont func(*game.State) float64) float64 {
	if !s.Team(side).SelfSwitch || rules.Winner(s) != rules.Undecided {
		return cont(s)
	}
	return e.replace(s, side, cont)
}

// replace chooses side's replacement: the AI takes the best one, the foe is
// averaged over its prediction.
func (e *Engine) replace(s *game.State, side game.Side, cont func(*game.State) float64) float64 {
	targets := s.Team(side).SwitchTargets()
	if len(targets) == 0 {
		s.Team(side).SelfSwitch = false
		return cont(s)
	}
	play := func(slot int) float64 {
		next := *s
		rules.Switch(&next, side, slot)
		return cont(&next)
	}
	if side == game.AI {
		best := 0.0
		for i, slot := range targets {
			if v := play(slot); i == 0 || v > best {
				best = v
			}
		}
		return best
	}
	legal := make([]game.Selection, len(targets))
	for i, slot := range targets {
		legal[i] = game.SwitchSelection(slot)
	}
	total := 0.0
	for _, w := range e.Foe.Predict(s, side, legal) {
		total += w.Probability * play(w.Selection.Slot)
	}
	return total
}

// endOfTurn runs the end of turn pipeline over its random events and speed
// ties, then the faint replacements.
func (e *Engine) endOfTurn(s *game.State, d Depth) float64 {
	if r := rules.Winner(s); r != rules.Undecided {
		return terminal(r, d, e.Config.Weights)
	}
	first, tie := rules.Faster(s)
	orders := []game.Side{first}
	if tie {
		orders = []game.Side{game.AI, game.Foe}
	}
	total := 0.0
	for _, order := range orders {
		for _, b := range rules.EndOfTurnFlagBranches(s) {
			next := *s
			rules.EndOfTurn(&next, order, b.Flags)
			total += b.Probability * e.faintReplacements(&next, d)
		}
	}
	return total / float64(len(orders))
}

// faintReplacements brings in replacements for fainted Pokemon and finishes
// the turn.
func (e *Engine) faintReplacements(s *game.State, d Depth) float64 {
	if r := rules.Winner(s); r != rules.Undecided {
		return terminal(r, d, e.Config.Weights)
	}
	finish := func(st *game.State) float64 { return e.finish(st, d, true) }
	needs := func(st *game.State, side game.Side) bool {
		return st.Team(side).Count > 0 && st.Active(side).Fainted() && len(st.Team(side).SwitchTargets()) > 0
	}
	switch {
	case needs(s, game.AI) && needs(s, game.Foe):
		return e.replace(s, game.AI, func(st *game.State) float64 {
			return e.replace(st, game.Foe, finish)
		})
	case needs(s, game.AI):
		return e.replace(s, game.AI, finish)
	case needs(s, game.Foe):
		return e.replace(s, game.Foe, finish)
	}
	return finish(s)
}

// finish scores the state after a turn: recurse while general depth remains,
// then the single matchups, then the static evaluation. A replacement turn
// does not use up depth.
func (e *Engine) finish(s *game.State, d Depth, played bool) float64 {
	if r := rules.Winner(s); r != rules.Undecided {
		return terminal(r, d, e.Config.Weights)
	}
	if !played {
		return e.value(s, d)
	}
	next := d.Next()
	if next.General == 0 {
		return e.afterGeneral(s, next)
	}
	return e.value(s, next)
}

func (e *Engine) afterGeneral(s *game.State, d Depth) float64 {
	if d.Single > 0 {
		return e.singleMatchups(s, d)
	}
	return Evaluate(s, e.Config.Weights)
}
