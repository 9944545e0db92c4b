// Package observe tracks a battle from the events a battle server reports and
// hands the tracked state to the search when a decision is needed.
//
// Every event is checked against what is already known. An event that
// contradicts the tracked state is rejected with one of the sentinel errors
// below and leaves the state untouched; the caller decides what to do.
package observe

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/brensch/pokesim/game"
	"github.com/brensch/pokesim/rules"
	"github.com/brensch/pokesim/search"
)

var (
	ErrInconsistent    = errors.New("event contradicts tracked state")
	ErrUnknownSpecies  = errors.New("unknown species")
	ErrImpossibleMove  = errors.New("impossible move")
	ErrHPOutOfRange    = errors.New("hp outside the possible range")
	ErrStatusMismatch  = errors.New("status mismatch")
	errNotStarted      = fmt.Errorf("%w: no active pokemon yet", ErrInconsistent)
	errZeroDenominator = fmt.Errorf("%w: hp denominator is zero", ErrInconsistent)
)

// hit is the last damaging move seen, kept until its damage is reported.
type hit struct {
	by    game.Side
	move  game.MoveName
	state game.State
}

// Battle is the tracked state of one battle from the AI's point of view.
type Battle struct {
	state   game.State
	started [2]bool
	turn    int
	// first is the side that acted first this turn.
	first    game.Side
	acted    bool
	last     *hit
	Log      logrus.FieldLogger
}

// NewBattle starts tracking a battle between the fully known ai team and a
// foe team of foeSize members, none of them seen yet.
func NewBattle(gen game.Generation, ai game.Team, foeSize int) *Battle {
	return &Battle{
		state: game.State{Gen: gen, Teams: [2]game.Team{ai, game.NewObservedTeam(foeSize)}},
		Log:   logrus.StandardLogger(),
	}
}

// State returns a copy of the tracked state.
func (b *Battle) State() game.State { return b.state }

func (b *Battle) Turn() int { return b.turn }

func (b *Battle) active(side game.Side) (*game.Pokemon, error) {
	if !b.started[side] {
		return nil, fmt.Errorf("%s: %w", side, errNotStarted)
	}
	return b.state.Active(side), nil
}

func (b *Battle) noteAction(side game.Side) {
	if !b.acted {
		b.first = side
		b.acted = true
	}
}

// Switched records side sending out species. A foe species not seen before
// is revealed into one of the hidden slots.
func (b *Battle) Switched(side game.Side, species game.SpeciesName, level int) error {
	gen := b.state.Gen
	if species == game.NoSpecies || !species.AvailableIn(gen) {
		return fmt.Errorf("%s sent out %v in %s: %w", side, species, gen, ErrUnknownSpecies)
	}

	next := b.state
	team := next.Team(side)
	slot, ok := team.Find(species)
	if !ok {
		if team.Known {
			return fmt.Errorf("%s is not on the %s team: %w", species, side, ErrUnknownSpecies)
		}
		var err error
		slot, err = team.Reveal(revealed(gen, species, level))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInconsistent, err)
		}
	}
	if team.Pokemon[slot].Fainted() {
		return fmt.Errorf("%w: %s switched in fainted %s", ErrInconsistent, side, species)
	}

	if !b.started[side] {
		team.Active = slot
		team.Pokemon[slot].Seen = true
	} else {
		if slot == team.Active && !team.ActivePokemon().Fainted() {
			return fmt.Errorf("%w: %s is already active", ErrInconsistent, species)
		}
		rules.Switch(&next, side, slot)
		b.noteAction(side)
	}
	b.state = next
	b.started[side] = true
	b.Log.WithFields(logrus.Fields{"side": side, "species": species, "turn": b.turn}).Debug("switched")
	return nil
}

// revealed is the assumed build of a newly seen foe member until more of it
// is observed.
func revealed(gen game.Generation, species game.SpeciesName, level int) game.Pokemon {
	if level <= 0 {
		level = 100
	}
	return game.NewPokemon(gen, species, level, game.Hardy, game.MaxSpread(), species.Data().Abilities[0], game.NoItem)
}

// UsedMove records side's active Pokemon using move. A foe move not seen
// before is added to its known moves.
func (b *Battle) UsedMove(side game.Side, move game.MoveName) error {
	p, err := b.active(side)
	if err != nil {
		return err
	}
	if p.Fainted() {
		return fmt.Errorf("%w: fainted %s cannot use %s", ErrInconsistent, p.Species, move)
	}

	gen := b.state.Gen
	before := b.state
	if move != game.Struggle {
		if !move.IsRegular() || !move.AvailableIn(gen) {
			return fmt.Errorf("%s in %s: %w", move, gen, ErrImpossibleMove)
		}
		if _, known := p.FindMove(move); !known {
			if b.state.Team(side).Known || !p.Species.CanLearn(gen, move) {
				return fmt.Errorf("%s cannot use %s: %w", p.Species, move, ErrImpossibleMove)
			}
			if !p.AddMove(move) {
				return fmt.Errorf("%s already shows %d moves, not %s: %w", p.Species, game.MaxMoves, move, ErrImpossibleMove)
			}
		}
		i, _ := p.FindMove(move)
		if p.Moves[i].PP > 0 {
			p.Moves[i].PP--
		}
	}
	p.LastMove = move
	p.Moved = true
	b.noteAction(side)

	b.last = nil
	if move.IsDamaging() {
		b.last = &hit{by: side, move: move, state: before}
	}
	return nil
}

// toHP converts a reported fraction of max HP to HP points and returns the
// rounding slack of one reported unit.
func toHP(p *game.Pokemon, hp, denominator int) (points, slack int, err error) {
	if denominator <= 0 {
		return 0, 0, errZeroDenominator
	}
	if hp < 0 {
		hp = 0
	}
	if hp > denominator {
		return 0, 0, fmt.Errorf("%w: %d/%d", ErrHPOutOfRange, hp, denominator)
	}
	full := p.MaxHP()
	slack = (full + denominator - 1) / denominator
	return hp * full / denominator, slack, nil
}

// Damaged records side's active Pokemon dropping to hp/denominator of its max
// HP. Damage right after a foe's damaging move must lie between that move's
// smallest normal roll and largest critical roll.
func (b *Battle) Damaged(side game.Side, hp, denominator int) error {
	p, err := b.active(side)
	if err != nil {
		return err
	}
	now, slack, err := toHP(p, hp, denominator)
	if err != nil {
		return err
	}
	lost := p.HP - now
	if lost < -slack {
		return fmt.Errorf("%w: %s healed from %d to %d on a damage event", ErrHPOutOfRange, p.Species, p.HP, now)
	}

	if h := b.last; h != nil && h.by == side.Other() {
		r := damageBounds(&h.state, h.by, h.move)
		upper := r.Max + slack
		lower := r.Min - slack
		if now == 0 {
			lower = min(lower, p.HP)
		}
		if lost > upper || lost < lower {
			return fmt.Errorf("%w: %s lost %d to %s, possible %d..%d", ErrHPOutOfRange, p.Species, lost, h.move, r.Min, r.Max)
		}
		b.last = nil
	}
	p.HP = now
	return nil
}

// damageBounds spans every roll of move, critical or not.
func damageBounds(s *game.State, by game.Side, move game.MoveName) rules.DamageRange {
	attacker, defender := s.Team(by), s.Team(by.Other())
	other := rules.OtherAction{Moved: defender.ActivePokemon().Moved}
	normal := rules.Damage(s.Gen, attacker, defender, move, s.Env, false, other)
	crit := rules.Damage(s.Gen, attacker, defender, move, s.Env, true, other)
	return rules.DamageRange{
		Min:  min(normal.Min, crit.Min),
		Max:  max(normal.Max, crit.Max),
		Mean: normal.Mean,
	}
}

// CorrectHP reconciles side's active HP with the server's value. The two may
// differ by the rounding of one reported unit; anything more is rejected.
func (b *Battle) CorrectHP(side game.Side, hp, denominator int) error {
	p, err := b.active(side)
	if err != nil {
		return err
	}
	now, slack, err := toHP(p, hp, denominator)
	if err != nil {
		return err
	}
	if diff := now - p.HP; diff > slack || diff < -slack {
		return fmt.Errorf("%w: %s tracked at %d, reported %d", ErrHPOutOfRange, p.Species, p.HP, now)
	}
	if denominator == p.MaxHP() {
		p.HP = now
	}
	return nil
}

// StatusChanged records side's active Pokemon gaining status, or being cured
// when status is StatusClear.
func (b *Battle) StatusChanged(side game.Side, status game.StatusName) error {
	p, err := b.active(side)
	if err != nil {
		return err
	}
	switch {
	case status == game.StatusClear:
		p.Status = game.Status{}
		return nil
	case p.Status.Name == status:
		return nil
	case !p.Status.IsClear():
		return fmt.Errorf("%w: %s is %s, reported %s", ErrStatusMismatch, p.Species, p.Status, status)
	case status == game.StatusRest:
		p.Status = game.Status{Name: game.StatusRest}
		return nil
	}

	next := *p
	if !rules.Inflict(b.state.Gen, &next, status, b.state.Env) {
		return fmt.Errorf("%w: %s cannot be %s", ErrStatusMismatch, p.Species, status)
	}
	*p = next
	return nil
}

// CorrectStatus checks side's active status against the server's value.
func (b *Battle) CorrectStatus(side game.Side, status game.StatusName) error {
	p, err := b.active(side)
	if err != nil {
		return err
	}
	got := p.Status.Name
	if got == game.StatusRest {
		got = game.StatusSleep
	}
	if status == game.StatusRest {
		status = game.StatusSleep
	}
	if got != status {
		return fmt.Errorf("%w: %s tracked %s, reported %s", ErrStatusMismatch, p.Species, p.Status, status)
	}
	return nil
}

// Fainted records side's active Pokemon fainting. The tracked HP may still
// be above zero when the server's rounding hid the last point of damage.
func (b *Battle) Fainted(side game.Side) error {
	p, err := b.active(side)
	if err != nil {
		return err
	}
	p.Faint()
	b.last = nil
	return nil
}

// WeatherStarted records weather starting for turns turns, or
// game.PermanentWeather.
func (b *Battle) WeatherStarted(w game.Weather, turns int8) error {
	if !b.state.Env.SetWeather(w, turns) {
		return fmt.Errorf("%w: %s already active", ErrInconsistent, w)
	}
	return nil
}

// EndTurn runs the end of turn rules on the tracked state. Residual HP
// changes come from the rules; report the server's values afterwards with
// CorrectHP.
func (b *Battle) EndTurn() error {
	if !b.started[game.AI] || !b.started[game.Foe] {
		return errNotStarted
	}
	first := game.AI
	if b.acted {
		first = b.first
	}
	if rules.Winner(&b.state) == rules.Undecided {
		rules.EndOfTurn(&b.state, first, [2]rules.EndOfTurnFlags{})
	}
	b.turn++
	b.acted = false
	b.last = nil
	b.Log.WithFields(logrus.Fields{"turn": b.turn, "first": first}).Debug("turn ended")
	return nil
}

// Choose picks the AI's next selection from the tracked state.
func (b *Battle) Choose(ctx context.Context, depth search.Depth, weights search.Weights, opts search.Options) (game.Selection, []search.ScoredSelection, error) {
	if !b.started[game.AI] || !b.started[game.Foe] {
		return game.Selection{}, nil, errNotStarted
	}
	if r := rules.Winner(&b.state); r != rules.Undecided {
		return game.Selection{}, nil, fmt.Errorf("%w: battle already decided (%s)", ErrInconsistent, r)
	}
	if opts.Log == nil {
		opts.Log = b.Log
	}
	return search.ChooseAction(ctx, b.state, depth, weights, opts)
}
