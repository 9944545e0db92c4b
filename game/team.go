package game

import (
	"errors"
	"fmt"
)

// MaxTeamSize is the roster capacity.
const MaxTeamSize = 6

var ErrTeamFull = errors.New("team full")

// Wish is a pending heal that lands on whichever Pokemon is active.
type Wish struct {
	Turns  uint8
	Amount int
}

// FutureAttack is pending damage (Future Sight, Doom Desire) aimed at this
// team's active slot.
type FutureAttack struct {
	Turns  uint8
	Damage int
}

// Team is a fixed-capacity roster plus side-wide state. Count members are
// present; a partially observed team declares Size members, so Size-Count of
// them are still hidden.
type Team struct {
	Pokemon [MaxTeamSize]Pokemon
	Count   int
	Size    int
	Active  int
	// Known is true for a team whose every member is known up front.
	Known bool

	Spikes      uint8
	ToxicSpikes uint8
	StealthRock bool
	Reflect     uint8
	LightScreen uint8
	Wish        Wish
	Future      FutureAttack
	// SelfSwitch is set after U-turn, Volt Switch or Baton Pass until the
	// replacement comes in.
	SelfSwitch bool
	BatonPass  bool
}

// NewTeam builds a fully known team from members. The first member leads.
func NewTeam(members ...Pokemon) Team {
	var t Team
	t.Known = true
	for _, p := range members {
		if t.Count == MaxTeamSize {
			break
		}
		t.Pokemon[t.Count] = p
		t.Count++
	}
	t.Size = t.Count
	return t
}

// NewObservedTeam builds an opponent team of size members with nothing
// revealed yet.
func NewObservedTeam(size int) Team {
	return Team{Size: min(size, MaxTeamSize)}
}

func (t *Team) ActivePokemon() *Pokemon { return &t.Pokemon[t.Active] }

func (t *Team) Members() []Pokemon { return t.Pokemon[:t.Count] }

func (t *Team) Hidden() int { return t.Size - t.Count }

func (t *Team) Empty() bool { return t.Count == 0 }

// Find returns the slot of the first member of species.
func (t *Team) Find(species SpeciesName) (int, bool) {
	for i := 0; i < t.Count; i++ {
		if t.Pokemon[i].Species == species {
			return i, true
		}
	}
	return -1, false
}

// Reveal adds a newly observed member to a partially observed team.
func (t *Team) Reveal(p Pokemon) (int, error) {
	if t.Known {
		return -1, fmt.Errorf("reveal %s on a fully known team: %w", p.Species, ErrTeamFull)
	}
	if t.Count >= t.Size {
		return -1, fmt.Errorf("reveal %s past team size %d: %w", p.Species, t.Size, ErrTeamFull)
	}
	p.Seen = true
	t.Pokemon[t.Count] = p
	t.Count++
	return t.Count - 1, nil
}

// AllFainted reports whether no present member can fight and none are
// hidden.
func (t *Team) AllFainted() bool {
	if t.Hidden() > 0 {
		return false
	}
	for i := 0; i < t.Count; i++ {
		if !t.Pokemon[i].Fainted() {
			return false
		}
	}
	return true
}

// Lost is the terminal condition: the last Pokemon standing has fainted.
func (t *Team) Lost() bool {
	if t.Count == 0 {
		return t.Size == 0
	}
	if t.Size == 1 && t.ActivePokemon().Fainted() {
		return true
	}
	return t.AllFainted()
}

// SwitchDecisionRequired reports whether the team must pick a replacement
// before the next turn can proceed.
func (t *Team) SwitchDecisionRequired() bool {
	if t.Count == 0 {
		return false
	}
	if !t.ActivePokemon().Fainted() && !t.SelfSwitch {
		return false
	}
	return len(t.SwitchTargets()) > 0
}

// SwitchTargets lists the slots that can be switched in.
func (t *Team) SwitchTargets() []int {
	var out []int
	for i := 0; i < t.Count; i++ {
		if i != t.Active && !t.Pokemon[i].Fainted() {
			out = append(out, i)
		}
	}
	return out
}

// RemoveFainted drops fainted members other than the active one, shifting
// later members down and keeping Active on the same Pokemon. Size shrinks
// with Count so the hidden count is unchanged.
func (t *Team) RemoveFainted() {
	w := 0
	active := t.Active
	for r := 0; r < t.Count; r++ {
		if r != t.Active && t.Pokemon[r].Fainted() {
			continue
		}
		if r == t.Active {
			active = w
		}
		t.Pokemon[w] = t.Pokemon[r]
		w++
	}
	removed := t.Count - w
	for i := w; i < t.Count; i++ {
		t.Pokemon[i] = Pokemon{}
	}
	t.Count = w
	t.Size -= removed
	t.Active = active
}

// ClearHazards removes every entry hazard from this side.
func (t *Team) ClearHazards() {
	t.Spikes = 0
	t.ToxicSpikes = 0
	t.StealthRock = false
}
