// Package game defines the battle state model: Pokemon, teams, the field and
// the static species/move/item/ability data they refer to.
//
// Every type here is built from fixed-size arrays, so assigning a State makes
// an independent deep copy. The search relies on this to give each branch its
// own snapshot without allocation.
package game

// Side selects a team. The search always plays AI.
type Side uint8

const (
	AI Side = iota
	Foe
)

func (s Side) Other() Side { return 1 - s }

func (s Side) String() string {
	if s == AI {
		return "ai"
	}
	return "foe"
}

// State is a complete battle snapshot.
type State struct {
	Gen   Generation
	Teams [2]Team
	Env   Environment
}

func NewState(gen Generation, ai, foe Team) State {
	s := State{Gen: gen, Teams: [2]Team{ai, foe}}
	for i := range s.Teams {
		if s.Teams[i].Count > 0 {
			s.Teams[i].ActivePokemon().Seen = true
		}
	}
	return s
}

func (s *State) Team(side Side) *Team { return &s.Teams[side] }

func (s *State) Active(side Side) *Pokemon { return s.Teams[side].ActivePokemon() }

// Swapped returns the state from the other side's point of view.
func (s State) Swapped() State {
	s.Teams[0], s.Teams[1] = s.Teams[1], s.Teams[0]
	return s
}
