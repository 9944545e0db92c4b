package rules

import (
	"github.com/brensch/pokesim/game"
)

// Result is the state of a battle from the AI's side.
type Result uint8

const (
	Undecided Result = iota
	AIWins
	FoeWins
	Draw
)

func (r Result) String() string {
	switch r {
	case AIWins:
		return "ai wins"
	case FoeWins:
		return "foe wins"
	case Draw:
		return "draw"
	}
	return "undecided"
}

// Winner reports whether the battle is over. Both teams losing at once is a
// draw.
func Winner(s *game.State) Result {
	aiLost, foeLost := s.Team(game.AI).Lost(), s.Team(game.Foe).Lost()
	switch {
	case aiLost && foeLost:
		return Draw
	case foeLost:
		return AIWins
	case aiLost:
		return FoeWins
	}
	return Undecided
}
