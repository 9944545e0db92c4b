package game

import "fmt"

type SelectionKind uint8

const (
	SelectPass SelectionKind = iota
	SelectMove
	SelectSwitch
)

// Selection is the action a side picks for a turn.
type Selection struct {
	Kind SelectionKind
	Move MoveName
	Slot int
}

var PassSelection = Selection{Kind: SelectPass, Move: Pass}

func MoveSelection(m MoveName) Selection { return Selection{Kind: SelectMove, Move: m} }

func SwitchSelection(slot int) Selection { return Selection{Kind: SelectSwitch, Slot: slot} }

func (s Selection) IsMove() bool   { return s.Kind == SelectMove }
func (s Selection) IsSwitch() bool { return s.Kind == SelectSwitch }
func (s Selection) IsPass() bool   { return s.Kind == SelectPass }

func (s Selection) String() string {
	switch s.Kind {
	case SelectMove:
		return s.Move.String()
	case SelectSwitch:
		return fmt.Sprintf("switch %d", s.Slot)
	}
	return "pass"
}
