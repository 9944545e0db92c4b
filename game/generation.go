package game

import "fmt"

// Generation selects which historical rule variant applies. It is a closed
// set; rules code switches on it directly.
type Generation uint8

const (
	Gen1 Generation = iota + 1
	Gen2
	Gen3
	Gen4
	Gen5
	Gen6
	Gen7
	Gen8
)

// Generations lists every supported ruleset in order.
var Generations = []Generation{Gen1, Gen2, Gen3, Gen4, Gen5, Gen6, Gen7, Gen8}

func (g Generation) Valid() bool { return g >= Gen1 && g <= Gen8 }

func (g Generation) String() string {
	if !g.Valid() {
		return fmt.Sprintf("gen(%d)", uint8(g))
	}
	return fmt.Sprintf("gen%d", uint8(g))
}

// ParseGeneration accepts "gen4", "4" or "Gen4".
func ParseGeneration(s string) (Generation, error) {
	var n int
	if _, err := fmt.Sscanf(s, "gen%d", &n); err != nil {
		if _, err := fmt.Sscanf(s, "Gen%d", &n); err != nil {
			if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
				return 0, fmt.Errorf("parse generation %q: %w", s, err)
			}
		}
	}
	g := Generation(n)
	if !g.Valid() {
		return 0, fmt.Errorf("generation %d out of range", n)
	}
	return g, nil
}

func (g Generation) HasAbilities() bool { return g >= Gen3 }
func (g Generation) HasItems() bool     { return g >= Gen2 }

// HasSplitCategories reports whether physical/special is decided per move
// rather than per type.
func (g Generation) HasSplitCategories() bool { return g >= Gen4 }

func (g Generation) HasFairy() bool { return g >= Gen6 }
