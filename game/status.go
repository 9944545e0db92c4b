package game

type StatusName uint8

const (
	StatusClear StatusName = iota
	StatusBurn
	StatusFreeze
	StatusParalysis
	StatusPoison
	StatusToxic
	StatusSleep
	StatusRest
	numStatuses
)

const NumStatuses = int(numStatuses)

var statusNames = [numStatuses]string{"clear", "burn", "freeze", "paralysis", "poison", "toxic", "sleep", "rest"}

func (s StatusName) String() string {
	if s >= numStatuses {
		return "unknown"
	}
	return statusNames[s]
}

// MaxStatusTurns bounds Status.Turns so the counter packs into a fixed range.
const MaxStatusTurns = 15

// Status is a non-volatile status. Turns counts turns spent asleep for Sleep
// and Rest, and the toxic damage multiplier for Toxic.
type Status struct {
	Name  StatusName
	Turns uint8
}

func (s Status) IsClear() bool { return s.Name == StatusClear }

func (s Status) Asleep() bool { return s.Name == StatusSleep || s.Name == StatusRest }

func (s Status) String() string { return s.Name.String() }

// Tick increments the turn counter, saturating at MaxStatusTurns.
func (s *Status) Tick(n uint8) {
	t := int(s.Turns) + int(n)
	if t > MaxStatusTurns {
		t = MaxStatusTurns
	}
	s.Turns = uint8(t)
}

// sleepRange is the inclusive range of turns a Pokemon spends unable to move
// after falling asleep.
func sleepRange(gen Generation) (lo, hi int) {
	switch {
	case gen <= Gen2:
		return 1, 7
	case gen <= Gen4:
		return 2, 5
	}
	return 1, 3
}

// ProbabilityOfClearing is the chance the status ends when the Pokemon next
// tries to move. Sleep durations are uniform, so the hazard rate rises as
// turns accumulate.
func (s Status) ProbabilityOfClearing(gen Generation, ability Ability) float64 {
	switch s.Name {
	case StatusFreeze:
		return 0.2
	case StatusRest:
		if int(s.Turns) >= 2 {
			return 1
		}
		return 0
	case StatusSleep:
		lo, hi := sleepRange(gen)
		t := int(s.Turns)
		if ability == EarlyBird {
			t *= 2
		}
		switch {
		case t < lo:
			return 0
		case t >= hi:
			return 1
		}
		return 1 / float64(hi-t+1)
	}
	return 0
}
