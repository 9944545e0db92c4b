package search

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
)

// Depth bounds a search. General counts full turns where both sides choose.
// Single counts the turns of the 1v1 matchups searched after the general
// phase runs out.
type Depth struct {
	General int
	Single  int
}

func (d Depth) String() string { return fmt.Sprintf("%d/%d", d.General, d.Single) }

// Next is the depth left after one more full turn.
func (d Depth) Next() Depth {
	if d.General > 0 {
		d.General--
	}
	return d
}

// Covers reports whether a result computed at d can stand in for one at o.
func (d Depth) Covers(o Depth) bool {
	return d.General >= o.General && d.Single >= o.Single
}

const (
	phaseGeneral  = "general"
	phaseSingle   = "single"
	phaseFinished = "finished"

	eventDeepen = "deepen"
)

// deepening walks the iterative deepening schedule: general depth 1..N with no
// single phase, then single depth 1..M at full general depth, then finished.
type deepening struct {
	target  Depth
	current Depth
	machine *fsm.FSM
}

func newDeepening(target Depth) *deepening {
	d := &deepening{target: target}
	d.machine = fsm.NewFSM(
		phaseGeneral,
		fsm.Events{
			{Name: eventDeepen, Src: []string{phaseGeneral}, Dst: phaseSingle},
			{Name: eventDeepen, Src: []string{phaseSingle}, Dst: phaseFinished},
		},
		fsm.Callbacks{},
	)
	return d
}

// Phase is the current state of the schedule.
func (d *deepening) Phase() string { return d.machine.Current() }

// Step returns the next depth to search, or false once the schedule is done.
func (d *deepening) Step(ctx context.Context) (Depth, bool) {
	for {
		switch d.machine.Current() {
		case phaseGeneral:
			if d.current.General < d.target.General {
				d.current.General++
				return d.current, true
			}
		case phaseSingle:
			if d.current.Single < d.target.Single {
				d.current.Single++
				return d.current, true
			}
		default:
			return d.current, false
		}
		if err := d.machine.Event(ctx, eventDeepen); err != nil {
			return d.current, false
		}
	}
}
