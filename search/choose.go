package search

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/brensch/pokesim/game"
)

// Options tune a ChooseAction call.
type Options struct {
	Foe       Predictor
	TableBits int
	Parallel  int
	// Iterative searches each shallower depth first to warm the table.
	Iterative bool
	Log       logrus.FieldLogger
}

// ChooseAction picks the AI's selection for the visible state s.
func ChooseAction(ctx context.Context, s game.State, depth Depth, weights Weights, opts Options) (game.Selection, []ScoredSelection, error) {
	cfg := DefaultConfig()
	cfg.Depth = depth
	cfg.Weights = weights
	if opts.TableBits > 0 {
		cfg.TableBits = opts.TableBits
	}
	if opts.Parallel > 0 {
		cfg.Parallel = opts.Parallel
	}
	e := NewEngine(cfg, opts.Foe)
	if opts.Log != nil {
		e.Log = opts.Log
	}
	if opts.Iterative {
		return e.Deepen(ctx, s)
	}
	return e.Choose(ctx, s, depth)
}

// Deepen runs Choose over the iterative deepening schedule up to the
// configured depth and returns the deepest result.
func (e *Engine) Deepen(ctx context.Context, s game.State) (game.Selection, []ScoredSelection, error) {
	schedule := newDeepening(e.Config.Depth)
	var (
		best   game.Selection
		scored []ScoredSelection
		err    error
		ran    bool
	)
	for {
		d, ok := schedule.Step(ctx)
		if !ok {
			break
		}
		start := time.Now()
		best, scored, err = e.Choose(ctx, s, d)
		if err != nil {
			return game.Selection{}, nil, err
		}
		ran = true
		e.Log.WithFields(logrus.Fields{
			"phase":     schedule.Phase(),
			"depth":     d.String(),
			"selection": best.String(),
			"took":      time.Since(start).String(),
		}).Debug("deepened")
	}
	if !ran {
		return e.Choose(ctx, s, e.Config.Depth)
	}
	stats := e.Table.Stats()
	e.Log.WithFields(logrus.Fields{
		"hits":   stats.Hits,
		"misses": stats.Misses,
		"stores": stats.Stores,
	}).Info("search table")
	return best, scored, nil
}
