package selfplay

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/brensch/pokesim/store"
)

// RunConfig sizes a self-play run.
type RunConfig struct {
	Battle  Config
	Workers int
	// Battles stops the run after this many battles; 0 runs until ctx ends.
	Battles int64
	// Seed makes battle i reproducible and gives it a stable ID. 0 picks one
	// from the clock.
	Seed     int64
	PerFlush int
	OutDir   string
	// WrittenLog lists archived battle IDs so a rerun with the same seed
	// skips them. Empty disables it.
	WrittenLog string
}

// Update reports a finished battle.
type Update struct {
	WorkerID int
	Result   Result
	Rows     int
}

// Runner plays battles on a pool of workers and archives their decisions.
type Runner struct {
	cfg RunConfig
	Log logrus.FieldLogger
	// Updates receives finished battles when there is room; a slow reader
	// misses updates rather than stalling the workers.
	Updates chan Update

	next      atomic.Int64
	Decisions atomic.Int64
	Played    atomic.Int64
	Skipped   atomic.Int64
}

func NewRunner(cfg RunConfig) *Runner {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.PerFlush < 1 {
		cfg.PerFlush = 50
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return &Runner{
		cfg:     cfg,
		Log:     logrus.StandardLogger(),
		Updates: make(chan Update, cfg.Workers),
	}
}

// BattleID is the stable ID of battle index under seed.
func BattleID(seed, index int64) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("pokesim/%d/%d", seed, index))).String()
}

type finished struct {
	id   string
	rows []store.DecisionRow
}

// Run plays until ctx is done or the battle quota is reached, then flushes
// what was written. A battle cut short by cancellation is dropped.
func (r *Runner) Run(ctx context.Context) error {
	var written *store.WrittenLog
	if r.cfg.WrittenLog != "" {
		var err error
		if written, err = store.OpenWrittenLog(r.cfg.WrittenLog); err != nil {
			return err
		}
		defer written.Close()
	}

	out := make(chan finished, r.cfg.Workers*2)
	writerErr := make(chan error, 1)
	go func() {
		writerErr <- r.writeLoop(out, written)
	}()

	var wg sync.WaitGroup
	for i := 0; i < r.cfg.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			r.work(ctx, workerID, written, out)
		}(i)
	}
	wg.Wait()
	close(out)
	return <-writerErr
}

func (r *Runner) work(ctx context.Context, workerID int, written *store.WrittenLog, out chan<- finished) {
	log := r.Log.WithField("worker", workerID)
	for ctx.Err() == nil {
		index := r.next.Add(1) - 1
		if r.cfg.Battles > 0 && index >= r.cfg.Battles {
			return
		}
		id := BattleID(r.cfg.Seed, index)
		if written != nil && written.Has(id) {
			r.Skipped.Add(1)
			continue
		}

		rng := rand.New(rand.NewSource(r.cfg.Seed + index))
		rows, res, err := PlayBattle(ctx, id, r.cfg.Battle, rng, func() { r.Decisions.Add(1) })
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				log.WithError(err).WithField("battle", id).Error("battle failed")
			}
			continue
		}
		r.Played.Add(1)
		log.WithFields(logrus.Fields{
			"battle": id,
			"winner": res.Winner.String(),
			"turns":  res.Turns,
			"rows":   len(rows),
		}).Debug("battle finished")

		out <- finished{id: id, rows: rows}
		select {
		case r.Updates <- Update{WorkerID: workerID, Result: res, Rows: len(rows)}:
		default:
		}
	}
}

// writeLoop batches finished battles into parquet files of PerFlush battles
// and records their IDs once each file is in place.
func (r *Runner) writeLoop(in <-chan finished, written *store.WrittenLog) error {
	var (
		w   *store.BatchWriter
		ids []string
		err error
	)
	flush := func() error {
		if w == nil {
			return nil
		}
		path, rows, battles, ferr := w.Finalize()
		w = nil
		if ferr != nil {
			return ferr
		}
		if written != nil {
			if err := written.AddMany(ids); err != nil {
				return err
			}
		}
		ids = ids[:0]
		if path != "" {
			r.Log.WithFields(logrus.Fields{"path": path, "rows": rows, "battles": battles}).Info("archive flushed")
		}
		return nil
	}

	var firstErr error
	for f := range in {
		if w == nil {
			if w, err = store.NewBatchWriter(r.cfg.OutDir); err != nil {
				// Keep draining so workers never block on a dead writer.
				firstErr = errors.Join(firstErr, err)
				continue
			}
		}
		if err := w.WriteBattle(f.rows); err != nil {
			firstErr = errors.Join(firstErr, err)
			continue
		}
		ids = append(ids, f.id)
		if w.Battles() >= r.cfg.PerFlush {
			if err := flush(); err != nil {
				r.Log.WithError(err).Error("archive flush failed")
				firstErr = errors.Join(firstErr, err)
			}
		}
	}
	if err := flush(); err != nil {
		firstErr = errors.Join(firstErr, err)
	}
	return firstErr
}
