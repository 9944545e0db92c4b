package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/brensch/pokesim/selfplay"
)

func newSelfPlayCmd(a *app) *cobra.Command {
	var (
		workers int
		battles int64
		outDir  string
		noTUI   bool
	)
	cmd := &cobra.Command{
		Use:   "selfplay",
		Short: "Play generated battles between two engines and archive every decision",
		RunE: func(cmd *cobra.Command, args []string) error {
			sp := a.cfg.SelfPlay
			if cmd.Flags().Changed("workers") {
				sp.Workers = workers
			}
			if cmd.Flags().Changed("battles") {
				sp.Battles = battles
			}
			if cmd.Flags().Changed("out-dir") {
				sp.OutDir = outDir
			}
			gen, err := a.cfg.Generation()
			if err != nil {
				return err
			}
			p, err := a.player()
			if err != nil {
				return err
			}
			// Workers already run in parallel; one goroutine per search.
			p.Options.Parallel = 1

			runner := selfplay.NewRunner(selfplay.RunConfig{
				Battle: selfplay.Config{
					Generation: gen,
					TeamSize:   sp.TeamSize,
					MaxTurns:   sp.MaxTurns,
					Players:    [2]selfplay.Player{p, p},
				},
				Workers:    sp.Workers,
				Battles:    sp.Battles,
				Seed:       sp.Seed,
				PerFlush:   sp.PerFlush,
				OutDir:     sp.OutDir,
				WrittenLog: sp.WrittenLog,
			})
			runner.Log = a.log

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if noTUI {
				return runPlain(ctx, runner, a.log)
			}
			return runTUI(ctx, runner, a.log)
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "self-play workers (overrides selfplay.workers)")
	cmd.Flags().Int64Var(&battles, "battles", 0, "stop after this many battles, 0 runs until interrupted")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory for parquet batches")
	cmd.Flags().BoolVar(&noTUI, "no-tui", false, "log progress instead of drawing the terminal view")
	return cmd
}

func runPlain(ctx context.Context, runner *selfplay.Runner, log *logrus.Logger) error {
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	start := time.Now()
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case err := <-done:
			log.WithFields(logrus.Fields{
				"battles":   runner.Played.Load(),
				"decisions": runner.Decisions.Load(),
				"took":      time.Since(start).Round(time.Second).String(),
			}).Info("self-play finished")
			return err
		case u := <-runner.Updates:
			log.WithFields(logrus.Fields{
				"worker": u.WorkerID,
				"battle": u.Result.BattleID,
				"winner": u.Result.Winner.String(),
				"turns":  u.Result.Turns,
			}).Info("battle finished")
		case <-ticker.C:
			secs := time.Since(start).Seconds()
			log.WithFields(logrus.Fields{
				"battles_per_sec":   float64(runner.Played.Load()) / secs,
				"decisions_per_sec": float64(runner.Decisions.Load()) / secs,
			}).Info("self-play stats")
		}
	}
}

// runTUI draws the progress view while the runner plays. Logs go to a
// discard writer while the view owns the terminal.
func runTUI(ctx context.Context, runner *selfplay.Runner, log *logrus.Logger) error {
	out := log.Out
	log.SetOutput(io.Discard)
	defer log.SetOutput(out)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newProgress(runner), tea.WithContext(ctx))
	done := make(chan error, 1)
	go func() {
		done <- runner.Run(ctx)
		p.Send(doneMsg{})
	}()

	m, err := p.Run()
	interrupted := ctx.Err() != nil
	cancel()
	runErr := <-done
	if err != nil && !interrupted {
		return fmt.Errorf("progress view: %w", err)
	}
	if pm, ok := m.(progress); ok {
		fmt.Print(pm.View())
	}
	return runErr
}
