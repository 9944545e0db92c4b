package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/pokesim/selfplay"
)

type tickMsg time.Time

// doneMsg is sent once the runner has returned.
type doneMsg struct{}

// progress is the self-play terminal view.
type progress struct {
	runner    *selfplay.Runner
	startTime time.Time
	played    int64
	decisions int64
	results   map[string]int
	recent    []string
	finished  bool
}

func newProgress(r *selfplay.Runner) progress {
	return progress{runner: r, startTime: time.Now(), results: map[string]int{}}
}

func tickCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func waitForUpdate(updates <-chan selfplay.Update) tea.Cmd {
	return func() tea.Msg { return <-updates }
}

func (m progress) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.runner.Updates), tickCmd())
}

func (m progress) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tickMsg:
		m.played = m.runner.Played.Load()
		m.decisions = m.runner.Decisions.Load()
		return m, tickCmd()
	case doneMsg:
		m.played = m.runner.Played.Load()
		m.decisions = m.runner.Decisions.Load()
		m.finished = true
		return m, tea.Quit
	case selfplay.Update:
		m.results[msg.Result.Winner.String()]++
		line := fmt.Sprintf("worker %d: %s in %d turns (%d decisions)", msg.WorkerID, msg.Result.Winner, msg.Result.Turns, msg.Rows)
		m.recent = append([]string{line}, m.recent...)
		if len(m.recent) > 10 {
			m.recent = m.recent[:10]
		}
		return m, waitForUpdate(m.runner.Updates)
	}
	return m, nil
}

func (m progress) View() string {
	elapsed := time.Since(m.startTime)
	var perSec, decPerSec float64
	if elapsed >= time.Second {
		perSec = float64(m.played) / elapsed.Seconds()
		decPerSec = float64(m.decisions) / elapsed.Seconds()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Battles:        %d\n", m.played)
	fmt.Fprintf(&b, "Decisions:      %d\n", m.decisions)
	fmt.Fprintf(&b, "Duration:       %s\n", elapsed.Round(time.Second))
	fmt.Fprintf(&b, "Battles/Sec:    %.2f\n", perSec)
	fmt.Fprintf(&b, "Decisions/Sec:  %.2f\n", decPerSec)
	fmt.Fprintf(&b, "Results:        ai %d / foe %d / draw %d / undecided %d\n\n",
		m.results["ai wins"], m.results["foe wins"], m.results["draw"], m.results["undecided"])

	b.WriteString("Recent Battles:\n")
	for _, r := range m.recent {
		b.WriteString(r + "\n")
	}
	if !m.finished {
		b.WriteString("\nPress q to stop.\n")
	}
	return b.String()
}
