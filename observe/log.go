package observe

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/brensch/pokesim/game"
)

// Apply feeds one event line to the battle. Lines are pipe separated:
//
//	|switch|foe|garchomp|100
//	|move|ai|earthquake
//	|damage|foe|45/100
//	|hp|ai|301/341
//	|status|foe|par
//	|faint|foe
//	|weather|sand|5
//	|turn
//
// Blank lines and lines starting with # are ignored.
func (b *Battle) Apply(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(line, "|"), "|")
	kind := parts[0]
	args := parts[1:]

	need := func(n int) error {
		if len(args) < n {
			return fmt.Errorf("%s: want %d fields, got %d", kind, n, len(args))
		}
		return nil
	}

	if kind == "turn" {
		return b.EndTurn()
	}
	if kind == "weather" {
		if err := need(1); err != nil {
			return err
		}
		w, ok := parseWeather(args[0])
		if !ok {
			return fmt.Errorf("unknown weather %q", args[0])
		}
		turns := int8(game.PermanentWeather)
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("weather turns %q: %w", args[1], err)
			}
			turns = int8(n)
		}
		return b.WeatherStarted(w, turns)
	}

	if err := need(1); err != nil {
		return err
	}
	side, err := parseSide(args[0])
	if err != nil {
		return err
	}

	switch kind {
	case "switch":
		if err := need(2); err != nil {
			return err
		}
		species, ok := game.SpeciesByName(args[1])
		if !ok {
			return fmt.Errorf("%q: %w", args[1], ErrUnknownSpecies)
		}
		level := 100
		if len(args) > 2 {
			if level, err = strconv.Atoi(args[2]); err != nil {
				return fmt.Errorf("level %q: %w", args[2], err)
			}
		}
		return b.Switched(side, species, level)
	case "move":
		if err := need(2); err != nil {
			return err
		}
		move, ok := game.MoveByName(args[1])
		if !ok {
			return fmt.Errorf("%q: %w", args[1], ErrImpossibleMove)
		}
		return b.UsedMove(side, move)
	case "damage", "hp":
		if err := need(2); err != nil {
			return err
		}
		hp, den, err := parseHP(args[1])
		if err != nil {
			return err
		}
		if kind == "damage" {
			return b.Damaged(side, hp, den)
		}
		return b.CorrectHP(side, hp, den)
	case "status", "checkstatus":
		status := game.StatusClear
		if len(args) > 1 {
			var ok bool
			if status, ok = parseStatus(args[1]); !ok {
				return fmt.Errorf("unknown status %q", args[1])
			}
		}
		if kind == "status" {
			return b.StatusChanged(side, status)
		}
		return b.CorrectStatus(side, status)
	case "faint":
		return b.Fainted(side)
	}
	return fmt.Errorf("unknown event %q", kind)
}

// ApplyLog feeds every line of r to the battle and stops at the first error.
func (b *Battle) ApplyLog(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		if err := b.Apply(scanner.Text()); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return scanner.Err()
}

func parseSide(s string) (game.Side, error) {
	switch strings.ToLower(s) {
	case "ai", "p1":
		return game.AI, nil
	case "foe", "p2":
		return game.Foe, nil
	}
	return 0, fmt.Errorf("unknown side %q", s)
}

func parseHP(s string) (hp, denominator int, err error) {
	num, den, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return 0, 0, fmt.Errorf("hp %q: want n/d", s)
	}
	if hp, err = strconv.Atoi(num); err != nil {
		return 0, 0, fmt.Errorf("hp %q: %w", s, err)
	}
	if denominator, err = strconv.Atoi(den); err != nil {
		return 0, 0, fmt.Errorf("hp %q: %w", s, err)
	}
	return hp, denominator, nil
}

var statusCodes = map[string]game.StatusName{
	"":    game.StatusClear,
	"brn": game.StatusBurn,
	"frz": game.StatusFreeze,
	"par": game.StatusParalysis,
	"psn": game.StatusPoison,
	"tox": game.StatusToxic,
	"slp": game.StatusSleep,
}

func parseStatus(s string) (game.StatusName, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if st, ok := statusCodes[s]; ok {
		return st, true
	}
	for i := 0; i < game.NumStatuses; i++ {
		if game.StatusName(i).String() == s {
			return game.StatusName(i), true
		}
	}
	return 0, false
}

func parseWeather(s string) (game.Weather, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i := 0; i < game.NumWeathers; i++ {
		if game.Weather(i).String() == s {
			return game.Weather(i), true
		}
	}
	return 0, false
}
