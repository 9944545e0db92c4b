package game

// BoostableStat indexes a Stage. HP cannot be boosted.
type BoostableStat uint8

const (
	StageAtk BoostableStat = iota
	StageDef
	StageSpA
	StageSpD
	StageSpe
	StageAccuracy
	StageEvasion
	NumBoostable
)

const (
	MinStage = -6
	MaxStage = 6
)

// Stage is the boost track for every boostable stat.
type Stage [NumBoostable]int8

// Boost adds n stages to the stat, clamped to [-6, 6], and reports whether
// anything changed.
func (s *Stage) Boost(stat BoostableStat, n int) bool {
	before := s[stat]
	v := int(before) + n
	if v > MaxStage {
		v = MaxStage
	}
	if v < MinStage {
		v = MinStage
	}
	s[stat] = int8(v)
	return s[stat] != before
}

func (s *Stage) Reset() { *s = Stage{} }

// Modifier returns the stat multiplier as a fraction. Accuracy and evasion
// use thirds, everything else halves.
func (s Stage) Modifier(stat BoostableStat) (num, den int) {
	base := 2
	if stat == StageAccuracy || stat == StageEvasion {
		base = 3
	}
	v := int(s[stat])
	if v >= 0 {
		return base + v, base
	}
	return base, base - v
}

// Apply scales value by the stat's stage.
func (s Stage) Apply(stat BoostableStat, value int) int {
	num, den := s.Modifier(stat)
	return value * num / den
}
