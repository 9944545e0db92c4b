package search

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/brensch/pokesim/game"
)

// KeyWords is the capacity of a Key in 64-bit words.
const KeyWords = 48

// Key is the mixed-radix packing of every field that matters to the search.
// Rules-equivalent states produce equal keys. Keys are comparable.
type Key struct {
	words [KeyWords]uint64
	used  int
}

// Bytes is the little-endian encoding of the used words.
func (k Key) Bytes() []byte {
	out := make([]byte, 0, k.used*8)
	for _, w := range k.words[:k.used] {
		out = binary.LittleEndian.AppendUint64(out, w)
	}
	return out
}

func (k Key) String() string { return fmt.Sprintf("%x", k.Bytes()) }

// packer accumulates values into the current word as acc*radix + v. When the
// product of the radices in a word would overflow, packing continues in the
// next word. Spills depend only on the radix sequence, so the packing is
// injective for a fixed sequence of radices.
type packer struct {
	key  Key
	span uint64
}

func newPacker() *packer {
	return &packer{key: Key{used: 1}, span: 1}
}

func (p *packer) push(v, radix uint64) {
	if v >= radix {
		panic(fmt.Sprintf("compress: value %d outside radix %d", v, radix))
	}
	hi, span := bits.Mul64(p.span, radix)
	if hi != 0 {
		if p.key.used == KeyWords {
			panic("compress: key overflow")
		}
		p.key.used++
		span = radix
	}
	p.span = span
	w := &p.key.words[p.key.used-1]
	*w = *w*radix + v
}

func (p *packer) pushInt(v, radix int) { p.push(uint64(v), uint64(radix)) }

func (p *packer) pushBool(b bool) {
	if b {
		p.push(1, 2)
	} else {
		p.push(0, 2)
	}
}

// pushClamped packs v limited to [0, radix-1]. It is used for amounts whose
// effect saturates, such as damage beyond any Pokemon's HP.
func (p *packer) pushClamped(v, radix int) {
	p.pushInt(max(0, min(v, radix-1)), radix)
}

const (
	// hpRadix bounds HP-sized quantities: no Pokemon has 1024 HP.
	hpRadix    = 1024
	// statRadix bounds computed non-HP stats. Values above it share a key.
	statRadix  = 4096
	levelRadix = 101
	stageRadix = game.MaxStage - game.MinStage + 1
	turnsRadix = 16
)

// Compress packs s into its search key.
func Compress(s *game.State) Key {
	p := newPacker()
	p.pushInt(int(s.Gen), len(game.Generations)+1)
	compressEnvironment(p, s.Env)
	for i := range s.Teams {
		compressTeam(p, &s.Teams[i])
	}
	return p.key
}

func compressEnvironment(p *packer, env game.Environment) {
	p.pushInt(int(env.Weather), game.NumWeathers)
	p.pushInt(int(env.WeatherTurns)+1, turnsRadix)
	p.pushInt(int(env.TrickRoom), turnsRadix)
	p.pushInt(int(env.Gravity), turnsRadix)
	p.pushInt(int(env.MagicRoom), turnsRadix)
}

func compressTeam(p *packer, t *game.Team) {
	p.pushInt(t.Count, game.MaxTeamSize+1)
	p.pushInt(t.Size, game.MaxTeamSize+1)
	if t.Count > 0 {
		p.pushInt(t.Active, t.Count)
	}
	p.pushInt(int(t.Spikes), 4)
	p.pushInt(int(t.ToxicSpikes), 3)
	p.pushBool(t.StealthRock)
	p.pushInt(int(t.Reflect), turnsRadix)
	p.pushInt(int(t.LightScreen), turnsRadix)
	p.pushInt(int(t.Wish.Turns), 4)
	p.pushClamped(t.Wish.Amount, hpRadix)
	p.pushInt(int(t.Future.Turns), 4)
	p.pushClamped(t.Future.Damage, hpRadix)
	p.pushBool(t.SelfSwitch)
	p.pushBool(t.BatonPass)
	for i := 0; i < t.Count; i++ {
		compressPokemon(p, &t.Pokemon[i])
		if i == t.Active {
			compressVolatile(p, &t.Pokemon[i].Volatile)
		}
	}
}

func compressPokemon(p *packer, m *game.Pokemon) {
	p.pushInt(int(m.Species), game.NumSpecies)
	p.pushInt(int(m.Ability), game.NumAbilities)
	p.pushInt(int(m.Item), game.NumItems)
	p.pushClamped(int(m.Level), levelRadix)
	p.pushClamped(m.MaxHP(), hpRadix)
	p.pushInt(max(0, m.HP), m.MaxHP()+1)
	for stat := game.Atk; stat < game.NumStats; stat++ {
		p.pushClamped(m.Stats[stat], statRadix)
	}
	p.pushInt(int(m.Status.Name), game.NumStatuses)
	p.pushInt(int(m.Status.Turns), game.MaxStatusTurns+1)
	p.pushInt(m.MoveCount, game.MaxMoves+1)
	for i := 0; i < m.MoveCount; i++ {
		slot := m.Moves[i]
		p.pushInt(int(slot.Name), game.NumMoves)
		p.pushInt(int(slot.PP), int(slot.MaxPP)+1)
	}
}

func compressVolatile(p *packer, v *game.Volatile) {
	for _, st := range v.Stage {
		p.pushInt(int(st)-game.MinStage, stageRadix)
	}
	p.pushInt(int(v.Confusion), turnsRadix)
	p.pushClamped(v.Substitute, hpRadix)
	p.pushInt(int(v.LockIn.Kind), game.NumLockIns)
	p.pushInt(int(v.LockIn.Counter), turnsRadix)
	p.pushInt(int(v.LockIn.Move), game.NumMoves)
	p.pushClamped(v.LockIn.Damage, hpRadix)

	p.pushInt(int(v.LastMove), game.NumMoves)
	p.pushBool(v.Moved)
	p.pushBool(v.Flinched)
	p.pushBool(v.SwitchedIn)
	p.pushInt(int(v.ProtectStreak), game.MaxProtectStreak+1)
	p.pushClamped(v.DamageTaken, hpRadix)
	p.pushBool(v.DamagePhysical)

	for _, b := range [...]bool{v.LeechSeeded, v.Ingrained, v.AquaRing, v.Cursed, v.Trapped, v.Torment, v.FocusEnergy, v.PerishSong} {
		p.pushBool(b)
	}
	for _, c := range [...]uint8{v.Perish, v.Taunt, v.Disable, v.Encore, v.MagnetRise, v.HealBlock, v.Embargo, v.Yawn, v.PartialTrap, v.Stockpile} {
		p.pushInt(int(c), turnsRadix)
	}
	p.pushInt(int(v.DisabledMove), game.NumMoves)
}
