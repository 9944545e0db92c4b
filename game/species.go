package game

// SpeciesName identifies a species. NoSpecies marks an unrevealed slot.
type SpeciesName uint8

const (
	NoSpecies SpeciesName = iota
	Venusaur
	Charizard
	Blastoise
	Ninetales
	Dugtrio
	Alakazam
	Gengar
	Weezing
	Gyarados
	Snorlax
	Dragonite
	Starmie
	Tauros
	Exeggutor
	Cloyster
	Jolteon
	Clefable
	Politoed
	Wobbuffet
	Forretress
	Skarmory
	Blissey
	Heracross
	Scizor
	Tyranitar
	Swampert
	Breloom
	Salamence
	Metagross
	Infernape
	Garchomp
	Lucario
	Hippowdon
	Toxicroak
	Abomasnow
	Magnezone
	Togekiss
	Gliscor
	RotomWash
	Ferrothorn
	Volcarona
	Conkeldurr
	numSpecies
)

// NumSpecies is the radix used when packing a species into a key.
const NumSpecies = int(numSpecies)

// BaseStats are indexed HP, Atk, Def, SpA, SpD, Spe. Gen1 uses SpA as the
// unified Special stat.
type BaseStats [6]int

type SpeciesData struct {
	Name string
	// Types before Fairy existed, when they differ from Modern.
	Legacy     Types
	Modern     Types
	Base       BaseStats
	Abilities  [2]Ability
	Introduced Generation
	Learnset   []MoveName
}

func types(a, b Type) Types { return Types{First: a, Second: b} }

var speciesTable = [numSpecies]SpeciesData{
	NoSpecies: {Name: "unknown"},
	Venusaur: {"venusaur", Types{}, types(Grass, Poison), BaseStats{80, 82, 83, 100, 100, 80}, [2]Ability{Chlorophyll, Overgrow}, Gen1,
		[]MoveName{GigaDrain, SludgeBomb, LeechSeed, SleepPowder, Earthquake, SwordsDance, Toxic, SolarBeam, EnergyBall}},
	Charizard: {"charizard", Types{}, types(Fire, Flying), BaseStats{78, 84, 78, 109, 85, 100}, [2]Ability{Blaze, SolarPower}, Gen1,
		[]MoveName{Flamethrower, FireBlast, AirSlash, Earthquake, DragonPulse, Roost, SwordsDance, FlareBlitz, FocusBlast}},
	Blastoise: {"blastoise", Types{}, types(Water, Typeless), BaseStats{79, 83, 100, 85, 105, 78}, [2]Ability{Torrent, RainDish}, Gen1,
		[]MoveName{Surf, HydroPump, IceBeam, RapidSpin, Toxic, Scald, Earthquake, BodySlam, Counter}},
	Ninetales: {"ninetales", Types{}, types(Fire, Typeless), BaseStats{73, 76, 75, 81, 100, 100}, [2]Ability{Drought, FlameBody}, Gen1,
		[]MoveName{Flamethrower, FireBlast, WillOWisp, SolarBeam, NastyPlot, Hypnosis, EnergyBall, BodySlam, ConfuseRay}},
	Dugtrio: {"dugtrio", Types{}, types(Ground, Typeless), BaseStats{35, 100, 50, 50, 70, 120}, [2]Ability{ArenaTrap, SandVeil}, Gen1,
		[]MoveName{Earthquake, StoneEdge, SuckerPunch, RockSlide, BodySlam, Dig, Toxic}},
	Alakazam: {"alakazam", Types{}, types(Psychic, Typeless), BaseStats{55, 50, 45, 135, 95, 120}, [2]Ability{InnerFocus, MagicGuard}, Gen1,
		[]MoveName{PsychicMove, FocusBlast, ShadowBall, CalmMind, Recover, ThunderWave, Reflect, SeismicToss, EnergyBall}},
	Gengar: {"gengar", Types{}, types(Ghost, Poison), BaseStats{60, 65, 60, 130, 75, 110}, [2]Ability{Levitate, NoAbility}, Gen1,
		[]MoveName{ShadowBall, SludgeBomb, FocusBlast, Thunderbolt, Hypnosis, PerishSong, NightShade, Explosion, MeanLook, Substitute}},
	Weezing: {"weezing", Types{}, types(Poison, Typeless), BaseStats{65, 90, 120, 85, 70, 60}, [2]Ability{Levitate, NoAbility}, Gen1,
		[]MoveName{SludgeBomb, Flamethrower, WillOWisp, Explosion, Haze, Toxic, Thunderbolt}},
	Gyarados: {"gyarados", Types{}, types(Water, Flying), BaseStats{95, 125, 79, 60, 100, 81}, [2]Ability{Intimidate, NoAbility}, Gen1,
		[]MoveName{Waterfall, DragonDance, Earthquake, StoneEdge, IceBeam, HyperBeam, Surf, BodySlam, Taunt}},
	Snorlax: {"snorlax", Types{}, types(Normal, Typeless), BaseStats{160, 110, 65, 65, 110, 30}, [2]Ability{ThickFat, Immunity}, Gen1,
		[]MoveName{BodySlam, Return, Earthquake, Curse, Rest, SelfDestruct, HyperBeam, Counter, FirePunch, Amnesia}},
	Dragonite: {"dragonite", Types{}, types(Dragon, Flying), BaseStats{91, 134, 95, 100, 100, 80}, [2]Ability{InnerFocus, NoAbility}, Gen1,
		[]MoveName{Outrage, DragonDance, ExtremeSpeed, Earthquake, FirePunch, Roost, HyperBeam, Thunderbolt, Agility, BodySlam}},
	Starmie: {"starmie", Types{}, types(Water, Psychic), BaseStats{60, 75, 85, 100, 85, 115}, [2]Ability{NaturalCure, NoAbility}, Gen1,
		[]MoveName{Surf, HydroPump, Thunderbolt, IceBeam, PsychicMove, Recover, RapidSpin, ThunderWave, Blizzard}},
	Tauros: {"tauros", Types{}, types(Normal, Typeless), BaseStats{75, 100, 95, 40, 70, 110}, [2]Ability{Intimidate, NoAbility}, Gen1,
		[]MoveName{BodySlam, HyperBeam, Earthquake, Blizzard, Return, StoneEdge, Thunderbolt}},
	Exeggutor: {"exeggutor", Types{}, types(Grass, Psychic), BaseStats{95, 95, 85, 125, 75, 55}, [2]Ability{Chlorophyll, NoAbility}, Gen1,
		[]MoveName{PsychicMove, SleepPowder, GigaDrain, Explosion, LeechSeed, SolarBeam, Substitute, DoubleEdge}},
	Cloyster: {"cloyster", Types{}, types(Water, Ice), BaseStats{50, 95, 180, 85, 45, 70}, [2]Ability{ShellArmor, SkillLink}, Gen1,
		[]MoveName{IceShard, RockBlast, Spikes, RapidSpin, Blizzard, Surf, Explosion, IceBeam, Toxic}},
	Jolteon: {"jolteon", Types{}, types(Electric, Typeless), BaseStats{65, 65, 60, 110, 95, 130}, [2]Ability{VoltAbsorb, NoAbility}, Gen1,
		[]MoveName{Thunderbolt, VoltSwitch, ShadowBall, Wish, ThunderWave, BatonPass, Substitute, Agility, DoubleEdge}},
	Clefable: {"clefable", types(Normal, Typeless), types(Fairy, Typeless), BaseStats{95, 70, 73, 95, 90, 60}, [2]Ability{MagicGuard, NoAbility}, Gen1,
		[]MoveName{Moonblast, Flamethrower, ThunderWave, StealthRock, Wish, Protect, BodySlam, Thunderbolt, Counter, CalmMind}},
	Politoed: {"politoed", Types{}, types(Water, Typeless), BaseStats{90, 75, 75, 90, 100, 70}, [2]Ability{Drizzle, WaterAbsorb}, Gen2,
		[]MoveName{Scald, HydroPump, IceBeam, Toxic, PerishSong, Encore, Surf, Rest}},
	Wobbuffet: {"wobbuffet", Types{}, types(Psychic, Typeless), BaseStats{190, 33, 58, 33, 58, 33}, [2]Ability{ShadowTag, NoAbility}, Gen2,
		[]MoveName{Counter, MirrorCoat, Encore, Splash}},
	Forretress: {"forretress", Types{}, types(Bug, Steel), BaseStats{75, 90, 140, 60, 60, 40}, [2]Ability{Sturdy, NoAbility}, Gen2,
		[]MoveName{Spikes, RapidSpin, ToxicSpikes, StealthRock, VoltSwitch, Explosion, Toxic}},
	Skarmory: {"skarmory", Types{}, types(Steel, Flying), BaseStats{65, 80, 140, 40, 70, 70}, [2]Ability{Sturdy, NoAbility}, Gen2,
		[]MoveName{Spikes, Roost, BraveBird, Toxic, StealthRock, Taunt, Fly, Protect}},
	Blissey: {"blissey", Types{}, types(Normal, Typeless), BaseStats{255, 10, 10, 75, 135, 55}, [2]Ability{NaturalCure, SereneGrace}, Gen2,
		[]MoveName{SeismicToss, Toxic, Wish, Protect, Flamethrower, IceBeam, StealthRock, ThunderWave}},
	Heracross: {"heracross", Types{}, types(Bug, Fighting), BaseStats{80, 125, 75, 40, 95, 85}, [2]Ability{Guts, Swarm}, Gen2,
		[]MoveName{CloseCombat, XScissor, StoneEdge, Earthquake, SwordsDance, BrickBreak, Rest, Curse}},
	Scizor: {"scizor", Types{}, types(Bug, Steel), BaseStats{70, 130, 100, 55, 80, 65}, [2]Ability{Technician, Swarm}, Gen2,
		[]MoveName{BulletPunch, UTurn, XScissor, SwordsDance, Roost, BrickBreak, BatonPass, Agility}},
	Tyranitar: {"tyranitar", Types{}, types(Rock, Dark), BaseStats{100, 134, 110, 95, 100, 61}, [2]Ability{SandStream, NoAbility}, Gen2,
		[]MoveName{StoneEdge, Crunch, Earthquake, FireBlast, DragonDance, StealthRock, IceBeam, RockSlide, Curse}},
	Swampert: {"swampert", Types{}, types(Water, Ground), BaseStats{100, 110, 90, 85, 90, 60}, [2]Ability{Torrent, NoAbility}, Gen3,
		[]MoveName{Earthquake, Waterfall, StealthRock, IceBeam, Scald, Surf, RockSlide, Counter, Protect}},
	Breloom: {"breloom", Types{}, types(Grass, Fighting), BaseStats{60, 130, 80, 60, 60, 70}, [2]Ability{PoisonHeal, Technician}, Gen3,
		[]MoveName{Spore, MachPunch, DrainPunch, LeechSeed, StoneEdge, SwordsDance, FocusBlast, Substitute}},
	Salamence: {"salamence", Types{}, types(Dragon, Flying), BaseStats{95, 135, 80, 110, 80, 100}, [2]Ability{Intimidate, NoAbility}, Gen3,
		[]MoveName{Outrage, DragonDance, Earthquake, FireBlast, DracoMeteor, Roost, HydroPump, BraveBird, DragonClaw}},
	Metagross: {"metagross", Types{}, types(Steel, Psychic), BaseStats{80, 135, 130, 95, 90, 70}, [2]Ability{ClearBody, NoAbility}, Gen3,
		[]MoveName{IronHead, Earthquake, BulletPunch, Explosion, StealthRock, IcePunch, ThunderPunch, PsychicMove, Agility}},
	Infernape: {"infernape", Types{}, types(Fire, Fighting), BaseStats{76, 104, 71, 104, 71, 108}, [2]Ability{Blaze}, Gen4,
		[]MoveName{CloseCombat, FlareBlitz, MachPunch, UTurn, StealthRock, NastyPlot, FireBlast, SwordsDance}},
	Garchomp: {"garchomp", Types{}, types(Dragon, Ground), BaseStats{108, 130, 95, 80, 85, 102}, [2]Ability{SandVeil, NoAbility}, Gen4,
		[]MoveName{Earthquake, Outrage, StoneEdge, SwordsDance, StealthRock, FireBlast, DragonClaw, Substitute}},
	Lucario: {"lucario", Types{}, types(Fighting, Steel), BaseStats{70, 110, 70, 115, 70, 90}, [2]Ability{InnerFocus, NoAbility}, Gen4,
		[]MoveName{CloseCombat, ExtremeSpeed, SwordsDance, FocusBlast, NastyPlot, DragonPulse, FlashCannon, BulletPunch}},
	Hippowdon: {"hippowdon", Types{}, types(Ground, Typeless), BaseStats{108, 112, 118, 68, 72, 47}, [2]Ability{SandStream, NoAbility}, Gen4,
		[]MoveName{Earthquake, StealthRock, Roost, Toxic, Yawn, StoneEdge, Crunch}},
	Toxicroak: {"toxicroak", Types{}, types(Poison, Fighting), BaseStats{83, 106, 65, 86, 65, 85}, [2]Ability{DrySkin, NoAbility}, Gen4,
		[]MoveName{DrainPunch, SuckerPunch, PoisonJab, SwordsDance, IcePunch, CloseCombat, Taunt}},
	Abomasnow: {"abomasnow", Types{}, types(Grass, Ice), BaseStats{90, 92, 75, 92, 85, 60}, [2]Ability{SnowWarning, NoAbility}, Gen4,
		[]MoveName{Blizzard, GigaDrain, EnergyBall, IceShard, Earthquake, FocusBlast, LeechSeed, Protect}},
	Magnezone: {"magnezone", Types{}, types(Electric, Steel), BaseStats{70, 70, 115, 130, 90, 60}, [2]Ability{MagnetPull, Sturdy}, Gen4,
		[]MoveName{Thunderbolt, FlashCannon, VoltSwitch, MagnetRise, Substitute, ThunderWave, Thunder, Explosion}},
	Togekiss: {"togekiss", types(Normal, Flying), types(Fairy, Flying), BaseStats{85, 50, 95, 120, 115, 80}, [2]Ability{SereneGrace, NoAbility}, Gen4,
		[]MoveName{AirSlash, Moonblast, Roost, ThunderWave, NastyPlot, FlashCannon, FireBlast, Wish, BatonPass}},
	Gliscor: {"gliscor", Types{}, types(Ground, Flying), BaseStats{75, 95, 125, 45, 75, 95}, [2]Ability{PoisonHeal, SandVeil}, Gen4,
		[]MoveName{Earthquake, UTurn, Roost, Protect, Taunt, StealthRock, SwordsDance, IceShard, Toxic}},
	RotomWash: {"rotom-wash", Types{}, types(Electric, Water), BaseStats{50, 65, 107, 105, 107, 86}, [2]Ability{Levitate, NoAbility}, Gen4,
		[]MoveName{HydroPump, VoltSwitch, WillOWisp, Thunderbolt, Protect, ShadowBall}},
	Ferrothorn: {"ferrothorn", Types{}, types(Grass, Steel), BaseStats{74, 94, 131, 54, 116, 20}, [2]Ability{IronBarbs, NoAbility}, Gen5,
		[]MoveName{LeechSeed, StealthRock, Spikes, Protect, ThunderWave, IronHead}},
	Volcarona: {"volcarona", Types{}, types(Bug, Fire), BaseStats{85, 60, 65, 135, 105, 100}, [2]Ability{FlameBody, Swarm}, Gen5,
		[]MoveName{BugBuzz, FireBlast, Flamethrower, Roost, GigaDrain, WillOWisp, UTurn, PsychicMove}},
	Conkeldurr: {"conkeldurr", Types{}, types(Fighting, Typeless), BaseStats{105, 140, 95, 55, 65, 45}, [2]Ability{Guts, NoAbility}, Gen5,
		[]MoveName{DrainPunch, MachPunch, IcePunch, BulkUp, StoneEdge, PoisonJab, Payback}},
}

var speciesByName = func() map[string]SpeciesName {
	m := make(map[string]SpeciesName, numSpecies)
	for i := NoSpecies + 1; i < numSpecies; i++ {
		m[normalizeName(speciesTable[i].Name)] = i
	}
	return m
}()

// SpeciesByName looks up a species by its display name.
func SpeciesByName(name string) (SpeciesName, bool) {
	s, ok := speciesByName[normalizeName(name)]
	return s, ok
}

func (s SpeciesName) Data() SpeciesData {
	if s >= numSpecies {
		return speciesTable[NoSpecies]
	}
	return speciesTable[s]
}

func (s SpeciesName) String() string { return s.Data().Name }

func (s SpeciesName) AvailableIn(gen Generation) bool {
	d := s.Data()
	return s != NoSpecies && d.Introduced <= gen
}

// Types returns the species' types in the generation, accounting for the
// Gen6 Fairy retyping.
func (s SpeciesName) Types(gen Generation) Types {
	d := s.Data()
	if !gen.HasFairy() && d.Legacy.First != Typeless {
		return d.Legacy
	}
	return d.Modern
}

// CanLearn reports whether the move is in the species' learnset and exists in
// the generation.
func (s SpeciesName) CanLearn(gen Generation, m MoveName) bool {
	if !m.AvailableIn(gen) {
		return false
	}
	for _, l := range s.Data().Learnset {
		if l == m {
			return true
		}
	}
	return false
}

// Learnset returns the species' moves that exist in the generation.
func (s SpeciesName) Learnset(gen Generation) []MoveName {
	var out []MoveName
	for _, m := range s.Data().Learnset {
		if m.AvailableIn(gen) {
			out = append(out, m)
		}
	}
	return out
}

// Species returns every species available in the generation.
func Species(gen Generation) []SpeciesName {
	var out []SpeciesName
	for s := NoSpecies + 1; s < numSpecies; s++ {
		if s.AvailableIn(gen) {
			out = append(out, s)
		}
	}
	return out
}
