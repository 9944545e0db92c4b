package game

import "math/rand"

var generatedItems = []Item{
	Leftovers, Leftovers, LifeOrb, ChoiceBand, ChoiceSpecs, ChoiceScarf, ExpertBelt,
	SitrusBerry, LumBerry, FocusSash, LightClay, RockyHelmet, ShedShell, ScopeLens,
}

// GenerateTeam builds a random team of size members from the species and
// learnsets available in gen. The same rng sequence yields the same team.
func GenerateTeam(gen Generation, size int, rng *rand.Rand) Team {
	pool := Species(gen)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	size = min(size, MaxTeamSize, len(pool))

	members := make([]Pokemon, 0, size)
	for _, species := range pool[:size] {
		members = append(members, GeneratePokemon(gen, species, rng))
	}
	return NewTeam(members...)
}

// GeneratePokemon builds a level 100 member of species with a random nature,
// item, ability and up to four moves from its learnset.
func GeneratePokemon(gen Generation, species SpeciesName, rng *rand.Rand) Pokemon {
	d := species.Data()
	ability := d.Abilities[0]
	if d.Abilities[1] != NoAbility && rng.Intn(2) == 1 {
		ability = d.Abilities[1]
	}
	item := generatedItems[rng.Intn(len(generatedItems))]
	if item == Leftovers && species.Types(gen).Has(Poison) && gen >= Gen4 {
		item = BlackSludge
	}
	learnset := species.Learnset(gen)
	rng.Shuffle(len(learnset), func(i, j int) { learnset[i], learnset[j] = learnset[j], learnset[i] })
	return NewPokemon(gen, species, 100, Nature(rng.Intn(NumNatures)), MaxSpread(), ability, item, learnset[:min(MaxMoves, len(learnset))]...)
}
