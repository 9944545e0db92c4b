package observe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brensch/pokesim/game"
)

func TestApplyLog(t *testing.T) {
	b := NewBattle(game.Gen4, game.NewTeam(tyranitar()), 2)
	log := `
# lead
|switch|ai|tyranitar|100
|switch|foe|Magnezone|100
|weather|sand|5
|move|foe|thunderbolt
|status|ai|par
|move|ai|crunch
|turn
|checkstatus|ai|par
|switch|foe|skarmory
`
	require.NoError(t, b.ApplyLog(strings.NewReader(log)))

	s := b.State()
	assert.Equal(t, 1, b.Turn())
	assert.Equal(t, game.Skarmory, s.Active(game.Foe).Species)
	assert.Equal(t, game.StatusParalysis, s.Active(game.AI).Status.Name)
	assert.Equal(t, game.WeatherSand, s.Env.Weather)

	slot, ok := s.Team(game.Foe).Find(game.Magnezone)
	require.True(t, ok)
	_, known := s.Team(game.Foe).Pokemon[slot].FindMove(game.Thunderbolt)
	assert.True(t, known)
}

func TestApplyLog_ReportsLine(t *testing.T) {
	b := NewBattle(game.Gen4, game.NewTeam(tyranitar()), 2)
	err := b.ApplyLog(strings.NewReader("|switch|ai|tyranitar\n|switch|foe|magnezone\n|move|foe|earthquake\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrImpossibleMove)
	assert.Contains(t, err.Error(), "line 3")
}

func TestApply_Malformed(t *testing.T) {
	b := NewBattle(game.Gen4, game.NewTeam(tyranitar()), 2)
	for _, line := range []string{
		"|switch|ai",
		"|switch|p3|tyranitar",
		"|switch|ai|missingno",
		"|damage|ai|half",
		"|weather|fog",
		"|dance|ai",
	} {
		assert.Error(t, b.Apply(line), line)
	}
	assert.NoError(t, b.Apply("   "))
	assert.ErrorIs(t, b.Apply("|switch|ai|missingno"), ErrUnknownSpecies)
}
