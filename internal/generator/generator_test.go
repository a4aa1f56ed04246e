package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dota-tracker/internal/domain"
)

func TestHeroes_Catalog(t *testing.T) {
	heroes := New(1).Heroes()

	require.Len(t, heroes, 20)
	for i, h := range heroes {
		assert.Equal(t, i+1, h.ID)
		assert.NotEmpty(t, h.Name)
		assert.GreaterOrEqual(t, h.Stats.WinRate, 45.0)
		assert.LessOrEqual(t, h.Stats.WinRate, 55.0)
		assert.GreaterOrEqual(t, h.Stats.PickRate, 1.0)
		assert.LessOrEqual(t, h.Stats.PickRate, 30.0)
	}
	assert.Equal(t, "Juggernaut", heroes[7].Name)
}

func TestDemoPlayer_CountersConsistent(t *testing.T) {
	g := New(7)
	now := time.Now()

	for i := 0; i < 100; i++ {
		p := g.DemoPlayer("demo", "Demo", 50, 500, now)
		assert.Equal(t, p.Games, p.Wins+p.Losses)
		assert.Equal(t, domain.WinRate(p.Wins, p.Games), p.WinRate)
		assert.GreaterOrEqual(t, p.Wins, p.Games/3)
		assert.LessOrEqual(t, p.Wins, p.Games/2)
	}
}

func TestHistory_DenseNumbering(t *testing.T) {
	g := New(3)
	now := time.Now()

	matches := g.History("p1", g.Heroes(), 20, 50, now)

	require.GreaterOrEqual(t, len(matches), 20)
	require.LessOrEqual(t, len(matches), 50)
	for i, m := range matches {
		assert.Equal(t, i+1, m.Number)
		assert.Equal(t, domain.MatchID("p1", i+1), m.ID)
		assert.False(t, m.Timestamp.After(now))
		assert.True(t, m.Timestamp.After(now.Add(-historyWindow-time.Second)))
		assert.NotEmpty(t, m.Hero)
	}
}

func TestNew_SeedIsDeterministic(t *testing.T) {
	a := New(42).Heroes()
	b := New(42).Heroes()

	assert.Equal(t, a, b)
}
