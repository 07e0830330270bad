package wager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GuildPoints_Go/internal/domain"
)

func TestDrawChoice_LossNeverShowsChoice(t *testing.T) {
	g, err := defaultTable().Lookup(domain.GameDice)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		d := drawChoice(g, "3", &scriptedSource{floats: []float64{0.9}, ints: []int{i}})
		assert.False(t, d.won)
		assert.NotEqual(t, "3", d.result)
		assert.Contains(t, g.Choices, d.result)
	}
}

func TestDrawChoice_WinShowsChoice(t *testing.T) {
	g, err := defaultTable().Lookup(domain.GameHorse)
	require.NoError(t, err)

	d := drawChoice(g, "2", &scriptedSource{floats: []float64{0.1}})
	assert.True(t, d.won)
	assert.Equal(t, "2", d.result)
}

func TestDrawSlots(t *testing.T) {
	g, err := defaultTable().Lookup(domain.GameSlots)
	require.NoError(t, err)

	t.Run("accepted triple wins", func(t *testing.T) {
		d := drawSlots(g, &scriptedSource{ints: []int{4, 4, 4}, floats: []float64{0.5}})
		assert.True(t, d.won)
		assert.Equal(t, []string{"seven", "seven", "seven"}, d.reels)
		assert.Equal(t, "seven | seven | seven", d.result)
	})

	t.Run("rejected triple shows a loss", func(t *testing.T) {
		d := drawSlots(g, &scriptedSource{ints: []int{4, 4, 4, 0}, floats: []float64{0.95}})
		assert.False(t, d.won)
		assert.Equal(t, []string{"seven", "seven", "cherry"}, d.reels)
	})

	t.Run("mixed reels lose without an acceptance roll", func(t *testing.T) {
		src := &scriptedSource{ints: []int{0, 1, 2}, floats: []float64{0}}
		d := drawSlots(g, src)
		assert.False(t, d.won)
		assert.Equal(t, []string{"cherry", "lemon", "bell"}, d.reels)
		assert.Len(t, src.floats, 1)
	})
}

func TestDraw_WinRatesTrackEffectiveProbability(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping sampling test in short mode")
	}

	table := defaultTable()
	rng := NewSeededSource(42)
	const n = 200000

	for _, key := range []string{domain.GameOddEven, domain.GameDice, domain.GameHorse, domain.GameSlots} {
		g, err := table.Lookup(key)
		require.NoError(t, err)

		wins := 0
		for i := 0; i < n; i++ {
			var d draw
			if g.IsSlots() {
				d = drawSlots(g, rng)
			} else {
				d = drawChoice(g, g.Choices[0], rng)
			}
			if d.won {
				wins++
			}
		}
		assert.InDelta(t, g.EffectiveWinProbability, float64(wins)/n, 0.005, key)
	}
}
