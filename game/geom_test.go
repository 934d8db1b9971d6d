package game_test

import (
	"math/rand/v2"
	"testing"

	"github.com/plus3/crossing/game"
	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	base := game.Rect{X: 10, Y: 10, W: 20, H: 20}

	tests := []struct {
		name string
		r    game.Rect
		want bool
	}{
		{"same", base, true},
		{"inside", game.Rect{X: 15, Y: 15, W: 5, H: 5}, true},
		{"corner", game.Rect{X: 25, Y: 25, W: 20, H: 20}, true},
		{"touching right edge", game.Rect{X: 30, Y: 10, W: 10, H: 10}, false},
		{"touching top edge", game.Rect{X: 10, Y: 30, W: 10, H: 10}, false},
		{"left of", game.Rect{X: -20, Y: 10, W: 10, H: 10}, false},
		{"across bottom edge", game.Rect{X: 10, Y: 5, W: 10, H: 10}, true},
		{"below", game.Rect{X: 10, Y: -15, W: 10, H: 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, game.Overlaps(base, tt.r))
		})
	}
}

func TestOverlapsIsSymmetric(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	randRect := func() game.Rect {
		return game.Rect{
			X: rng.Float64()*100 - 50,
			Y: rng.Float64()*100 - 50,
			W: rng.Float64() * 40,
			H: rng.Float64() * 40,
		}
	}

	for range 10000 {
		a, b := randRect(), randRect()
		assert.Equal(t, game.Overlaps(a, b), game.Overlaps(b, a), "%+v %+v", a, b)
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range []game.Direction{game.DirLeft, game.DirRight, game.DirUp, game.DirDown} {
		got, err := game.ParseDirection(" " + d.String() + " ")
		assert.NoError(t, err)
		assert.Equal(t, d, got)
	}

	_, err := game.ParseDirection("sideways")
	assert.Error(t, err)
}
