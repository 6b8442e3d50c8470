package maze

import (
	"testing"

	"github.com/piwi3910/mazecut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid_CarveRemovesBothSides(t *testing.T) {
	g := NewGrid([3]int{2, 2, 2}, true)
	g.Carve([3]int{0, 0, 0}, model.PosX)

	assert.False(t, g.Wall(0, 0, 0, model.PosX))
	assert.False(t, g.Wall(1, 0, 0, model.NegX))
	assert.True(t, g.Wall(1, 0, 0, model.PosX))

	g.Carve([3]int{1, 1, 1}, model.PosZ) // boundary wall, no neighbour
	assert.False(t, g.Wall(1, 1, 1, model.PosZ))
}

func TestGrid_SetWallTouchesOneCell(t *testing.T) {
	g := NewGrid([3]int{2, 1, 1}, false)
	g.SetWall([3]int{0, 0, 0}, model.PosX, true)
	assert.True(t, g.Wall(0, 0, 0, model.PosX))
	assert.False(t, g.Wall(1, 0, 0, model.NegX))
}

func TestSeedStringRoundTrip(t *testing.T) {
	cases := []struct {
		size   [3]int
		length int
	}{
		{[3]int{3, 3, 3}, 26},
		{[3]int{4, 3, 2}, 30},
	}
	for _, c := range cases {
		g := NewGrid(c.size, true)
		g.seed = 0xdeadbeef
		g.randomness = 0.75

		s := g.SeedString()
		require.Len(t, s, c.length)

		seed, randomness, size, err := ParseSeed(s)
		require.NoError(t, err)
		assert.Equal(t, uint64(0xdeadbeef), seed)
		assert.Equal(t, float32(0.75), randomness)
		assert.Equal(t, c.size, size)
	}
}

func TestParseSeedRejectsBadInput(t *testing.T) {
	_, _, _, err := ParseSeed("abc")
	assert.Error(t, err)
	_, _, _, err = ParseSeed("zz000000000000000000000003")
	assert.Error(t, err)
}

func TestGrid_String(t *testing.T) {
	g := NewGrid([3]int{2, 1, 2}, true)
	g.Carve([3]int{0, 0, 0}, model.PosZ)
	g.Carve([3]int{0, 0, 0}, model.PosX)
	assert.Equal(t, "level 1\n,|#\nlevel 0\n. #\n", g.String())
}
