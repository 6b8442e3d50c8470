package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/mazecut/internal/maze"
	"github.com/piwi3910/mazecut/internal/model"
)

// corridorMaze is a fully walled 3x3x3 grid with one straight corridor
// along X at y=1, z=1.
func corridorMaze() *maze.Grid {
	g := maze.NewGrid([3]int{3, 3, 3}, true)
	g.Carve([3]int{0, 1, 1}, model.PosX)
	g.Carve([3]int{1, 1, 1}, model.PosX)
	return g
}

// wallTiles lists every internal vertical wall face of w as the location
// of the cell on its negative side, split by plane orientation.
func wallTiles(w model.Walls) map[[4]int]bool {
	size := w.Size()
	out := make(map[[4]int]bool)
	for z := 0; z < size[2]; z++ {
		for y := 0; y < size[1]; y++ {
			for x := 0; x < size[0]; x++ {
				if y < size[1]-1 && w.Wall(x, y, z, model.PosY) {
					out[[4]int{0, x, y, z}] = true
				}
				if x < size[0]-1 && w.Wall(x, y, z, model.PosX) {
					out[[4]int{1, x, y, z}] = true
				}
			}
		}
	}
	return out
}

func panelTiles(t *testing.T, tetris []model.TetrisPanel) map[[4]int]bool {
	t.Helper()
	out := make(map[[4]int]bool)
	for _, p := range tetris {
		orient := 0
		if p.YZ {
			orient = 1
		}
		for _, c := range p.Shape.Items() {
			loc := p.CoordinateToLocation(c)
			key := [4]int{orient, loc[0], loc[1], loc[2]}
			require.False(t, out[key], "wall face %v covered twice", key)
			out[key] = true
		}
	}
	return out
}

// assertOverhang checks that every tile rests on the panel's lowest level
// or on another tile.
func assertOverhang(t *testing.T, tetris []model.TetrisPanel) {
	t.Helper()
	for i, p := range tetris {
		minY := p.Shape.MinY()
		for _, c := range p.Shape.Items() {
			if c.Y == minY {
				continue
			}
			assert.True(t, p.Contains(model.Coordinate{X: c.X, Y: c.Y - 1}),
				"tile %v of panel %d overhangs", c, i)
		}
	}
}

func TestBuildPieces_Corridor(t *testing.T) {
	w := corridorMaze()
	pieces, err := BuildPieces(w)
	require.NoError(t, err)

	require.Len(t, pieces.Layers, 4)
	for i, l := range pieces.Layers {
		assert.Equal(t, i-1, l.Z)
	}
	require.Len(t, pieces.Sides, 4)
	for i, s := range pieces.Sides {
		assert.Equal(t, model.SideNormals[i], s.Normal)
	}

	want := wallTiles(w)
	assert.Len(t, want, 34)
	if diff := cmp.Diff(want, panelTiles(t, pieces.Tetris)); diff != "" {
		t.Errorf("tetris tiles differ from wall faces (-want +got):\n%s", diff)
	}
	assertOverhang(t, pieces.Tetris)
}

func TestBuildPieces_XZBeforeYZ(t *testing.T) {
	pieces, err := BuildPieces(corridorMaze())
	require.NoError(t, err)

	seenYZ := false
	for _, p := range pieces.Tetris {
		if p.YZ {
			seenYZ = true
			continue
		}
		assert.False(t, seenYZ, "XZ panel listed after a YZ panel")
	}
}

func TestBuildPieces_NoOrthogonalCrossings(t *testing.T) {
	pieces, err := BuildPieces(corridorMaze())
	require.NoError(t, err)

	for _, xz := range pieces.Tetris {
		if xz.YZ {
			continue
		}
		for _, yz := range pieces.Tetris {
			if yz.YZ {
				assert.False(t, model.IntersectsOrthogonally(xz, yz))
			}
		}
	}
}

func TestPlaceTile_KeepsOverhangingPanelsApart(t *testing.T) {
	var plane []model.TetrisPanel
	for x := 0; x < 4; x++ {
		plane = placeTile(plane, [3]int{x, 0, 0}, false)
	}
	require.Len(t, plane, 1)

	// nothing below, not on the lowest level
	plane = placeTile(plane, [3]int{4, 0, 1}, false)
	require.Len(t, plane, 2)

	// rests on the floor panel and sits beside the stray tile, but the
	// merged shape would overhang
	plane = placeTile(plane, [3]int{3, 0, 1}, false)
	require.Len(t, plane, 2)
	assert.Equal(t, 5, plane[0].Shape.Len())
	assert.Equal(t, 1, plane[1].Shape.Len())
}

func TestPlaceTile_MergesBridgedPanels(t *testing.T) {
	var plane []model.TetrisPanel
	plane = placeTile(plane, [3]int{0, 0, 0}, false)
	plane = placeTile(plane, [3]int{2, 0, 0}, false)
	require.Len(t, plane, 2)

	plane = placeTile(plane, [3]int{1, 0, 0}, false)
	require.Len(t, plane, 1)
	assert.Equal(t, 3, plane[0].Shape.Len())
}

func TestBuildPieces_GeneratedMazes(t *testing.T) {
	gen := &maze.Generator{Size: [3]int{3, 3, 3}, Randomness: 0.5}
	for seed := uint64(1); seed <= 20; seed++ {
		w, err := gen.Generate(seed)
		require.NoError(t, err)

		pieces, err := BuildPieces(w)
		if err != nil {
			require.True(t, model.IsMazeDependent(err), "seed %d: %v", seed, err)
			continue
		}
		assert.Len(t, pieces.Layers, 4)
		assert.Len(t, pieces.Sides, 4)
		if diff := cmp.Diff(wallTiles(w), panelTiles(t, pieces.Tetris)); diff != "" {
			t.Errorf("seed %d: tetris tiles differ from wall faces (-want +got):\n%s", seed, diff)
		}
		assertOverhang(t, pieces.Tetris)
	}
}
