package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCellGrid_Size(t *testing.T) {
	g := NewCellGrid(3, 2, true)
	assert.Equal(t, 22, g.Width)
	assert.Equal(t, 15, g.Height)
	assert.Equal(t, CellSolid, g.Cell(21, 14))
	assert.Equal(t, CellHole, NewCellGrid(1, 1, false).Cell(0, 0))
}

func TestCellGrid_EdgeBounds(t *testing.T) {
	g := NewCellGrid(2, 2, false)
	cases := []struct {
		d              Direction
		x0, x1, y0, y1 int
	}{
		{NegX, 7, 7, 8, 13},
		{PosX, 14, 14, 8, 13},
		{NegY, 8, 13, 7, 7},
		{PosY, 8, 13, 14, 14},
	}
	for _, c := range cases {
		x0, x1, y0, y1 := g.EdgeBounds(1, 1, c.d)
		assert.Equal(t, []int{c.x0, c.x1, c.y0, c.y1}, []int{x0, x1, y0, y1}, "edge %s", c.d)
	}
}

func TestCellGrid_ExtendJoinsSolidNeighbours(t *testing.T) {
	g := NewCellGrid(2, 1, false)
	g.SetTileAndExtendNeighbors(0, 0, true)
	assert.Equal(t, CellHole, g.Cell(7, 3), "neighbour not solid yet")

	g.SetTileAndExtendNeighbors(1, 0, true)
	assert.Equal(t, CellSolid, g.Cell(7, 3))
	assert.Equal(t, CellSolid, g.Cell(10, 3))
	assert.Equal(t, CellHole, g.Cell(7, 0), "corner untouched")
	assert.Equal(t, CellHole, g.Cell(0, 3), "outer border untouched")
}

func TestCellGrid_ExtendOpensBorder(t *testing.T) {
	g := NewCellGrid(1, 1, true)
	g.SetTileAndExtendNeighbors(0, 0, false)
	for _, p := range [][2]int{{0, 3}, {7, 3}, {3, 0}, {3, 7}, {3, 3}} {
		assert.Equal(t, CellHole, g.Cell(p[0], p[1]), "cell %v", p)
	}
	assert.Equal(t, CellSolid, g.Cell(0, 0))
	assert.Equal(t, CellSolid, g.Cell(7, 7))
}

func TestCellGrid_SetCorner(t *testing.T) {
	g := NewCellGrid(1, 1, false)
	g.SetCorner(0, 0, PosX, CellSolid, true)
	g.SetCorner(0, 0, NegX, CellSolid, false)
	g.SetCorner(0, 0, PosY, CellPerf, false)
	assert.Equal(t, CellSolid, g.Cell(7, 7))
	assert.Equal(t, CellSolid, g.Cell(0, 0))
	assert.Equal(t, CellPerf, g.Cell(0, 7))

	x, y, found := g.Undetermined()
	assert.True(t, found)
	assert.Equal(t, [2]int{0, 7}, [2]int{x, y})
}

func TestCellGrid_CloneAndString(t *testing.T) {
	g := NewCellGrid(1, 1, false)
	c := g.Clone()
	c.SetCell(0, 0, CellSolid)
	assert.Equal(t, CellHole, g.Cell(0, 0))

	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	assert.Len(t, lines, 8)
	assert.Equal(t, "%```````", lines[7])
}
