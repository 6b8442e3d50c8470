package model

import "strings"

// Cell is the state of one raster cell of a panel.
type Cell int

const (
	CellSolid Cell = iota
	CellHole
	CellPerf // undecided until the perforation pattern is applied
)

func (c Cell) String() string {
	switch c {
	case CellHole:
		return "HOLE"
	case CellPerf:
		return "PERF"
	default:
		return "SOLID"
	}
}

// CellGrid is the fine raster of a panel. Each tile spans CellsPerTile
// cells plus a shared boundary line, so a grid of w x h tiles is
// 7w+1 x 7h+1 cells.
type CellGrid struct {
	TilesW, TilesH int
	Width, Height  int

	tiles []bool
	cells []Cell
}

// NewCellGrid returns a grid with every tile and cell solid, or every tile
// and cell open.
func NewCellGrid(tilesW, tilesH int, solid bool) *CellGrid {
	g := &CellGrid{
		TilesW: tilesW,
		TilesH: tilesH,
		Width:  CellsPerTile*tilesW + 1,
		Height: CellsPerTile*tilesH + 1,
	}
	g.tiles = make([]bool, tilesW*tilesH)
	g.cells = make([]Cell, g.Width*g.Height)
	fill := CellHole
	if solid {
		fill = CellSolid
	}
	for i := range g.tiles {
		g.tiles[i] = solid
	}
	for i := range g.cells {
		g.cells[i] = fill
	}
	return g
}

func (g *CellGrid) Cell(x, y int) Cell {
	return g.cells[x*g.Height+y]
}

func (g *CellGrid) SetCell(x, y int, c Cell) {
	g.cells[x*g.Height+y] = c
}

// InBounds reports whether (x, y) is a cell of the grid.
func (g *CellGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

func (g *CellGrid) tileInBounds(tx, ty int) bool {
	return tx >= 0 && tx < g.TilesW && ty >= 0 && ty < g.TilesH
}

// SetTile fills the 6x6 interior of a tile.
func (g *CellGrid) SetTile(tx, ty int, solid bool) {
	g.tiles[tx*g.TilesH+ty] = solid
	v := CellHole
	if solid {
		v = CellSolid
	}
	for x := CellsPerTile*tx + 1; x < CellsPerTile*(tx+1); x++ {
		for y := CellsPerTile*ty + 1; y < CellsPerTile*(ty+1); y++ {
			g.SetCell(x, y, v)
		}
	}
}

// SetTileAndExtendNeighbors fills a tile and opens or closes the edges it
// shares with like neighbours. A solid tile joins solid neighbours; an
// open tile also opens edges on the grid border.
func (g *CellGrid) SetTileAndExtendNeighbors(tx, ty int, solid bool) {
	g.SetTile(tx, ty, solid)
	for _, d := range Directions(2) {
		nx, ny := tx+d.Offset(0), ty+d.Offset(1)
		inside := g.tileInBounds(nx, ny)
		if solid {
			if inside && g.tiles[nx*g.TilesH+ny] {
				g.SetEdge(tx, ty, d, CellSolid)
			}
		} else if !inside || !g.tiles[nx*g.TilesH+ny] {
			g.SetEdge(tx, ty, d, CellHole)
		}
	}
}

// EdgeBounds returns the inclusive cell range of the six cells along side
// d of a tile, excluding the corners.
func (g *CellGrid) EdgeBounds(tx, ty int, d Direction) (x0, x1, y0, y1 int) {
	x0, y0 = CellsPerTile*tx, CellsPerTile*ty
	if d.Dim == 0 {
		y0++
		if d.Positive {
			x0 += CellsPerTile
		}
		return x0, x0, y0, y0 + TileSize - 1
	}
	x0++
	if d.Positive {
		y0 += CellsPerTile
	}
	return x0, x0 + TileSize - 1, y0, y0
}

// SetEdge sets the six cells along side d of a tile.
func (g *CellGrid) SetEdge(tx, ty int, d Direction, c Cell) {
	x0, x1, y0, y1 := g.EdgeBounds(tx, ty, d)
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			g.SetCell(x, y, c)
		}
	}
}

// SetCorner sets the corner cell at the lower or upper end of side d of a
// tile.
func (g *CellGrid) SetCorner(tx, ty int, d Direction, c Cell, upper bool) {
	x0, x1, y0, y1 := g.EdgeBounds(tx, ty, d)
	switch {
	case d.Dim == 0 && !upper:
		g.SetCell(x0, y0-1, c)
	case d.Dim == 0:
		g.SetCell(x1, y1+1, c)
	case !upper:
		g.SetCell(x0-1, y0, c)
	default:
		g.SetCell(x1+1, y1, c)
	}
}

// Undetermined returns the first PERF cell, if any.
func (g *CellGrid) Undetermined() (x, y int, found bool) {
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			if g.Cell(x, y) == CellPerf {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

// Solid returns the solid mask indexed [x][y].
func (g *CellGrid) Solid() [][]bool {
	out := make([][]bool, g.Width)
	for x := range out {
		out[x] = make([]bool, g.Height)
		for y := range out[x] {
			out[x][y] = g.Cell(x, y) == CellSolid
		}
	}
	return out
}

// Clone returns a deep copy of the grid.
func (g *CellGrid) Clone() *CellGrid {
	c := *g
	c.tiles = append([]bool(nil), g.tiles...)
	c.cells = append([]Cell(nil), g.cells...)
	return &c
}

// String renders the grid top row first: '%' solid, '`' hole, '*' perf.
func (g *CellGrid) String() string {
	var sb strings.Builder
	sb.Grow((g.Width + 1) * g.Height)
	for y := g.Height - 1; y >= 0; y-- {
		for x := 0; x < g.Width; x++ {
			switch g.Cell(x, y) {
			case CellHole:
				sb.WriteByte('`')
			case CellPerf:
				sb.WriteByte('*')
			default:
				sb.WriteByte('%')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
