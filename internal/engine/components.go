package engine

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/piwi3910/mazecut/internal/model"
)

// solidSections splits the SOLID cells of a grid into orthogonally
// connected sections. Sections are ordered by their first cell and cells
// within a section run x-major, matching a column-by-column scan.
func solidSections(g *model.CellGrid) [][]model.Coordinate {
	return components(g.Width, g.Height, func(x, y int) bool {
		return g.Cell(x, y) == model.CellSolid
	})
}

// components returns the orthogonally connected groups of the cells of a
// w x h grid for which in is true, ordered as solidSections orders them.
func components(w, h int, in func(x, y int) bool) [][]model.Coordinate {
	id := func(x, y int) int64 { return int64(x*h + y) }

	graph := simple.NewUndirectedGraph()
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if in(x, y) {
				graph.AddNode(simple.Node(id(x, y)))
			}
		}
	}
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if !in(x, y) {
				continue
			}
			if x+1 < w && in(x+1, y) {
				graph.SetEdge(graph.NewEdge(simple.Node(id(x, y)), simple.Node(id(x+1, y))))
			}
			if y+1 < h && in(x, y+1) {
				graph.SetEdge(graph.NewEdge(simple.Node(id(x, y)), simple.Node(id(x, y+1))))
			}
		}
	}

	var ids [][]int64
	for _, comp := range topo.ConnectedComponents(graph) {
		section := make([]int64, 0, len(comp))
		for _, n := range comp {
			section = append(section, n.ID())
		}
		slices.Sort(section)
		ids = append(ids, section)
	}
	slices.SortFunc(ids, func(a, b []int64) int {
		return cmp.Compare(a[0], b[0])
	})

	out := make([][]model.Coordinate, len(ids))
	for i, section := range ids {
		out[i] = make([]model.Coordinate, len(section))
		for j, n := range section {
			out[i][j] = model.Coordinate{X: int(n) / h, Y: int(n) % h}
		}
	}
	return out
}

// onBorder reports whether a cell lies on the outer ring of the grid.
func onBorder(g *model.CellGrid, c model.Coordinate) bool {
	return c.X == 0 || c.Y == 0 || c.X == g.Width-1 || c.Y == g.Height-1
}
