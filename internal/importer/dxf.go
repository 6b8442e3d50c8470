package importer

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/mazecut/internal/model"
)

// gridTolerance is how far, in cells, a vertex may sit from the nearest
// sheet cell before it is reported.
const gridTolerance = 0.01

// segment is an undirected line between two sheet cells.
type segment struct {
	start model.Coordinate
	end   model.Coordinate
}

// ImportSheetDXF reads the cut lines of a DXF sheet back into sheet cells.
// LWPOLYLINEs become one path each. Loose LINE entities are chained into
// paths at shared endpoints. TEXT and other entities are skipped.
func ImportSheetDXF(path string, cellWidth float64) ImportResult {
	result := ImportResult{}
	if cellWidth <= 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid cell width %v", cellWidth))
		return result
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	offGrid := 0
	snap := func(x, y float64) model.Coordinate {
		cx, cy := x/cellWidth, y/cellWidth
		c := model.Coordinate{X: int(math.Round(cx)), Y: int(math.Round(cy))}
		if math.Abs(cx-float64(c.X)) > gridTolerance || math.Abs(cy-float64(c.Y)) > gridTolerance {
			offGrid++
		}
		return c
	}

	var segments []segment
	for _, ent := range drawing.Entities() {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			var p model.CutPath
			for _, v := range e.Vertices {
				p = append(p, snap(v[0], v[1]))
			}
			if len(p) < 2 {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 2 vertices")
				continue
			}
			result.Paths = append(result.Paths, p)

		case *entity.Line:
			segments = append(segments, segment{
				start: snap(e.Start[0], e.Start[1]),
				end:   snap(e.End[0], e.End[1]),
			})
		}
	}
	result.Paths = append(result.Paths, chainSegments(segments)...)

	if offGrid > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%d vertices off the %.4f in grid", offGrid, cellWidth))
	}
	if len(result.Paths) == 0 {
		result.Warnings = append(result.Warnings, "DXF file contains no cut lines")
	}
	return result
}

// chainSegments joins segments sharing an endpoint into paths, taking
// segments in order. A chain that closes repeats its first cell.
func chainSegments(segs []segment) []model.CutPath {
	used := make([]bool, len(segs))
	var paths []model.CutPath

	for i := range segs {
		if used[i] {
			continue
		}
		used[i] = true
		chain := model.CutPath{segs[i].start, segs[i].end}

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]
			for j, seg := range segs {
				if used[j] {
					continue
				}
				if seg.start == tail {
					chain = append(chain, seg.end)
				} else if seg.end == tail {
					chain = append(chain, seg.start)
				} else {
					continue
				}
				used[j] = true
				changed = true
				break
			}
		}
		paths = append(paths, chain)
	}
	return paths
}

// unitEdges splits every path into edges one cell long. Paths must move
// along one axis at a time.
func unitEdges(paths []model.CutPath) (map[segment]bool, error) {
	edges := make(map[segment]bool)
	for _, p := range paths {
		for i := 1; i < len(p); i++ {
			a, b := p[i-1], p[i]
			if a.X != b.X && a.Y != b.Y {
				return nil, fmt.Errorf("diagonal cut from (%d, %d) to (%d, %d)", a.X, a.Y, b.X, b.Y)
			}
			dx, dy := sign(b.X-a.X), sign(b.Y-a.Y)
			for c := a; c != b; {
				n := model.Coordinate{X: c.X + dx, Y: c.Y + dy}
				edges[undirected(c, n)] = true
				c = n
			}
		}
	}
	return edges, nil
}

func undirected(a, b model.Coordinate) segment {
	if b.Compare(a) < 0 {
		a, b = b, a
	}
	return segment{start: a, end: b}
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

// VerifySheet compares cut paths read back from a drawing with the panel
// outlines of sheet, edge by edge, and describes every difference. Shared
// edges count once. An empty result means the drawing cuts exactly the
// sheet's panels.
func VerifySheet(sheet model.SheetResult, paths []model.CutPath) []string {
	var closed []model.CutPath
	for _, p := range sheet.Placements {
		for _, path := range p.Paths {
			if len(path) > 0 {
				closed = append(closed, append(path[:len(path):len(path)], path[0]))
			}
		}
	}
	want, err := unitEdges(closed)
	if err != nil {
		return []string{fmt.Sprintf("sheet %d: %v", sheet.Index, err)}
	}
	got, err := unitEdges(paths)
	if err != nil {
		return []string{fmt.Sprintf("drawing: %v", err)}
	}

	missing, extra := 0, 0
	for e := range want {
		if !got[e] {
			missing++
		}
	}
	for e := range got {
		if !want[e] {
			extra++
		}
	}

	var problems []string
	if missing > 0 {
		problems = append(problems, fmt.Sprintf("sheet %d: %d edges missing from drawing", sheet.Index, missing))
	}
	if extra > 0 {
		problems = append(problems, fmt.Sprintf("sheet %d: %d edges in drawing not on any panel", sheet.Index, extra))
	}
	return problems
}
