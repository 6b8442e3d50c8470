package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/piwi3910/mazecut/internal/model"
)

// TraceStats counts the outcome of contour walks.
type TraceStats struct {
	Traced    int
	Abandoned int
}

// Add accumulates other into s.
func (s *TraceStats) Add(other TraceStats) {
	s.Traced += other.Traced
	s.Abandoned += other.Abandoned
}

// walk headings
const (
	headLeft = iota
	headRight
	headDown
	headUp
)

// Tracer turns solid rasters into closed cut paths.
type Tracer struct {
	Log logrus.FieldLogger
}

// Trace walks the boundary of every solid region and every hole of g.
// Vertex (x, y) is the lower-left corner of cell (x, y). Outer outlines
// start at the lower-left corner of a region; hole outlines start at the
// lower-left corner of the hole.
func (t *Tracer) Trace(g *model.CellGrid) (model.CutSchematic, TraceStats, error) {
	var stats TraceStats
	if x, y, found := g.Undetermined(); found {
		return model.CutSchematic{}, stats, model.NewInternalError("cannot trace undetermined cell at (%d, %d)", x, y)
	}
	solid := g.Solid()
	w, h := g.Width, g.Height
	at := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return solid[x][y]
	}

	// edges already on a traced outline, keyed by vertex and heading
	traversed := make(map[[3]int]bool)
	limit := (w + 1) * (h + 1)

	var schematic model.CutSchematic
	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			negative := !solid[sx][sy] && at(sx-1, sy) && at(sx, sy-1)
			positive := solid[sx][sy] && !at(sx-1, sy) && !at(sx, sy-1)
			if positive && negative {
				return model.CutSchematic{}, stats, model.NewInternalError("ambiguous outline start at (%d, %d)", sx, sy)
			}
			if !positive && !negative {
				continue
			}
			// every outline leaves its start heading right
			if traversed[[3]int{sx, sy, headRight}] {
				continue
			}

			path, steps, ok := walkOutline(at, sx, sy, negative, limit)
			if !ok {
				stats.Abandoned++
				t.log().WithFields(logrus.Fields{
					"x":     sx,
					"y":     sy,
					"steps": len(path),
				}).Warn("abandoned contour walk")
				continue
			}
			for _, s := range steps {
				traversed[s] = true
			}
			stats.Traced++
			schematic.Paths = append(schematic.Paths, path)
		}
	}
	return schematic, stats, nil
}

func (t *Tracer) log() logrus.FieldLogger {
	if t.Log == nil {
		return discardLogger()
	}
	return t.Log
}

// walkOutline follows one outline counterclockwise around solid cells, or
// around open cells when negative, until it returns to its start. It
// gives up on a dead end or when the walk exceeds limit steps.
func walkOutline(at func(x, y int) bool, sx, sy int, negative bool, limit int) (model.CutPath, [][3]int, bool) {
	var path model.CutPath
	var steps [][3]int
	x, y, dir := sx, sy, headRight
	for {
		if len(path) >= limit {
			return path, steps, false
		}
		path = append(path, model.Coordinate{X: x, Y: y})
		a := at(x-1, y-1) != negative
		b := at(x, y-1) != negative
		c := at(x, y) != negative
		d := at(x-1, y) != negative

		switch dir {
		case headLeft:
			switch {
			case !b && !a:
				return path, steps, false
			case d:
				dir = headUp
			case a:
				dir = headLeft
			default:
				dir = headDown
			}
		case headRight:
			switch {
			case !d && !c:
				return path, steps, false
			case b:
				dir = headDown
			case c:
				dir = headRight
			default:
				dir = headUp
			}
		case headDown:
			switch {
			case !c && !b:
				return path, steps, false
			case a:
				dir = headLeft
			case b:
				dir = headDown
			default:
				dir = headRight
			}
		case headUp:
			switch {
			case !a && !d:
				return path, steps, false
			case c:
				dir = headRight
			case d:
				dir = headUp
			default:
				dir = headLeft
			}
		}
		steps = append(steps, [3]int{x, y, dir})

		switch dir {
		case headLeft:
			x--
		case headRight:
			x++
		case headDown:
			y--
		case headUp:
			y++
		}
		if x == sx && y == sy {
			return path, steps, true
		}
	}
}

// TraceAll traces every raster of a set, optionally collapsing collinear
// points.
func (t *Tracer) TraceAll(grids model.GridSet, eliminate bool) (model.SchematicSet, TraceStats, error) {
	var out model.SchematicSet
	var stats TraceStats
	traceFamily := func(gs []*model.CellGrid) ([]model.CutSchematic, error) {
		var res []model.CutSchematic
		for _, g := range gs {
			s, st, err := t.Trace(g)
			if err != nil {
				return nil, err
			}
			stats.Add(st)
			if eliminate {
				if s, err = s.EliminateMidpoints(); err != nil {
					return nil, model.NewInternalError("%v", err)
				}
			}
			res = append(res, s)
		}
		return res, nil
	}
	var err error
	if out.Tetris, err = traceFamily(grids.Tetris); err != nil {
		return out, stats, err
	}
	if out.Layers, err = traceFamily(grids.Layers); err != nil {
		return out, stats, err
	}
	if out.Sides, err = traceFamily(grids.Sides); err != nil {
		return out, stats, err
	}
	return out, stats, nil
}
