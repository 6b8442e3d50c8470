package engine

import "github.com/piwi3910/mazecut/internal/model"

// LineKind says what a blueprint line depicts.
type LineKind int

const (
	LineOutline LineKind = iota
	LinePerforation
	LineSlot
	LineCut // edge of a traced cut path, in cell units
)

func (k LineKind) String() string {
	switch k {
	case LinePerforation:
		return "perforation"
	case LineSlot:
		return "slot"
	case LineCut:
		return "cut"
	default:
		return "outline"
	}
}

// Line3 is a 3-D line segment of a blueprint.
type Line3 struct {
	A, B   [3]int
	Family model.Family
	Kind   LineKind
}

func (l Line3) key() [6]int {
	a, b := l.A, l.B
	if b[0] < a[0] || (b[0] == a[0] && (b[1] < a[1] || (b[1] == a[1] && b[2] < a[2]))) {
		a, b = b, a
	}
	return [6]int{a[0], a[1], a[2], b[0], b[1], b[2]}
}

// Blueprint is a wireframe of panels in maze space.
type Blueprint []Line3

// Dedupe drops repeated lines, treating a line and its reverse as equal.
// The first occurrence wins.
func (b Blueprint) Dedupe() Blueprint {
	seen := make(map[[6]int]bool, len(b))
	out := make(Blueprint, 0, len(b))
	for _, l := range b {
		if seen[l.key()] {
			continue
		}
		seen[l.key()] = true
		out = append(out, l)
	}
	return out
}

// Bounds returns the minimum and maximum corner of the blueprint.
func (b Blueprint) Bounds() (lo, hi [3]int) {
	if len(b) == 0 {
		return lo, hi
	}
	lo, hi = b[0].A, b[0].A
	for _, l := range b {
		for _, p := range [][3]int{l.A, l.B} {
			for d := 0; d < 3; d++ {
				lo[d] = min(lo[d], p[d])
				hi[d] = max(hi[d], p[d])
			}
		}
	}
	return lo, hi
}

// PanelBlueprint draws every panel in maze tile units: tetris outlines,
// layer outlines with perforations and slots, and side outlines with
// their holes and perforations.
func PanelBlueprint(pieces model.PieceSet) Blueprint {
	var out Blueprint
	for _, t := range pieces.Tetris {
		out = append(out, outlineLines(t.Outline(), t.CoordinateToLocation, model.FamilyTetris)...)
	}
	for _, l := range pieces.Layers {
		out = append(out, layerBlueprint(l)...)
	}
	for _, s := range pieces.Sides {
		out = append(out, sideBlueprint(s)...)
	}
	return out
}

func outlineLines(pts []model.Coordinate, place func(model.Coordinate) [3]int, f model.Family) Blueprint {
	out := make(Blueprint, 0, len(pts))
	for i := range pts {
		out = append(out, Line3{
			A:      place(pts[i]),
			B:      place(pts[(i+1)%len(pts)]),
			Family: f,
			Kind:   LineOutline,
		})
	}
	return out
}

// layerBlueprint outlines each solid region and each hole region of a
// layer, then marks perforated and slotted tile edges.
func layerBlueprint(l model.LayerPanel) Blueprint {
	var outlines Blueprint
	for _, hole := range []bool{false, true} {
		regions := components(l.Width, l.Depth, func(x, y int) bool { return l.Hole(x, y) == hole })
		for _, region := range regions {
			shape := model.TetrisPanel{Shape: model.NewCoordinateSet(region...)}
			place := func(c model.Coordinate) [3]int { return [3]int{c.X, c.Y, l.Z} }
			outlines = append(outlines, outlineLines(shape.Outline(), place, model.FamilyLayer)...)
		}
	}
	out := outlines.Dedupe()

	for _, d := range []model.Direction{model.PosX, model.PosY} {
		xEnd, yEnd := l.Width, l.Depth
		if d.Dim == 0 {
			xEnd--
		} else {
			yEnd--
		}
		for x := 0; x < xEnd; x++ {
			for y := 0; y < yEnd; y++ {
				perf := l.Perforation(x, y, d)
				if perf == model.PerfNone {
					continue
				}
				kind := LinePerforation
				if perf == model.PerfSlot {
					kind = LineSlot
				}
				sx, sy := x, y
				if d.Dim == 1 {
					sx--
				} else {
					sy--
				}
				out = append(out, Line3{A: [3]int{sx, sy, l.Z}, B: [3]int{x, y, l.Z}, Family: model.FamilyLayer, Kind: kind})
			}
		}
	}
	return out
}

func sideBlueprint(s model.SidePanel) Blueprint {
	par := s.ParallelDim()
	rect := func(corner [3]int, w, h int) Blueprint {
		a, b, c := corner, corner, corner
		a[par] += w
		b[par] += w
		b[2] += h
		c[2] += h
		pts := [][3]int{corner, a, b, c}
		var out Blueprint
		for i := range pts {
			out = append(out, Line3{A: pts[i], B: pts[(i+1)%4], Family: model.FamilySide, Kind: LineOutline})
		}
		return out
	}

	out := rect(s.CoordinateToLocation(-1, -1), s.Width, s.Height)
	for _, h := range s.Holes() {
		out = append(out, rect(s.CoordinateToLocation(h.X-1, h.Y-1), 1, 1)...)
	}
	for _, d := range []model.Direction{model.PosX, model.PosY} {
		xEnd, yEnd := s.Width, s.Height
		if d.Dim == 0 {
			xEnd--
		} else {
			yEnd--
		}
		for x := 0; x < xEnd; x++ {
			for y := 0; y < yEnd; y++ {
				if !s.Perforation(x, y, d) {
					continue
				}
				sx, sy := x, y
				if d.Dim == 1 {
					sx--
				} else {
					sy--
				}
				out = append(out, Line3{
					A:      s.CoordinateToLocation(sx, sy),
					B:      s.CoordinateToLocation(x, y),
					Family: model.FamilySide,
					Kind:   LinePerforation,
				})
			}
		}
	}
	return out
}

// SchematicBlueprint draws the traced cut paths of every panel in fine
// cell units: the front face, the back face one cell further along the
// panel's thickness, and a connector at each vertex.
func SchematicBlueprint(pieces model.PieceSet, schematics model.SchematicSet) Blueprint {
	var out Blueprint
	for _, ref := range pieces.Refs(model.FamilyTetris, model.FamilyLayer, model.FamilySide) {
		p := pieces.Panel(ref)
		zo := p.ZDirection().Offsets3()
		for _, path := range schematics.Schematic(ref).Paths {
			for i := range path {
				a, b := path[i], path[(i+1)%len(path)]
				fa, fb := model.CellToGlobal(p, a.X, a.Y), model.CellToGlobal(p, b.X, b.Y)
				ba, bb := fa, fb
				for d := 0; d < 3; d++ {
					ba[d] += zo[d]
					bb[d] += zo[d]
				}
				out = append(out,
					Line3{A: fa, B: fb, Family: ref.Family, Kind: LineCut},
					Line3{A: ba, B: bb, Family: ref.Family, Kind: LineCut},
					Line3{A: fa, B: ba, Family: ref.Family, Kind: LineCut},
				)
			}
		}
	}
	return out
}
