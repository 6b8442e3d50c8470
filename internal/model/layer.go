package model

import (
	"fmt"
	"strings"
)

// Perforation marks how an edge between two layer tiles is cut.
type Perforation int

const (
	PerfNone Perforation = iota // plain edge
	PerfPerf                    // alternating tab pattern
	PerfSlot                    // fully open slot
)

func (p Perforation) String() string {
	switch p {
	case PerfPerf:
		return "PERF"
	case PerfSlot:
		return "SLOT"
	default:
		return "NONE"
	}
}

// LayerPanel is the horizontal panel at the boundary above maze level Z.
// Z runs from -1 (the floor) to maze height - 1 (the roof).
type LayerPanel struct {
	Z     int
	Width int
	Depth int

	holes []bool
	perfs [][4]Perforation
}

// NewLayerPanel builds the layer above level z, punching a hole wherever
// the maze has a vertical passage through that boundary.
func NewLayerPanel(w Walls, z int) LayerPanel {
	size := w.Size()
	l := LayerPanel{
		Z:     z,
		Width: size[0],
		Depth: size[1],
		holes: make([]bool, size[0]*size[1]),
		perfs: make([][4]Perforation, size[0]*size[1]),
	}
	// the floor reads the bottom wall of level 0, every other boundary the
	// top wall of level z
	cellZ, dir := max(0, z), Direction{Dim: 2, Positive: z != -1}
	for x := 0; x < l.Width; x++ {
		for y := 0; y < l.Depth; y++ {
			l.holes[l.index(x, y)] = !w.Wall(x, y, cellZ, dir)
		}
	}
	return l
}

func (l LayerPanel) index(x, y int) int { return x*l.Depth + y }

func (l LayerPanel) inBounds(x, y int) bool {
	return x >= 0 && x < l.Width && y >= 0 && y < l.Depth
}

// Hole reports whether tile (x, y) is open.
func (l LayerPanel) Hole(x, y int) bool {
	return l.holes[l.index(x, y)]
}

func (l *LayerPanel) SetHole(x, y int, hole bool) {
	l.holes[l.index(x, y)] = hole
}

// Perforation returns the cut on side d of tile (x, y). Only dims 0 and 1
// are meaningful.
func (l LayerPanel) Perforation(x, y int, d Direction) Perforation {
	return l.perfs[l.index(x, y)][d.Index()]
}

// SetPerforation sets side d of tile (x, y) and the matching side of the
// neighbouring tile when it exists.
func (l *LayerPanel) SetPerforation(x, y int, d Direction, p Perforation) {
	l.perfs[l.index(x, y)][d.Index()] = p
	nx, ny := x+d.Offset(0), y+d.Offset(1)
	if l.inBounds(nx, ny) {
		l.perfs[l.index(nx, ny)][d.Opposite().Index()] = p
	}
}

func (l LayerPanel) Corner() [3]int         { return [3]int{0, 0, l.Z + 1} }
func (l LayerPanel) XDirection() Direction { return PosX }
func (l LayerPanel) YDirection() Direction { return PosY }
func (l LayerPanel) ZDirection() Direction { return PosZ }

// String draws the layer from the back row down: O for holes, '.' for
// perforated edges and '|' or '-' for slots.
func (l LayerPanel) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "layer panel at z = %d\n", l.Z)
	sw, sh := l.Width*2+1, l.Depth*2+1
	for sy := sh - 1; sy >= 0; sy-- {
		for sx := 0; sx < sw; sx++ {
			switch {
			case (sx == 0 || sx == sw-1) && (sy == 0 || sy == sh-1):
				sb.WriteByte('+')
			case sy == 0 || sy == sh-1:
				sb.WriteByte('=')
			case sx == 0 || sx == sw-1:
				sb.WriteByte('#')
			case sx%2 == 0 && sy%2 == 0:
				sb.WriteByte('+')
			case sx%2 != 0 && sy%2 != 0:
				if l.Hole((sx-1)/2, (sy-1)/2) {
					sb.WriteByte('O')
				} else {
					sb.WriteByte(' ')
				}
			case sx%2 == 0:
				sb.WriteByte(perfGlyph(l.Perforation(sx/2, (sy-1)/2, NegX), '|'))
			default:
				sb.WriteByte(perfGlyph(l.Perforation((sx-1)/2, sy/2, NegY), '-'))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func perfGlyph(p Perforation, slot byte) byte {
	switch p {
	case PerfPerf:
		return '.'
	case PerfSlot:
		return slot
	default:
		return ' '
	}
}
