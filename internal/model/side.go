package model

import "fmt"

// SidePanel is one of the four vertical enclosure faces. Its local x runs
// along the parallel horizontal axis and its local y along Z.
type SidePanel struct {
	Normal Direction
	Width  int
	Height int

	// NormalLength is the maze extent along the normal axis.
	NormalLength int

	perfs [][4]bool
	holes []Coordinate
}

// SideNormals lists the enclosure faces in panel order.
var SideNormals = []Direction{NegX, PosX, NegY, PosY}

// NewSidePanel returns a blank side for the given maze size.
func NewSidePanel(normal Direction, size [3]int) SidePanel {
	s := SidePanel{Normal: normal, Height: size[2]}
	if normal.Dim == 0 {
		s.Width, s.NormalLength = size[1], size[0]
	} else {
		s.Width, s.NormalLength = size[0], size[1]
	}
	s.perfs = make([][4]bool, s.Width*s.Height)
	return s
}

// ParallelDim is the maze axis the side's local x runs along.
func (s SidePanel) ParallelDim() int { return 1 - s.Normal.Dim }

// IsYZ reports whether the side faces along X.
func (s SidePanel) IsYZ() bool { return s.Normal.Dim == 0 }

func (s SidePanel) index(x, y int) int { return x*s.Height + y }

func (s SidePanel) Perforation(x, y int, d Direction) bool {
	return s.perfs[s.index(x, y)][d.Index()]
}

// SetPerforation marks side d of tile (x, y) and the matching side of the
// neighbouring tile when it exists.
func (s *SidePanel) SetPerforation(x, y int, d Direction, perf bool) {
	s.perfs[s.index(x, y)][d.Index()] = perf
	nx, ny := x+d.Offset(0), y+d.Offset(1)
	if nx >= 0 && nx < s.Width && ny >= 0 && ny < s.Height {
		s.perfs[s.index(nx, ny)][d.Opposite().Index()] = perf
	}
}

func (s *SidePanel) AddHole(c Coordinate) {
	s.holes = append(s.holes, c)
}

// Holes returns the entrance and exit openings in insertion order.
func (s SidePanel) Holes() []Coordinate {
	return append([]Coordinate(nil), s.holes...)
}

// HasHole reports whether tile (x, y) is open.
func (s SidePanel) HasHole(x, y int) bool {
	for _, h := range s.holes {
		if h.X == x && h.Y == y {
			return true
		}
	}
	return false
}

// CoordinateToLocation maps a side tile edge to the maze location whose
// upper corner it marks.
func (s SidePanel) CoordinateToLocation(x, y int) [3]int {
	n := -1
	if s.Normal.Positive {
		n = s.NormalLength - 1
	}
	if s.Normal.Dim == 0 {
		return [3]int{n, x, y}
	}
	return [3]int{x, n, y}
}

func (s SidePanel) Corner() [3]int {
	if !s.Normal.Positive {
		return [3]int{}
	}
	if s.Normal.Dim == 0 {
		return [3]int{s.NormalLength, 0, 0}
	}
	return [3]int{0, s.NormalLength, 0}
}

func (s SidePanel) XDirection() Direction {
	if s.Normal.Dim == 0 {
		return PosY
	}
	return PosX
}

func (s SidePanel) YDirection() Direction { return PosZ }

func (s SidePanel) ZDirection() Direction {
	return Direction{Dim: s.Normal.Dim, Positive: true}
}

// Name is the face name used in documentation: left, right, front or back.
func (s SidePanel) Name() string {
	switch s.Normal {
	case NegX:
		return "left"
	case PosX:
		return "right"
	case NegY:
		return "front"
	default:
		return "back"
	}
}

func (s SidePanel) String() string {
	return fmt.Sprintf("side panel with %s normal (%s)", s.Normal, s.Name())
}
