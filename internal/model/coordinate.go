package model

import (
	"fmt"
	"slices"
	"strings"
)

// Coordinate is a 2-D tile position on a panel. X runs along the panel's
// horizontal axis and Y is always height.
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Compare orders coordinates by Y, then X.
func (c Coordinate) Compare(o Coordinate) int {
	if c.Y != o.Y {
		return c.Y - o.Y
	}
	return c.X - o.X
}

// IsDirectlyBelow reports whether c sits one tile under base.
func (c Coordinate) IsDirectlyBelow(base Coordinate) bool {
	return c.X == base.X && base.Y-c.Y == 1
}

// IsDirectlyAdjacentTo reports whether c is a horizontal neighbour of base.
func (c Coordinate) IsDirectlyAdjacentTo(base Coordinate) bool {
	dx := c.X - base.X
	return c.Y == base.Y && (dx == 1 || dx == -1)
}

// Step moves the coordinate along dim 0 (x) or dim 1 (y).
func (c Coordinate) Step(d Direction) Coordinate {
	switch d.Dim {
	case 0:
		c.X += d.Sign()
	case 1:
		c.Y += d.Sign()
	}
	return c
}

func (c Coordinate) Add(o Coordinate) Coordinate {
	return Coordinate{X: c.X + o.X, Y: c.Y + o.Y}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// CoordinateSet is a sorted set of tile coordinates. The zero value is an
// empty set. Mutations never write into a backing array shared with a copy.
type CoordinateSet struct {
	coords []Coordinate
}

// NewCoordinateSet builds a set from the given coordinates.
func NewCoordinateSet(coords ...Coordinate) CoordinateSet {
	var s CoordinateSet
	for _, c := range coords {
		s.Add(c)
	}
	return s
}

// Add inserts c, keeping the set sorted. It reports whether c was new.
func (s *CoordinateSet) Add(c Coordinate) bool {
	i, found := slices.BinarySearchFunc(s.coords, c, Coordinate.Compare)
	if found {
		return false
	}
	s.coords = slices.Insert(slices.Clip(s.coords), i, c)
	return true
}

func (s CoordinateSet) Contains(c Coordinate) bool {
	_, found := slices.BinarySearchFunc(s.coords, c, Coordinate.Compare)
	return found
}

func (s CoordinateSet) Len() int { return len(s.coords) }

// Items returns the coordinates in (y, x) order.
func (s CoordinateSet) Items() []Coordinate {
	return slices.Clone(s.coords)
}

// MinY is the lowest level of the set. The set must not be empty.
func (s CoordinateSet) MinY() int { return s.coords[0].Y }

// MaxY is the highest level of the set. The set must not be empty.
func (s CoordinateSet) MaxY() int { return s.coords[len(s.coords)-1].Y }

func (s CoordinateSet) MinX() int {
	m := s.coords[0].X
	for _, c := range s.coords[1:] {
		m = min(m, c.X)
	}
	return m
}

func (s CoordinateSet) MaxX() int {
	m := s.coords[0].X
	for _, c := range s.coords[1:] {
		m = max(m, c.X)
	}
	return m
}

// IsValidPlacement reports whether c can join the set without creating an
// overhang: it must rest directly on a tile, or sit beside one on the
// lowest level.
func (s CoordinateSet) IsValidPlacement(c Coordinate) bool {
	if s.Contains(c) {
		return false
	}
	adjacent := false
	for _, other := range s.coords {
		if other.IsDirectlyBelow(c) {
			return true
		}
		if other.IsDirectlyAdjacentTo(c) {
			adjacent = true
		}
	}
	return adjacent && c.Y == s.MinY()
}

// IsValid reports whether every tile is on the lowest level or has a tile
// directly beneath it. Contiguity is not checked.
func (s CoordinateSet) IsValid() bool {
	if len(s.coords) == 0 {
		return true
	}
	lowest := s.MinY()
	for _, c := range s.coords {
		if c.Y == lowest {
			continue
		}
		if !s.Contains(Coordinate{X: c.X, Y: c.Y - 1}) {
			return false
		}
	}
	return true
}

// SplitGreaterThan partitions the set into tiles with x <= localX and
// tiles with x > localX.
func (s CoordinateSet) SplitGreaterThan(localX int) (CoordinateSet, CoordinateSet) {
	var lower, upper CoordinateSet
	for _, c := range s.coords {
		if c.X <= localX {
			lower.coords = append(lower.coords, c)
		} else {
			upper.coords = append(upper.coords, c)
		}
	}
	return lower, upper
}

// AdjustCenter translates the set so its first tile is at the origin and
// returns the translated set together with the removed offset.
func (s CoordinateSet) AdjustCenter() (CoordinateSet, Coordinate) {
	if len(s.coords) == 0 {
		return s, Coordinate{}
	}
	first := s.coords[0]
	out := CoordinateSet{coords: make([]Coordinate, len(s.coords))}
	for i, c := range s.coords {
		out.coords[i] = Coordinate{X: c.X - first.X, Y: c.Y - first.Y}
	}
	return out, first
}

// String draws the set top row first, marking the origin with x.
func (s CoordinateSet) String() string {
	if len(s.coords) == 0 {
		return ""
	}
	var sb strings.Builder
	for y := s.MaxY(); y >= s.MinY(); y-- {
		for x := s.MinX(); x <= s.MaxX(); x++ {
			switch {
			case !s.Contains(Coordinate{X: x, Y: y}):
				sb.WriteByte(' ')
			case x == 0 && y == 0:
				sb.WriteByte('x')
			default:
				sb.WriteByte('#')
			}
		}
		if y > s.MinY() {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
