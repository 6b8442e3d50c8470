package engine

import (
	"math"

	"github.com/piwi3910/mazecut/internal/model"
)

// occupancy tracks how many panels already straddle a seam. A seam
// straddled once is still open; twice, it belongs to the second panel.
type occupancy uint8

const (
	seamFree occupancy = iota
	seamOnce
	seamOwned
)

// candidate is a panel that could fill a seam, and whether the tile next to
// the seam sits on the panel's lowest row.
type candidate struct {
	piece  int
	bottom bool
}

// candidates keeps the panels for one seam in discovery order. Adding a
// panel twice updates its flag without moving it.
type candidates []candidate

func (c *candidates) put(piece int, bottom bool) {
	for i := range *c {
		if (*c)[i].piece == piece {
			(*c)[i].bottom = bottom
			return
		}
	}
	*c = append(*c, candidate{piece: piece, bottom: bottom})
}

func (c candidates) has(piece int) bool {
	for _, e := range c {
		if e.piece == piece {
			return true
		}
	}
	return false
}

// Interstices assigns each internal seam, the vertical line where four
// maze cells meet, to the tetris panel that fills it. Columns cover every
// level; cubes are the columns strictly below the top level.
type Interstices struct {
	size    [3]int
	columns []int
}

func (s *Interstices) index(x, y, z int) int {
	return (x*s.size[1]+y)*s.size[2] + z
}

func (s *Interstices) inBounds(loc [3]int) bool {
	return model.InBounds(s.size, loc)
}

// Column returns the index of the tetris panel filling seam (x, y) at
// level z.
func (s *Interstices) Column(x, y, z int) int {
	return s.columns[s.index(x, y, z)]
}

// ColumnsOf lists the seam locations filled by a panel in x, y, z order.
func (s *Interstices) ColumnsOf(piece int) [][3]int {
	return s.group(piece, s.size[2])
}

// CubesOf lists the seam locations below the top level filled by a panel.
func (s *Interstices) CubesOf(piece int) [][3]int {
	return s.group(piece, s.size[2]-1)
}

// IsCube reports whether the seam at (x, y, z) is a central cube.
func (s *Interstices) IsCube(x, y, z int) bool {
	return z < s.size[2]-1 && s.inBounds([3]int{x, y, z})
}

func (s *Interstices) group(piece, levels int) [][3]int {
	var out [][3]int
	for x := 0; x < s.size[0]; x++ {
		for y := 0; y < s.size[1]; y++ {
			for z := 0; z < levels; z++ {
				if s.Column(x, y, z) == piece {
					out = append(out, [3]int{x, y, z})
				}
			}
		}
	}
	return out
}

// AssignInterstices decides which tetris panel fills every internal seam.
// A panel with tiles on both sides of a seam owns it outright. Otherwise,
// climbing each seam from the floor, the current panel keeps the seam
// while it reaches at least as high as any panel that could start there.
func AssignInterstices(size [3]int, tetris []model.TetrisPanel) (*Interstices, error) {
	s := &Interstices{size: [3]int{size[0] - 1, size[1] - 1, size[2]}}
	n := max(0, s.size[0]) * max(0, s.size[1]) * max(0, s.size[2])
	s.columns = make([]int, n)
	possible := make([]candidates, n)
	occupied := make([]occupancy, n)

	for pi, piece := range tetris {
		minY := piece.Shape.MinY()
		for _, c := range piece.Shape.Items() {
			left := model.Coordinate{X: c.X - 1, Y: c.Y}
			right := model.Coordinate{X: c.X + 1, Y: c.Y}
			bottom := c.Y == minY
			seams := []struct {
				loc      [3]int
				straddle model.Coordinate
			}{
				{piece.CoordinateToLocation(left), left},
				{piece.CoordinateToLocation(c), right},
			}
			for _, seam := range seams {
				if !s.inBounds(seam.loc) {
					continue
				}
				i := s.index(seam.loc[0], seam.loc[1], seam.loc[2])
				if occupied[i] != seamOwned {
					possible[i].put(pi, bottom)
				}
				if !piece.Contains(seam.straddle) {
					continue
				}
				switch occupied[i] {
				case seamFree:
					occupied[i] = seamOnce
				case seamOnce:
					occupied[i] = seamOwned
				default:
					return nil, model.NewInternalError("seam at %v straddled by more than two tiles", seam.loc)
				}
			}
		}
	}
	for x := 0; x < s.size[0]; x++ {
		for y := 0; y < s.size[1]; y++ {
			for z := 0; z < s.size[2]; z++ {
				if occupied[s.index(x, y, z)] == seamOnce {
					return nil, model.NewInternalError("seam at (%d, %d, %d) straddled by a single tile", x, y, z)
				}
			}
		}
	}

	// reach is how many levels a panel could fill going up from where it
	// starts, or -1 where it cannot start.
	reach := func(x, y, z0, piece int, bottom bool) int {
		if !bottom {
			return -1
		}
		z := z0
		for z < s.size[2] && possible[s.index(x, y, z)].has(piece) {
			z++
		}
		return z - z0
	}

	for x := 0; x < s.size[0]; x++ {
		for y := 0; y < s.size[1]; y++ {
			current, counter := -1, 0
			for z := 0; z < s.size[2]; z++ {
				i := s.index(x, y, z)
				chosen, length := -1, math.MinInt
				if occupied[i] == seamOwned {
					last := possible[i][len(possible[i])-1]
					if last.piece == current {
						chosen, length = current, counter
					} else {
						chosen, length = last.piece, reach(x, y, z, last.piece, last.bottom)
					}
				} else {
					for _, cand := range possible[i] {
						if r := reach(x, y, z, cand.piece, cand.bottom); r > length {
							chosen, length = cand.piece, r
						}
					}
					if length <= counter {
						chosen, length = current, counter
					}
				}
				if chosen >= 0 {
					current, counter = chosen, length
				}
				if counter == 0 {
					return nil, model.NewMazeError(true, "cannot fill central column at (%d, %d, %d)", x, y, z)
				}
				s.columns[i] = current
				counter--
			}
		}
	}
	return s, nil
}
