// Package maze holds the wall grid of a 3-D maze and the growing-tree
// generator that carves it.
package maze

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/piwi3910/mazecut/internal/model"
)

// Grid is a 3-D array of cells, each with one wall flag per direction.
// Walls are stored on both sides of every internal face.
type Grid struct {
	size  [3]int
	walls []uint8 // bit i is the wall in direction index i

	Entrance [3]int // first carved cell
	Exit     [3]int // cell with the exit opening

	seed       uint64
	randomness float32
}

// NewGrid returns a grid with every wall present, or every wall absent.
func NewGrid(size [3]int, walled bool) *Grid {
	g := &Grid{size: size, walls: make([]uint8, size[0]*size[1]*size[2])}
	if walled {
		for i := range g.walls {
			g.walls[i] = 0x3f
		}
	}
	return g
}

func (g *Grid) Size() [3]int { return g.size }

func (g *Grid) index(x, y, z int) int {
	return (z*g.size[1]+y)*g.size[0] + x
}

// Wall reports whether cell (x, y, z) has a wall on side d.
func (g *Grid) Wall(x, y, z int, d model.Direction) bool {
	return g.walls[g.index(x, y, z)]&(1<<d.Index()) != 0
}

// SetWall sets one side of one cell only.
func (g *Grid) SetWall(loc [3]int, d model.Direction, wall bool) {
	i := g.index(loc[0], loc[1], loc[2])
	if wall {
		g.walls[i] |= 1 << d.Index()
	} else {
		g.walls[i] &^= 1 << d.Index()
	}
}

// Carve removes the wall on side d of loc and the matching wall of the
// neighbour, if the neighbour is inside the grid.
func (g *Grid) Carve(loc [3]int, d model.Direction) {
	g.SetWall(loc, d, false)
	if n := d.Step(loc); model.InBounds(g.size, n) {
		g.SetWall(n, d.Opposite(), false)
	}
}

// SeedString encodes the generator inputs as hex: 16 digits of seed, 8 of
// randomness bits and 2 per side length (one side length for cubes).
func (g *Grid) SeedString() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%016x%08x", g.seed, math.Float32bits(g.randomness))
	if g.size[0] == g.size[1] && g.size[1] == g.size[2] {
		fmt.Fprintf(&sb, "%02x", g.size[0])
	} else {
		fmt.Fprintf(&sb, "%02x%02x%02x", g.size[0], g.size[1], g.size[2])
	}
	return sb.String()
}

// ParseSeed decodes a string produced by SeedString.
func ParseSeed(s string) (seed uint64, randomness float32, size [3]int, err error) {
	if len(s) != 26 && len(s) != 30 {
		return 0, 0, size, fmt.Errorf("seed string must be 26 or 30 hex digits, got %d", len(s))
	}
	seed, err = strconv.ParseUint(s[:16], 16, 64)
	if err != nil {
		return 0, 0, size, fmt.Errorf("failed to parse seed: %w", err)
	}
	bits, err := strconv.ParseUint(s[16:24], 16, 32)
	if err != nil {
		return 0, 0, size, fmt.Errorf("failed to parse randomness: %w", err)
	}
	randomness = math.Float32frombits(uint32(bits))
	for i := 0; i < 3; i++ {
		start := 24 + 2*i
		if len(s) == 26 {
			start = 24
		}
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		if err != nil {
			return 0, 0, size, fmt.Errorf("failed to parse size: %w", err)
		}
		size[i] = int(v)
	}
	return seed, randomness, size, nil
}

// String draws each level from the top down. Cells show '.' when open
// above, ',' when open below, ':' when open both ways.
func (g *Grid) String() string {
	var sb strings.Builder
	for z := g.size[2] - 1; z >= 0; z-- {
		fmt.Fprintf(&sb, "level %d\n", z)
		for y := g.size[1] - 1; y >= 0; y-- {
			for x := 0; x < g.size[0]; x++ {
				up, down := !g.Wall(x, y, z, model.PosZ), !g.Wall(x, y, z, model.NegZ)
				switch {
				case up && down:
					sb.WriteByte(':')
				case up:
					sb.WriteByte('.')
				case down:
					sb.WriteByte(',')
				default:
					sb.WriteByte('#')
				}
				if x < g.size[0]-1 {
					if g.Wall(x, y, z, model.PosX) {
						sb.WriteByte('|')
					} else {
						sb.WriteByte(' ')
					}
				}
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
