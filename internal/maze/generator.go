package maze

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/piwi3910/mazecut/internal/model"
)

// maxRegenerations bounds the retries when the entrance and exit line up.
const maxRegenerations = 1000

// Generator carves mazes with the growing-tree algorithm.
type Generator struct {
	Size [3]int
	// Randomness is the chance of growing from the newest cell rather than
	// a random active one.
	Randomness float32
}

func New(settings model.Settings) *Generator {
	return &Generator{Size: settings.MazeSize, Randomness: float32(settings.Randomness)}
}

// Generate builds the maze for seed. Mazes whose entrance and exit lie on
// a common axis line are regenerated from the same random stream.
func (g *Generator) Generate(seed uint64) (*Grid, error) {
	for d, n := range g.Size {
		if n < 2 {
			return nil, fmt.Errorf("maze side %d must be at least 2, got %d", d, n)
		}
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for attempt := 0; attempt < maxRegenerations; attempt++ {
		entrance, inward := g.pickEntrance(rng)
		grid := g.carve(entrance, inward, rng.Uint64())
		if !aligned(grid.Entrance, grid.Exit) {
			grid.seed = seed
			grid.randomness = g.Randomness
			return grid, nil
		}
	}
	return nil, fmt.Errorf("no maze with separated entrance and exit after %d attempts", maxRegenerations)
}

// pickEntrance chooses a random face and a random cell on it. It returns
// the cell just inside the maze and the direction pointing into the maze.
func (g *Generator) pickEntrance(rng *rand.Rand) ([3]int, model.Direction) {
	side := rng.IntN(3)
	reverse := rng.IntN(2) == 1
	var cell [3]int
	for i := 0; i < 3; i++ {
		switch {
		case i != side:
			cell[i] = rng.IntN(g.Size[i])
		case reverse:
			cell[i] = g.Size[i] - 1
		default:
			cell[i] = 0
		}
	}
	return cell, model.Direction{Dim: side, Positive: !reverse}
}

func (g *Generator) carve(entrance [3]int, inward model.Direction, seed uint64) *Grid {
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))
	grid := NewGrid(g.Size, true)
	grid.Entrance = entrance
	grid.SetWall(entrance, inward.Opposite(), false)

	n := len(grid.walls)
	visited := make([]bool, n)
	distance := make([]int, n)
	idx := func(c [3]int) int { return grid.index(c[0], c[1], c[2]) }

	active := [][3]int{entrance}
	visited[idx(entrance)] = true
	dirs := model.Directions(3)
	for len(active) > 0 {
		i := len(active) - 1
		if rng.Float32() >= g.Randomness {
			i = rng.IntN(len(active))
		}
		base := active[i]

		var options []model.Direction
		for _, d := range dirs {
			next := d.Step(base)
			if model.InBounds(g.Size, next) && !visited[idx(next)] {
				options = append(options, d)
			}
		}
		if len(options) == 0 {
			active = slices.Delete(active, i, i+1)
			continue
		}
		d := options[rng.IntN(len(options))]
		next := d.Step(base)
		grid.Carve(base, d)
		visited[idx(next)] = true
		distance[idx(next)] = distance[idx(base)] + 1
		active = append(active, next)
	}

	// the exit is the border cell farthest from the entrance, ties going to
	// the later cell in x-fastest order
	best := -1
	for z := 0; z < g.Size[2]; z++ {
		for y := 0; y < g.Size[1]; y++ {
			for x := 0; x < g.Size[0]; x++ {
				c := [3]int{x, y, z}
				if !onBorder(g.Size, c) {
					continue
				}
				if distance[idx(c)] >= best {
					best = distance[idx(c)]
					grid.Exit = c
				}
			}
		}
	}
	grid.SetWall(grid.Exit, outward(g.Size, grid.Exit), false)
	return grid
}

func onBorder(size, c [3]int) bool {
	for d := 0; d < 3; d++ {
		if c[d] == 0 || c[d] == size[d]-1 {
			return true
		}
	}
	return false
}

// outward returns the first direction leading out of the grid from a
// border cell.
func outward(size, c [3]int) model.Direction {
	for d := 0; d < 3; d++ {
		if c[d] == 0 {
			return model.Direction{Dim: d}
		}
		if c[d] == size[d]-1 {
			return model.Direction{Dim: d, Positive: true}
		}
	}
	panic(fmt.Sprintf("cell %v is not on the border", c))
}

// aligned reports whether two cells differ in at most one coordinate.
func aligned(a, b [3]int) bool {
	diff := 0
	for d := 0; d < 3; d++ {
		if a[d] != b[d] {
			diff++
		}
	}
	return diff <= 1
}
