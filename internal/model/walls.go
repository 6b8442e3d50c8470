package model

// Walls is the read-only view of a maze the panel pipeline consumes.
// Wall reports whether the cell at (x, y, z) has a wall on side d.
type Walls interface {
	Size() [3]int
	Wall(x, y, z int, d Direction) bool
}

// WallAt is Wall addressed by a location vector.
func WallAt(w Walls, loc [3]int, d Direction) bool {
	return w.Wall(loc[0], loc[1], loc[2], d)
}

// InBounds reports whether loc lies inside a grid of the given size.
func InBounds(size [3]int, loc [3]int) bool {
	for d := 0; d < 3; d++ {
		if loc[d] < 0 || loc[d] >= size[d] {
			return false
		}
	}
	return true
}
