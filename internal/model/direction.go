package model

// Direction is one of the signed axis directions of the maze grid.
// Dim 0 is X, 1 is Y and 2 is Z (up).
type Direction struct {
	Dim      int
	Positive bool
}

// Named directions used throughout the pipeline.
var (
	NegX = Direction{Dim: 0, Positive: false}
	PosX = Direction{Dim: 0, Positive: true}
	NegY = Direction{Dim: 1, Positive: false}
	PosY = Direction{Dim: 1, Positive: true}
	NegZ = Direction{Dim: 2, Positive: false}
	PosZ = Direction{Dim: 2, Positive: true}
)

// DirectionFromIndex is the inverse of Direction.Index.
func DirectionFromIndex(i int) Direction {
	return Direction{Dim: i / 2, Positive: i%2 != 0}
}

// Directions lists the 2*dims directions ordered -x, +x, -y, +y, ...
func Directions(dims int) []Direction {
	dirs := make([]Direction, 0, dims*2)
	for d := 0; d < dims; d++ {
		dirs = append(dirs, Direction{Dim: d}, Direction{Dim: d, Positive: true})
	}
	return dirs
}

// Index packs the direction as dim*2 + (positive ? 1 : 0).
func (d Direction) Index() int {
	if d.Positive {
		return d.Dim*2 + 1
	}
	return d.Dim * 2
}

func (d Direction) Opposite() Direction {
	return Direction{Dim: d.Dim, Positive: !d.Positive}
}

// Sign returns +1 or -1.
func (d Direction) Sign() int {
	if d.Positive {
		return 1
	}
	return -1
}

// Offset returns the step along the given dimension.
func (d Direction) Offset(dim int) int {
	if dim == d.Dim {
		return d.Sign()
	}
	return 0
}

// Offsets3 returns the unit vector of the direction in 3-D.
func (d Direction) Offsets3() [3]int {
	var v [3]int
	v[d.Dim] = d.Sign()
	return v
}

// Step moves a 3-D location one unit in the direction.
func (d Direction) Step(loc [3]int) [3]int {
	loc[d.Dim] += d.Sign()
	return loc
}

func (d Direction) String() string {
	sign := "-"
	if d.Positive {
		sign = "+"
	}
	return sign + string("xyzw"[d.Dim])
}
