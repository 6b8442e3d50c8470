package model

import "fmt"

// TetrisPanel is a vertical wall panel: a set of unit tiles on one plane.
// An XZ panel is normal to Y and runs along X; a YZ panel is normal to X
// and runs along Y. Tiles are stored relative to Root, with Coordinate.X
// on the parallel axis and Coordinate.Y on Z.
type TetrisPanel struct {
	Root  [3]int
	YZ    bool
	Shape CoordinateSet
}

// NewTetrisPanel returns a single-tile panel rooted at loc.
func NewTetrisPanel(loc [3]int, yz bool) TetrisPanel {
	return TetrisPanel{Root: loc, YZ: yz, Shape: NewCoordinateSet(Coordinate{})}
}

// ParallelDim is the horizontal axis the panel runs along.
func (p TetrisPanel) ParallelDim() int {
	if p.YZ {
		return 1
	}
	return 0
}

// NormalDim is the horizontal axis the panel faces.
func (p TetrisPanel) NormalDim() int {
	return 1 - p.ParallelDim()
}

// NormalOffset is the plane index of the panel along its normal axis.
func (p TetrisPanel) NormalOffset() int {
	return p.Root[p.NormalDim()]
}

// CoordinateToLocation maps a local tile to a maze location.
func (p TetrisPanel) CoordinateToLocation(c Coordinate) [3]int {
	loc := p.Root
	loc[p.ParallelDim()] += c.X
	loc[2] += c.Y
	return loc
}

// LocationToCoordinate maps a maze location to a local tile. The normal
// component of loc is ignored.
func (p TetrisPanel) LocationToCoordinate(loc [3]int) Coordinate {
	par := p.ParallelDim()
	return Coordinate{X: loc[par] - p.Root[par], Y: loc[2] - p.Root[2]}
}

func (p TetrisPanel) Contains(c Coordinate) bool {
	return p.Shape.Contains(c)
}

// ContainsLocation reports whether the panel has a tile at loc, ignoring
// the normal component.
func (p TetrisPanel) ContainsLocation(loc [3]int) bool {
	return p.Shape.Contains(p.LocationToCoordinate(loc))
}

func (p TetrisPanel) IsValidPlacement(loc [3]int) bool {
	return p.Shape.IsValidPlacement(p.LocationToCoordinate(loc))
}

func (p TetrisPanel) IsValid() bool {
	return p.Shape.IsValid()
}

// AddLocation adds the tile at loc to the panel.
func (p *TetrisPanel) AddLocation(loc [3]int) {
	p.Shape.Add(p.LocationToCoordinate(loc))
}

func (p TetrisPanel) MinZ() int { return p.Root[2] + p.Shape.MinY() }
func (p TetrisPanel) MaxZ() int { return p.Root[2] + p.Shape.MaxY() }

// MinXY is the lowest global position along the parallel axis.
func (p TetrisPanel) MinXY() int { return p.Root[p.ParallelDim()] + p.Shape.MinX() }

// MaxXY is the highest global position along the parallel axis.
func (p TetrisPanel) MaxXY() int { return p.Root[p.ParallelDim()] + p.Shape.MaxX() }

// IntersectsOrthogonally reports whether an XZ and a YZ panel cross: at
// some level both cover the two tiles on either side of their shared seam.
func IntersectsOrthogonally(a, b TetrisPanel) bool {
	if a.YZ == b.YZ {
		return false
	}
	xz, yz := a, b
	if a.YZ {
		xz, yz = b, a
	}
	y0 := xz.Root[1]
	x0 := yz.Root[0]
	lo := min(xz.MinZ(), yz.MinZ())
	hi := max(xz.MaxZ(), yz.MaxZ())
	for z := lo; z <= hi; z++ {
		if xz.ContainsLocation([3]int{x0, -1, z}) &&
			xz.ContainsLocation([3]int{x0 + 1, -1, z}) &&
			yz.ContainsLocation([3]int{-1, y0, z}) &&
			yz.ContainsLocation([3]int{-1, y0 + 1, z}) {
			return true
		}
	}
	return false
}

// SplitBy cuts a YZ panel along the plane of an XZ panel into the tiles at
// or before the seam and the tiles after it, each re-rooted at its first
// tile.
func (p TetrisPanel) SplitBy(xz TetrisPanel) ([2]TetrisPanel, error) {
	if !p.YZ || xz.YZ {
		return [2]TetrisPanel{}, fmt.Errorf("split requires a YZ panel cut by an XZ panel")
	}
	local := p.LocationToCoordinate(xz.Root).X
	lower, upper := p.Shape.SplitGreaterThan(local)
	var out [2]TetrisPanel
	for i, half := range []CoordinateSet{lower, upper} {
		shape, adj := half.AdjustCenter()
		out[i] = TetrisPanel{
			Root:  [3]int{p.Root[0], p.Root[1] + adj.X, p.Root[2] + adj.Y},
			YZ:    p.YZ,
			Shape: shape,
		}
	}
	return out, nil
}

// CombineWith returns a panel holding the tiles of both panels in p's
// frame. Both panels must share an orientation.
func (p TetrisPanel) CombineWith(other TetrisPanel) TetrisPanel {
	out := TetrisPanel{Root: p.Root, YZ: p.YZ}
	for _, c := range p.Shape.coords {
		out.Shape.Add(c)
	}
	for _, c := range other.Shape.coords {
		out.Shape.Add(p.LocationToCoordinate(other.CoordinateToLocation(c)))
	}
	return out
}

// Outline walks the boundary of the tile set and returns its vertices.
// Vertex (x, y) is the upper-right corner of tile (x, y).
func (p TetrisPanel) Outline() []Coordinate {
	return walkTileOutline(p.Shape)
}

func (p TetrisPanel) Corner() [3]int {
	loc := p.CoordinateToLocation(Coordinate{X: p.Shape.MinX(), Y: p.Shape.MinY()})
	if p.YZ {
		return [3]int{loc[0] + 1, loc[1], loc[2]}
	}
	return [3]int{loc[0], loc[1] + 1, loc[2]}
}

func (p TetrisPanel) XDirection() Direction {
	if p.YZ {
		return PosY
	}
	return PosX
}

func (p TetrisPanel) YDirection() Direction { return PosZ }

func (p TetrisPanel) ZDirection() Direction {
	if p.YZ {
		return PosX
	}
	return PosY
}

func (p TetrisPanel) String() string {
	plane := "XZ"
	if p.YZ {
		plane = "YZ"
	}
	return fmt.Sprintf("%s tetris panel at %v\n%s", plane, p.Root, p.Shape)
}

// walkTileOutline follows the outer edge of a tile set, keeping the tiles
// on the right. It starts at the lower-left corner of the first tile of
// the lowest row.
func walkTileOutline(shape CoordinateSet) []Coordinate {
	if shape.Len() == 0 {
		return nil
	}
	first := shape.coords[0]
	start := Coordinate{X: first.X - 1, Y: first.Y - 1}

	const (
		left = iota
		right
		up
		down
	)
	limit := 4 * (shape.MaxX() - shape.MinX() + 3) * (shape.MaxY() - shape.MinY() + 3)
	var pts []Coordinate
	cur := start
	last := up
	for len(pts) < limit {
		pts = append(pts, cur)
		a := shape.Contains(cur)
		b := shape.Contains(Coordinate{X: cur.X + 1, Y: cur.Y})
		c := shape.Contains(Coordinate{X: cur.X, Y: cur.Y + 1})
		d := shape.Contains(Coordinate{X: cur.X + 1, Y: cur.Y + 1})
		switch last {
		case left:
			switch {
			case !c:
				last = up
			case !a:
				last = left
			default:
				last = down
			}
		case right:
			switch {
			case !b:
				last = down
			case !d:
				last = right
			default:
				last = up
			}
		case up:
			switch {
			case !d:
				last = right
			case !c:
				last = up
			default:
				last = left
			}
		case down:
			switch {
			case !a:
				last = left
			case !b:
				last = down
			default:
				last = right
			}
		}
		switch last {
		case left:
			cur.X--
		case right:
			cur.X++
		case up:
			cur.Y++
		case down:
			cur.Y--
		}
		if cur == start {
			break
		}
	}
	return pts
}
