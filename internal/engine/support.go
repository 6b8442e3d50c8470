package engine

import "github.com/piwi3910/mazecut/internal/model"

// piecesSupported reports whether every tetris panel rests on and is held
// down by the layers. A face is a top or bottom edge of a panel tile; it is
// supported when at least one of the two layer tiles beside it is solid.
// Each panel needs at least one supported bottom face, at least one
// supported top face, and at least half of all its faces supported.
func piecesSupported(tetris []model.TetrisPanel, layers []model.LayerPanel) bool {
	byZ := make(map[int]model.LayerPanel, len(layers))
	for _, l := range layers {
		byZ[l.Z] = l
	}

	for _, piece := range tetris {
		total, lower, upper := 0, 0, 0
		nd := piece.NormalDim()
		for z := piece.MinZ() - 1; z <= piece.MaxZ(); z++ {
			layer, ok := byZ[z]
			if !ok {
				return false
			}
			for xy := piece.MinXY(); xy <= piece.MaxXY(); xy++ {
				x, y := xy, xy
				if nd == 0 {
					x = piece.NormalOffset()
				} else {
					y = piece.NormalOffset()
				}
				x2, y2 := x, y
				if nd == 0 {
					x2++
				} else {
					y2++
				}

				up := piece.ContainsLocation([3]int{x, y, z + 1})
				low := piece.ContainsLocation([3]int{x, y, z})
				if up == low {
					continue
				}
				total++
				if layer.Hole(x, y) && layer.Hole(x2, y2) {
					continue
				}
				if up {
					lower++
				} else {
					upper++
				}
			}
		}
		if lower == 0 || upper == 0 {
			return false
		}
		if float64(lower+upper)/float64(total) < 0.5 {
			return false
		}
	}
	return true
}
