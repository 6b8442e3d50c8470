package engine

import (
	"github.com/piwi3910/mazecut/internal/model"
)

// BuildPieces groups the walls of a maze into tetris, layer and side
// panels. It fails with a maze-dependent error when a tetris panel is not
// held in place well enough by the layers above and below it.
func BuildPieces(w model.Walls) (model.PieceSet, error) {
	tetris, err := buildTetrisPanels(w)
	if err != nil {
		return model.PieceSet{}, err
	}
	layers := buildLayerPanels(w, tetris)
	if !piecesSupported(tetris, layers) {
		return model.PieceSet{}, model.NewMazeError(false, "one or more tetris pieces with insufficient layer piece support")
	}
	sides := buildSidePanels(w, tetris, layers)
	return model.PieceSet{Tetris: tetris, Layers: layers, Sides: sides}, nil
}

// buildTetrisPanels scans every vertical wall plane, XZ planes first, and
// grows panels tile by tile. YZ panels crossing an XZ panel are then split
// at the crossing. The result lists XZ panels before YZ panels.
func buildTetrisPanels(w model.Walls) ([]model.TetrisPanel, error) {
	size := w.Size()
	var xzPlanes, yzPlanes [][]model.TetrisPanel
	for _, isXZ := range []bool{true, false} {
		normalLen, parallelLen := size[0], size[1]
		if isXZ {
			normalLen, parallelLen = size[1], size[0]
		}
		dir := model.Direction{Dim: 1, Positive: true}
		if !isXZ {
			dir.Dim = 0
		}

		planes := make([][]model.TetrisPanel, 0, max(0, normalLen-1))
		for p := 0; p < normalLen-1; p++ {
			var plane []model.TetrisPanel
			for z := 0; z < size[2]; z++ {
				for h := 0; h < parallelLen; h++ {
					loc := [3]int{p, h, z}
					if isXZ {
						loc = [3]int{h, p, z}
					}
					if !w.Wall(loc[0], loc[1], loc[2], dir) {
						continue
					}
					plane = placeTile(plane, loc, !isXZ)
				}
			}
			planes = append(planes, plane)
		}
		if isXZ {
			xzPlanes = planes
		} else {
			yzPlanes = planes
		}
	}

	if err := splitIntersecting(yzPlanes, xzPlanes); err != nil {
		return nil, err
	}

	var out []model.TetrisPanel
	for _, planes := range [][][]model.TetrisPanel{xzPlanes, yzPlanes} {
		for _, plane := range planes {
			out = append(out, plane...)
		}
	}
	return out, nil
}

// placeTile adds the wall tile at loc to the first panel of the plane that
// accepts it, then folds every other accepting panel into that one when the
// combined shape is still valid.
func placeTile(plane []model.TetrisPanel, loc [3]int, yz bool) []model.TetrisPanel {
	holder := -1
	for i := 0; i < len(plane); i++ {
		if !plane[i].IsValidPlacement(loc) {
			continue
		}
		if holder < 0 {
			plane[i].AddLocation(loc)
			holder = i
			continue
		}
		combined := plane[holder].CombineWith(plane[i])
		if combined.IsValid() {
			plane[holder] = combined
			plane = append(plane[:i], plane[i+1:]...)
			i--
		}
	}
	if holder < 0 {
		plane = append(plane, model.NewTetrisPanel(loc, yz))
	}
	return plane
}

// splitIntersecting replaces every YZ panel that crosses an XZ panel with
// the two halves on either side of the crossing. XZ planes are tried in
// order, so the lower half crosses nothing more and only the upper half is
// checked again.
func splitIntersecting(yzPlanes, xzPlanes [][]model.TetrisPanel) error {
	for pi := range yzPlanes {
		plane := yzPlanes[pi]
	next:
		for i := 0; i < len(plane); i++ {
			for _, xzPlane := range xzPlanes {
				for _, xz := range xzPlane {
					if !model.IntersectsOrthogonally(xz, plane[i]) {
						continue
					}
					halves, err := plane[i].SplitBy(xz)
					if err != nil {
						return model.NewInternalError("%v", err)
					}
					plane = append(plane[:i], append(halves[:], plane[i+1:]...)...)
					continue next
				}
			}
		}
		yzPlanes[pi] = plane
	}
	return nil
}

// buildLayerPanels derives the Z+1 horizontal layers and marks where each
// tetris panel passes through them: a perforation where the panel ends at
// the layer and a slot where it continues through.
func buildLayerPanels(w model.Walls, tetris []model.TetrisPanel) []model.LayerPanel {
	size := w.Size()
	layers := make([]model.LayerPanel, 0, size[2]+1)
	for z := -1; z < size[2]; z++ {
		layer := model.NewLayerPanel(w, z)
		for _, piece := range tetris {
			isXZ := !piece.YZ
			for xy := piece.MinXY(); xy <= piece.MaxXY(); xy++ {
				loc := [3]int{-1, xy, z}
				if isXZ {
					loc = [3]int{xy, -1, z}
				}
				below := piece.ContainsLocation(loc)
				loc[2]++
				above := piece.ContainsLocation(loc)
				if !above && !below {
					continue
				}
				perf := model.PerfSlot
				if above != below {
					perf = model.PerfPerf
				}
				lx, ly := piece.NormalOffset(), xy
				d := model.PosX
				if isXZ {
					lx, ly = xy, piece.NormalOffset()
					d = model.PosY
				}
				layer.SetPerforation(lx, ly, d, perf)
			}
		}
		layers = append(layers, layer)
	}
	return layers
}

// buildSidePanels derives the four enclosure faces. Layers and tetris
// panels meeting a face perforate it; missing boundary walls become holes.
func buildSidePanels(w model.Walls, tetris []model.TetrisPanel, layers []model.LayerPanel) []model.SidePanel {
	size := w.Size()
	sides := make([]model.SidePanel, 0, len(model.SideNormals))
	for _, normal := range model.SideNormals {
		side := model.NewSidePanel(normal, size)
		yz := side.IsYZ()
		fixed := 0
		if normal.Positive {
			fixed = side.NormalLength - 1
		}
		at := func(along, z int) [3]int {
			if yz {
				return [3]int{fixed, along, z}
			}
			return [3]int{along, fixed, z}
		}

		for _, layer := range layers {
			if layer.Z == -1 {
				continue
			}
			for a := 0; a < side.Width; a++ {
				loc := at(a, 0)
				side.SetPerforation(a, layer.Z, model.PosY, !layer.Hole(loc[0], loc[1]))
			}
		}

		for _, piece := range tetris {
			if piece.YZ == yz {
				continue
			}
			a := piece.NormalOffset()
			for z := piece.MinZ(); z <= piece.MaxZ(); z++ {
				if piece.ContainsLocation(at(a, z)) {
					side.SetPerforation(a, z, model.PosX, true)
				}
			}
		}

		for a := 0; a < side.Width; a++ {
			for z := 0; z < side.Height; z++ {
				loc := at(a, z)
				if !w.Wall(loc[0], loc[1], loc[2], normal) {
					side.AddHole(model.Coordinate{X: a, Y: z})
				}
			}
		}
		sides = append(sides, side)
	}
	return sides
}
