package engine

import "github.com/piwi3910/mazecut/internal/model"

// Rasterize builds the initial cell grid of every panel. Perforated edges
// are left as PERF cells for resolvePerforations to settle.
func Rasterize(size [3]int, pieces model.PieceSet, inter *Interstices) model.GridSet {
	var grids model.GridSet
	for i, piece := range pieces.Tetris {
		grids.Tetris = append(grids.Tetris, rasterizeTetris(size, piece, i, inter, pieces.Layers))
	}
	for _, layer := range pieces.Layers {
		grids.Layers = append(grids.Layers, rasterizeLayer(layer, size[2], pieces.Sides))
	}
	for _, side := range pieces.Sides {
		grids.Sides = append(grids.Sides, rasterizeSide(side, pieces.Sides, pieces.Layers))
	}
	return grids
}

// layerAt returns the layer above maze level z. Layers are stored floor
// first, so the floor (z = -1) is at index 0.
func layerAt(layers []model.LayerPanel, z int) model.LayerPanel {
	return layers[z+1]
}

// sideFacing returns the side panel with the given outward normal.
func sideFacing(sides []model.SidePanel, normal model.Direction) model.SidePanel {
	for _, s := range sides {
		if s.Normal == normal {
			return s
		}
	}
	panic("no side panel facing " + normal.String())
}

func rasterizeTetris(size [3]int, piece model.TetrisPanel, index int, inter *Interstices, layers []model.LayerPanel) *model.CellGrid {
	minX, maxX := piece.Shape.MinX(), piece.Shape.MaxX()
	minY, maxY := piece.Shape.MinY(), piece.Shape.MaxY()
	g := model.NewCellGrid(maxX-minX+1, maxY-minY+1, false)
	coords := piece.Shape.Items()

	for _, c := range coords {
		g.SetTileAndExtendNeighbors(c.X-minX, c.Y-minY, true)
	}

	for _, loc := range inter.ColumnsOf(index) {
		c := piece.LocationToCoordinate(loc)
		g.SetEdge(c.X-minX, c.Y-minY, model.PosX, model.CellSolid)
	}

	// the first and last tiles along the enclosure slot into the sides
	if minX == piece.LocationToCoordinate([3]int{}).X {
		for y := minY; y <= maxY; y++ {
			if piece.Contains(model.Coordinate{X: minX, Y: y}) {
				g.SetEdge(0, y-minY, model.NegX, model.CellPerf)
			}
		}
	}

	hnd := piece.NormalDim()
	for _, c := range coords {
		for _, d := range []model.Direction{model.NegY, model.PosY} {
			next := c.Step(d)
			if piece.Contains(next) {
				continue
			}
			loc := piece.CoordinateToLocation(next)
			if d.Positive {
				loc = piece.CoordinateToLocation(c)
			}
			layer := layerAt(layers, loc[2])
			nx, ny := loc[0], loc[1]
			px, py := nx, ny
			if hnd == 0 {
				px++
			} else {
				py++
			}
			cell := model.CellPerf
			if layer.Hole(nx, ny) && layer.Hole(px, py) {
				cell = model.CellSolid
			}
			g.SetEdge(c.X-minX, c.Y-minY, d, cell)
		}
	}

	for _, loc := range inter.CubesOf(index) {
		c := piece.LocationToCoordinate(loc)
		g.SetCorner(c.X-minX, c.Y-minY, model.PosX, model.CellSolid, true)
	}

	if maxX == piece.LocationToCoordinate(size).X-1 {
		for y := minY; y <= maxY; y++ {
			if piece.Contains(model.Coordinate{X: maxX, Y: y}) {
				g.SetEdge(maxX-minX, y-minY, model.PosX, model.CellPerf)
			}
		}
	}
	return g
}

func rasterizeLayer(layer model.LayerPanel, levels int, sides []model.SidePanel) *model.CellGrid {
	w, d := layer.Width, layer.Depth
	g := model.NewCellGrid(w, d, true)

	for _, dir := range []model.Direction{model.PosX, model.PosY} {
		xEnd, yEnd := w, d
		if dir.Dim == 0 {
			xEnd--
		} else {
			yEnd--
		}
		for x := 0; x < xEnd; x++ {
			for y := 0; y < yEnd; y++ {
				switch layer.Perforation(x, y, dir) {
				case model.PerfPerf:
					g.SetEdge(x, y, dir, model.CellPerf)
				case model.PerfSlot:
					g.SetEdge(x, y, dir, model.CellHole)
				}
			}
		}
	}

	top := layer.Z == levels-1
	outer := layer.Z == -1 || top
	level := 0
	if top {
		level = levels - 1
	}
	// on the floor and roof an edge next to an entrance stays solid
	border := func(tx, ty int, dir model.Direction, side model.SidePanel, along int) {
		if layer.Hole(tx, ty) {
			return
		}
		cell := model.CellPerf
		if outer && side.HasHole(along, level) {
			cell = model.CellSolid
		}
		g.SetEdge(tx, ty, dir, cell)
	}
	front, back := sideFacing(sides, model.NegY), sideFacing(sides, model.PosY)
	left, right := sideFacing(sides, model.NegX), sideFacing(sides, model.PosX)
	for x := 0; x < w; x++ {
		border(x, 0, model.NegY, front, x)
		border(x, d-1, model.PosY, back, x)
	}
	for y := 0; y < d; y++ {
		border(0, y, model.NegX, left, y)
		border(w-1, y, model.PosX, right, y)
	}

	for x := 0; x < w; x++ {
		for y := 0; y < d; y++ {
			if layer.Hole(x, y) {
				g.SetTileAndExtendNeighbors(x, y, false)
			}
		}
	}

	if !outer {
		// central columns pass through every middle layer
		for x := 0; x < w-1; x++ {
			for y := 0; y < d-1; y++ {
				g.SetCorner(x, y, model.PosX, model.CellHole, true)
			}
		}
		for x := 0; x < w; x++ {
			for _, upper := range []bool{false, true} {
				g.SetCorner(x, 0, model.NegY, model.CellHole, upper)
				g.SetCorner(x, d-1, model.PosY, model.CellHole, upper)
			}
		}
		for y := 0; y < d; y++ {
			for _, upper := range []bool{false, true} {
				g.SetCorner(0, y, model.NegX, model.CellHole, upper)
				g.SetCorner(w-1, y, model.PosX, model.CellHole, upper)
			}
		}
		g.SetCorner(0, 0, model.NegX, model.CellHole, false)
		g.SetCorner(w-1, 0, model.PosX, model.CellHole, false)
		g.SetCorner(0, d-1, model.NegX, model.CellHole, true)
		g.SetCorner(w-1, d-1, model.PosX, model.CellHole, true)
		return g
	}

	floor := layer.Z == -1
	g.SetCorner(0, 0, model.NegX, pick(floor, model.CellHole, model.CellSolid), false)
	g.SetCorner(w-1, 0, model.PosX, model.CellHole, false)
	g.SetCorner(0, d-1, model.NegX, model.CellSolid, true)
	g.SetCorner(w-1, d-1, model.PosX, pick(floor, model.CellSolid, model.CellHole), true)
	return g
}

func rasterizeSide(side model.SidePanel, sides []model.SidePanel, layers []model.LayerPanel) *model.CellGrid {
	w, h := side.Width, side.Height
	g := model.NewCellGrid(w, h, true)

	for _, dir := range []model.Direction{model.PosX, model.PosY} {
		xEnd, yEnd := w, h
		if dir.Dim == 0 {
			xEnd--
		} else {
			yEnd--
		}
		for x := 0; x < xEnd; x++ {
			for y := 0; y < yEnd; y++ {
				if side.Perforation(x, y, dir) {
					g.SetEdge(x, y, dir, model.CellPerf)
				}
			}
		}
	}

	// the vertical edges meet the neighbouring sides; a hole there leaves
	// the edge solid
	frontBack := !side.IsYZ()
	lowEnd := side.Normal == model.NegY || side.Normal == model.NegX
	leftNext, rightNext := sideFacing(sides, model.NegY), sideFacing(sides, model.PosY)
	if frontBack {
		leftNext, rightNext = sideFacing(sides, model.NegX), sideFacing(sides, model.PosX)
	}
	edgeX := func(next model.SidePanel) int {
		if lowEnd {
			return 0
		}
		return next.Width - 1
	}
	for y := 0; y < h; y++ {
		g.SetEdge(0, y, model.NegX, pick(leftNext.HasHole(edgeX(leftNext), y), model.CellSolid, model.CellPerf))
		g.SetEdge(w-1, y, model.PosX, pick(rightNext.HasHole(edgeX(rightNext), y), model.CellSolid, model.CellPerf))
	}

	bottom, top := layers[0], layers[len(layers)-1]
	layerHole := func(l model.LayerPanel, a int) bool {
		switch side.Normal {
		case model.NegY:
			return l.Hole(a, 0)
		case model.PosY:
			return l.Hole(a, l.Depth-1)
		case model.NegX:
			return l.Hole(0, a)
		default:
			return l.Hole(l.Width-1, a)
		}
	}
	for x := 0; x < w; x++ {
		g.SetEdge(x, 0, model.NegY, pick(layerHole(bottom, x), model.CellSolid, model.CellPerf))
		g.SetEdge(x, h-1, model.PosY, pick(layerHole(top, x), model.CellSolid, model.CellPerf))
	}

	for _, hole := range side.Holes() {
		g.SetTileAndExtendNeighbors(hole.X, hole.Y, false)
	}

	for x := 0; x < w; x++ {
		for _, upper := range []bool{false, true} {
			g.SetCorner(x, 0, model.NegY, model.CellHole, upper)
			g.SetCorner(x, h-1, model.PosY, model.CellHole, upper)
		}
	}
	vertical := pick(side.IsYZ(), model.CellHole, model.CellSolid)
	for y := 0; y < h; y++ {
		for _, upper := range []bool{false, true} {
			g.SetCorner(0, y, model.NegX, vertical, upper)
			g.SetCorner(w-1, y, model.PosX, vertical, upper)
		}
	}

	if frontBack {
		g.SetCorner(0, 0, model.NegX, model.CellHole, false)
		g.SetCorner(w-1, 0, model.PosX, model.CellHole, false)
		g.SetCorner(0, h-1, model.NegX, model.CellHole, true)
		g.SetCorner(w-1, h-1, model.PosX, model.CellSolid, true)
	} else {
		g.SetCorner(0, 0, model.NegX, model.CellSolid, false)
		g.SetCorner(w-1, 0, model.PosX, model.CellHole, false)
		g.SetCorner(0, h-1, model.NegX, model.CellHole, true)
		g.SetCorner(w-1, h-1, model.PosX, model.CellHole, true)
	}
	return g
}

func pick(cond bool, a, b model.Cell) model.Cell {
	if cond {
		return a
	}
	return b
}
