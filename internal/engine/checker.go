package engine

import (
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/piwi3910/mazecut/internal/model"
)

// Checker proves that a set of panel rasters rebuilds the maze exactly.
type Checker struct {
	// Repair moves isolated solid cells on layers and sides onto a
	// neighbouring panel instead of failing.
	Repair bool
	Log    logrus.FieldLogger
}

// Check validates the rasters against the maze walls. Repairs are applied
// to grids in place.
func (c *Checker) Check(w model.Walls, pieces model.PieceSet, grids model.GridSet) error {
	size := w.Size()
	if c.Repair {
		if err := c.islandedCells(size, pieces, grids, true); err != nil {
			return err
		}
	}
	if err := c.islandedCells(size, pieces, grids, false); err != nil {
		return err
	}
	if err := islandedLayerSections(grids.Layers); err != nil {
		return err
	}
	return checkAdherence(w, pieces, grids)
}

func (c *Checker) log() logrus.FieldLogger {
	if c.Log == nil {
		return discardLogger()
	}
	return c.Log
}

// islandedCells looks for SOLID cells with no SOLID neighbour. Such a cell
// would fall out of its panel once cut.
func (c *Checker) islandedCells(size [3]int, pieces model.PieceSet, grids model.GridSet, fix bool) error {
	for _, ref := range pieces.Refs(model.FamilyTetris, model.FamilyLayer, model.FamilySide) {
		g := grids.Grid(ref)
		for x := 0; x < g.Width; x++ {
			for y := 0; y < g.Height; y++ {
				if !isIslanded(g, x, y) {
					continue
				}
				if !fix {
					return c.islandError(ref, x, y)
				}
				if err := c.moveCell(size, pieces, grids, ref, x, y); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// islandError rejects the maze when repair is off. An island left over
// after repair ran is a pipeline bug.
func (c *Checker) islandError(ref model.PanelRef, x, y int) error {
	if !c.Repair {
		return model.NewMazeError(false, "islanded cell at (%d, %d) of %s", x, y, ref)
	}
	return model.NewInternalError("Islanded tile could not be fixed")
}

func isIslanded(g *model.CellGrid, x, y int) bool {
	if g.Cell(x, y) != model.CellSolid {
		return false
	}
	for _, d := range model.Directions(2) {
		nx, ny := x+d.Offset(0), y+d.Offset(1)
		if g.InBounds(nx, ny) && g.Cell(nx, ny) == model.CellSolid {
			return false
		}
	}
	return true
}

// moveCell hands an isolated cell on the enclosure boundary to another
// panel meeting at the same point.
func (c *Checker) moveCell(size [3]int, pieces model.PieceSet, grids model.GridSet, from model.PanelRef, x, y int) error {
	if from.Family == model.FamilyTetris {
		return model.NewInternalError("islanded cell on tetris piece")
	}
	loc := model.CellToGlobal(pieces.Panel(from), x, y)
	ext := [3]int{model.TileToCell(size[0]), model.TileToCell(size[1]), model.TileToCell(size[2])}

	side := func(i int) model.PanelRef { return model.PanelRef{Family: model.FamilySide, Index: i} }
	left, right, front, back := side(0), side(1), side(2), side(3)
	bottom := model.PanelRef{Family: model.FamilyLayer, Index: 0}
	top := model.PanelRef{Family: model.FamilyLayer, Index: len(pieces.Layers) - 1}

	var touching []model.PanelRef
	for _, t := range []struct {
		ref model.PanelRef
		on  bool
	}{
		{left, loc[0] == 0},
		{right, loc[0] == ext[0]},
		{front, loc[1] == 0},
		{back, loc[1] == ext[1]},
		{bottom, loc[2] == 0},
		{top, loc[2] == ext[2]},
	} {
		if t.on {
			touching = append(touching, t.ref)
		}
	}
	if len(touching) != 2 && len(touching) != 3 {
		return model.NewInternalError("islanded cell at %v touches %d panels", loc, len(touching))
	}

	// At these enclosure corners one of the panels does not actually
	// reach the corner cell.
	excluded := map[model.PanelRef]bool{from: true}
	switch loc {
	case [3]int{0, 0, 0}:
		excluded[front] = true
	case [3]int{0, ext[1], 0}:
		excluded[back] = true
	case [3]int{ext[0], 0, 0}:
		excluded[bottom] = true
	case [3]int{ext[0], 0, ext[2]}:
		excluded[top] = true
	case [3]int{0, ext[1], ext[2]}:
		excluded[left] = true
	}
	to := -1
	for i, ref := range touching {
		if !excluded[ref] {
			to = i
			break
		}
	}
	if to < 0 {
		return model.NewInternalError("no panel can take the islanded cell at %v", loc)
	}
	target := touching[to]

	tx, ty, err := solveCell(pieces.Panel(target), loc)
	if err != nil {
		return err
	}
	tg := grids.Grid(target)
	if !tg.InBounds(tx, ty) {
		return model.NewInternalError("islanded cell at %v maps outside %s", loc, target)
	}
	grids.Grid(from).SetCell(x, y, model.CellHole)
	tg.SetCell(tx, ty, model.CellSolid)
	c.log().WithFields(logrus.Fields{
		"from": from.String(),
		"to":   target.String(),
	}).Debugf("moved islanded cell at %v", loc)
	return nil
}

// solveCell finds the raster cell of p at global location loc by solving
// corner + x*X + y*Y = loc over the two axes the panel spans.
func solveCell(p model.Panel, loc [3]int) (int, int, error) {
	root := model.CellToGlobal(p, 0, 0)
	xo, yo := p.XDirection().Offsets3(), p.YDirection().Offsets3()

	var axes []int
	for d := 0; d < 3; d++ {
		if xo[d] != 0 || yo[d] != 0 {
			axes = append(axes, d)
		}
	}
	if len(axes) != 2 {
		return 0, 0, model.NewInternalError("panel basis spans %d axes", len(axes))
	}
	i, j := axes[0], axes[1]
	a := mat.NewDense(2, 2, []float64{
		float64(xo[i]), float64(yo[i]),
		float64(xo[j]), float64(yo[j]),
	})
	b := mat.NewVecDense(2, []float64{float64(loc[i] - root[i]), float64(loc[j] - root[j])})
	var sol mat.VecDense
	if err := sol.SolveVec(a, b); err != nil {
		return 0, 0, model.NewInternalError("cannot place cell at %v: %v", loc, err)
	}
	return int(math.Round(sol.AtVec(0))), int(math.Round(sol.AtVec(1))), nil
}

// islandedLayerSections fails when a solid region of a layer does not
// reach the layer's border, so it could not be held by the sides.
func islandedLayerSections(layers []*model.CellGrid) error {
	for _, g := range layers {
		for _, section := range solidSections(g) {
			anchored := false
			for _, cell := range section {
				if onBorder(g, cell) {
					anchored = true
					break
				}
			}
			if !anchored {
				return model.NewMazeError(true, "islanded layer piece section")
			}
		}
	}
	return nil
}

// ExpectedCells returns the fine-grid locations covered by the maze walls.
// Each wall of a cell covers an 8x8 block of the cell's face.
func ExpectedCells(w model.Walls) map[[3]int]struct{} {
	size := w.Size()
	out := make(map[[3]int]struct{})
	for _, d := range model.Directions(3) {
		for x := 0; x < size[0]; x++ {
			for y := 0; y < size[1]; y++ {
				for z := 0; z < size[2]; z++ {
					if !w.Wall(x, y, z, d) {
						continue
					}
					base := [3]int{model.TileToCell(x), model.TileToCell(y), model.TileToCell(z)}
					if d.Positive {
						base[d.Dim] += model.CellsPerTile
					}
					u, v := (d.Dim+1)%3, (d.Dim+2)%3
					if d.Dim == 1 {
						u, v = 0, 2
					}
					for fu := 0; fu <= model.CellsPerTile; fu++ {
						for fv := 0; fv <= model.CellsPerTile; fv++ {
							loc := base
							loc[u] += fu
							loc[v] += fv
							out[loc] = struct{}{}
						}
					}
				}
			}
		}
	}
	return out
}

// checkAdherence compares the solid cells of every raster, mapped into the
// global fine grid, with the cells the maze walls call for.
func checkAdherence(w model.Walls, pieces model.PieceSet, grids model.GridSet) error {
	expected := ExpectedCells(w)
	actual := make(map[[3]int]struct{}, len(expected))
	duplicate := false
	for _, ref := range pieces.Refs(model.FamilyTetris, model.FamilyLayer, model.FamilySide) {
		p, g := pieces.Panel(ref), grids.Grid(ref)
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				if g.Cell(x, y) != model.CellSolid {
					continue
				}
				loc := model.CellToGlobal(p, x, y)
				if _, seen := actual[loc]; seen {
					duplicate = true
				}
				actual[loc] = struct{}{}
			}
		}
	}
	if duplicate {
		return model.NewInternalError("multiple pieces occupying the same cube")
	}
	for loc := range expected {
		if _, ok := actual[loc]; !ok {
			return model.NewInternalError("cube specified by maze contract not occupied by any piece")
		}
	}
	for loc := range actual {
		if _, ok := expected[loc]; !ok {
			return model.NewInternalError("piece occupies cube not specified by maze contract")
		}
	}
	return nil
}
