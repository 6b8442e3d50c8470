package engine

import "github.com/piwi3910/mazecut/internal/model"

// parityRule settles one PERF cell. onRow is true when the cell lies on a
// horizontal tile boundary and false when it lies on a vertical one.
type parityRule func(onRow bool, x, y int) model.Cell

// alternate returns SOLID on even steps and HOLE on odd ones, or the
// reverse when inverted.
func alternate(v int, inverted bool) model.Cell {
	even := v%model.CellsPerTile%2 == 0
	if even != inverted {
		return model.CellSolid
	}
	return model.CellHole
}

// Meeting edges of two panels use opposite phases so that a tab on one
// lands in a gap on the other.
func tetrisParity(piece model.TetrisPanel) parityRule {
	return func(onRow bool, x, y int) model.Cell {
		switch {
		case onRow && !piece.YZ:
			return alternate(x, false)
		case onRow:
			return alternate(x+6, false)
		case !piece.YZ:
			return alternate(y+6, true)
		default:
			return alternate(y, true)
		}
	}
}

func layerParity(onRow bool, x, y int) model.Cell {
	if onRow {
		return alternate(x+6, false)
	}
	return alternate(y, false)
}

func sideParity(side model.SidePanel) parityRule {
	inverted := side.IsYZ()
	return func(onRow bool, x, y int) model.Cell {
		if onRow {
			return alternate(x, inverted)
		}
		return alternate(y, inverted)
	}
}

// resolvePerforations replaces every PERF cell of g with its tab or gap.
// A PERF cell must lie on exactly one tile boundary line.
func resolvePerforations(g *model.CellGrid, rule parityRule, ref model.PanelRef) error {
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			if g.Cell(x, y) != model.CellPerf {
				continue
			}
			onRow := y%model.CellsPerTile == 0
			onColumn := x%model.CellsPerTile == 0
			if onRow == onColumn {
				return model.NewInternalError("indeterminate perforation at (%d, %d) on %s", x, y, ref)
			}
			g.SetCell(x, y, rule(onRow, x, y))
		}
	}
	if x, y, found := g.Undetermined(); found {
		return model.NewInternalError("unresolved perforation at (%d, %d) on %s", x, y, ref)
	}
	return nil
}

// Perforate settles the perforations of every raster in place.
func Perforate(pieces model.PieceSet, grids model.GridSet) error {
	for i, g := range grids.Tetris {
		ref := model.PanelRef{Family: model.FamilyTetris, Index: i}
		if err := resolvePerforations(g, tetrisParity(pieces.Tetris[i]), ref); err != nil {
			return err
		}
	}
	for i, g := range grids.Layers {
		ref := model.PanelRef{Family: model.FamilyLayer, Index: i}
		if err := resolvePerforations(g, layerParity, ref); err != nil {
			return err
		}
	}
	for i, g := range grids.Sides {
		ref := model.PanelRef{Family: model.FamilySide, Index: i}
		if err := resolvePerforations(g, sideParity(pieces.Sides[i]), ref); err != nil {
			return err
		}
	}
	return nil
}
