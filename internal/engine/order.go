package engine

import (
	"strconv"

	"github.com/piwi3910/mazecut/internal/model"
)

// AssemblyOrder lists the panels in the order they are put together:
// from the floor up, each layer followed by the XZ and then the YZ tetris
// panels standing on it, and the four sides last.
func AssemblyOrder(size [3]int, pieces model.PieceSet) ([]model.PanelRef, error) {
	var order []model.PanelRef
	seen := make(map[model.PanelRef]bool)
	add := func(ref model.PanelRef) {
		order = append(order, ref)
		seen[ref] = true
	}

	for z := -1; z < size[2]; z++ {
		for i, l := range pieces.Layers {
			if l.Z == z {
				add(model.PanelRef{Family: model.FamilyLayer, Index: i})
			}
		}
		for _, yz := range []bool{false, true} {
			planes := size[1] - 1
			if yz {
				planes = size[0] - 1
			}
			for n := 0; n < planes; n++ {
				for i, t := range pieces.Tetris {
					if t.YZ == yz && t.MinZ()-1 == z && t.NormalOffset() == n {
						add(model.PanelRef{Family: model.FamilyTetris, Index: i})
					}
				}
			}
		}
	}
	for i := range pieces.Sides {
		add(model.PanelRef{Family: model.FamilySide, Index: i})
	}

	if len(order) != pieces.Total() || len(seen) != pieces.Total() {
		return nil, model.NewInternalError("assembly order covers %d of %d panels", len(seen), pieces.Total())
	}
	return order, nil
}

// Annotate numbers every placement in assembly order and puts one label on
// each connected solid section of it. A label sits on the first cell two
// cells into a tile in both directions.
func Annotate(sheets []model.SheetResult, order []model.PanelRef, grids model.GridSet) error {
	ordinal := make(map[model.PanelRef]int, len(order))
	for i, ref := range order {
		ordinal[ref] = i + 1
	}
	for si := range sheets {
		for pi := range sheets[si].Placements {
			pl := &sheets[si].Placements[pi]
			n, ok := ordinal[pl.Ref]
			if !ok {
				return model.NewInternalError("%s missing from assembly order", pl.Ref)
			}
			pl.Ordinal = n
			pl.Labels = nil
			for _, section := range solidSections(grids.Grid(pl.Ref)) {
				site, found := labelSite(section)
				if !found {
					return model.NewInternalError("no label site on a section of %s", pl.Ref)
				}
				pl.Labels = append(pl.Labels, model.Label{
					Position: pl.Offset.Add(site),
					Text:     strconv.Itoa(n),
				})
			}
		}
	}
	return nil
}

func labelSite(section []model.Coordinate) (model.Coordinate, bool) {
	for _, c := range section {
		if c.X%model.CellsPerTile == 2 && c.Y%model.CellsPerTile == 2 {
			return c, true
		}
	}
	return model.Coordinate{}, false
}
