package engine

import (
	"slices"

	"github.com/piwi3910/mazecut/internal/model"
)

// Packer lays panel rasters out on material sheets.
type Packer struct {
	Settings model.Settings
}

func NewPacker(settings model.Settings) *Packer {
	return &Packer{Settings: settings}
}

// sheetState tracks which cells of an open sheet are taken.
type sheetState struct {
	result model.SheetResult
	taken  [][]bool
}

func (p *Packer) newSheet(index int) *sheetState {
	taken := make([][]bool, p.Settings.SheetWidth)
	for x := range taken {
		taken[x] = make([]bool, p.Settings.SheetHeight)
	}
	return &sheetState{
		result: model.SheetResult{Index: index, Width: p.Settings.SheetWidth, Height: p.Settings.SheetHeight},
		taken:  taken,
	}
}

// Pack places every panel first-fit: layers, then sides, then tetris
// panels. Only solid cells claim sheet space, so panels may nest inside
// each other's holes. Placements on each sheet are sorted by position and
// numbered in that order across sheets.
func (p *Packer) Pack(pieces model.PieceSet, grids model.GridSet, schematics model.SchematicSet) ([]model.SheetResult, error) {
	m := p.Settings.Margin
	usableW := p.Settings.SheetWidth - 2*m
	usableH := p.Settings.SheetHeight - 2*m

	var sheets []*sheetState
	for _, ref := range pieces.Refs(model.FamilyLayer, model.FamilySide, model.FamilyTetris) {
		g := grids.Grid(ref)
		if g.Width > usableW || g.Height > usableH {
			return nil, model.NewInternalError("piece does not fit on material sheet")
		}
		placed := false
		for _, s := range sheets {
			if p.tryPlace(s, ref, g, pieces, schematics) {
				placed = true
				break
			}
		}
		if placed {
			continue
		}
		s := p.newSheet(len(sheets) + 1)
		if !p.tryPlace(s, ref, g, pieces, schematics) {
			return nil, model.NewInternalError("%s does not fit on an empty sheet", ref)
		}
		sheets = append(sheets, s)
	}

	out := make([]model.SheetResult, len(sheets))
	key := 0
	for i, s := range sheets {
		slices.SortStableFunc(s.result.Placements, func(a, b model.Placement) int {
			return a.Offset.Compare(b.Offset)
		})
		for j := range s.result.Placements {
			key++
			s.result.Placements[j].KeyNumber = key
		}
		out[i] = s.result
	}
	return out, nil
}

// tryPlace scans the sheet row by row for the first position where none
// of the panel's solid cells land on a taken cell.
func (p *Packer) tryPlace(s *sheetState, ref model.PanelRef, g *model.CellGrid, pieces model.PieceSet, schematics model.SchematicSet) bool {
	m := p.Settings.Margin
	for oy := m; oy <= p.Settings.SheetHeight-m-g.Height; oy++ {
		for ox := m; ox <= p.Settings.SheetWidth-m-g.Width; ox++ {
			if !fits(s.taken, g, ox, oy) {
				continue
			}
			for x := 0; x < g.Width; x++ {
				for y := 0; y < g.Height; y++ {
					if g.Cell(x, y) == model.CellSolid {
						s.taken[ox+x][oy+y] = true
					}
				}
			}
			offset := model.Coordinate{X: ox, Y: oy}
			s.result.Placements = append(s.result.Placements, model.Placement{
				Ref:    ref,
				Offset: offset,
				Width:  g.Width,
				Height: g.Height,
				Paths:  schematics.Schematic(ref).MoveBy(offset).Paths,
				Doc:    model.Describe(ox, oy, pieces.Describe(ref), g.String()),
			})
			return true
		}
	}
	return false
}

func fits(taken [][]bool, g *model.CellGrid, ox, oy int) bool {
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			if g.Cell(x, y) == model.CellSolid && taken[ox+x][oy+y] {
				return false
			}
		}
	}
	return true
}
