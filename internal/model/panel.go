package model

import "fmt"

// Family is the kind of a panel.
type Family int

const (
	FamilyTetris Family = iota
	FamilyLayer
	FamilySide
)

func (f Family) String() string {
	switch f {
	case FamilyTetris:
		return "tetris"
	case FamilyLayer:
		return "layer"
	case FamilySide:
		return "side"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// Panel is the geometry every panel family shares: the maze tile location
// of its raster origin and the maze directions of its raster axes. Z is the
// direction of the material thickness.
type Panel interface {
	Corner() [3]int
	XDirection() Direction
	YDirection() Direction
	ZDirection() Direction
}

// PanelRef identifies a panel by family and index within a PieceSet.
type PanelRef struct {
	Family Family `json:"family"`
	Index  int    `json:"index"`
}

func (r PanelRef) String() string {
	return fmt.Sprintf("%s panel #%d", r.Family, r.Index)
}

// PieceSet holds every panel of a maze. Indices are stable: a PanelRef into
// a PieceSet also addresses the matching raster and cut schematic.
type PieceSet struct {
	Tetris []TetrisPanel
	Layers []LayerPanel
	Sides  []SidePanel
}

// Len returns the number of panels of a family.
func (s PieceSet) Len(f Family) int {
	switch f {
	case FamilyTetris:
		return len(s.Tetris)
	case FamilyLayer:
		return len(s.Layers)
	case FamilySide:
		return len(s.Sides)
	default:
		panic(fmt.Sprintf("unknown panel family %d", f))
	}
}

// Panel returns the geometry of the referenced panel.
func (s PieceSet) Panel(ref PanelRef) Panel {
	switch ref.Family {
	case FamilyTetris:
		return s.Tetris[ref.Index]
	case FamilyLayer:
		return s.Layers[ref.Index]
	case FamilySide:
		return s.Sides[ref.Index]
	default:
		panic(fmt.Sprintf("unknown panel family %d", ref.Family))
	}
}

// Describe returns the human readable description of a panel.
func (s PieceSet) Describe(ref PanelRef) string {
	switch ref.Family {
	case FamilyTetris:
		return s.Tetris[ref.Index].String()
	case FamilyLayer:
		return s.Layers[ref.Index].String()
	case FamilySide:
		return s.Sides[ref.Index].String()
	default:
		panic(fmt.Sprintf("unknown panel family %d", ref.Family))
	}
}

// Refs lists every panel, family by family in the order given.
func (s PieceSet) Refs(order ...Family) []PanelRef {
	var refs []PanelRef
	for _, f := range order {
		for i := 0; i < s.Len(f); i++ {
			refs = append(refs, PanelRef{Family: f, Index: i})
		}
	}
	return refs
}

// Total is the number of panels across all families.
func (s PieceSet) Total() int {
	return len(s.Tetris) + len(s.Layers) + len(s.Sides)
}

// GridSet holds the rasters of a PieceSet, indexed the same way.
type GridSet struct {
	Tetris []*CellGrid
	Layers []*CellGrid
	Sides  []*CellGrid
}

func (g GridSet) Grid(ref PanelRef) *CellGrid {
	switch ref.Family {
	case FamilyTetris:
		return g.Tetris[ref.Index]
	case FamilyLayer:
		return g.Layers[ref.Index]
	case FamilySide:
		return g.Sides[ref.Index]
	default:
		panic(fmt.Sprintf("unknown panel family %d", ref.Family))
	}
}

// SchematicSet holds the traced cut schematics of a PieceSet, indexed the
// same way.
type SchematicSet struct {
	Tetris []CutSchematic
	Layers []CutSchematic
	Sides  []CutSchematic
}

func (s SchematicSet) Schematic(ref PanelRef) CutSchematic {
	switch ref.Family {
	case FamilyTetris:
		return s.Tetris[ref.Index]
	case FamilyLayer:
		return s.Layers[ref.Index]
	case FamilySide:
		return s.Sides[ref.Index]
	default:
		panic(fmt.Sprintf("unknown panel family %d", ref.Family))
	}
}

// CellToGlobal maps raster cell (x, y) of a panel to its global fine-grid
// location.
func CellToGlobal(p Panel, x, y int) [3]int {
	corner := p.Corner()
	xo, yo := p.XDirection().Offsets3(), p.YDirection().Offsets3()
	var loc [3]int
	for d := 0; d < 3; d++ {
		loc[d] = TileToCell(corner[d]) + x*xo[d] + y*yo[d]
	}
	return loc
}
