package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetProfileFallsBackToGeneric(t *testing.T) {
	p := GetProfile("NonExistent")
	if p.Name != "Generic" {
		t.Errorf("expected Generic fallback, got %s", p.Name)
	}
}

func TestGetProfileNames(t *testing.T) {
	names := GetProfileNames()
	if len(names) != len(LaserProfiles) {
		t.Fatalf("expected %d names, got %d", len(LaserProfiles), len(names))
	}
	found := map[string]bool{}
	for _, n := range names {
		found[n] = true
	}
	for _, want := range []string{"Grbl", "LinuxCNC", "Generic"} {
		if !found[want] {
			t.Errorf("profile %s missing from names", want)
		}
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, DocumentWidth, s.SheetWidth)
	assert.Equal(t, DocumentHeight, s.SheetHeight)
	assert.Equal(t, Margin, s.Margin)
	assert.True(t, s.RepairIslands)
	assert.True(t, s.EliminateMidpoints)
	assert.Equal(t, "Generic", GetProfile(s.LaserProfile).Name)
}

func TestSchematicErrorKinds(t *testing.T) {
	maze := fmt.Errorf("attempt 3: %w", NewMazeError(true, "cannot fill central column at (%d, %d, %d)", 1, 2, 0))
	internal := NewInternalError("multiple pieces occupying the same cube")

	assert.True(t, IsMazeDependent(maze))
	assert.False(t, IsInternal(maze))
	assert.True(t, IsInternal(internal))
	assert.False(t, IsMazeDependent(errors.New("plain")))

	var se *SchematicError
	if assert.True(t, errors.As(maze, &se)) {
		assert.Equal(t, "cannot fill central column at (1, 2, 0)", se.Reason)
		assert.True(t, se.Display)
	}
	assert.Contains(t, internal.Error(), "internal")
}

type solidWalls struct {
	size [3]int
	open map[[4]int]bool // x, y, z, direction index
}

func (w solidWalls) Size() [3]int { return w.size }

func (w solidWalls) Wall(x, y, z int, d Direction) bool {
	return !w.open[[4]int{x, y, z, d.Index()}]
}

func TestLayerPanel_HolesFollowVerticalWalls(t *testing.T) {
	w := solidWalls{size: [3]int{2, 2, 2}, open: map[[4]int]bool{
		{1, 0, 0, NegZ.Index()}: true,
		{0, 1, 0, PosZ.Index()}: true,
	}}

	floor := NewLayerPanel(w, -1)
	middle := NewLayerPanel(w, 0)

	assert.True(t, floor.Hole(1, 0))
	assert.False(t, floor.Hole(0, 1))
	assert.True(t, middle.Hole(0, 1))
	assert.False(t, middle.Hole(1, 0))
	assert.Equal(t, [3]int{0, 0, 0}, floor.Corner())
	assert.Equal(t, [3]int{0, 0, 1}, middle.Corner())
}

func TestLayerPanel_SetPerforationMirrors(t *testing.T) {
	l := NewLayerPanel(solidWalls{size: [3]int{3, 2, 1}}, 0)
	l.SetPerforation(0, 0, PosX, PerfSlot)
	l.SetPerforation(2, 1, PosX, PerfPerf) // border edge, no neighbour

	assert.Equal(t, PerfSlot, l.Perforation(1, 0, NegX))
	assert.Equal(t, PerfPerf, l.Perforation(2, 1, PosX))
	assert.Equal(t, PerfNone, l.Perforation(1, 0, PosX))
	assert.Contains(t, l.String(), "layer panel at z = 0")
}

func TestSidePanel_Geometry(t *testing.T) {
	size := [3]int{3, 4, 5}
	left := NewSidePanel(NegX, size)
	right := NewSidePanel(PosX, size)
	back := NewSidePanel(PosY, size)

	assert.Equal(t, 4, left.Width)
	assert.Equal(t, 5, left.Height)
	assert.Equal(t, 3, back.Width)
	assert.Equal(t, [3]int{0, 0, 0}, left.Corner())
	assert.Equal(t, [3]int{3, 0, 0}, right.Corner())
	assert.Equal(t, [3]int{0, 4, 0}, back.Corner())
	assert.Equal(t, [3]int{2, 1, 2}, right.CoordinateToLocation(1, 2))
	assert.Equal(t, [3]int{1, -1, 2}, NewSidePanel(NegY, size).CoordinateToLocation(1, 2))
	assert.Equal(t, "back", back.Name())

	left.AddHole(Coordinate{1, 0})
	assert.True(t, left.HasHole(1, 0))
	assert.False(t, left.HasHole(0, 1))

	left.SetPerforation(0, 0, PosY, true)
	assert.True(t, left.Perforation(0, 1, NegY))
}

func TestCellToGlobal(t *testing.T) {
	layer := LayerPanel{Z: 0}
	side := NewSidePanel(NegX, [3]int{2, 2, 2})
	xz := TetrisPanel{Root: [3]int{1, 0, 0}, Shape: NewCoordinateSet(Coordinate{})}

	assert.Equal(t, [3]int{3, 4, 7}, CellToGlobal(layer, 3, 4))
	assert.Equal(t, [3]int{0, 3, 4}, CellToGlobal(side, 3, 4))
	assert.Equal(t, [3]int{10, 7, 4}, CellToGlobal(xz, 3, 4))
}

func TestPieceSet_Refs(t *testing.T) {
	ps := PieceSet{
		Tetris: make([]TetrisPanel, 2),
		Layers: make([]LayerPanel, 1),
		Sides:  make([]SidePanel, 1),
	}
	refs := ps.Refs(FamilyLayer, FamilySide, FamilyTetris)
	assert.Equal(t, []PanelRef{
		{FamilyLayer, 0}, {FamilySide, 0}, {FamilyTetris, 0}, {FamilyTetris, 1},
	}, refs)
	assert.Equal(t, 4, ps.Total())
	assert.Equal(t, "tetris panel #1", refs[3].String())
}

func TestFindProfile_CustomFirst(t *testing.T) {
	custom := []LaserProfile{{Name: "Grbl", Description: "shop override"}, {Name: "K40"}}

	assert.Equal(t, "shop override", FindProfile("Grbl", custom).Description)
	assert.Equal(t, "K40", FindProfile("K40", custom).Name)
	assert.Equal(t, "LinuxCNC", FindProfile("LinuxCNC", custom).Name)
	assert.Equal(t, "Generic", FindProfile("missing", custom).Name)

	assert.True(t, IsBuiltInProfile("Grbl"))
	assert.False(t, IsBuiltInProfile("K40"))
}
