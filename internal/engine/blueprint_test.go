package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/mazecut/internal/model"
)

func TestBlueprint_Dedupe(t *testing.T) {
	b := Blueprint{
		{A: [3]int{0, 0, 0}, B: [3]int{1, 0, 0}, Kind: LineOutline},
		{A: [3]int{1, 0, 0}, B: [3]int{0, 0, 0}, Kind: LineSlot},
		{A: [3]int{1, 0, 0}, B: [3]int{1, 1, 0}},
	}
	got := b.Dedupe()
	require.Len(t, got, 2)
	assert.Equal(t, LineOutline, got[0].Kind)
}

func TestBlueprint_Bounds(t *testing.T) {
	b := Blueprint{
		{A: [3]int{2, 3, 4}, B: [3]int{5, 3, 4}},
		{A: [3]int{-1, 3, 9}, B: [3]int{2, 0, 4}},
	}
	lo, hi := b.Bounds()
	assert.Equal(t, [3]int{-1, 0, 4}, lo)
	assert.Equal(t, [3]int{5, 3, 9}, hi)
}

func assertAxisAligned(t *testing.T, b Blueprint) {
	t.Helper()
	for _, l := range b {
		changed := 0
		for d := 0; d < 3; d++ {
			if l.A[d] != l.B[d] {
				changed++
			}
		}
		assert.Equal(t, 1, changed, "line %v -> %v", l.A, l.B)
	}
}

func TestPanelBlueprint_Corridor(t *testing.T) {
	pieces, err := BuildPieces(corridorMaze())
	require.NoError(t, err)

	b := PanelBlueprint(pieces)
	require.NotEmpty(t, b)
	assertAxisAligned(t, b)

	families := make(map[model.Family]int)
	for _, l := range b {
		families[l.Family]++
	}
	assert.Positive(t, families[model.FamilyTetris])
	assert.Positive(t, families[model.FamilyLayer])
	assert.Positive(t, families[model.FamilySide])

	// every side is a 3x3 rectangle and the corridor maze has no openings
	sides := 0
	for _, l := range b {
		if l.Family == model.FamilySide && l.Kind == LineOutline {
			sides++
		}
	}
	assert.Equal(t, 16, sides)
}

func TestSchematicBlueprint_ThreeLinesPerVertex(t *testing.T) {
	res := NewPipeline(model.DefaultSettings(), nil).Run(corridorMaze())
	require.True(t, res.OK(), "%v", res.Err)

	vertices := 0
	for _, ref := range res.Set.Pieces.Refs(model.FamilyTetris, model.FamilyLayer, model.FamilySide) {
		for _, p := range res.Set.Schematics.Schematic(ref).Paths {
			vertices += len(p)
		}
	}
	b := SchematicBlueprint(res.Set.Pieces, res.Set.Schematics)
	assert.Len(t, b, 3*vertices)
	assertAxisAligned(t, b)
	for _, l := range b {
		assert.Equal(t, LineCut, l.Kind)
	}
}
