package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestCoordinateSet_KeepsYThenXOrder(t *testing.T) {
	s := NewCoordinateSet(Coordinate{2, 1}, Coordinate{0, 0}, Coordinate{1, 1}, Coordinate{3, 0})
	want := []Coordinate{{0, 0}, {3, 0}, {1, 1}, {2, 1}}
	if diff := cmp.Diff(want, s.Items()); diff != "" {
		t.Errorf("Items() mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, s.Contains(Coordinate{1, 0}))
	assert.Equal(t, 0, s.MinY())
	assert.Equal(t, 1, s.MaxY())
	assert.Equal(t, 0, s.MinX())
	assert.Equal(t, 3, s.MaxX())
}

func TestCoordinateSet_AddDoesNotAliasCopies(t *testing.T) {
	a := NewCoordinateSet(Coordinate{0, 0}, Coordinate{1, 0})
	b := a
	b.Add(Coordinate{0, 1})
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 3, b.Len())
}

func TestCoordinateSet_IsValidPlacement(t *testing.T) {
	s := NewCoordinateSet(Coordinate{0, 0})

	assert.True(t, s.IsValidPlacement(Coordinate{1, 0}), "beside on the lowest level")
	assert.True(t, s.IsValidPlacement(Coordinate{0, 1}), "directly above")
	assert.False(t, s.IsValidPlacement(Coordinate{1, 1}), "overhang")
	assert.False(t, s.IsValidPlacement(Coordinate{0, 0}), "already present")
	assert.False(t, s.IsValidPlacement(Coordinate{2, 0}), "not touching")
}

func TestCoordinateSet_IsValid(t *testing.T) {
	assert.True(t, NewCoordinateSet(Coordinate{0, 0}, Coordinate{1, 0}, Coordinate{1, 1}).IsValid())
	assert.False(t, NewCoordinateSet(Coordinate{0, 0}, Coordinate{1, 1}).IsValid())
	assert.False(t, NewCoordinateSet(Coordinate{0, 0}, Coordinate{0, 2}).IsValid())
}

func TestCoordinateSet_SplitAndAdjust(t *testing.T) {
	s := NewCoordinateSet(Coordinate{0, 0}, Coordinate{1, 0}, Coordinate{2, 0}, Coordinate{1, 1})
	lower, upper := s.SplitGreaterThan(0)

	assert.Equal(t, []Coordinate{{0, 0}}, lower.Items())
	assert.Equal(t, []Coordinate{{1, 0}, {2, 0}, {1, 1}}, upper.Items())

	adjusted, offset := upper.AdjustCenter()
	assert.Equal(t, Coordinate{1, 0}, offset)
	assert.Equal(t, []Coordinate{{0, 0}, {1, 0}, {0, 1}}, adjusted.Items())
	// the receiver is untouched
	assert.Equal(t, []Coordinate{{1, 0}, {2, 0}, {1, 1}}, upper.Items())
}

func TestCoordinateSet_String(t *testing.T) {
	s := NewCoordinateSet(Coordinate{0, 0}, Coordinate{1, 0}, Coordinate{1, 1})
	assert.Equal(t, " #\nx#", s.String())
}

func TestDirection_IndexRoundTrip(t *testing.T) {
	for i, d := range Directions(3) {
		assert.Equal(t, i, d.Index())
		assert.Equal(t, d, DirectionFromIndex(i))
		assert.Equal(t, d.Dim, d.Opposite().Dim)
		assert.NotEqual(t, d.Positive, d.Opposite().Positive)
	}
	assert.Equal(t, "+y", PosY.String())
	assert.Equal(t, [3]int{0, 0, -1}, NegZ.Offsets3())
	assert.Equal(t, [3]int{1, 2, 4}, PosZ.Step([3]int{1, 2, 3}))
}
