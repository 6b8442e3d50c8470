package model

import (
	"fmt"
	"math"
	"strings"
)

// CutPath is one closed laser path in cell coordinates. The last point
// connects back to the first.
type CutPath []Coordinate

// EliminateMidpoints drops points that lie on a straight run, leaving only
// corners. Consecutive points must share an x or a y coordinate.
func (p CutPath) EliminateMidpoints() (CutPath, error) {
	if len(p) < 2 {
		return p, nil
	}
	onY, err := runsAlongY(p[0], p[1])
	if err != nil {
		return nil, err
	}
	var out CutPath
	last := p[0]
	for i := 1; i < len(p)+2; i++ {
		cur := p[i%len(p)]
		nowOnY, err := runsAlongY(last, cur)
		if err != nil {
			return nil, err
		}
		if nowOnY != onY {
			out = append(out, last)
		}
		last = cur
		onY = nowOnY
	}
	return out, nil
}

// runsAlongY reports whether the segment a-b is horizontal (constant y).
func runsAlongY(a, b Coordinate) (bool, error) {
	switch {
	case a.X == b.X:
		return false, nil
	case a.Y == b.Y:
		return true, nil
	default:
		return false, fmt.Errorf("path segment %v -> %v is not axis aligned", a, b)
	}
}

// Translate shifts every point by offset.
func (p CutPath) Translate(offset Coordinate) CutPath {
	out := make(CutPath, len(p))
	for i, c := range p {
		out[i] = c.Add(offset)
	}
	return out
}

func (p CutPath) String() string {
	parts := make([]string, len(p))
	for i, c := range p {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// CutSchematic is the set of closed paths cut for one panel.
type CutSchematic struct {
	Paths []CutPath
}

// EliminateMidpoints condenses every path.
func (s CutSchematic) EliminateMidpoints() (CutSchematic, error) {
	out := CutSchematic{Paths: make([]CutPath, 0, len(s.Paths))}
	for _, p := range s.Paths {
		q, err := p.EliminateMidpoints()
		if err != nil {
			return CutSchematic{}, err
		}
		out.Paths = append(out.Paths, q)
	}
	return out, nil
}

// MinimumCoordinate is the component-wise minimum over all points.
func (s CutSchematic) MinimumCoordinate() Coordinate {
	m := Coordinate{X: math.MaxInt, Y: math.MaxInt}
	for _, p := range s.Paths {
		for _, c := range p {
			m.X = min(m.X, c.X)
			m.Y = min(m.Y, c.Y)
		}
	}
	return m
}

// MoveBy returns a copy translated by offset.
func (s CutSchematic) MoveBy(offset Coordinate) CutSchematic {
	out := CutSchematic{Paths: make([]CutPath, len(s.Paths))}
	for i, p := range s.Paths {
		out.Paths[i] = p.Translate(offset)
	}
	return out
}

func (s CutSchematic) String() string {
	parts := make([]string, len(s.Paths))
	for i, p := range s.Paths {
		parts[i] = p.String()
	}
	return strings.Join(parts, "\n")
}
