package model

import "fmt"

// segment is an undirected line between two sheet cells.
type segment struct{ a, b Coordinate }

func (s segment) key() segment {
	if s.b.Compare(s.a) < 0 {
		return segment{a: s.b, b: s.a}
	}
	return s
}

// Polylines merges the closed paths of every placement into open
// polylines, dropping segments shared by neighbouring panels so each edge
// is cut once.
func (s SheetResult) Polylines() []CutPath {
	var segs []segment
	seen := make(map[segment]bool)
	for _, p := range s.Placements {
		for _, path := range p.Paths {
			for i := range path {
				seg := segment{a: path[i], b: path[(i+1)%len(path)]}
				if seen[seg.key()] {
					continue
				}
				seen[seg.key()] = true
				segs = append(segs, seg)
			}
		}
	}
	return chainSegments(segs)
}

// chainSegments connects segments end to end into polylines, taking
// segments in order.
func chainSegments(segs []segment) []CutPath {
	ends := make(map[Coordinate][]int)
	for i, s := range segs {
		ends[s.a] = append(ends[s.a], i)
		ends[s.b] = append(ends[s.b], i)
	}
	used := make([]bool, len(segs))
	next := func(at Coordinate) (Coordinate, bool) {
		for _, i := range ends[at] {
			if used[i] {
				continue
			}
			used[i] = true
			if segs[i].a == at {
				return segs[i].b, true
			}
			return segs[i].a, true
		}
		return Coordinate{}, false
	}

	var out []CutPath
	for i, s := range segs {
		if used[i] {
			continue
		}
		used[i] = true
		chain := CutPath{s.a, s.b}
		for {
			p, ok := next(chain[len(chain)-1])
			if !ok {
				break
			}
			chain = append(chain, p)
		}
		for {
			p, ok := next(chain[0])
			if !ok {
				break
			}
			chain = append(CutPath{p}, chain...)
		}
		out = append(out, chain)
	}
	return out
}

// Describe renders the documentation of a panel placed at sheet cell
// (x, y).
func Describe(x, y int, piece, raster string) string {
	return fmt.Sprintf("Lower-left corner at (%d, %d), or (%s in, %s in), or (%s in, %s in)\n%s\n%s",
		x, y, EighthsDecimal(x), EighthsDecimal(y), EighthsFraction(x), EighthsFraction(y), piece, raster)
}
