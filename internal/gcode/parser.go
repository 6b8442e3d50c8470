package gcode

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MoveType represents the type of laser head movement.
type MoveType int

const (
	MoveRapid  MoveType = iota // G0: rapid positioning
	MoveTravel                 // G1 with the laser off
	MoveCut                    // G1 with the laser on
)

func (m MoveType) String() string {
	switch m {
	case MoveTravel:
		return "travel"
	case MoveCut:
		return "cut"
	default:
		return "rapid"
	}
}

// GCodeMove represents a single parsed movement from G-code.
type GCodeMove struct {
	Type     MoveType
	FromX    float64
	FromY    float64
	ToX      float64
	ToY      float64
	FeedRate float64
	Power    int
}

// Length returns the distance covered by the move.
func (m GCodeMove) Length() float64 {
	return math.Hypot(m.ToX-m.FromX, m.ToY-m.FromY)
}

var (
	wordRe  = regexp.MustCompile(`([XYFS])([-]?\d+\.?\d*)`)
	mcodeRe = regexp.MustCompile(`\bM0*([345])\b`)
)

// ParseGCode parses a G-code string into a slice of structured moves.
// It tracks absolute position, feed rate and laser state; M3/M4 turn the
// laser on, M5 turns it off.
func ParseGCode(code string) []GCodeMove {
	var moves []GCodeMove

	curX, curY := 0.0, 0.0
	curFeed := 0.0
	power := 0
	laserOn := false

	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimSpace(line)

		// Strip inline comments (semicolon or parenthetical)
		if idx := strings.Index(line, ";"); idx >= 0 {
			line = line[:idx]
		}
		if idx := strings.Index(line, "("); idx >= 0 {
			if end := strings.Index(line, ")"); end > idx {
				line = line[:idx] + line[end+1:]
			}
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		upper := strings.ToUpper(line)

		if m := mcodeRe.FindStringSubmatch(upper); m != nil {
			laserOn = m[1] != "5"
		}

		isRapid := false
		isFeed := false
		if strings.HasPrefix(upper, "G0 ") || strings.HasPrefix(upper, "G00 ") || upper == "G0" || upper == "G00" {
			isRapid = true
		} else if strings.HasPrefix(upper, "G1 ") || strings.HasPrefix(upper, "G01 ") || upper == "G1" || upper == "G01" {
			isFeed = true
		}

		newX, newY, newFeed := curX, curY, curFeed
		for _, m := range wordRe.FindAllStringSubmatch(upper, -1) {
			val, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			switch m[1] {
			case "X":
				newX = val
			case "Y":
				newY = val
			case "F":
				newFeed = val
			case "S":
				power = int(val)
			}
		}

		if !isRapid && !isFeed {
			continue
		}

		moveType := MoveRapid
		if isFeed {
			moveType = MoveTravel
			if laserOn && power > 0 {
				moveType = MoveCut
			}
		}

		moves = append(moves, GCodeMove{
			Type:     moveType,
			FromX:    curX,
			FromY:    curY,
			ToX:      newX,
			ToY:      newY,
			FeedRate: newFeed,
			Power:    power,
		})

		curX, curY, curFeed = newX, newY, newFeed
	}

	return moves
}

// JobStats summarizes a parsed program.
type JobStats struct {
	Cuts         int     // cutting moves
	CutLength    float64 // distance with the laser on
	TravelLength float64 // distance with the laser off
	Duration     time.Duration
}

// Summarize totals the moves of a program. Feed rates are per minute;
// rapid moves, and moves without a feed rate, use rapidRate.
func Summarize(moves []GCodeMove, rapidRate float64) JobStats {
	var s JobStats
	minutes := 0.0
	for _, m := range moves {
		l := m.Length()
		if m.Type == MoveCut {
			s.Cuts++
			s.CutLength += l
		} else {
			s.TravelLength += l
		}
		rate := m.FeedRate
		if m.Type == MoveRapid || rate <= 0 {
			rate = rapidRate
		}
		if rate > 0 {
			minutes += l / rate
		}
	}
	s.Duration = time.Duration(minutes * float64(time.Minute))
	return s
}
