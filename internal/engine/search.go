package engine

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/piwi3910/mazecut/internal/maze"
	"github.com/piwi3910/mazecut/internal/model"
)

// Attempt is one maze tried by a search.
type Attempt struct {
	Number int
	Seed   uint64
	// SeedString reproduces the maze, see maze.ParseSeed.
	SeedString string
	Maze       *maze.Grid
	Result     Result
}

// Recorder receives every finished attempt, successful or not.
type Recorder interface {
	RecordAttempt(a Attempt) error
}

// SearchOptions controls a batch search.
type SearchOptions struct {
	Count    int    // successful mazes wanted
	Attempts int    // give up after this many attempts, 0 = no limit
	Seed     uint64 // seed of the first attempt; later attempts count up
	Recorder Recorder
	Log      logrus.FieldLogger
}

// SearchSummary totals a batch search.
type SearchSummary struct {
	Successes []Attempt
	Attempts  int
	Rejected  int
	Stats     TraceStats
}

// Search generates mazes until opts.Count of them pack, the attempt limit
// is reached or ctx is cancelled. Maze-dependent failures are counted and
// the search moves on; an internal failure stops it with that error.
func Search(ctx context.Context, gen *maze.Generator, settings model.Settings, opts SearchOptions) (SearchSummary, error) {
	var sum SearchSummary
	log := opts.Log
	if log == nil {
		log = discardLogger()
	}
	pipeline := NewPipeline(settings, log)

	for n := 0; len(sum.Successes) < opts.Count; n++ {
		if opts.Attempts > 0 && n >= opts.Attempts {
			break
		}
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		seed := opts.Seed + uint64(n)
		grid, err := gen.Generate(seed)
		if err != nil {
			return sum, fmt.Errorf("failed to generate maze %d: %w", n+1, err)
		}
		a := Attempt{Number: n + 1, Seed: seed, SeedString: grid.SeedString(), Maze: grid}
		entry := log.WithFields(logrus.Fields{"attempt": a.Number, "seed": a.SeedString})
		a.Result = pipeline.Run(grid)
		sum.Attempts++
		sum.Stats.Add(a.Result.Stats)

		if opts.Recorder != nil {
			if err := opts.Recorder.RecordAttempt(a); err != nil {
				return sum, fmt.Errorf("failed to record attempt %d: %w", a.Number, err)
			}
		}

		switch {
		case a.Result.OK():
			entry.WithField("sheets", len(a.Result.Set.Sheets)).Info("maze accepted")
			sum.Successes = append(sum.Successes, a)
		case a.Result.Err.Kind == model.MazeDependent:
			sum.Rejected++
		default:
			return sum, a.Result.Err
		}
	}
	return sum, nil
}
