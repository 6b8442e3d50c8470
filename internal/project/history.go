package project

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/piwi3910/mazecut/internal/engine"
	"github.com/piwi3910/mazecut/internal/model"
)

// schema.sql creates the runs and attempts tables.
//
//go:embed schema.sql
var schemaSQL string

// Attempt outcomes stored in the history.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// History records batch runs and every maze attempt in a sqlite database.
// It implements engine.Recorder for the run started last.
type History struct {
	db  *sql.DB
	run uuid.UUID
}

// RunRecord is one stored batch run.
type RunRecord struct {
	ID         uuid.UUID
	StartedAt  time.Time
	FinishedAt time.Time // zero while unfinished
	Settings   model.Settings
	Attempts   int
	Rejected   int
	Accepted   int
}

// AttemptRecord is one stored maze attempt.
type AttemptRecord struct {
	Number    int
	Seed      string
	Outcome   string
	Reason    string
	Panels    int
	Sheets    int
	Traced    int
	Abandoned int
	CreatedAt time.Time
}

// OpenHistory opens or creates the history database at path.
func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return &History{db: db}, nil
}

// Snapshot writes a consistent copy of the database to a new file at path.
func (h *History) Snapshot(path string) error {
	quoted := "'" + strings.ReplaceAll(path, "'", "''") + "'"
	if _, err := h.db.Exec("VACUUM INTO " + quoted); err != nil {
		return fmt.Errorf("failed to snapshot history: %w", err)
	}
	return nil
}

// Close closes the database.
func (h *History) Close() error {
	return h.db.Close()
}

// Run returns the id of the current run, or uuid.Nil before StartRun.
func (h *History) Run() uuid.UUID {
	return h.run
}

// StartRun stores a new run with its settings and makes it current.
func (h *History) StartRun(settings model.Settings) (uuid.UUID, error) {
	data, err := json.Marshal(settings)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal settings: %w", err)
	}
	id := uuid.New()
	_, err = h.db.Exec(`INSERT INTO runs (id, started_at, settings) VALUES (?, ?, ?)`,
		id.String(), time.Now().UnixNano(), string(data))
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to start run: %w", err)
	}
	h.run = id
	return id, nil
}

// RecordAttempt stores an attempt under the current run.
func (h *History) RecordAttempt(a engine.Attempt) error {
	if h.run == uuid.Nil {
		return errors.New("no run started")
	}

	outcome, reason := OutcomeAccepted, ""
	panels, sheets := 0, 0
	switch {
	case a.Result.OK():
		panels = a.Result.Set.Pieces.Total()
		sheets = len(a.Result.Set.Sheets)
	case a.Result.Err.Kind == model.MazeDependent:
		outcome, reason = OutcomeRejected, a.Result.Err.Reason
	default:
		outcome, reason = OutcomeFailed, a.Result.Err.Reason
	}

	_, err := h.db.Exec(`
		INSERT INTO attempts (run_id, number, seed, outcome, reason, panels, sheets, traced, abandoned, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.run.String(), a.Number, a.SeedString, outcome, reason, panels, sheets,
		a.Result.Stats.Traced, a.Result.Stats.Abandoned, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to insert attempt: %w", err)
	}
	return nil
}

// FinishRun stores the totals of the current run.
func (h *History) FinishRun(sum engine.SearchSummary) error {
	if h.run == uuid.Nil {
		return errors.New("no run started")
	}
	_, err := h.db.Exec(`
		UPDATE runs SET finished_at = ?, attempts = ?, rejected = ?, accepted = ?
		WHERE id = ?`,
		time.Now().UnixNano(), sum.Attempts, sum.Rejected, len(sum.Successes), h.run.String())
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// Runs lists stored runs, newest first.
func (h *History) Runs() ([]RunRecord, error) {
	rows, err := h.db.Query(`
		SELECT id, started_at, finished_at, settings, attempts, rejected, accepted
		FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var (
			r        RunRecord
			id       string
			started  int64
			finished sql.NullInt64
			settings string
		)
		if err := rows.Scan(&id, &started, &finished, &settings, &r.Attempts, &r.Rejected, &r.Accepted); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("bad run id %q: %w", id, err)
		}
		if err := json.Unmarshal([]byte(settings), &r.Settings); err != nil {
			return nil, fmt.Errorf("bad settings for run %s: %w", id, err)
		}
		r.StartedAt = time.Unix(0, started)
		if finished.Valid {
			r.FinishedAt = time.Unix(0, finished.Int64)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Attempts lists the attempts of a run in order.
func (h *History) Attempts(run uuid.UUID) ([]AttemptRecord, error) {
	rows, err := h.db.Query(`
		SELECT number, seed, outcome, reason, panels, sheets, traced, abandoned, created_at
		FROM attempts WHERE run_id = ? ORDER BY number`, run.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer rows.Close()

	var out []AttemptRecord
	for rows.Next() {
		var (
			a       AttemptRecord
			created int64
		)
		if err := rows.Scan(&a.Number, &a.Seed, &a.Outcome, &a.Reason, &a.Panels, &a.Sheets,
			&a.Traced, &a.Abandoned, &created); err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		a.CreatedAt = time.Unix(0, created)
		out = append(out, a)
	}
	return out, rows.Err()
}

// AcceptedSeeds returns the seed strings of every accepted attempt across
// all runs, oldest first.
func (h *History) AcceptedSeeds() ([]string, error) {
	rows, err := h.db.Query(`SELECT seed FROM attempts WHERE outcome = ? ORDER BY created_at, rowid`, OutcomeAccepted)
	if err != nil {
		return nil, fmt.Errorf("failed to query seeds: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan seed: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
