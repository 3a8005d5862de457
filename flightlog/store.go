// Package flightlog keeps a SQLite history of the flights observed over serial.
package flightlog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/calvinmclean/touchandgo"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Outcome is how a flight ended
type Outcome string

const (
	// OutcomeLanded is a flight that ran its full time and landed under power
	OutcomeLanded Outcome = "landed"
	// OutcomeCut is a flight stopped by a touch before it finished
	OutcomeCut Outcome = "cut"
	// OutcomeAborted is a start that was cancelled during the delay
	OutcomeAborted Outcome = "aborted"
)

// Flight is one run of the timer
type Flight struct {
	ID        string
	StartedAt time.Time
	EndedAt   time.Time
	Params    touchandgo.FlightParameters
	Outcome   Outcome
	// MotorTime is board time from take-off until the motor stopped
	MotorTime   time.Duration
	MaxThrottle float64
}

// Store wraps SQLite access for flights.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate flight log: %w", err)
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS flights (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			delay_seconds INTEGER NOT NULL,
			flight_deciseconds INTEGER NOT NULL,
			cruise_throttle_percent INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			motor_time_ms INTEGER NOT NULL,
			max_throttle REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_flights_started_at ON flights(started_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertFlight stores a finished flight.
func (s *Store) InsertFlight(ctx context.Context, f Flight) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO flights (id, started_at, ended_at, delay_seconds, flight_deciseconds, cruise_throttle_percent, outcome, motor_time_ms, max_throttle)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID,
		f.StartedAt.UTC().Format(time.RFC3339Nano),
		f.EndedAt.UTC().Format(time.RFC3339Nano),
		f.Params.DelaySeconds,
		f.Params.FlightDeciseconds,
		f.Params.CruiseThrottlePercent,
		string(f.Outcome),
		f.MotorTime.Milliseconds(),
		f.MaxThrottle,
	)
	if err != nil {
		return fmt.Errorf("failed to insert flight: %w", err)
	}
	return nil
}

// ListFlights returns the most recent flights first. A limit of 0 returns all of them.
func (s *Store) ListFlights(ctx context.Context, limit int) ([]Flight, error) {
	query := `SELECT id, started_at, ended_at, delay_seconds, flight_deciseconds, cruise_throttle_percent, outcome, motor_time_ms, max_throttle
		FROM flights ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query flights: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var flights []Flight
	for rows.Next() {
		var (
			f                  Flight
			startedAt, endedAt string
			outcome            string
			motorTimeMs        int64
		)
		err := rows.Scan(
			&f.ID,
			&startedAt,
			&endedAt,
			&f.Params.DelaySeconds,
			&f.Params.FlightDeciseconds,
			&f.Params.CruiseThrottlePercent,
			&outcome,
			&motorTimeMs,
			&f.MaxThrottle,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan flight: %w", err)
		}

		f.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid started_at %q: %w", startedAt, err)
		}
		f.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid ended_at %q: %w", endedAt, err)
		}
		f.Outcome = Outcome(outcome)
		f.MotorTime = time.Duration(motorTimeMs) * time.Millisecond

		flights = append(flights, f)
	}
	return flights, rows.Err()
}
