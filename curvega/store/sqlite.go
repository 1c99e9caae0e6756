// Package store keeps finished runs in a SQLite database so several runs can be
// compared after the fact.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/baldhumanity/curvega-go/curvega"

	_ "modernc.org/sqlite"
)

// RunRecord is the summary row of one stored run.
type RunRecord struct {
	RunID            string
	Seed             int64
	Degree           int
	PopulationSize   int
	MaxGenerations   int
	Reason           string
	Generations      int
	BestGeneration   int
	BestFitness      float64
	BestCoefficients []int
	ElapsedMillis    int64
	CreatedAt        time.Time
}

// SQLiteStore archives finished runs in a SQLite database file.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteStore returns a store for the database at path. Call Init before use.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Init opens the database and creates the schema. Calling it twice is a no-op.
func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

// SaveRun stores the summary, the per-generation statistics and both point sets of a
// run in one transaction. Saving the same run ID again replaces it.
func (s *SQLiteStore) SaveRun(ctx context.Context, result *curvega.Result) error {
	if result == nil {
		return errors.New("result is required")
	}
	db, err := s.getDB()
	if err != nil {
		return err
	}

	coefficients, err := json.Marshal(result.Best.Coefficients)
	if err != nil {
		return fmt.Errorf("encode best coefficients: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"generation_stats", "points"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE run_id = ?`, result.RunID); err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (run_id, seed, degree, population_size, max_generations, reason,
			generations, best_generation, best_fitness, best_coefficients, elapsed_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			seed = excluded.seed,
			degree = excluded.degree,
			population_size = excluded.population_size,
			max_generations = excluded.max_generations,
			reason = excluded.reason,
			generations = excluded.generations,
			best_generation = excluded.best_generation,
			best_fitness = excluded.best_fitness,
			best_coefficients = excluded.best_coefficients,
			elapsed_ms = excluded.elapsed_ms,
			created_at = excluded.created_at
	`, result.RunID, result.Seed, result.Config.Curve.Degree, result.Config.Run.PopulationSize,
		result.Config.Run.MaxGenerations, string(result.Reason), result.Generations,
		result.Best.Generation, result.Best.Fitness, string(coefficients),
		result.Elapsed.Milliseconds(), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return err
	}

	if result.History != nil {
		for _, g := range result.History.Generations() {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO generation_stats (run_id, generation, best, worst, average, stdev)
				VALUES (?, ?, ?, ?, ?, ?)
			`, result.RunID, g.Generation, g.Best, g.Worst, g.Average, g.Stdev)
			if err != nil {
				return err
			}
		}
	}

	for _, set := range []*curvega.PointSet{result.Positive, result.Negative} {
		if set == nil {
			continue
		}
		for i, p := range set.XY() {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO points (run_id, positive, idx, x, y) VALUES (?, ?, ?, ?, ?)
			`, result.RunID, set.IsPositive(), i, p.X, p.Y)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// GetRun loads the summary of a run. The bool is false when no such run is stored.
func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (RunRecord, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return RunRecord{}, false, err
	}

	var (
		r            RunRecord
		coefficients string
		createdAt    string
	)
	err = db.QueryRowContext(ctx, `
		SELECT run_id, seed, degree, population_size, max_generations, reason, generations,
			best_generation, best_fitness, best_coefficients, elapsed_ms, created_at
		FROM runs WHERE run_id = ?
	`, runID).Scan(&r.RunID, &r.Seed, &r.Degree, &r.PopulationSize, &r.MaxGenerations, &r.Reason,
		&r.Generations, &r.BestGeneration, &r.BestFitness, &coefficients, &r.ElapsedMillis, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunRecord{}, false, nil
		}
		return RunRecord{}, false, err
	}

	if err := json.Unmarshal([]byte(coefficients), &r.BestCoefficients); err != nil {
		return RunRecord{}, false, fmt.Errorf("decode best coefficients of run %s: %w", runID, err)
	}
	if r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return RunRecord{}, false, fmt.Errorf("decode created_at of run %s: %w", runID, err)
	}
	return r, true, nil
}

// ListRuns returns the stored runs, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context) ([]string, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT run_id FROM runs ORDER BY created_at DESC, run_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GenerationStats returns the statistics of a run ordered by generation.
func (s *SQLiteStore) GenerationStats(ctx context.Context, runID string) ([]curvega.GenerationStats, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT generation, best, worst, average, stdev
		FROM generation_stats WHERE run_id = ? ORDER BY generation
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []curvega.GenerationStats
	for rows.Next() {
		var g curvega.GenerationStats
		if err := rows.Scan(&g.Generation, &g.Best, &g.Worst, &g.Average, &g.Stdev); err != nil {
			return nil, err
		}
		stats = append(stats, g)
	}
	return stats, rows.Err()
}

// Points returns one labeled point set of a run in its original order.
func (s *SQLiteStore) Points(ctx context.Context, runID string, positive bool) ([]curvega.XYPair, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT x, y FROM points WHERE run_id = ? AND positive = ? ORDER BY idx
	`, runID, positive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []curvega.XYPair
	for rows.Next() {
		var p curvega.XYPair
		if err := rows.Scan(&p.X, &p.Y); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// Close closes the database. A closed store can be initialized again.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			degree INTEGER NOT NULL,
			population_size INTEGER NOT NULL,
			max_generations INTEGER NOT NULL,
			reason TEXT NOT NULL,
			generations INTEGER NOT NULL,
			best_generation INTEGER NOT NULL,
			best_fitness REAL NOT NULL,
			best_coefficients TEXT NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS generation_stats (
			run_id TEXT NOT NULL,
			generation INTEGER NOT NULL,
			best REAL NOT NULL,
			worst REAL NOT NULL,
			average REAL NOT NULL,
			stdev REAL NOT NULL,
			PRIMARY KEY (run_id, generation)
		);
		CREATE TABLE IF NOT EXISTS points (
			run_id TEXT NOT NULL,
			positive INTEGER NOT NULL,
			idx INTEGER NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL,
			PRIMARY KEY (run_id, positive, idx)
		);
	`)
	return err
}
