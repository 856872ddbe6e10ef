// Package storage provides SQLite-based persistence for simulation
// checkpoints and highway detections.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("storage: not found")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Checkpoint is a stored snapshot blob of one simulation.
type Checkpoint struct {
	ID        int64
	SimID     string
	Label     string // Free-form source, e.g. "auto", "manual", "import"
	Step      uint64
	Payload   []byte // Omitted by ListCheckpoints
	Size      int
	CreatedAt time.Time
}

// Detection records the first highway detection of a run.
type Detection struct {
	ID        int64
	Seed      string // Preset name or config path
	Tick      uint64
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS checkpoints (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sim_id TEXT NOT NULL,
			label TEXT NOT NULL DEFAULT '',
			step INTEGER NOT NULL,
			payload BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_checkpoints_sim ON checkpoints(sim_id, step DESC);

		CREATE TABLE IF NOT EXISTS detections (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed TEXT NOT NULL,
			tick INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_detections_seed ON detections(seed);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveCheckpoint stores a snapshot blob.
// Returns the ID of the inserted record.
func (s *Store) SaveCheckpoint(simID, label string, step uint64, payload []byte) (int64, error) {
	if len(payload) == 0 {
		return 0, fmt.Errorf("storage: refusing to save empty checkpoint for %s", simID)
	}
	result, err := s.db.Exec(
		"INSERT INTO checkpoints (sim_id, label, step, payload) VALUES (?, ?, ?, ?)",
		simID, label, int64(step), payload,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save checkpoint: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Checkpoint retrieves a checkpoint, payload included.
func (s *Store) Checkpoint(id int64) (*Checkpoint, error) {
	row := s.db.QueryRow(
		`SELECT id, sim_id, label, step, payload, created_at
		 FROM checkpoints
		 WHERE id = ?`,
		id,
	)
	return scanCheckpoint(row, fmt.Sprintf("id %d", id))
}

// LatestCheckpoint retrieves the checkpoint with the highest step for a sim.
func (s *Store) LatestCheckpoint(simID string) (*Checkpoint, error) {
	row := s.db.QueryRow(
		`SELECT id, sim_id, label, step, payload, created_at
		 FROM checkpoints
		 WHERE sim_id = ?
		 ORDER BY step DESC, id DESC
		 LIMIT 1`,
		simID,
	)
	return scanCheckpoint(row, simID)
}

func scanCheckpoint(row *sql.Row, what string) (*Checkpoint, error) {
	var c Checkpoint
	var step int64
	var createdAt any
	err := row.Scan(&c.ID, &c.SimID, &c.Label, &step, &c.Payload, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: checkpoint %s: %w", what, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query checkpoint: %w", err)
	}
	c.Step = uint64(step)
	c.Size = len(c.Payload)
	c.CreatedAt = parseTime(createdAt)
	return &c, nil
}

// ListCheckpoints retrieves checkpoint metadata for a sim, newest step first.
// An empty simID lists every sim.
func (s *Store) ListCheckpoints(simID string, limit int) ([]Checkpoint, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.Query(
		`SELECT id, sim_id, label, step, length(payload), created_at
		 FROM checkpoints
		 WHERE ? = '' OR sim_id = ?
		 ORDER BY sim_id, step DESC, id DESC
		 LIMIT ?`,
		simID, simID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query checkpoints: %w", err)
	}
	defer rows.Close()

	var entries []Checkpoint
	for rows.Next() {
		var c Checkpoint
		var step int64
		var createdAt any
		if err := rows.Scan(&c.ID, &c.SimID, &c.Label, &step, &c.Size, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		c.Step = uint64(step)
		c.CreatedAt = parseTime(createdAt)
		entries = append(entries, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DeleteCheckpoint removes one checkpoint.
func (s *Store) DeleteCheckpoint(id int64) error {
	res, err := s.db.Exec("DELETE FROM checkpoints WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete checkpoint: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("storage: checkpoint id %d: %w", id, ErrNotFound)
	}
	return nil
}

// ClearCheckpoints deletes all checkpoints for the given sim.
func (s *Store) ClearCheckpoints(simID string) error {
	_, err := s.db.Exec("DELETE FROM checkpoints WHERE sim_id = ?", simID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear checkpoints: %w", err)
	}
	return nil
}

// SaveDetection records a highway detection.
func (s *Store) SaveDetection(seed string, tick uint64) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO detections (seed, tick) VALUES (?, ?)",
		seed, int64(tick),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save detection: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Detections retrieves recorded detections for a seed, earliest tick first.
// An empty seed lists every seed.
func (s *Store) Detections(seed string) ([]Detection, error) {
	rows, err := s.db.Query(
		`SELECT id, seed, tick, created_at
		 FROM detections
		 WHERE ? = '' OR seed = ?
		 ORDER BY seed, tick, id`,
		seed, seed,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query detections: %w", err)
	}
	defer rows.Close()

	var entries []Detection
	for rows.Next() {
		var d Detection
		var tick int64
		var createdAt any
		if err := rows.Scan(&d.ID, &d.Seed, &tick, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		d.Tick = uint64(tick)
		d.CreatedAt = parseTime(createdAt)
		entries = append(entries, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
