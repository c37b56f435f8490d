// Package storage provides SQLite-based persistence for replay tapes.
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

	"github.com/vovakirdan/skyhop/internal/replay"
)

// ErrNotFound is returned when a tape ID does not exist.
var ErrNotFound = errors.New("storage: tape not found")

// Store manages the SQLite database connection for tape persistence.
type Store struct {
	db *sql.DB
}

// TapeInfo is the summary row of a stored tape, without its frames.
type TapeInfo struct {
	ID          int64
	Seed        int64
	Fingerprint string
	TickRate    int
	Frames      int
	Runs        int // Finished runs in the session
	Best        int // Best finished run of the session
	Duration    time.Duration
	CreatedAt   time.Time
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS tapes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			config_fingerprint TEXT NOT NULL,
			tick_rate INTEGER NOT NULL,
			frames INTEGER NOT NULL,
			runs INTEGER NOT NULL DEFAULT 0,
			best INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS frames (
			tape_id INTEGER NOT NULL REFERENCES tapes(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			dt REAL NOT NULL,
			jump INTEGER NOT NULL,
			PRIMARY KEY (tape_id, seq)
		);
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

// SaveTape stores a tape and the finished run scores of its session.
// Returns the ID of the inserted tape.
func (s *Store) SaveTape(tape replay.Tape, runs []int) (int64, error) {
	best := 0
	var total float64
	for _, r := range runs {
		best = max(best, r)
	}
	for _, f := range tape.Frames {
		total += f.DT
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO tapes (seed, config_fingerprint, tick_rate, frames, runs, best, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tape.Seed, tape.Fingerprint, tape.TickRate, len(tape.Frames), len(runs), best,
		int64(total*1000),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save tape: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO frames (tape_id, seq, dt, jump) VALUES (?, ?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare frame insert: %w", err)
	}
	defer stmt.Close()

	for i, f := range tape.Frames {
		if _, err := stmt.Exec(id, i, f.DT, f.Jump); err != nil {
			return 0, fmt.Errorf("storage: cannot save frame %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit tape: %w", err)
	}
	return id, nil
}

// Tape loads a tape with all of its frames.
func (s *Store) Tape(id int64) (replay.Tape, error) {
	var tape replay.Tape
	var frames int
	err := s.db.QueryRow(
		"SELECT seed, config_fingerprint, tick_rate, frames FROM tapes WHERE id = ?",
		id,
	).Scan(&tape.Seed, &tape.Fingerprint, &tape.TickRate, &frames)
	if errors.Is(err, sql.ErrNoRows) {
		return replay.Tape{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return replay.Tape{}, fmt.Errorf("storage: cannot query tape: %w", err)
	}

	rows, err := s.db.Query("SELECT dt, jump FROM frames WHERE tape_id = ? ORDER BY seq", id)
	if err != nil {
		return replay.Tape{}, fmt.Errorf("storage: cannot query frames: %w", err)
	}
	defer rows.Close()

	tape.Frames = make([]replay.Frame, 0, frames)
	for rows.Next() {
		var f replay.Frame
		if err := rows.Scan(&f.DT, &f.Jump); err != nil {
			return replay.Tape{}, fmt.Errorf("storage: cannot scan frame: %w", err)
		}
		tape.Frames = append(tape.Frames, f)
	}
	if err := rows.Err(); err != nil {
		return replay.Tape{}, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return tape, nil
}

const infoColumns = "id, seed, config_fingerprint, tick_rate, frames, runs, best, duration_ms, created_at"

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInfo(sc scanner) (TapeInfo, error) {
	var t TapeInfo
	var durationMS int64
	var createdAt any
	if err := sc.Scan(&t.ID, &t.Seed, &t.Fingerprint, &t.TickRate, &t.Frames,
		&t.Runs, &t.Best, &durationMS, &createdAt); err != nil {
		return TapeInfo{}, err
	}
	t.Duration = time.Duration(durationMS) * time.Millisecond
	t.CreatedAt = parseTime(createdAt)
	return t, nil
}

// Info returns the summary row of one tape.
func (s *Store) Info(id int64) (TapeInfo, error) {
	t, err := scanInfo(s.db.QueryRow("SELECT "+infoColumns+" FROM tapes WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return TapeInfo{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return TapeInfo{}, fmt.Errorf("storage: cannot query tape: %w", err)
	}
	return t, nil
}

// ListTapes returns the most recent tapes, newest first.
func (s *Store) ListTapes(limit int) ([]TapeInfo, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		"SELECT "+infoColumns+" FROM tapes ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query tapes: %w", err)
	}
	defer rows.Close()

	var tapes []TapeInfo
	for rows.Next() {
		t, err := scanInfo(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		tapes = append(tapes, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return tapes, nil
}

// DeleteTape removes a tape and its frames.
func (s *Store) DeleteTape(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	// foreign_keys is per connection, so the cascade is not relied on.
	if _, err := tx.Exec("DELETE FROM frames WHERE tape_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete frames: %w", err)
	}
	res, err := tx.Exec("DELETE FROM tapes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete tape: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
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
