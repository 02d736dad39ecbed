// Package cache persists one Record per tracked board in a local sqlite
// database. Records are stored as JSON payloads with last-write-wins
// semantics; there is no TTL here, staleness is judged by the orchestrator.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/boardfeed/boardfeed/internal/model"
)

type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	s := &Store{readDB: readDB, writeDB: writeDB}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS records (
			board      TEXT PRIMARY KEY,
			payload    TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// Get returns the record for a board, or nil when no usable record exists.
// A malformed payload is treated as an absent entry, never as an error.
func (s *Store) Get(ctx context.Context, board string) (*model.Record, error) {
	var payload string
	err := s.readDB.QueryRowContext(ctx,
		"SELECT payload FROM records WHERE board = ?", board).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying record for %s: %w", board, err)
	}

	var rec model.Record
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, nil
	}
	if !rec.Valid() {
		return nil, nil
	}
	return &rec, nil
}

// Put stores the record for a board, replacing any previous one.
func (s *Store) Put(ctx context.Context, board string, rec *model.Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding record for %s: %w", board, err)
	}
	_, err = s.writeDB.ExecContext(ctx, `
		INSERT INTO records (board, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(board) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, board, string(payload), time.Now())
	if err != nil {
		return fmt.Errorf("storing record for %s: %w", board, err)
	}
	return nil
}

// Delete drops a board's record. Used when a board stops being tracked.
func (s *Store) Delete(ctx context.Context, board string) error {
	_, err := s.writeDB.ExecContext(ctx, "DELETE FROM records WHERE board = ?", board)
	if err != nil {
		return fmt.Errorf("deleting record for %s: %w", board, err)
	}
	return nil
}

// Boards lists the boards that currently have a cached record.
func (s *Store) Boards(ctx context.Context) ([]string, error) {
	rows, err := s.readDB.QueryContext(ctx, "SELECT board FROM records ORDER BY board")
	if err != nil {
		return nil, fmt.Errorf("listing boards: %w", err)
	}
	defer rows.Close()

	var boards []string
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, fmt.Errorf("scanning board: %w", err)
		}
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

// Stats returns the number of cached records and the database file size.
func (s *Store) Stats(dbPath string) (count int, size int64, err error) {
	if err := s.readDB.QueryRow("SELECT COUNT(*) FROM records").Scan(&count); err != nil {
		return 0, 0, fmt.Errorf("counting records: %w", err)
	}
	info, err := os.Stat(dbPath)
	if err != nil {
		return count, 0, fmt.Errorf("statting db: %w", err)
	}
	return count, info.Size(), nil
}
