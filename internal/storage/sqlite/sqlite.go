// Package sqlite stores save slots in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/cory-johannsen/delve/internal/config"
	"github.com/cory-johannsen/delve/internal/game/character"
	"github.com/cory-johannsen/delve/internal/game/save"
)

const schema = `
CREATE TABLE IF NOT EXISTS saves (
	slot       TEXT    PRIMARY KEY,
	name       TEXT    NOT NULL,
	level      INTEGER NOT NULL,
	data       TEXT    NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Store is a save.Store backed by a single SQLite file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at cfg.Path and ensures the
// saves table exists.
//
// Precondition: cfg.Path must be non-empty; ":memory:" yields a private
// in-memory database.
// Postcondition: Returns a ready Store or a non-nil error wrapping save.ErrIO.
func Open(ctx context.Context, cfg config.SQLiteConfig) (*Store, error) {
	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening sqlite %q: %w", save.ErrIO, cfg.Path, err)
	}
	// One connection keeps ":memory:" databases coherent.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: creating schema: %w", save.ErrIO, err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save upserts the slot row.
func (s *Store) Save(ctx context.Context, slot string, c *character.Character) error {
	data, err := save.Marshal(c)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO saves (slot, name, level, data) VALUES (?, ?, ?, ?)
		ON CONFLICT (slot) DO UPDATE SET
			name = excluded.name, level = excluded.level,
			data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		slot, c.Name, c.Level, string(data),
	)
	if err != nil {
		return fmt.Errorf("%w: saving slot %q: %w", save.ErrIO, slot, err)
	}
	return nil
}

// Load fetches and decodes the slot row.
func (s *Store) Load(ctx context.Context, slot string) (*character.Character, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM saves WHERE slot = ?`, slot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", save.ErrSlotEmpty, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: loading slot %q: %w", save.ErrIO, slot, err)
	}
	return save.Unmarshal([]byte(data))
}

// Slots lists saved slot names in order.
func (s *Store) Slots(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slot FROM saves ORDER BY slot`)
	if err != nil {
		return nil, fmt.Errorf("%w: listing slots: %w", save.ErrIO, err)
	}
	defer rows.Close()

	var slots []string
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("%w: listing slots: %w", save.ErrIO, err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listing slots: %w", save.ErrIO, err)
	}
	return slots, nil
}
