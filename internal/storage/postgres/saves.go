package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/delve/internal/game/character"
	"github.com/cory-johannsen/delve/internal/game/save"
)

// SaveRepository keeps encoded characters in the saves table, one row per slot.
// Obtain one from Pool.Saves.
type SaveRepository struct {
	db *pgxpool.Pool
}

// Save upserts the slot row.
func (r *SaveRepository) Save(ctx context.Context, slot string, c *character.Character) error {
	data, err := save.Marshal(c)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO saves (slot, name, level, data)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (slot) DO UPDATE
		SET name = EXCLUDED.name, level = EXCLUDED.level,
		    data = EXCLUDED.data, updated_at = NOW()`,
		slot, c.Name, c.Level, string(data),
	)
	if err != nil {
		return fmt.Errorf("%w: saving slot %q: %w", save.ErrIO, slot, err)
	}
	return nil
}

// Load fetches and decodes the slot row.
//
// Postcondition: Returns save.ErrSlotEmpty when no row exists.
func (r *SaveRepository) Load(ctx context.Context, slot string) (*character.Character, error) {
	var data string
	err := r.db.QueryRow(ctx, `SELECT data FROM saves WHERE slot = $1`, slot).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", save.ErrSlotEmpty, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: loading slot %q: %w", save.ErrIO, slot, err)
	}
	return save.Unmarshal([]byte(data))
}

// Slots lists saved slot names in order.
func (r *SaveRepository) Slots(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT slot FROM saves ORDER BY slot`)
	if err != nil {
		return nil, fmt.Errorf("%w: listing slots: %w", save.ErrIO, err)
	}
	slots, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("%w: listing slots: %w", save.ErrIO, err)
	}
	return slots, nil
}
