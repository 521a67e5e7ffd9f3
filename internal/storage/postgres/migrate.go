package postgres

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/cory-johannsen/delve/internal/config"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Direction selects which way Migrate moves the schema.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// MigrateResult reports the schema version after a migration run.
type MigrateResult struct {
	Version  uint
	Dirty    bool
	NoChange bool
}

// Migrate applies the embedded schema migrations to the database in cfg.
// steps limits the run to that many migrations; zero applies all of them.
//
// Postcondition: Returns the resulting version, with NoChange set when the
// schema was already at the target, or a non-nil error.
func Migrate(cfg config.DatabaseConfig, dir Direction, steps int) (MigrateResult, error) {
	if dir != Up && dir != Down {
		return MigrateResult{}, fmt.Errorf("invalid direction %q: must be %q or %q", dir, Up, Down)
	}
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return MigrateResult{}, fmt.Errorf("opening embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, cfg.DSN())
	if err != nil {
		return MigrateResult{}, fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	switch dir {
	case Up:
		if steps > 0 {
			err = m.Steps(steps)
		} else {
			err = m.Up()
		}
	case Down:
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Down()
		}
	}

	var res MigrateResult
	if errors.Is(err, migrate.ErrNoChange) {
		res.NoChange = true
	} else if err != nil {
		return MigrateResult{}, fmt.Errorf("migrating %s: %w", dir, err)
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return MigrateResult{}, fmt.Errorf("reading schema version: %w", verr)
	}
	res.Version, res.Dirty = version, dirty
	return res, nil
}
