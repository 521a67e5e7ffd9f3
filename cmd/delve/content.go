package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cory-johannsen/delve/internal/config"
	"github.com/cory-johannsen/delve/internal/game/inventory"
	"github.com/cory-johannsen/delve/internal/game/npc"
)

// loadContent returns the monster pool and loot catalog. Files under
// cfg.ContentDir (monsters/*.yaml, loot.yaml) replace the embedded defaults
// one at a time; anything missing falls back to the built-in content.
func loadContent(cfg config.GameConfig) (*npc.Pool, *inventory.Catalog, error) {
	pool := npc.DefaultPool()
	catalog := inventory.DefaultCatalog()
	if cfg.ContentDir == "" {
		return pool, catalog, nil
	}

	monsterDir := filepath.Join(cfg.ContentDir, "monsters")
	if ok, err := exists(monsterDir); err != nil {
		return nil, nil, err
	} else if ok {
		templates, err := npc.LoadTemplates(monsterDir)
		if err != nil {
			return nil, nil, err
		}
		if pool, err = npc.NewPool(templates); err != nil {
			return nil, nil, fmt.Errorf("building monster pool from %q: %w", monsterDir, err)
		}
	}

	lootPath := filepath.Join(cfg.ContentDir, "loot.yaml")
	if ok, err := exists(lootPath); err != nil {
		return nil, nil, err
	} else if ok {
		if catalog, err = inventory.LoadCatalog(lootPath); err != nil {
			return nil, nil, err
		}
	}
	return pool, catalog, nil
}

func exists(p string) (bool, error) {
	_, err := os.Stat(p)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("checking %q: %w", p, err)
	}
}
