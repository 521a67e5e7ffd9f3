// Package main provides the delve binary: a single-player, turn-based
// dungeon game played on the terminal.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cory-johannsen/delve/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "delve",
	Short: "Turn-based dungeon crawler",
	Long: `delve is a small turn-based RPG. Explore to meet monsters and find
loot, fight in turns, and save your character to a file, SQLite, PostgreSQL,
or Redis.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; DELVE_* variables override the config file.
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading .env: %w", err)
		}
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to configuration file (defaults plus DELVE_* environment when empty)")
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(inspectCmd)
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
