// Package config provides Viper-based configuration loading for delve.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage backend identifiers accepted by storage.backend.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is a zap sink path such as "stderr" or a file path.
	Output string `mapstructure:"output"`
}

// EventLogConfig holds settings for the timestamped game event log.
type EventLogConfig struct {
	// Path is the file the event log appends to.
	Path string `mapstructure:"path"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	// ConnectRetries is how many times a failed initial ping is retried.
	ConnectRetries int `mapstructure:"connect_retries"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// FileConfig locates the plain-text save file.
type FileConfig struct {
	Path string `mapstructure:"path"`
}

// SQLiteConfig locates the SQLite database holding save slots.
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// RedisConfig holds Redis connection settings for the redis save backend.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// KeyPrefix is prepended to every save-slot key.
	KeyPrefix string `mapstructure:"key_prefix"`
}

// StorageConfig selects and configures the save-slot backend.
type StorageConfig struct {
	// Backend is one of "file", "sqlite", "postgres", "redis".
	Backend string `mapstructure:"backend"`
	// Slot names the save slot used by the Save and Load menu entries.
	Slot     string         `mapstructure:"slot"`
	File     FileConfig     `mapstructure:"file"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
	Postgres DatabaseConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// PlayerConfig holds the starting stats of a new character.
type PlayerConfig struct {
	MaxHealth int `mapstructure:"max_health"`
	Attack    int `mapstructure:"attack"`
	Defense   int `mapstructure:"defense"`
}

// GameConfig holds gameplay settings.
type GameConfig struct {
	// Seed selects a deterministic random source when non-zero.
	// Zero selects the crypto-backed source.
	Seed uint64 `mapstructure:"seed"`
	// ContentDir optionally overrides the embedded monster and loot YAML.
	// It may contain a "monsters" and a "loot" subdirectory.
	ContentDir string `mapstructure:"content_dir"`
	// ScriptsDir optionally holds Lua narration hooks.
	ScriptsDir string       `mapstructure:"scripts_dir"`
	Player     PlayerConfig `mapstructure:"player"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	EventLog EventLogConfig `mapstructure:"event_log"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Game     GameConfig     `mapstructure:"game"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if c.EventLog.Path == "" {
		errs = append(errs, "event_log.path must not be empty")
	}
	if err := validateStorage(c.Storage); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateStorage(s StorageConfig) error {
	var errs []string
	if s.Slot == "" {
		errs = append(errs, "storage.slot must not be empty")
	}
	switch s.Backend {
	case BackendFile:
		if s.File.Path == "" {
			errs = append(errs, "storage.file.path must not be empty")
		}
	case BackendSQLite:
		if s.SQLite.Path == "" {
			errs = append(errs, "storage.sqlite.path must not be empty")
		}
	case BackendPostgres:
		if err := validateDatabase(s.Postgres); err != nil {
			errs = append(errs, err.Error())
		}
	case BackendRedis:
		if s.Redis.Addr == "" {
			errs = append(errs, "storage.redis.addr must not be empty")
		}
		if s.Redis.DB < 0 {
			errs = append(errs, fmt.Sprintf("storage.redis.db must be >= 0, got %d", s.Redis.DB))
		}
	default:
		errs = append(errs, fmt.Sprintf("storage.backend must be one of [file, sqlite, postgres, redis], got %q", s.Backend))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "storage.postgres.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("storage.postgres.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "storage.postgres.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "storage.postgres.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("storage.postgres.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("storage.postgres.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("storage.postgres.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "storage.postgres.min_conns must not exceed storage.postgres.max_conns")
	}
	if d.ConnectRetries < 0 {
		errs = append(errs, fmt.Sprintf("storage.postgres.connect_retries must be >= 0, got %d", d.ConnectRetries))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.Player.MaxHealth < 1 {
		errs = append(errs, fmt.Sprintf("game.player.max_health must be >= 1, got %d", g.Player.MaxHealth))
	}
	if g.Player.Attack < 0 {
		errs = append(errs, fmt.Sprintf("game.player.attack must be >= 0, got %d", g.Player.Attack))
	}
	if g.Player.Defense < 0 {
		errs = append(errs, fmt.Sprintf("game.player.defense must be >= 0, got %d", g.Player.Defense))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path skips the file and uses
// defaults plus environment.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with DELVE_ prefix
	v.SetEnvPrefix("DELVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration produced by Load("") with no environment overrides.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults alone always decode.
	_ = v.Unmarshal(&cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("event_log.path", "game_log.txt")

	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.slot", "default")
	v.SetDefault("storage.file.path", "save.txt")
	v.SetDefault("storage.sqlite.path", "delve.db")

	v.SetDefault("storage.postgres.host", "localhost")
	v.SetDefault("storage.postgres.port", 5432)
	v.SetDefault("storage.postgres.user", "delve")
	v.SetDefault("storage.postgres.password", "delve")
	v.SetDefault("storage.postgres.name", "delve")
	v.SetDefault("storage.postgres.sslmode", "disable")
	v.SetDefault("storage.postgres.max_conns", 4)
	v.SetDefault("storage.postgres.min_conns", 1)
	v.SetDefault("storage.postgres.max_conn_lifetime", "1h")
	v.SetDefault("storage.postgres.connect_retries", 3)

	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.key_prefix", "delve:save:")

	v.SetDefault("game.seed", 0)
	v.SetDefault("game.content_dir", "")
	v.SetDefault("game.scripts_dir", "")
	v.SetDefault("game.player.max_health", 100)
	v.SetDefault("game.player.attack", 10)
	v.SetDefault("game.player.defense", 5)
}
