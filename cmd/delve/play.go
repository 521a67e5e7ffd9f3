package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/frontend/console"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/session"
	"github.com/cory-johannsen/delve/internal/observability"
	"github.com/cory-johannsen/delve/internal/scripting"
	"github.com/cory-johannsen/delve/internal/storage"
)

var noColor bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a new game on this terminal",
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&noColor, "no-color", false, "disable ANSI colors")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	start := time.Now()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	events, err := observability.NewEventLog(cfg.EventLog)
	if err != nil {
		logger.Warn("event log unavailable, playing without it", zap.Error(err))
		events = observability.NewNopEventLog()
	}
	defer events.Close()

	roller := dice.NewLoggedRoller(dice.NewSource(cfg.Game.Seed), logger)

	monsters, loot, err := loadContent(cfg.Game)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	backend, err := storage.Open(ctx, cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Warn("closing save store", zap.Error(err))
		}
	}()

	deps := session.Deps{
		Logger:   logger,
		Events:   events,
		Source:   roller,
		Monsters: monsters,
		Loot:     loot,
		Store:    backend.Store,
		Slot:     cfg.Storage.Slot,
	}
	if cfg.Game.ScriptsDir != "" {
		mgr := scripting.NewManager(roller, logger, scripting.DefaultInstructionLimit)
		defer mgr.Close()
		if err := mgr.LoadDir(cfg.Game.ScriptsDir); err != nil {
			return fmt.Errorf("loading scripts: %w", err)
		}
		deps.Narrator = mgr
	}

	logger.Info("game ready",
		zap.String("backend", cfg.Storage.Backend),
		zap.Int("monsters", len(monsters.Templates())),
		zap.Duration("elapsed", time.Since(start)),
	)

	con := console.New(cmd.InOrStdin(), cmd.OutOrStdout(), !noColor)
	name, err := con.PromptName(ctx)
	if err != nil {
		return endOfInput(cmd, logger, err)
	}
	game, err := session.New(name, cfg.Game.Player, deps)
	if err != nil {
		return err
	}
	return endOfInput(cmd, logger, game.Run(ctx, con))
}

// endOfInput treats a closed stdin or an interrupt as a normal exit.
func endOfInput(cmd *cobra.Command, logger *zap.Logger, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		fmt.Fprintln(cmd.OutOrStdout())
		logger.Info("session ended", zap.Error(err))
		return nil
	}
	return err
}
