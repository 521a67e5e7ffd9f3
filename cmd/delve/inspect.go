package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/save"
	"github.com/cory-johannsen/delve/internal/storage"
)

var (
	inspectSlot string
	inspectList bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print a saved character without starting a game",
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectSlot, "slot", "", "save slot to print (defaults to storage.slot)")
	inspectCmd.Flags().BoolVar(&inspectList, "list", false, "list the slots that hold a save")
}

func runInspect(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	backend, err := storage.Open(cmd.Context(), cfg.Storage, zap.NewNop())
	if err != nil {
		return err
	}
	defer backend.Close()

	out := cmd.OutOrStdout()
	if inspectList {
		lister, ok := backend.Store.(save.Lister)
		if !ok {
			return fmt.Errorf("storage backend %q cannot list slots", cfg.Storage.Backend)
		}
		slots, err := lister.Slots(cmd.Context())
		if err != nil {
			return err
		}
		for _, s := range slots {
			fmt.Fprintln(out, s)
		}
		return nil
	}

	slot := inspectSlot
	if slot == "" {
		slot = cfg.Storage.Slot
	}
	c, err := backend.Store.Load(cmd.Context(), slot)
	if err != nil {
		return fmt.Errorf("loading slot %q: %w", slot, err)
	}
	fmt.Fprintln(out, c.Sheet())
	fmt.Fprintln(out, c.InventoryListing())
	return nil
}
