package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shuttle-run/internal/session"
	"github.com/vovakirdan/shuttle-run/internal/storage"
)

var soundCmd = &cobra.Command{
	Use:       "sound [on|off]",
	Short:     "Show or set the sound preference",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"on", "off"},
	RunE:      runSound,
}

func runSound(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	settings := session.NewSettings(storage.NewPrefs(store, logger))
	if len(args) == 1 {
		settings.SetSound(args[0] == "on")
	}

	state := "off"
	if settings.SoundEnabled() {
		state = "on"
	}
	fmt.Printf("Sound: %s\n", state)
	return nil
}
