package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-fireworks/internal/platform/tui"
	"github.com/vovakirdan/tui-fireworks/internal/registry"
	"github.com/vovakirdan/tui-fireworks/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [show]",
	Short: "Run a show in the terminal",
	Long: `Start the specified show (default: fireworks) in the terminal.

Shows:
  fireworks - Free display with random launches
  newyear   - Clock counting down to midnight, then a celebration

Controls:
  1/Space   - Launch one firework
  2         - Launch ten fireworks
  P         - Pause
  Ctrl+S    - Save a PNG screenshot to ~/.fireworks/screenshots
  Q/Ctrl+C  - Quit

Style presets:
  classic - Default colorful display
  mono    - Every burst in a single color
  calm    - Fewer, smaller bursts
  finale  - Launch rate builds up over a minute

Examples:
  fireworks play
  fireworks play newyear --music ./auld-lang-syne.mp3
  fireworks play --preset finale --sound
  fireworks play --config ./my-fireworks.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	addShowFlags(playCmd)
}

func runPlay(_ *cobra.Command, args []string) {
	showID := resolveShow(args)
	loadShowConfig()

	show, err := registry.Create(showID)
	if err != nil {
		logger.Fatal("cannot create show", "error", err)
	}

	opts := tui.Options{Origin: storage.OriginTerminal}

	// Open session history; the show still works without it
	store := openStore()
	if store != nil {
		defer store.Close()
		opts.Store = store
	}

	sound := openAudio()
	if sound != nil {
		defer sound.Cleanup()
		opts.Sound = sound
	}

	sum, runErr := tui.Run(show, runtimeConfig(), opts)
	if runErr != nil {
		logger.Error("cannot run show", "error", runErr)
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
	logSummary(sum)
}
