package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-fireworks/internal/platform/window"
	"github.com/vovakirdan/tui-fireworks/internal/registry"
)

var windowCmd = &cobra.Command{
	Use:   "window [show]",
	Short: "Run a show in a desktop window",
	Long: `Start the specified show (default: fireworks) in a desktop window
at its native resolution. The window can be resized freely.

Controls:
  1/Space  - Launch one firework
  2        - Launch ten fireworks
  P        - Pause
  Q/Esc    - Quit

Examples:
  fireworks window
  fireworks window newyear --music ./auld-lang-syne.mp3 --volume 0.6`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWindow,
}

func init() {
	addShowFlags(windowCmd)
}

func runWindow(_ *cobra.Command, args []string) {
	showID := resolveShow(args)
	loadShowConfig()

	show, err := registry.Create(showID)
	if err != nil {
		logger.Fatal("cannot create show", "error", err)
	}

	opts := window.Options{
		OnMusicError: func(err error) {
			logger.Warn("could not start music", "error", err)
		},
	}

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

	cfg := runtimeConfig()
	sum, runErr := window.Run(show, cfg, opts)
	if runErr != nil {
		logger.Error("cannot run window", "error", runErr)
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
	logSummary(sum)
}
