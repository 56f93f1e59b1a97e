package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-fireworks/internal/core"
	"github.com/vovakirdan/tui-fireworks/internal/platform/tui"
	"github.com/vovakirdan/tui-fireworks/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick shows from an interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to start a show.
Esc inside a show returns to the menu; Tab opens the session history.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Start show
  Tab          - Session history
  Q            - Quit

Examples:
  fireworks menu
  fireworks menu --fps 30 --preset calm`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	addShowFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) {
	loadShowConfig()

	// Logged after the menu exits so the log does not draw over the screen
	var finished []core.Summary
	opts := tui.SessionOptions{
		Origin:   storage.OriginTerminal,
		OnFinish: func(sum core.Summary) { finished = append(finished, sum) },
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

	if err := tui.RunSession(runtimeConfig(), opts); err != nil {
		logger.Error("menu error", "error", err)
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
	for _, sum := range finished {
		logSummary(sum)
	}
}
