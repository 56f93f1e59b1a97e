package main

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-fireworks/internal/audio"
	"github.com/vovakirdan/tui-fireworks/internal/config"
	"github.com/vovakirdan/tui-fireworks/internal/core"
	"github.com/vovakirdan/tui-fireworks/internal/registry"
	"github.com/vovakirdan/tui-fireworks/internal/shows/fireworks"
	"github.com/vovakirdan/tui-fireworks/internal/storage"
)

const defaultShow = "fireworks"

// Show flags shared by play, window and menu
var (
	flagConfig      string
	flagPreset      string
	flagMusic       string
	flagMusicOffset float64
	flagVolume      float64
	flagSound       bool
)

func addShowFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom fireworks config YAML")
	cmd.Flags().StringVar(&flagPreset, "preset", "", presetUsage())
	cmd.Flags().StringVar(&flagMusic, "music", "", "MP3 file played once the show starts (after the countdown for newyear)")
	cmd.Flags().Float64Var(&flagMusicOffset, "music-offset", audio.DefaultMusicOffset.Seconds(), "Start position within the music track in seconds")
	cmd.Flags().Float64Var(&flagVolume, "volume", audio.DefaultVolume, "Music volume from 0 to 1")
	cmd.Flags().BoolVar(&flagSound, "sound", false, "Play a pop sound for every burst")
}

// resolveShow returns the show ID from the arguments, exiting if unknown.
func resolveShow(args []string) string {
	id := defaultShow
	if len(args) > 0 {
		id = args[0]
	}
	if !registry.Exists(id) {
		logger.Fatal("unknown show", "show", id, "hint", "run 'fireworks list' to see available shows")
	}
	return id
}

// loadShowConfig loads, adjusts and validates the fireworks configuration
// and hands it to the shows. Any error is fatal: nothing has started yet.
func loadShowConfig() {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		logger.Fatal("cannot load configuration", "error", err)
	}
	if err := config.ApplyPreset(&cfg, config.Preset(flagPreset)); err != nil {
		logger.Fatal("cannot apply preset", "error", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", "source", source, "error", err)
	}
	if flagVolume < 0 || flagVolume > 1 {
		logger.Fatal("volume must be between 0 and 1", "volume", flagVolume)
	}
	if flagMusicOffset < 0 {
		logger.Fatal("music offset must not be negative", "offset", flagMusicOffset)
	}

	fireworks.SetConfig(cfg)
	logger.Debug("configuration loaded", "source", source, "preset", flagPreset)
}

// runtimeConfig builds the runtime config for the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg
}

// presetUsage is the help text of the --preset flag.
func presetUsage() string {
	names := make([]string, 0, len(config.Presets()))
	for _, p := range config.Presets() {
		names = append(names, string(p))
	}
	return "Style preset: " + strings.Join(names, ", ")
}

// openStore opens the history database. Shows run without history
// when it is unavailable.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open history database, sessions will not be recorded", "error", err)
		return nil
	}
	return store
}

// openAudio starts the speaker when music or pops were requested.
// Returns nil when sound is disabled or unavailable.
func openAudio() *audio.Manager {
	if flagMusic == "" && !flagSound {
		return nil
	}
	m := audio.NewManager(audio.Options{
		MusicPath:   flagMusic,
		MusicOffset: time.Duration(flagMusicOffset * float64(time.Second)),
		Volume:      flagVolume,
		Pops:        flagSound,
	})
	if err := m.Initialize(); err != nil {
		logger.Warn("audio unavailable, continuing without sound", "error", err)
		return nil
	}
	return m
}

// logSummary reports a finished run.
func logSummary(sum core.Summary) {
	if sum.SaveErr != nil {
		logger.Warn("could not record session", "show", sum.ShowID, "error", sum.SaveErr)
	}
	logger.Info("show finished",
		"show", sum.ShowID,
		"launched", sum.State.Launched,
		"bursts", sum.State.Exploded,
		"peak", sum.State.Peak,
		"duration", sum.Duration.Round(time.Second),
	)
}
