// Package window runs shows in a desktop window using Ebitengine.
// The window has the show's logical size, so shows draw unscaled.
package window

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/tui-fireworks/internal/core"
	"github.com/vovakirdan/tui-fireworks/internal/registry"
	"github.com/vovakirdan/tui-fireworks/internal/storage"
)

// SoundPlayer plays the show's audio. Implemented by audio.Manager.
type SoundPlayer interface {
	StartMusic() error
	Pop()
}

// Options holds the optional collaborators of a window run.
type Options struct {
	Store *storage.Store
	Sound SoundPlayer

	// OnMusicError is called once if background music fails to start.
	OnMusicError func(error)
}

// bindings maps keys to show actions.
var bindings = []struct {
	keys   []ebiten.Key
	action core.Action
}{
	{[]ebiten.Key{ebiten.KeyDigit1, ebiten.KeySpace}, core.ActionLaunch},
	{[]ebiten.Key{ebiten.KeyDigit2}, core.ActionLaunchTen},
	{[]ebiten.Key{ebiten.KeyP}, core.ActionPause},
	{[]ebiten.Key{ebiten.KeyQ, ebiten.KeyEscape}, core.ActionQuit},
}

// Game adapts a show to ebiten.Game.
type Game struct {
	show    registry.Show
	config  core.RuntimeConfig
	opts    Options
	surface *Surface
	input   core.InputFrame
	state   core.ShowState
	started time.Time

	// justPressed reports key presses for the current tick.
	justPressed func(ebiten.Key) bool

	musicStarted bool
	done         bool
	summary      core.Summary
}

// NewGame creates a game for the show and resets it.
func NewGame(show registry.Show, cfg core.RuntimeConfig, opts Options) *Game {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	cfg.ScreenW, cfg.ScreenH = show.Size()

	g := &Game{
		show:        show,
		config:      cfg,
		opts:        opts,
		surface:     NewSurface(),
		input:       core.NewInputFrame(),
		started:     time.Now(),
		justPressed: inpututil.IsKeyJustPressed,
		summary:     core.Summary{ShowID: show.ID()},
	}
	show.Reset(cfg)
	return g
}

// readInput collects this tick's actions. Returns true on quit.
func (g *Game) readInput() bool {
	for _, b := range bindings {
		for _, k := range b.keys {
			if !g.justPressed(k) {
				continue
			}
			if b.action == core.ActionQuit {
				return true
			}
			g.input.Set(b.action)
		}
	}
	return false
}

// Update implements ebiten.Game. It runs one simulation tick.
func (g *Game) Update() error {
	if g.done {
		return ebiten.Termination
	}
	if g.readInput() {
		g.finish()
		return ebiten.Termination
	}

	result := g.show.Step(g.input)
	g.state = result.State
	g.input.Clear()

	if g.opts.Sound != nil {
		if result.Exploded > 0 {
			g.opts.Sound.Pop()
		}
		if g.state.Music && !g.musicStarted {
			g.musicStarted = true
			if err := g.opts.Sound.StartMusic(); err != nil && g.opts.OnMusicError != nil {
				g.opts.OnMusicError(err)
			}
		}
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Bind(screen)
	g.show.Render(g.surface)
}

// Layout implements ebiten.Game. The logical screen is the show's size;
// Ebitengine scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.show.Size()
}

// finish records the session once.
func (g *Game) finish() {
	if g.done {
		return
	}
	g.done = true
	g.summary.State = g.state
	g.summary.Duration = time.Since(g.started)
	if g.opts.Store != nil {
		g.summary.SessionID, g.summary.SaveErr = g.opts.Store.Record(g.show.ID(), storage.OriginWindow, g.state, g.summary.Duration)
	}
}

// Summary returns the result of the run.
func (g *Game) Summary() core.Summary {
	return g.summary
}

// Run opens a window for the show and blocks until it is closed.
func Run(show registry.Show, cfg core.RuntimeConfig, opts Options) (core.Summary, error) {
	g := NewGame(show, cfg, opts)

	w, h := show.Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(show.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.config.TickRate)

	err := ebiten.RunGame(g)
	// Closing the window ends the loop without a quit key
	g.finish()
	return g.Summary(), err
}
