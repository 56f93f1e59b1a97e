package tui

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-fireworks/internal/core"
	"github.com/vovakirdan/tui-fireworks/internal/registry"
	"github.com/vovakirdan/tui-fireworks/internal/storage"
)

// statusHold is how long a transient status message stays on screen.
const statusHold = 3 * time.Second

// SoundPlayer plays the show's audio. Implemented by audio.Manager.
type SoundPlayer interface {
	StartMusic() error
	Pop()
}

// Options holds the optional collaborators of a show model.
// Every field may be left zero.
type Options struct {
	Store    *storage.Store
	Sound    SoundPlayer
	Origin   string             // Session origin recorded in history (default terminal)
	Renderer *lipgloss.Renderer // Output renderer; SSH sessions pass their own
	Embedded bool               // Esc/b returns to the caller instead of quitting

	// ScreenshotDir overrides ~/.fireworks/screenshots.
	ScreenshotDir string
}

// Model is the Bubble Tea model for running a show in the terminal.
type Model struct {
	show       registry.Show
	canvas     *core.Canvas
	renderer   *Renderer
	styles     statusStyles
	opts       Options
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	state      core.ShowState
	keyMapper  *KeyMapper
	started    time.Time

	musicStarted bool
	status       string
	statusUntil  time.Time

	quitting   bool
	backToMenu bool
	summary    core.Summary
}

type statusStyles struct {
	bar    lipgloss.Style
	title  lipgloss.Style
	paused lipgloss.Style
	note   lipgloss.Style
}

func newStatusStyles(r *lipgloss.Renderer) statusStyles {
	return statusStyles{
		bar:    r.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("235")),
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1),
		paused: r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")).Background(lipgloss.Color("235")),
		note:   r.NewStyle().Italic(true).Foreground(lipgloss.Color("86")).Background(lipgloss.Color("235")),
	}
}

// NewModel creates a new Bubble Tea model for the given show.
func NewModel(show registry.Show, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Origin == "" {
		opts.Origin = storage.OriginTerminal
	}
	lg := opts.Renderer
	if lg == nil {
		lg = lipgloss.DefaultRenderer()
	}

	w, h := CanvasSize(cfg.ScreenW, cfg.ScreenH-1)
	return Model{
		show:       show,
		canvas:     core.NewCanvas(w, h),
		renderer:   NewRenderer(lg),
		styles:     newStatusStyles(lg),
		opts:       opts,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		started:    time.Now(),
		summary:    core.Summary{ShowID: show.ID()},
	}
}

// Init initializes the model and starts the show.
func (m Model) Init() tea.Cmd {
	m.show.Reset(m.config)
	// Note: state will be set on first tick (value receiver limitation)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if m.quitting || m.backToMenu {
			return m, nil
		}
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.screenshot(time.Now())
		return m, nil
	}

	if m.opts.Embedded && m.keyMapper.MapKeyToMenuAction(msg) == MenuActionBack {
		m.finish()
		m.backToMenu = true
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.finish()
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events.
// The show keeps running: it draws in logical coordinates and the
// viewport rescales the next frame.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.canvas.Resize(CanvasSize(msg.Width, msg.Height-1))
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	result := m.show.Step(m.inputFrame)
	m.state = result.State

	if m.opts.Sound != nil {
		if result.Exploded > 0 {
			m.opts.Sound.Pop()
		}
		if m.state.Music && !m.musicStarted {
			m.musicStarted = true
			if err := m.opts.Sound.StartMusic(); err != nil {
				m.setStatus(now, "music: "+err.Error())
			}
		}
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

func (m *Model) setStatus(now time.Time, text string) {
	m.status = text
	m.statusUntil = now.Add(statusHold)
}

// screenshot writes the current frame to a PNG file.
func (m *Model) screenshot(now time.Time) {
	m.draw()

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.setStatus(now, "screenshot: "+err.Error())
			return
		}
		dir = filepath.Join(home, ".fireworks", "screenshots")
	}

	path := screenshotPath(dir, m.show.ID(), now)
	if err := SaveScreenshot(m.canvas, path); err != nil {
		m.setStatus(now, "screenshot: "+err.Error())
		return
	}
	m.setStatus(now, "saved "+path)
}

// screenshotPath builds a timestamped file name for a show screenshot.
func screenshotPath(dir, showID string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.png", showID, now.Format("20060102_150405")))
}

// SaveScreenshot encodes the canvas pixels as PNG at path.
// Parent directories are created as needed.
func SaveScreenshot(c *core.Canvas, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("tui: create screenshot directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("tui: create screenshot: %w", err)
	}
	if err := png.Encode(f, c.Image()); err != nil {
		f.Close()
		return fmt.Errorf("tui: encode screenshot: %w", err)
	}
	return f.Close()
}

// finish records the session once.
func (m *Model) finish() {
	if m.quitting || m.backToMenu {
		return
	}
	m.summary.State = m.state
	m.summary.Duration = time.Since(m.started)
	if m.opts.Store == nil {
		return
	}
	m.summary.SessionID, m.summary.SaveErr = m.opts.Store.Record(m.show.ID(), m.opts.Origin, m.state, m.summary.Duration)
}

// draw renders the last show frame onto the canvas.
func (m Model) draw() {
	w, h := m.show.Size()
	m.show.Render(core.NewViewport(m.canvas, w, h, m.canvas.Width(), m.canvas.Height()))
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.draw()
	frame := m.renderer.Render(m.canvas)
	if frame == "" {
		return m.statusLine(time.Now())
	}
	return frame + "\n" + m.statusLine(time.Now())
}

// statusLine renders the bottom bar: show title, counters and key hints.
func (m Model) statusLine(now time.Time) string {
	st := m.state
	left := m.styles.title.Render(m.show.Title())
	if st.Paused {
		left += m.styles.paused.Render(" PAUSED ")
	}

	counters := fmt.Sprintf(" launched %d  bursts %d  particles %d  peak %d ",
		st.Launched, st.Exploded, st.Particles, st.Peak)
	if st.Phase == "countdown" {
		counters = " waiting for midnight "
	}
	left += m.styles.bar.Render(counters)

	right := "1/space launch  2 x10  p pause  ctrl+s shot  q quit"
	if m.opts.Embedded {
		right = "1/space launch  2 x10  p pause  esc menu  q quit"
	}
	if m.status != "" && now.Before(m.statusUntil) {
		right = m.styles.note.Render(m.status)
	} else {
		right = m.styles.bar.Render(right)
	}

	gap := m.config.ScreenW - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	line := left + m.styles.bar.Render(fmt.Sprintf("%*s", gap, "")) + right
	return lipgloss.NewStyle().MaxWidth(m.config.ScreenW).Render(line)
}

// State returns the show state as of the last tick.
func (m Model) State() core.ShowState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Summary returns the result of the run. Valid once the model has quit.
func (m Model) Summary() core.Summary {
	return m.summary
}

// Run starts the Bubble Tea program for the show and blocks until it quits.
func Run(show registry.Show, cfg core.RuntimeConfig, opts Options) (core.Summary, error) {
	model := NewModel(show, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return core.Summary{ShowID: show.ID()}, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return core.Summary{ShowID: show.ID()}, nil
	}
	if !m.IsQuitting() {
		// Interrupted without a quit key (e.g. killed); still record the run.
		m.finish()
	}
	return m.Summary(), nil
}
