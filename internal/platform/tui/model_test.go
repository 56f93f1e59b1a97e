package tui

import (
	"errors"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-fireworks/internal/core"
	"github.com/vovakirdan/tui-fireworks/internal/storage"
)

// fakeShow counts launches and bursts one firework per tick with launches.
type fakeShow struct {
	resets   int
	launched int
	frames   int
	music    bool
	paused   bool
}

func (s *fakeShow) ID() string { return "fake" }
func (s *fakeShow) Title() string { return "Fake" }
func (s *fakeShow) Size() (int, int) { return 100, 100 }

func (s *fakeShow) Reset(core.RuntimeConfig) {
	s.resets++
	s.launched = 0
	s.frames = 0
}

func (s *fakeShow) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		s.paused = !s.paused
	}
	s.frames++
	n := in.Count(core.ActionLaunch) + 10*in.Count(core.ActionLaunchTen)
	s.launched += n
	exploded := 0
	if n > 0 {
		exploded = 1
	}
	return core.StepResult{State: s.State(), Exploded: exploded}
}

func (s *fakeShow) Render(dst core.Surface) {
	dst.Fill(core.RGB{R: 20, G: 20, B: 30})
	dst.FillCircle(50, 50, 10, core.ColorWhite)
}

func (s *fakeShow) State() core.ShowState {
	return core.ShowState{
		Frames:   s.frames,
		Launched: s.launched,
		Exploded: s.launched,
		Peak:     s.launched * 100,
		Music:    s.music,
		Paused:   s.paused,
	}
}

type fakeSound struct {
	pops   int
	starts int
	err    error
}

func (f *fakeSound) StartMusic() error {
	f.starts++
	return f.err
}

func (f *fakeSound) Pop() { f.pops++ }

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 120, ScreenH: 12, TickRate: 60, Seed: 1}
}

func testOptions() Options {
	return Options{Renderer: lipgloss.NewRenderer(io.Discard)}
}

// send feeds one message through Update and returns the updated model.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm
}

func TestModelTickAppliesInput(t *testing.T) {
	show := &fakeShow{}
	m := NewModel(show, testConfig(), testOptions())
	m.Init()

	m = send(t, m, runeKey('1'))
	m = send(t, m, runeKey('1'))
	m = send(t, m, runeKey('2'))
	m = send(t, m, TickMsg(time.Now()))

	if show.launched != 12 {
		t.Errorf("launched %d, expected 12", show.launched)
	}
	if m.State().Launched != 12 {
		t.Errorf("state launched %d, expected 12", m.State().Launched)
	}

	// Input is cleared after the tick
	m = send(t, m, TickMsg(time.Now()))
	if show.launched != 12 {
		t.Errorf("launched %d after an idle tick, expected 12", show.launched)
	}
	if m.State().Frames != 2 {
		t.Errorf("frames %d, expected 2", m.State().Frames)
	}
}

func TestModelResizeKeepsShow(t *testing.T) {
	show := &fakeShow{}
	m := NewModel(show, testConfig(), testOptions())
	m.Init()
	m = send(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})

	if show.resets != 1 {
		t.Errorf("show reset %d times, expected 1", show.resets)
	}
	if m.canvas.Width() != 60 || m.canvas.Height() != 38 {
		t.Errorf("canvas %dx%d, expected 60x38", m.canvas.Width(), m.canvas.Height())
	}
}

func TestModelView(t *testing.T) {
	show := &fakeShow{}
	m := NewModel(show, testConfig(), testOptions())
	m.Init()
	m = send(t, m, TickMsg(time.Now()))

	lines := strings.Split(m.View(), "\n")
	if len(lines) != 12 {
		t.Fatalf("view has %d lines, expected 12", len(lines))
	}
	if !strings.Contains(lines[11], "Fake") {
		t.Errorf("status line should show the title, got %q", lines[11])
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w > 120 {
			t.Errorf("line %d is %d cells wide, expected at most 120", i, w)
		}
	}
}

func TestModelPausedStatus(t *testing.T) {
	show := &fakeShow{}
	m := NewModel(show, testConfig(), testOptions())
	m.Init()
	m = send(t, m, runeKey('p'))
	m = send(t, m, TickMsg(time.Now()))

	if !m.State().Paused {
		t.Fatal("show should be paused")
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("status line should show PAUSED")
	}
}

func TestModelSound(t *testing.T) {
	show := &fakeShow{}
	sound := &fakeSound{}
	opts := testOptions()
	opts.Sound = sound
	m := NewModel(show, testConfig(), opts)
	m.Init()

	m = send(t, m, runeKey('1'))
	m = send(t, m, TickMsg(time.Now()))
	m = send(t, m, TickMsg(time.Now()))
	if sound.pops != 1 {
		t.Errorf("pops %d, expected 1", sound.pops)
	}
	if sound.starts != 0 {
		t.Errorf("music started %d times before requested", sound.starts)
	}

	show.music = true
	m = send(t, m, TickMsg(time.Now()))
	m = send(t, m, TickMsg(time.Now()))
	if sound.starts != 1 {
		t.Errorf("music started %d times, expected 1", sound.starts)
	}
}

func TestModelMusicErrorShown(t *testing.T) {
	show := &fakeShow{music: true}
	sound := &fakeSound{err: errors.New("no device")}
	opts := testOptions()
	opts.Sound = sound
	m := NewModel(show, testConfig(), opts)
	m.Init()
	m = send(t, m, TickMsg(time.Now()))

	if !strings.Contains(m.View(), "no device") {
		t.Error("music error should appear in the status line")
	}
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestModelQuitSavesSession(t *testing.T) {
	store := openTestStore(t)
	show := &fakeShow{}
	opts := testOptions()
	opts.Store = store
	m := NewModel(show, testConfig(), opts)
	m.Init()

	m = send(t, m, runeKey('2'))
	m = send(t, m, TickMsg(time.Now()))
	next, cmd := m.Update(runeKey('q'))
	m = next.(Model)

	if !m.IsQuitting() {
		t.Fatal("q should quit")
	}
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}

	sum := m.Summary()
	if sum.SaveErr != nil {
		t.Fatalf("save failed: %v", sum.SaveErr)
	}
	if sum.SessionID == 0 {
		t.Error("session should have been recorded")
	}

	sessions, err := store.RecentSessions("fake", 10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, expected 1", len(sessions))
	}
	s := sessions[0]
	if s.Launched != 10 || s.PeakParticles != 1000 || s.Frames != 1 || s.Origin != storage.OriginTerminal {
		t.Errorf("unexpected session %+v", s)
	}

	// A second quit must not record twice
	send(t, m, runeKey('q'))
	sessions, _ = store.RecentSessions("fake", 10)
	if len(sessions) != 1 {
		t.Errorf("got %d sessions after second quit, expected 1", len(sessions))
	}
}

func TestModelQuitBeforeFirstFrame(t *testing.T) {
	store := openTestStore(t)
	opts := testOptions()
	opts.Store = store
	m := NewModel(&fakeShow{}, testConfig(), opts)
	m.Init()
	m = send(t, m, runeKey('q'))

	if m.Summary().SessionID != 0 {
		t.Error("a session without frames should not be recorded")
	}
	sessions, _ := store.RecentSessions("", 10)
	if len(sessions) != 0 {
		t.Errorf("got %d sessions, expected 0", len(sessions))
	}
}

func TestModelEmbeddedBack(t *testing.T) {
	opts := testOptions()
	opts.Embedded = true
	m := NewModel(&fakeShow{}, testConfig(), opts)
	m.Init()
	m = send(t, m, TickMsg(time.Now()))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if !m.BackToMenu() {
		t.Error("esc should return to the menu when embedded")
	}
	if m.IsQuitting() {
		t.Error("esc should not quit when embedded")
	}
	if m.View() != "" {
		t.Error("view should be empty after leaving")
	}

	// Standalone models ignore esc
	m = NewModel(&fakeShow{}, testConfig(), testOptions())
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() || m.IsQuitting() {
		t.Error("esc should do nothing for a standalone model")
	}
}

func TestModelScreenshot(t *testing.T) {
	dir := t.TempDir()
	opts := testOptions()
	opts.ScreenshotDir = dir
	m := NewModel(&fakeShow{}, testConfig(), opts)
	m.Init()
	m = send(t, m, TickMsg(time.Now()))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	matches, err := filepath.Glob(filepath.Join(dir, "fake_*.png"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("found %d screenshots, expected 1", len(matches))
	}

	f, err := os.Open(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("screenshot is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 22 {
		t.Errorf("screenshot is %dx%d, expected 120x22", b.Dx(), b.Dy())
	}
	if !strings.Contains(m.View(), "saved") {
		t.Error("status line should confirm the screenshot")
	}
}

func TestScreenshotPath(t *testing.T) {
	now := time.Date(2026, 12, 31, 23, 59, 58, 0, time.UTC)
	got := screenshotPath("/tmp/shots", "newyear", now)
	if got != filepath.Join("/tmp/shots", "newyear_20261231_235958.png") {
		t.Errorf("screenshotPath = %q", got)
	}
}
