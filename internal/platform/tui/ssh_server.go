package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-fireworks/internal/core"
	"github.com/vovakirdan/tui-fireworks/internal/registry"
	"github.com/vovakirdan/tui-fireworks/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.fireworks/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// ShowID starts every session directly in this show.
	// Empty opens the show picker.
	ShowID string

	// TickRate is the simulation rate for every session.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SSHServer wraps a Wish SSH server serving the fireworks shows.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
// The store may be nil; sessions are then not recorded.
func NewSSHServer(cfg SSHServerConfig, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "fireworks-ssh",
		})
	}
	if cfg.ShowID != "" && !registry.Exists(cfg.ShowID) {
		return nil, fmt.Errorf("tui: unknown show %q", cfg.ShowID)
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".fireworks", "host_key")
	}

	// Ensure host key directory exists
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	model := NewSessionModel(cfg, SessionOptions{
		Store:    s.store,
		Origin:   storage.OriginSSH,
		Renderer: bubbletea.MakeRenderer(sess),
		ShowID:   s.config.ShowID,
		OnFinish: func(sum core.Summary) {
			s.logSummary(sess.User(), sum)
		},
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

func (s *SSHServer) logSummary(user string, sum core.Summary) {
	if sum.SaveErr != nil {
		s.logger.Warn("could not record session", "user", user, "show", sum.ShowID, "error", sum.SaveErr)
	}
	s.logger.Info("show finished",
		"user", user,
		"show", sum.ShowID,
		"launched", sum.State.Launched,
		"bursts", sum.State.Exploded,
		"peak", sum.State.Peak,
		"duration", sum.Duration.Round(time.Second),
	)
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server. The store is owned by the caller.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	Store    *storage.Store
	Sound    SoundPlayer
	Origin   string
	Renderer *lipgloss.Renderer

	// ShowID skips the picker; leaving the show ends the session.
	ShowID string

	// OnFinish is called each time a show ends.
	OnFinish func(core.Summary)
}

type sessionScreen uint8

const (
	screenMenu sessionScreen = iota
	screenShow
	screenHistory
)

// SessionModel manages the full interactive flow: menu -> show -> menu,
// with the history table one key away. Used for SSH sessions and the
// local menu command.
type SessionModel struct {
	opts     SessionOptions
	config   core.RuntimeConfig
	screen   sessionScreen
	menu     MenuModel
	show     *Model
	history  HistoryModel
	quitting bool

	// staleTicks counts ticks still in flight from a show that was left.
	staleTicks int
}

// NewSessionModel creates a new session model.
func NewSessionModel(cfg core.RuntimeConfig, opts SessionOptions) SessionModel {
	return SessionModel{
		opts:   opts,
		config: cfg,
		screen: screenMenu,
		menu:   NewMenuModel(cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.opts.ShowID != "" {
		// Init has a value receiver; start the show on the first message
		return func() tea.Msg { return startShowMsg(m.opts.ShowID) }
	}
	return m.menu.Init()
}

type startShowMsg string

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	if _, ok := msg.(TickMsg); ok && m.staleTicks > 0 {
		m.staleTicks--
		return m, nil
	}

	if id, ok := msg.(startShowMsg); ok {
		return m.startShow(string(id))
	}

	switch m.screen {
	case screenShow:
		return m.updateShow(msg)
	case screenHistory:
		return m.updateHistory(msg)
	}
	return m.updateMenu(msg)
}

// startShow creates the show and switches to it.
func (m SessionModel) startShow(id string) (tea.Model, tea.Cmd) {
	show, err := registry.Create(id)
	if err != nil {
		// Shouldn't happen since the menu only lists registered shows
		return m, nil
	}

	cfg := m.config
	cfg.Seed = time.Now().UnixNano()
	model := NewModel(show, cfg, Options{
		Store:    m.opts.Store,
		Sound:    m.opts.Sound,
		Origin:   m.opts.Origin,
		Renderer: m.opts.Renderer,
		Embedded: m.opts.ShowID == "",
	})
	m.show = &model
	m.screen = screenShow
	return m, m.show.Init()
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsHistory() {
		m.history = NewHistoryModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenHistory
		return m, m.history.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		m.config = m.menu.Config() // Get possibly updated config from resize
		return m.startShow(selected.ShowID)
	}

	return m, cmd
}

// updateShow handles updates when a show is running.
func (m SessionModel) updateShow(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.show.Update(msg)
	if model, ok := next.(Model); ok {
		m.show = &model
	}

	if m.show.IsQuitting() || m.show.BackToMenu() {
		if m.opts.OnFinish != nil {
			m.opts.OnFinish(m.show.Summary())
		}
	}

	// Check if user quit entirely
	if m.show.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.show.BackToMenu() {
		m.show = nil
		m.staleTicks++
		m.screen = screenMenu
		m.menu = NewMenuModel(m.config)
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateHistory handles updates when the history table is open.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.history.Update(msg)
	if h, ok := next.(HistoryModel); ok {
		m.history = h
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.history.IsGoingBack() {
		m.screen = screenMenu
		m.menu = NewMenuModel(m.config)
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenShow:
		if m.show != nil {
			return m.show.View()
		}
	case screenHistory:
		return m.history.View()
	}
	return m.menu.View()
}

// RunSession runs the interactive menu locally and blocks until the user quits.
func RunSession(cfg core.RuntimeConfig, opts SessionOptions) error {
	p := tea.NewProgram(
		NewSessionModel(cfg, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
