package main

import (
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-fireworks/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeShow   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the fireworks SSH server",
	Long: `Start an SSH server that lets users connect and watch shows.

Each SSH connection gets its own session with a show picker menu,
or goes straight to one show with --show. Sessions are recorded in
the shared history database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.fireworks/host_key

Examples:
  fireworks serve                           # Listen on :23234 with auto-generated key
  fireworks serve --ssh :2222               # Listen on port 2222
  fireworks serve --show newyear            # Everyone gets the countdown
  fireworks serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeShow, "show", "", "Start every session in this show instead of the menu")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom fireworks config YAML")
	serveCmd.Flags().StringVar(&flagPreset, "preset", "", presetUsage())
}

func runServe(_ *cobra.Command, _ []string) {
	if flagServeShow != "" {
		resolveShow([]string{flagServeShow})
	}
	loadShowConfig()

	// Sessions are still served when history is unavailable
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.ShowID = flagServeShow
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}

	server, err := tui.NewSSHServer(cfg, store, logger.WithPrefix("fireworks-ssh"))
	if err != nil {
		logger.Fatal("cannot create server", "error", err)
	}

	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(server.Addr()))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
	}
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return port
}
