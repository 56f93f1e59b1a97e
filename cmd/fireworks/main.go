// fireworks is a particle fireworks display for the terminal, a desktop
// window, or SSH clients.
//
// Usage:
//
//	fireworks list               - List available shows
//	fireworks play [show]        - Run a show in the terminal
//	fireworks window [show]      - Run a show in a desktop window
//	fireworks menu               - Pick shows interactively
//	fireworks serve              - Start SSH server for remote viewers
//	fireworks history [show]     - Show recent sessions
//	fireworks config             - Print or validate configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for a reproducible show
//	--db <path>          - Set database path (default: ~/.fireworks/history.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import shows to register them
	_ "github.com/vovakirdan/tui-fireworks/internal/shows/fireworks"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string

	logger = newLogger("info")
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fireworks",
	Short: "Fireworks - a particle fireworks display",
	Long: `Fireworks launches rockets that climb, burst into hundreds of
particles and fade away, right in your terminal.

Available commands:
  list     - Show all available shows
  play     - Run a show in the terminal
  window   - Run a show in a desktop window
  menu     - Interactive show picker
  serve    - Start SSH server for remote viewers
  history  - View recent sessions
  config   - Print or validate configuration

Examples:
  fireworks play
  fireworks play newyear --music ./auld-lang-syne.mp3
  fireworks window --preset finale
  fireworks serve --ssh :2222
  fireworks history --tui`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger = newLogger(flagLogLevel)
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.fireworks/history.db", "Path to session history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the command-line logger.
func newLogger(level string) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "fireworks",
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		l.Warn("unknown log level, using info", "level", level)
		lvl = log.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}
