package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-fireworks/internal/platform/tui"
	"github.com/vovakirdan/tui-fireworks/internal/registry"
	"github.com/vovakirdan/tui-fireworks/internal/storage"
)

var (
	flagHistoryTUI   bool
	flagHistoryLimit int
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [show]",
	Short: "Show recent sessions",
	Long: `Display recently recorded sessions, newest first, for one show or
for every show.

Examples:
  fireworks history
  fireworks history newyear --limit 5
  fireworks history --tui
  fireworks history fireworks --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Open the interactive history table")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of sessions to list")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the recorded sessions of the given show")
}

func runHistory(_ *cobra.Command, args []string) {
	showID := ""
	if len(args) > 0 {
		showID = args[0]
		if !registry.Exists(showID) {
			logger.Fatal("unknown show", "show", showID, "hint", "run 'fireworks list' to see available shows")
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Fatal("cannot open history database", "error", err)
	}
	defer store.Close()

	switch {
	case flagHistoryClear:
		clearHistory(store, showID)
	case flagHistoryTUI:
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		if _, err := tui.RunHistory(store, width, height); err != nil {
			logger.Error("history view error", "error", err)
		}
	default:
		printHistory(store, showID)
	}
}

func clearHistory(store *storage.Store, showID string) {
	if showID == "" {
		logger.Error("--clear needs a show", "hint", "fireworks history <show> --clear")
		return
	}
	if err := store.ClearSessions(showID); err != nil {
		logger.Error("cannot clear sessions", "error", err)
		return
	}
	logger.Info("history cleared", "show", showID)
}

func printHistory(store *storage.Store, showID string) {
	sessions, err := store.RecentSessions(showID, flagHistoryLimit)
	if err != nil {
		logger.Error("cannot retrieve sessions", "error", err)
		return
	}

	if showID == "" {
		fmt.Println("Recent sessions")
	} else {
		fmt.Printf("Recent sessions - %s\n", showID)
	}
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'fireworks play' to start the first show!")
		return
	}

	fmt.Printf("  %-16s  %-9s  %-8s  %8s  %6s  %6s  %s\n", "Date", "Show", "Origin", "Launched", "Bursts", "Peak", "Secs")
	fmt.Printf("  %-16s  %-9s  %-8s  %8s  %6s  %6s  %s\n", "----", "----", "------", "--------", "------", "----", "----")
	for _, s := range sessions {
		fmt.Printf("  %-16s  %-9s  %-8s  %8d  %6d  %6d  %d\n",
			s.CreatedAt.Local().Format("2006-01-02 15:04"), s.ShowID, s.Origin,
			s.Launched, s.Exploded, s.PeakParticles, s.Duration)
	}

	stats, err := store.GetAllShowStats()
	if err != nil || len(stats) == 0 {
		return
	}
	fmt.Println()
	for _, info := range registry.List() {
		st, ok := stats[info.ID]
		if !ok || (showID != "" && showID != info.ID) {
			continue
		}
		fmt.Printf("%s: %d sessions, %d launched, best peak %d particles\n",
			info.Title, st.Sessions, st.Launched, st.PeakParticles)
	}
}
