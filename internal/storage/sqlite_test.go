package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-fireworks/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	if err := store.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
}

func TestStoreReopenKeepsSessions(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveSession(Session{ShowID: "fireworks", Launched: 3}); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	store.Close()

	// Migrations must be idempotent
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	sessions, err := store.RecentSessions("fireworks", 10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 1 || sessions[0].Launched != 3 {
		t.Errorf("expected the saved session after reopen, got %+v", sessions)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	saved := []Session{
		{ShowID: "fireworks", Launched: 10, Exploded: 9, PeakParticles: 800, Frames: 600, Duration: 10},
		{ShowID: "newyear", Origin: OriginSSH, Launched: 40, Exploded: 38, PeakParticles: 2400, Frames: 3600, Duration: 60},
		{ShowID: "fireworks", Launched: 20, Exploded: 20, PeakParticles: 1500, Frames: 1200, Duration: 20},
	}
	for _, sess := range saved {
		if _, err := store.SaveSession(sess); err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
	}

	fw, err := store.RecentSessions("fireworks", 10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(fw) != 2 {
		t.Fatalf("Expected 2 fireworks sessions, got %d", len(fw))
	}

	// Newest first
	if fw[0].Launched != 20 || fw[1].Launched != 10 {
		t.Errorf("Expected newest session first, got %d then %d", fw[0].Launched, fw[1].Launched)
	}
	if fw[0].Origin != OriginTerminal {
		t.Errorf("Expected default origin %q, got %q", OriginTerminal, fw[0].Origin)
	}
	if fw[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	all, err := store.RecentSessions("", 10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 sessions in total, got %d", len(all))
	}

	limited, err := store.RecentSessions("", 1)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("Expected limit of 1, got %d", len(limited))
	}
}

func TestStoreEmptyHistory(t *testing.T) {
	store := openTestStore(t)

	sessions, err := store.RecentSessions("fireworks", 10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("Expected no sessions, got %d", len(sessions))
	}

	stats, err := store.GetShowStats("fireworks")
	if err != nil {
		t.Fatalf("GetShowStats() failed: %v", err)
	}
	if stats.Sessions != 0 || stats.PeakParticles != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	for _, sess := range []Session{
		{ShowID: "fireworks", Launched: 10, Exploded: 9, PeakParticles: 800, Duration: 10},
		{ShowID: "fireworks", Launched: 20, Exploded: 20, PeakParticles: 1500, Duration: 20},
		{ShowID: "newyear", Launched: 5, Exploded: 5, PeakParticles: 300, Duration: 90},
	} {
		if _, err := store.SaveSession(sess); err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
	}

	stats, err := store.GetShowStats("fireworks")
	if err != nil {
		t.Fatalf("GetShowStats() failed: %v", err)
	}
	if stats.Sessions != 2 {
		t.Errorf("Sessions = %d, expected 2", stats.Sessions)
	}
	if stats.Launched != 30 || stats.Exploded != 29 {
		t.Errorf("Launched/Exploded = %d/%d, expected 30/29", stats.Launched, stats.Exploded)
	}
	if stats.PeakParticles != 1500 {
		t.Errorf("PeakParticles = %d, expected 1500", stats.PeakParticles)
	}
	if stats.TotalSeconds != 30 {
		t.Errorf("TotalSeconds = %d, expected 30", stats.TotalSeconds)
	}

	all, err := store.GetAllShowStats()
	if err != nil {
		t.Fatalf("GetAllShowStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 shows, got %d", len(all))
	}
	if all["newyear"].TotalSeconds != 90 {
		t.Errorf("newyear TotalSeconds = %d, expected 90", all["newyear"].TotalSeconds)
	}
}

func TestStoreClearSessions(t *testing.T) {
	store := openTestStore(t)

	store.SaveSession(Session{ShowID: "fireworks"})
	store.SaveSession(Session{ShowID: "newyear"})

	if err := store.ClearSessions("fireworks"); err != nil {
		t.Fatalf("ClearSessions() failed: %v", err)
	}

	fw, _ := store.RecentSessions("fireworks", 10)
	if len(fw) != 0 {
		t.Errorf("Expected fireworks history cleared, got %d", len(fw))
	}
	ny, _ := store.RecentSessions("newyear", 10)
	if len(ny) != 1 {
		t.Errorf("Expected newyear history kept, got %d", len(ny))
	}
}

func TestStoreRecord(t *testing.T) {
	store := openTestStore(t)

	id, err := store.Record("newyear", OriginWindow, core.ShowState{}, time.Minute)
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if id != 0 {
		t.Errorf("a run without frames should not be recorded, got ID %d", id)
	}

	st := core.ShowState{Frames: 900, Launched: 14, Exploded: 13, Peak: 2100}
	id, err = store.Record("newyear", OriginWindow, st, 15*time.Second+400*time.Millisecond)
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a session ID")
	}

	sessions, err := store.RecentSessions("newyear", 5)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, expected 1", len(sessions))
	}
	got := sessions[0]
	if got.Origin != OriginWindow || got.Launched != 14 || got.Exploded != 13 ||
		got.PeakParticles != 2100 || got.Frames != 900 || got.Duration != 15 {
		t.Errorf("unexpected session %+v", got)
	}
}
