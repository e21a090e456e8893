package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/dodge/internal/leaderboard"
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
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsScores(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.Insert(ctx, leaderboard.Record{PlayerName: "Ada", Score: 77, SessionID: "s1"}); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	if wr, err := store.WorldRecord(ctx); err != nil || wr != 77 {
		t.Errorf("WorldRecord() after reopen = %d, %v", wr, err)
	}
}

func TestStoreInsertAndTopScores(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	records := []leaderboard.Record{
		{PlayerName: "Ada", Score: 100, Coins: 1, Distance: 50, SessionID: "s1", CreatedAt: base},
		{PlayerName: "Bob", Score: 50, Coins: 0, Distance: 50, SessionID: "s2", CreatedAt: base.Add(time.Minute)},
		{PlayerName: "Cy", Score: 200, Coins: 3, Distance: 50, SessionID: "s3", CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, r := range records {
		if err := store.Insert(ctx, r); err != nil {
			t.Fatalf("Insert() failed: %v", err)
		}
	}

	scores, err := store.TopScores(ctx, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %+v", scores)
	}

	top := scores[0]
	if top.PlayerName != "Cy" || top.Coins != 3 || top.Distance != 50 || top.SessionID != "s3" {
		t.Errorf("fields not round-tripped: %+v", top)
	}
	if _, err := uuid.Parse(top.ID); err != nil {
		t.Errorf("generated ID %q is not a UUID: %v", top.ID, err)
	}
	if !top.CreatedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("CreatedAt = %v, expected %v", top.CreatedAt, base.Add(2*time.Minute))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		store.Insert(ctx, leaderboard.Record{PlayerName: "p", Score: (i + 1) * 100, SessionID: "s"})
	}

	// Request only top 3
	scores, err := store.TopScores(ctx, 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreTopScoresTieGoesToEarlier(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	store.Insert(ctx, leaderboard.Record{PlayerName: "Late", Score: 300, SessionID: "a", CreatedAt: base.Add(time.Hour)})
	store.Insert(ctx, leaderboard.Record{PlayerName: "Early", Score: 300, SessionID: "b", CreatedAt: base})

	scores, err := store.TopScores(ctx, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 2 || scores[0].PlayerName != "Early" {
		t.Errorf("tie should rank the earlier game first: %+v", scores)
	}
}

func TestStoreInsertKeepsGivenID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id := uuid.NewString()
	if err := store.Insert(ctx, leaderboard.Record{ID: id, PlayerName: "Ada", Score: 1, SessionID: "s"}); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	if err := store.Insert(ctx, leaderboard.Record{ID: id, PlayerName: "Ada", Score: 2, SessionID: "s"}); err == nil {
		t.Error("duplicate ID should be rejected")
	}

	scores, _ := store.TopScores(ctx, 10)
	if len(scores) != 1 || scores[0].ID != id {
		t.Errorf("expected single record with id %s, got %+v", id, scores)
	}
}

func TestStoreBestForSession(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	// No scores yet
	best, err := store.BestForSession(ctx, "s1")
	if err != nil {
		t.Fatalf("BestForSession() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected personal best of 0 for new session, got %d", best)
	}

	store.Insert(ctx, leaderboard.Record{PlayerName: "Ada", Score: 100, SessionID: "s1"})
	store.Insert(ctx, leaderboard.Record{PlayerName: "Ada", Score: 300, SessionID: "s1"})
	store.Insert(ctx, leaderboard.Record{PlayerName: "Bob", Score: 900, SessionID: "s2"})

	best, err = store.BestForSession(ctx, "s1")
	if err != nil {
		t.Fatalf("BestForSession() failed: %v", err)
	}
	if best != 300 {
		t.Errorf("Expected personal best of 300, got %d", best)
	}

	session, err := store.SessionScores(ctx, "s1", 10)
	if err != nil {
		t.Fatalf("SessionScores() failed: %v", err)
	}
	if len(session) != 2 || session[0].Score != 300 {
		t.Errorf("SessionScores() = %+v", session)
	}
}

func TestStoreWorldRecord(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	wr, err := store.WorldRecord(ctx)
	if err != nil {
		t.Fatalf("WorldRecord() failed: %v", err)
	}
	if wr != 0 {
		t.Errorf("Expected world record of 0 for empty table, got %d", wr)
	}

	store.Insert(ctx, leaderboard.Record{PlayerName: "Ada", Score: 100, SessionID: "s1"})
	store.Insert(ctx, leaderboard.Record{PlayerName: "Bob", Score: 300, SessionID: "s2"})
	store.Insert(ctx, leaderboard.Record{PlayerName: "Cy", Score: 200, SessionID: "s3"})

	wr, err = store.WorldRecord(ctx)
	if err != nil {
		t.Fatalf("WorldRecord() failed: %v", err)
	}
	if wr != 300 {
		t.Errorf("Expected world record of 300, got %d", wr)
	}
}

func TestStoreClear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.Insert(ctx, leaderboard.Record{PlayerName: "Ada", Score: 100, SessionID: "s1"})
	store.Insert(ctx, leaderboard.Record{PlayerName: "Bob", Score: 200, SessionID: "s2"})

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}

	scores, _ := store.TopScores(ctx, 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() on empty table failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	last := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	store.Insert(ctx, leaderboard.Record{PlayerName: "Ada", Score: 100, Coins: 2, SessionID: "s1", CreatedAt: last.Add(-time.Hour)})
	store.Insert(ctx, leaderboard.Record{PlayerName: "Bob", Score: 300, Coins: 4, SessionID: "s2", CreatedAt: last})

	stats, err = store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.AvgScore != 200 || stats.TotalCoins != 6 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if !stats.LastPlayed.Equal(last) {
		t.Errorf("LastPlayed = %v, expected %v", stats.LastPlayed, last)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/.dodge/scores.db")
	if err != nil {
		t.Fatalf("ExpandPath() failed: %v", err)
	}
	if expected := filepath.Join(home, ".dodge", "scores.db"); got != expected {
		t.Errorf("ExpandPath() = %q, expected %q", got, expected)
	}

	if got, _ := ExpandPath("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute path should be unchanged, got %q", got)
	}
}
