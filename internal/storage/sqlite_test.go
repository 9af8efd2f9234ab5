package storage

import (
	"os"
	"path/filepath"
	"testing"
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

func mustSave(t *testing.T, s *Store, mode, player string, score, lines int) {
	t.Helper()
	if _, err := s.SaveScore(mode, player, score, lines); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, "fixed", "ann", 100, 1)
	mustSave(t, store, "fixed", "bob", 300, 3)
	mustSave(t, store, "fixed", "ann", 200, 2)
	mustSave(t, store, "hard", "cy", 500, 5)

	scores, err := store.TopScores("fixed", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 300 || scores[1].Score != 200 || scores[2].Score != 100 {
		t.Errorf("Scores not in descending order: %+v", scores)
	}
	if scores[0].Player != "bob" || scores[0].Lines != 3 || scores[0].Mode != "fixed" {
		t.Errorf("Unexpected top entry %+v", scores[0])
	}
	if scores[0].CreatedAt.IsZero() {
		t.Errorf("Expected created_at to be parsed")
	}

	all, err := store.TopScores("", 10)
	if err != nil {
		t.Fatalf("TopScores(all) failed: %v", err)
	}
	if len(all) != 4 || all[0].Score != 500 {
		t.Errorf("Expected 4 scores led by 500, got %+v", all)
	}
}

func TestStoreTopScoresLimitAndTies(t *testing.T) {
	store := openTestStore(t)
	for i := range 5 {
		mustSave(t, store, "fixed", "p", (i+1)*100, i)
	}
	mustSave(t, store, "fixed", "late", 500, 9)

	scores, err := store.TopScores("fixed", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Player != "late" || scores[1].Score != 500 || scores[2].Score != 400 {
		t.Errorf("Unexpected order: %+v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("fixed")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for an empty table, got %d", high)
	}

	mustSave(t, store, "fixed", "a", 100, 1)
	mustSave(t, store, "fixed", "a", 300, 3)
	mustSave(t, store, "easy", "a", 900, 9)

	if high, _ = store.HighScore("fixed"); high != 300 {
		t.Errorf("Expected 300, got %d", high)
	}
	if high, _ = store.HighScore(""); high != 900 {
		t.Errorf("Expected 900 across modes, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)
	mustSave(t, store, "fixed", "a", 100, 1)
	mustSave(t, store, "fixed", "a", 200, 2)
	mustSave(t, store, "hard", "a", 300, 3)

	n, err := store.ClearScores("fixed")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 deleted rows, got %d", n)
	}
	if left, _ := store.TopScores("hard", 10); len(left) != 1 {
		t.Errorf("Clearing one mode affected another")
	}

	if n, _ = store.ClearScores(""); n != 1 {
		t.Errorf("Expected clear-all to delete 1 row, got %d", n)
	}
}

func TestStorePlayerScores(t *testing.T) {
	store := openTestStore(t)
	mustSave(t, store, "fixed", "ann", 100, 1)
	mustSave(t, store, "fixed", "bob", 200, 2)
	mustSave(t, store, "hard", "ann", 300, 3)

	got, err := store.PlayerScores("ann", 10)
	if err != nil {
		t.Fatalf("PlayerScores() failed: %v", err)
	}
	if len(got) != 2 || got[0].Score != 300 {
		t.Errorf("Expected ann's games newest first, got %+v", got)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetStats("fixed")
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if empty.Games != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Unexpected stats for empty mode: %+v", empty)
	}

	mustSave(t, store, "fixed", "a", 100, 1)
	mustSave(t, store, "fixed", "a", 300, 3)
	mustSave(t, store, "hard", "a", 50, 0)

	st, err := store.GetStats("fixed")
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if st.Games != 2 || st.HighScore != 300 || st.AvgScore != 200 || st.TotalLines != 4 {
		t.Errorf("Unexpected stats %+v", st)
	}

	all, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}
	if len(all) != 2 || all["hard"].Games != 1 {
		t.Errorf("Unexpected per-mode stats %+v", all)
	}
}

func TestStoreOpenFailureReturnsNilStore(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	store, err := Open(filepath.Join(blocker, "scores.db"))
	if err == nil {
		store.Close()
		t.Fatalf("Expected error when the parent path is a file")
	}
	if store != nil {
		t.Errorf("Expected nil store on error, got %v", store)
	}
}
