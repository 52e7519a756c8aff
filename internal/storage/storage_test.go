package storage

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/hailam/chessplay/internal/board"
	"github.com/hailam/chessplay/internal/game"
)

func openTemp(t *testing.T) *Storage {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func playedGame(t *testing.T, moves ...string) *game.State {
	t.Helper()
	st := game.New()
	for _, text := range moves {
		m, err := board.ParseMove(text)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", text, err)
		}
		if err := st.MakeMove(m.From, m.To, m.Promotion); err != nil {
			t.Fatalf("MakeMove(%s): %v", text, err)
		}
	}
	return st
}

func TestSaveLoadGame(t *testing.T) {
	s := openTemp(t)
	st := playedGame(t, "e2e4", "e7e5", "g1f3", "b8c6")

	saved := NewSavedGame(st, "Alice", "Bob")
	id, err := s.SaveGame(saved)
	if err != nil {
		t.Fatalf("SaveGame: %v", err)
	}
	if id == "" || saved.ID != id {
		t.Fatalf("SaveGame returned id %q, record has %q", id, saved.ID)
	}

	loaded, err := s.LoadGame(id)
	if err != nil {
		t.Fatalf("LoadGame: %v", err)
	}
	if loaded.White != "Alice" || loaded.Black != "Bob" || len(loaded.Moves) != 4 {
		t.Errorf("loaded = %+v", loaded)
	}

	restored, err := loaded.Restore()
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if restored.FEN() != st.FEN() {
		t.Errorf("restored FEN = %q, want %q", restored.FEN(), st.FEN())
	}
}

func TestSaveGameKeepsID(t *testing.T) {
	s := openTemp(t)
	saved := NewSavedGame(playedGame(t, "d2d4"), "A", "B")
	id, err := s.SaveGame(saved)
	if err != nil {
		t.Fatalf("SaveGame: %v", err)
	}
	created := saved.CreatedAt

	saved.Moves = append(saved.Moves, "d7d5")
	again, err := s.SaveGame(saved)
	if err != nil {
		t.Fatalf("SaveGame: %v", err)
	}
	if again != id {
		t.Errorf("second save got id %q, want %q", again, id)
	}

	loaded, err := s.LoadGame(id)
	if err != nil {
		t.Fatalf("LoadGame: %v", err)
	}
	if len(loaded.Moves) != 2 || !loaded.CreatedAt.Equal(created) {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestLoadGameNotFound(t *testing.T) {
	s := openTemp(t)
	if _, err := s.LoadGame("missing"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("LoadGame error = %v, want ErrGameNotFound", err)
	}
	if err := s.DeleteGame("missing"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("DeleteGame error = %v, want ErrGameNotFound", err)
	}
}

func TestListAndDeleteGames(t *testing.T) {
	s := openTemp(t)

	var ids []string
	for _, first := range []string{"e2e4", "d2d4", "c2c4"} {
		id, err := s.SaveGame(NewSavedGame(playedGame(t, first), "W", "B"))
		if err != nil {
			t.Fatalf("SaveGame: %v", err)
		}
		ids = append(ids, id)
	}

	games, err := s.ListGames()
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("ListGames returned %d games, want 3", len(games))
	}
	for i := 1; i < len(games); i++ {
		if games[i].UpdatedAt.After(games[i-1].UpdatedAt) {
			t.Error("games are not newest first")
		}
	}

	if err := s.DeleteGame(ids[1]); err != nil {
		t.Fatalf("DeleteGame: %v", err)
	}
	games, err = s.ListGames()
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if len(games) != 2 {
		t.Errorf("ListGames returned %d games after delete, want 2", len(games))
	}
	for _, g := range games {
		if g.ID == ids[1] {
			t.Error("deleted game still listed")
		}
	}

	found, err := s.FindGame(ids[0][:8])
	if err != nil {
		t.Fatalf("FindGame: %v", err)
	}
	if found.ID != ids[0] {
		t.Errorf("FindGame = %s, want %s", found.ID, ids[0])
	}
	if _, err := s.FindGame("zzzz"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("FindGame of unknown prefix: %v", err)
	}
}

func TestPreferences(t *testing.T) {
	s := openTemp(t)

	prefs, err := s.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if prefs.White != "White" || prefs.Black != "Black" {
		t.Errorf("defaults = %+v", prefs)
	}

	prefs.White = "Alice"
	prefs.LastGameID = "abc"
	if err := s.SavePreferences(prefs); err != nil {
		t.Fatalf("SavePreferences: %v", err)
	}
	got, err := s.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if *got != *prefs {
		t.Errorf("LoadPreferences = %+v, want %+v", got, prefs)
	}
}

func TestRecordResult(t *testing.T) {
	s := openTemp(t)

	for _, r := range []string{"1-0", "0-1", "1/2-1/2", "1/2-1/2"} {
		if err := s.RecordResult(r); err != nil {
			t.Fatalf("RecordResult(%q): %v", r, err)
		}
	}
	if err := s.RecordResult("*"); err == nil {
		t.Error("RecordResult accepted an unfinished game")
	}

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats: %v", err)
	}
	want := GameStats{GamesPlayed: 4, WhiteWins: 1, BlackWins: 1, Draws: 2}
	if *stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
	if stats.DrawRate() != 50 {
		t.Errorf("DrawRate() = %.2f, want 50", stats.DrawRate())
	}
}

func TestReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	id, err := s.SaveGame(NewSavedGame(playedGame(t, "g1f3"), "W", "B"))
	if err != nil {
		t.Fatalf("SaveGame: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if _, err := s.LoadGame(id); err != nil {
		t.Errorf("LoadGame after reopen: %v", err)
	}
}

func TestDataPaths(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG layout is Linux only")
	}
	base := t.TempDir()
	t.Setenv("XDG_DATA_HOME", base)
	t.Setenv(envDatabaseDir, "")

	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir != filepath.Join(base, appName) {
		t.Errorf("GetDataDir() = %q", dataDir)
	}

	dbDir, err := GetDatabaseDir()
	if err != nil {
		t.Fatalf("GetDatabaseDir failed: %v", err)
	}
	if _, err := os.Stat(dbDir); err != nil {
		t.Errorf("database directory was not created: %v", err)
	}

	override := filepath.Join(base, "elsewhere")
	t.Setenv(envDatabaseDir, override)
	dbDir, err = GetDatabaseDir()
	if err != nil || dbDir != override {
		t.Errorf("GetDatabaseDir() = %q, %v; want %q", dbDir, err, override)
	}
}
