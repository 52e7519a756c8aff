package storage

import (
	"fmt"
	"time"

	"github.com/hailam/chessplay/internal/board"
	"github.com/hailam/chessplay/internal/game"
)

// SavedGame is a game as kept in the archive. Moves are in UCI form and
// are replayed from StartFEN on load.
type SavedGame struct {
	ID        string    `json:"id"`
	White     string    `json:"white"`
	Black     string    `json:"black"`
	StartFEN  string    `json:"start_fen"`
	Moves     []string  `json:"moves"`
	FEN       string    `json:"fen"`
	Result    string    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSavedGame captures st for saving.
func NewSavedGame(st *game.State, white, black string) *SavedGame {
	moves := st.Moves()
	text := make([]string, len(moves))
	for i, m := range moves {
		text[i] = m.String()
	}
	return &SavedGame{
		White:    white,
		Black:    black,
		StartFEN: st.StartFEN(),
		Moves:    text,
		FEN:      st.FEN(),
		Result:   st.Result(),
	}
}

// Restore replays the saved moves into a live game.
func (g *SavedGame) Restore() (*game.State, error) {
	moves := make([]board.Move, len(g.Moves))
	for i, text := range g.Moves {
		m, err := board.ParseMove(text)
		if err != nil {
			return nil, fmt.Errorf("game %s move %d: %w", g.ID, i+1, err)
		}
		moves[i] = m
	}
	return game.Replay(g.StartFEN, moves)
}

// Preferences stores user settings
type Preferences struct {
	White      string `json:"white"`
	Black      string `json:"black"`
	LastGameID string `json:"last_game_id"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *Preferences {
	return &Preferences{
		White: "White",
		Black: "Black",
	}
}

// GameStats counts finished games by result.
type GameStats struct {
	GamesPlayed int `json:"games_played"`
	WhiteWins   int `json:"white_wins"`
	BlackWins   int `json:"black_wins"`
	Draws       int `json:"draws"`
}

// DrawRate returns the share of drawn games as a percentage (0-100)
func (s *GameStats) DrawRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Draws) / float64(s.GamesPlayed) * 100
}
