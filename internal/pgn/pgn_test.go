package pgn

import (
	"bytes"
	"strings"
	"testing"

	"github.com/notnil/chess"

	"github.com/hailam/chessplay/internal/board"
)

func TestMovetext(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		moves []string
		want  string
	}{
		{"empty game", board.StartFEN, nil, "*"},
		{
			name:  "fool's mate",
			fen:   board.StartFEN,
			moves: []string{"f2f3", "e7e5", "g2g4", "d8h4"},
			want:  "1. f3 e5 2. g4 Qh4# 0-1",
		},
		{
			name:  "black to move first",
			fen:   "4k3/8/8/8/8/8/4p3/4K3 b - - 0 40",
			moves: []string{"e8d7", "e1e2"},
			want:  "40... Kd7 41. Kxe2 *",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := mustState(t, tc.fen, tc.moves...)
			got, err := Movetext(st)
			if err != nil {
				t.Fatalf("Movetext: %v", err)
			}
			if got != tc.want {
				t.Errorf("Movetext() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		moves []string
	}{
		{
			name:  "opening",
			fen:   board.StartFEN,
			moves: []string{"e2e4", "c7c5", "g1f3", "d7d6", "d2d4", "c5d4", "f3d4", "g8f6", "b1c3", "a7a6", "f1e2", "e7e5", "d4b3", "f8e7", "e1g1", "e8g8"},
		},
		{
			name:  "promotion from a set-up position",
			fen:   "4k3/P7/8/8/8/8/6p1/4K3 w - - 0 1",
			moves: []string{"a7a8n", "g2g1q", "e1d2"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := mustState(t, tc.fen, tc.moves...)

			var buf bytes.Buffer
			if err := Write(&buf, st, Tags{"White": "Alice", "Black": "Bob", "Annotator": "test"}); err != nil {
				t.Fatalf("Write: %v", err)
			}

			got, tags, err := Read(&buf)
			if err != nil {
				t.Fatalf("Read: %v\n%s", err, buf.String())
			}
			if got.FEN() != st.FEN() {
				t.Errorf("FEN() = %q, want %q", got.FEN(), st.FEN())
			}
			if len(got.History()) != len(tc.moves) {
				t.Errorf("read %d moves, want %d", len(got.History()), len(tc.moves))
			}
			if tags["White"] != "Alice" || tags["Black"] != "Bob" || tags["Annotator"] != "test" {
				t.Errorf("tags = %v", tags)
			}
			if tags["Result"] != st.Result() {
				t.Errorf("Result tag = %q, want %q", tags["Result"], st.Result())
			}
			if _, setUp := tags["FEN"]; setUp != (tc.fen != board.StartFEN) {
				t.Errorf("FEN tag present = %v", setUp)
			}
		})
	}
}

func TestWriteHeaderOrder(t *testing.T) {
	st := mustState(t, board.StartFEN, "e2e4")

	var buf bytes.Buffer
	if err := Write(&buf, st, Tags{"White": "Alice", "Black": "Bob", "Date": "2024.01.02"}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	want := `[Event "Casual Game"]
[Site "Terminal"]
[Date "2024.01.02"]
[Round "1"]
[White "Alice"]
[Black "Bob"]
[Result "*"]

1. e4 *

`
	if buf.String() != want {
		t.Errorf("Write() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestReadAnnotatedGame(t *testing.T) {
	const text = `[Event "Annotated"]
[White "A \"quoted\" name"]
[Black "B"]
[Result "1-0"]

1. e4 {best by test} e5 2. Nf3 (2. f4 exf4) Nc6 3.Bb5 $1 a6 ; the Morphy defence
4. Ba4 Nf6 5. O-O 1-0
`
	st, tags, err := Read(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(st.History()) != 9 {
		t.Errorf("read %d moves, want 9", len(st.History()))
	}
	if tags["White"] != `A "quoted" name` {
		t.Errorf("White tag = %q", tags["White"])
	}
	b := st.Board()
	if !b.PieceAt(board.G1).Is(board.King, board.White) || !b.PieceAt(board.F1).Is(board.Rook, board.White) {
		t.Errorf("castling not replayed: %s", st.FEN())
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"illegal move", "1. e5 *\n"},
		{"malformed tag", "[Event]\n\n1. e4 *\n"},
		{"bad FEN tag", "[SetUp \"1\"]\n[FEN \"nonsense\"]\n\n1. e4 *\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := Read(strings.NewReader(tc.text)); err == nil {
				t.Error("Read accepted bad input")
			}
		})
	}
}

// TestWriteReadableByReference checks our output with notnil/chess's parser.
func TestWriteReadableByReference(t *testing.T) {
	st := mustState(t, board.StartFEN,
		"d2d4", "d7d5", "c2c4", "e7e6", "b1c3", "g8f6", "c1g5", "f8e7",
		"e2e3", "e8g8", "g1f3", "b8d7", "a1c1", "c7c6", "f1d3", "d5c4", "d3c4")

	var buf bytes.Buffer
	if err := Write(&buf, st, DefaultTags("White", "Black")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	opt, err := chess.PGN(&buf)
	if err != nil {
		t.Fatalf("reference parser rejected our PGN: %v", err)
	}
	ref := chess.NewGame(opt)
	b := st.Board()
	if got, want := strings.Fields(ref.Position().String())[0], b.PlacementFEN(); got != want {
		t.Errorf("reference placement = %q, want %q", got, want)
	}
}
