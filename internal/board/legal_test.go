package board

import (
	"errors"
	"testing"
)

func TestMovePieceErrors(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		from    Square
		to      Square
		promo   PieceType
		wantErr error
	}{
		{"empty square", StartFEN, E4, E5, NoPieceType, ErrNoPiece},
		{"wrong side", StartFEN, E7, E5, NoPieceType, ErrWrongTurn},
		{"not pseudo-legal", StartFEN, E2, E5, NoPieceType, ErrIllegalMove},
		{"pinned bishop", "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1", E2, D3, NoPieceType, ErrKingInCheck},
		{"king into check", "4k3/8/8/8/8/8/3r4/4K3 w - - 0 1", E1, E2, NoPieceType, ErrKingInCheck},
		{"promote to king", "7k/P7/8/8/8/8/8/K7 w - - 0 1", A7, A8, King, ErrInvalidPromotion},
		{"promote to pawn", "7k/P7/8/8/8/8/8/K7 w - - 0 1", A7, A8, Pawn, ErrInvalidPromotion},
		{"missing king", "7k/8/8/8/8/8/8/R7 w - - 0 1", A1, A2, NoPieceType, ErrKingNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustParseFEN(t, tc.fen)
			before := b.ToFEN()

			err := b.MovePiece(tc.from, tc.to, tc.promo)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("MovePiece(%v, %v) error = %v, want %v", tc.from, tc.to, err, tc.wantErr)
			}
			if got := b.ToFEN(); got != before {
				t.Errorf("board changed after rejected move: %q, want %q", got, before)
			}
		})
	}
}

func TestLegalMovesPinned(t *testing.T) {
	b := mustParseFEN(t, "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1")

	if b.PseudoLegalMoves(E2).IsEmpty() {
		t.Fatal("pinned bishop should have pseudo-legal moves")
	}
	moves, err := b.LegalMoves(E2)
	if err != nil {
		t.Fatalf("LegalMoves: %v", err)
	}
	if !moves.IsEmpty() {
		t.Errorf("pinned bishop has legal moves %v", moves)
	}

	// A pinned rook may still slide along the pin.
	b = mustParseFEN(t, "4k3/4r3/8/8/8/8/4R3/4K3 w - - 0 1")
	moves, err = b.LegalMoves(E2)
	if err != nil {
		t.Fatalf("LegalMoves: %v", err)
	}
	if want := squareSet(E3, E4, E5, E6, E7); moves != want {
		t.Errorf("pinned rook moves = %v, want %v", moves, want)
	}
}

func TestLegalMovesMissingKing(t *testing.T) {
	b := mustParseFEN(t, "7k/8/8/8/8/8/8/R7 w - - 0 1")
	if _, err := b.LegalMoves(A1); !errors.Is(err, ErrKingNotFound) {
		t.Errorf("LegalMoves error = %v, want ErrKingNotFound", err)
	}
	if b.IsInCheck(White) {
		t.Error("a colour without a king cannot be in check")
	}
}

func TestMoveEffects(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		from  Square
		to    Square
		promo PieceType
		want  string
	}{
		{
			name: "double push sets en passant",
			fen:  StartFEN,
			from: E2, to: E4,
			want: "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		},
		{
			name: "knight move advances the half-move clock",
			fen:  StartFEN,
			from: G1, to: F3,
			want: "rnbqkbnr/pppppppp/8/8/8/5N2/PPPPPPPP/RNBQKB1R b KQkq - 1 1",
		},
		{
			name: "en passant removes the passed pawn",
			fen:  "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
			from: E5, to: F6,
			want: "rnbqkbnr/ppp1p1pp/5P2/3p4/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 3",
		},
		{
			name: "black en passant",
			fen:  "4k3/8/8/8/3pP3/8/8/4K3 b - e3 0 1",
			from: D4, to: E3,
			want: "4k3/8/8/8/8/4p3/8/4K3 w - - 0 2",
		},
		{
			name: "king side castling moves the rook",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 3 10",
			from: E1, to: G1,
			want: "r3k2r/8/8/8/8/8/8/R4RK1 b kq - 4 10",
		},
		{
			name: "queen side castling moves the rook",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			from: E1, to: C1,
			want: "r3k2r/8/8/8/8/8/8/2KR3R b kq - 1 1",
		},
		{
			name: "king step clears both rights",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			from: E1, to: E2,
			want: "r3k2r/8/8/8/8/8/4K3/R6R b kq - 1 1",
		},
		{
			name: "rook leaving corner clears its right",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			from: H1, to: H5,
			want: "r3k2r/8/8/7R/8/8/8/R3K3 b Qkq - 1 1",
		},
		{
			name: "capture on a corner clears both corners",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			from: A1, to: A8,
			want: "R3k2r/8/8/8/8/8/8/4K2R b Kk - 0 1",
		},
		{
			name:  "promotion defaults to queen",
			fen:   "7k/P7/8/8/8/8/8/K7 w - - 5 30",
			from:  A7, to: A8,
			promo: NoPieceType,
			want:  "Q6k/8/8/8/8/8/8/K7 b - - 0 30",
		},
		{
			name:  "under-promotion to knight",
			fen:   "7k/P7/8/8/8/8/8/K7 w - - 0 1",
			from:  A7, to: A8,
			promo: Knight,
			want:  "N6k/8/8/8/8/8/8/K7 b - - 0 1",
		},
		{
			name:  "capture promotion",
			fen:   "1r5k/P7/8/8/8/8/8/K7 w - - 0 1",
			from:  A7, to: B8,
			promo: Rook,
			want:  "1R5k/8/8/8/8/8/8/K7 b - - 0 1",
		},
		{
			name:  "promotion piece ignored for a normal move",
			fen:   StartFEN,
			from:  B1, to: C3,
			promo: Queen,
			want:  "rnbqkbnr/pppppppp/8/8/8/2N5/PPPPPPPP/R1BQKBNR b KQkq - 1 1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustParseFEN(t, tc.fen)
			if err := b.MovePiece(tc.from, tc.to, tc.promo); err != nil {
				t.Fatalf("MovePiece(%v, %v): %v", tc.from, tc.to, err)
			}
			if got := b.ToFEN(); got != tc.want {
				t.Errorf("ToFEN() = %q, want %q", got, tc.want)
			}
		})
	}
}

// The zero PieceType is Pawn, so callers that leave promo unset must still
// be able to play ordinary moves.
func TestMovePieceIgnoresPromotionOnNormalMoves(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		from  Square
		to    Square
		promo PieceType
		want  string
	}{
		{
			name: "zero value on a pawn push",
			fen:  StartFEN,
			from: E2, to: E4,
			promo: 0,
			want:  "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		},
		{
			name: "king on a knight move",
			fen:  StartFEN,
			from: G1, to: F3,
			promo: King,
			want:  "rnbqkbnr/pppppppp/8/8/8/5N2/PPPPPPPP/RNBQKB1R b KQkq - 1 1",
		},
		{
			name: "zero value on en passant",
			fen:  "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
			from: E5, to: F6,
			promo: Pawn,
			want:  "rnbqkbnr/ppp1p1pp/5P2/3p4/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 3",
		},
		{
			name: "zero value on castling",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			from: E1, to: G1,
			promo: Pawn,
			want:  "r3k2r/8/8/8/8/8/8/R4RK1 b kq - 1 1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustParseFEN(t, tc.fen)
			if err := b.MovePiece(tc.from, tc.to, tc.promo); err != nil {
				t.Fatalf("MovePiece(%v, %v, %v): %v", tc.from, tc.to, tc.promo, err)
			}
			if got := b.ToFEN(); got != tc.want {
				t.Errorf("ToFEN() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMoveBookkeeping(t *testing.T) {
	b := NewBoard()
	moves := []Move{
		NewMove(G1, F3), NewMove(G8, F6),
		NewMove(F3, G1), NewMove(F6, G8),
	}
	for _, m := range moves {
		if err := b.Apply(m); err != nil {
			t.Fatalf("Apply(%v): %v", m, err)
		}
	}

	knight := b.PieceAt(G1)
	if !knight.Is(Knight, White) || !knight.Moved || knight.MoveCount != 2 {
		t.Errorf("knight on g1 = %+v, want moved twice", knight)
	}
	if b.PieceAt(B1).Moved {
		t.Error("b1 knight never moved")
	}
	if b.HalfMoveClock != 4 || b.FullMoveNumber != 3 {
		t.Errorf("clocks = %d/%d, want 4/3", b.HalfMoveClock, b.FullMoveNumber)
	}
	if b.Signature() != NewBoard().Signature() {
		t.Error("knight shuffle should return to the starting signature")
	}
}

// Every legal destination must leave the mover's king safe once played.
func TestLegalityClosure(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1",
	}

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			b := mustParseFEN(t, fen)
			us := b.SideToMove
			for from := A1; from <= H8; from++ {
				p := b.PieceAt(from)
				if p.IsEmpty() || p.Color != us {
					continue
				}
				moves, err := b.LegalMoves(from)
				if err != nil {
					t.Fatalf("LegalMoves(%v): %v", from, err)
				}
				if moves&^b.PseudoLegalMoves(from) != 0 {
					t.Errorf("legal moves of %v are not a subset of its pseudo-legal moves", from)
				}
				moves.ForEach(func(to Square) {
					after := b.Copy()
					if err := after.MovePiece(from, to, NoPieceType); err != nil {
						t.Errorf("MovePiece(%v, %v): %v", from, to, err)
						return
					}
					if after.IsInCheck(us) {
						t.Errorf("%v%v leaves %v in check", from, to, us)
					}
				})
			}
		})
	}
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		in      string
		want    Move
		wantErr bool
	}{
		{"e2e4", NewMove(E2, E4), false},
		{"e7e8q", NewPromotion(E7, E8, Queen), false},
		{"a2a1n", NewPromotion(A2, A1, Knight), false},
		{"e7e8k", NoMove, true},
		{"e2", NoMove, true},
		{"z2e4", NoMove, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseMove(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseMove(%q) accepted bad input", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMove(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParseMove(%q) = %v, want %v", tc.in, got, tc.want)
			}
			if got.String() != tc.in {
				t.Errorf("String() = %q, want %q", got.String(), tc.in)
			}
		})
	}
}
