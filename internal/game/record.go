package game

import (
	"fmt"

	"github.com/hailam/chessplay/internal/board"
)

// MoveRecord describes one move that was played.
type MoveRecord struct {
	Piece     board.Piece // as it stood before the move
	Color     board.Color
	From      board.Square
	To        board.Square
	Captured  board.Piece // NoPiece when nothing was taken
	EnPassant bool
	Castle    board.CastleSide
	Promotion board.PieceType // NoPieceType unless a pawn promoted
	Check     bool
	Checkmate bool
}

// Move returns the move in from/to/promotion form.
func (r MoveRecord) Move() board.Move {
	return board.Move{From: r.From, To: r.To, Promotion: r.Promotion}
}

// IsCapture returns true if the move took a piece.
func (r MoveRecord) IsCapture() bool {
	return !r.Captured.IsEmpty()
}

func (r MoveRecord) String() string {
	s := fmt.Sprintf("%s %s%s", r.Color, r.Piece.Type, r.Move())
	if r.IsCapture() {
		s += fmt.Sprintf(" x%s", r.Captured.Type)
	}
	if r.Checkmate {
		s += " mate"
	} else if r.Check {
		s += " check"
	}
	return s
}
