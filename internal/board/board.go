package board

import (
	"fmt"
	"strings"
)

// Board represents a complete chess position.
type Board struct {
	// Piece arena indexed by Square; NoPiece marks an empty square.
	squares [64]Piece

	// Game state
	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // Target square for en passant, NoSquare if none
	HalfMoveClock  int    // Moves since last pawn move or capture (for 50-move rule)
	FullMoveNumber int    // Full move counter, starts at 1
}

// NewBoard creates the starting position.
func NewBoard() *Board {
	b, _ := ParseFEN(StartFEN)
	return b
}

// emptyBoard returns a board with no pieces and default state.
func emptyBoard() *Board {
	b := &Board{
		EnPassant:      NoSquare,
		FullMoveNumber: 1,
	}
	for i := range b.squares {
		b.squares[i] = NoPiece
	}
	return b
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	c := *b
	return &c
}

// PieceAt returns the piece at the given square, or NoPiece if empty or
// the square is invalid.
func (b *Board) PieceAt(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	return b.squares[sq]
}

// IsEmpty returns true if the square is empty.
func (b *Board) IsEmpty(sq Square) bool {
	return b.PieceAt(sq).IsEmpty()
}

// setPiece places a piece on a square.
func (b *Board) setPiece(piece Piece, sq Square) {
	if sq.IsValid() {
		b.squares[sq] = piece
	}
}

// removePiece removes and returns the piece on a square.
func (b *Board) removePiece(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	piece := b.squares[sq]
	b.squares[sq] = NoPiece
	return piece
}

// KingSquare returns the square of c's king.
func (b *Board) KingSquare(c Color) (Square, bool) {
	for sq := A1; sq <= H8; sq++ {
		if b.squares[sq].Is(King, c) {
			return sq, true
		}
	}
	return NoSquare, false
}

// IsInCheck returns true if c's king is attacked. A board without a king
// for c is never in check.
func (b *Board) IsInCheck(c Color) bool {
	ksq, ok := b.KingSquare(c)
	if !ok {
		return false
	}
	return b.IsSquareAttacked(ksq, c.Other())
}

// Occupied returns the squares holding c's pieces.
func (b *Board) Occupied(c Color) SquareSet {
	var set SquareSet
	for sq := A1; sq <= H8; sq++ {
		if p := b.squares[sq]; !p.IsEmpty() && p.Color == c {
			set = set.Add(sq)
		}
	}
	return set
}

// String draws the board with piece glyphs, rank 8 on top, followed by the
// side to move, rights, clocks and the material balance.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			sb.WriteString(b.squares[NewSquare(file, rank)].Unicode() + " ")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", b.SideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", b.CastlingRights)
	fmt.Fprintf(&sb, "En passant: %s\n", b.EnPassant)
	fmt.Fprintf(&sb, "Half-move clock: %d\n", b.HalfMoveClock)
	fmt.Fprintf(&sb, "Full move: %d\n", b.FullMoveNumber)
	fmt.Fprintf(&sb, "Material: %+d\n", b.Material())
	return sb.String()
}

// Validate checks if the position is valid.
func (b *Board) Validate() error {
	var kings [2]int
	for sq := A1; sq <= H8; sq++ {
		p := b.squares[sq]
		if p.IsEmpty() {
			continue
		}
		if p.Type == King {
			kings[p.Color]++
		}
		if p.Type == Pawn && (sq.Rank() == 0 || sq.Rank() == 7) {
			return fmt.Errorf("%w: pawn on %s", ErrInvalidPosition, sq)
		}
	}
	if kings[White] != 1 {
		return fmt.Errorf("%w: white has %d kings", ErrInvalidPosition, kings[White])
	}
	if kings[Black] != 1 {
		return fmt.Errorf("%w: black has %d kings", ErrInvalidPosition, kings[Black])
	}
	if b.IsInCheck(b.SideToMove.Other()) {
		return fmt.Errorf("%w: %s is in check with %s to move", ErrInvalidPosition, b.SideToMove.Other(), b.SideToMove)
	}
	return nil
}

// Material returns the material balance (positive favors white).
func (b *Board) Material() int {
	score := 0
	for _, p := range b.squares {
		if p.IsEmpty() {
			continue
		}
		if p.Color == White {
			score += p.Value()
		} else {
			score -= p.Value()
		}
	}
	return score
}
