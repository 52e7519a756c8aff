package board

import "fmt"

// Move is a from/to pair plus the piece a pawn promotes to.
// Promotion is NoPieceType for every non-promoting move.
type Move struct {
	From      Square
	To        Square
	Promotion PieceType
}

// NoMove represents an invalid or null move.
var NoMove = Move{From: NoSquare, To: NoSquare, Promotion: NoPieceType}

// NewMove creates a normal move.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to, Promotion: NoPieceType}
}

// NewPromotion creates a promotion move.
func NewPromotion(from, to Square, promo PieceType) Move {
	return Move{From: from, To: to, Promotion: promo}
}

// IsPromotion returns true if this move names a promotion piece.
func (m Move) IsPromotion() bool {
	return m.Promotion.IsPromotion()
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if !m.From.IsValid() || !m.To.IsValid() {
		return "0000"
	}

	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += string(m.Promotion.Char())
	}
	return s
}

// ParseMove parses a UCI format move string.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}

	// Check for promotion
	if len(s) == 5 {
		promo := PieceTypeFromChar(s[4])
		if !promo.IsPromotion() {
			return NoMove, fmt.Errorf("%w: %q", ErrInvalidPromotion, s)
		}
		return NewPromotion(from, to, promo), nil
	}

	return NewMove(from, to), nil
}
