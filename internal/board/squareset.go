package board

import (
	"fmt"
	"math/bits"
	"strings"
)

// SquareSet is a set of squares, one bit per square.
// Bit 0 = A1, Bit 7 = H1, Bit 56 = A8, Bit 63 = H8.
type SquareSet uint64

// Add returns the set with sq included. Invalid squares are ignored.
func (s SquareSet) Add(sq Square) SquareSet {
	if !sq.IsValid() {
		return s
	}
	return s | (1 << sq)
}

// Remove returns the set without sq.
func (s SquareSet) Remove(sq Square) SquareSet {
	if !sq.IsValid() {
		return s
	}
	return s &^ (1 << sq)
}

// Has returns true if sq is in the set.
func (s SquareSet) Has(sq Square) bool {
	return sq.IsValid() && s&(1<<sq) != 0
}

// Len returns the number of squares in the set.
func (s SquareSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

// IsEmpty returns true if no squares are set.
func (s SquareSet) IsEmpty() bool {
	return s == 0
}

// First returns the lowest square in the set, or NoSquare.
func (s SquareSet) First() Square {
	if s == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(s)))
}

// ForEach calls the function for each square in ascending order.
func (s SquareSet) ForEach(f func(Square)) {
	for s != 0 {
		sq := s.First()
		s &= s - 1
		f(sq)
	}
}

// Squares returns the squares in ascending order.
func (s SquareSet) Squares() []Square {
	squares := make([]Square, 0, s.Len())
	s.ForEach(func(sq Square) {
		squares = append(squares, sq)
	})
	return squares
}

// String lists the squares in algebraic notation, e.g. "[e3 e4]".
func (s SquareSet) String() string {
	names := make([]string, 0, s.Len())
	s.ForEach(func(sq Square) {
		names = append(names, sq.String())
	})
	return "[" + strings.Join(names, " ") + "]"
}

// Diagram returns an 8x8 picture of the set, rank 8 on top.
func (s SquareSet) Diagram() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			if s.Has(NewSquare(file, rank)) {
				sb.WriteString("1 ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
