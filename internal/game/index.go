package game

import (
	"maps"
	"slices"

	"github.com/hailam/chessplay/internal/board"
)

// Placement is one entry of the piece index.
type Placement struct {
	Type   board.PieceType
	Square board.Square
}

// pieceIndex mirrors the board by colour so the side to move's pieces can
// be scanned without walking all 64 squares.
type pieceIndex [2]map[Placement]struct{}

func newPieceIndex(b *board.Board) pieceIndex {
	idx := pieceIndex{make(map[Placement]struct{}), make(map[Placement]struct{})}
	for sq := board.A1; sq <= board.H8; sq++ {
		if p := b.PieceAt(sq); !p.IsEmpty() {
			idx.add(p.Color, p.Type, sq)
		}
	}
	return idx
}

func (idx pieceIndex) add(c board.Color, pt board.PieceType, sq board.Square) {
	idx[c][Placement{Type: pt, Square: sq}] = struct{}{}
}

func (idx pieceIndex) remove(c board.Color, pt board.PieceType, sq board.Square) {
	delete(idx[c], Placement{Type: pt, Square: sq})
}

func (idx pieceIndex) clone() pieceIndex {
	return pieceIndex{maps.Clone(idx[board.White]), maps.Clone(idx[board.Black])}
}

// sorted returns c's placements ordered by square.
func (idx pieceIndex) sorted(c board.Color) []Placement {
	out := make([]Placement, 0, len(idx[c]))
	for p := range idx[c] {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Placement) int {
		return int(a.Square) - int(b.Square)
	})
	return out
}
