package board

// direction is a (file, rank) step.
type direction struct {
	df, dr int
}

var (
	knightOffsets = [8]direction{
		{1, 2}, {2, 1}, {2, -1}, {1, -2},
		{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
	}
	orthogonalDirs = [4]direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonalDirs   = [4]direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	kingOffsets    = [8]direction{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
)

// Pre-computed target sets for the non-sliding pieces.
var (
	knightTargets [64]SquareSet
	kingTargets   [64]SquareSet
	pawnAttacks   [2][64]SquareSet // [Color][Square] squares a pawn of Color on Square attacks
)

func init() {
	for sq := A1; sq <= H8; sq++ {
		for _, d := range knightOffsets {
			knightTargets[sq] = knightTargets[sq].Add(sq.Offset(d.df, d.dr))
		}
		for _, d := range kingOffsets {
			kingTargets[sq] = kingTargets[sq].Add(sq.Offset(d.df, d.dr))
		}
		for _, df := range [2]int{-1, 1} {
			pawnAttacks[White][sq] = pawnAttacks[White][sq].Add(sq.Offset(df, 1))
			pawnAttacks[Black][sq] = pawnAttacks[Black][sq].Add(sq.Offset(df, -1))
		}
	}
}

// pawnDirection returns the rank step of c's pawns.
func pawnDirection(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

// IsSquareAttacked returns true if any piece of byColor attacks sq.
// It scans attack patterns outward from sq and never generates moves,
// so legality checks can build on it without recursion.
func (b *Board) IsSquareAttacked(sq Square, byColor Color) bool {
	if !sq.IsValid() {
		return false
	}

	// Knights
	attacked := false
	knightTargets[sq].ForEach(func(from Square) {
		if b.squares[from].Is(Knight, byColor) {
			attacked = true
		}
	})
	if attacked {
		return true
	}

	// Pawns: a pawn of byColor attacks sq from one rank behind it
	// (from byColor's point of view).
	dir := pawnDirection(byColor)
	for _, df := range [2]int{-1, 1} {
		if from := sq.Offset(df, -dir); from.IsValid() && b.squares[from].Is(Pawn, byColor) {
			return true
		}
	}

	// Adjacent king
	kingTargets[sq].ForEach(func(from Square) {
		if b.squares[from].Is(King, byColor) {
			attacked = true
		}
	})
	if attacked {
		return true
	}

	// Sliders: the first piece on each ray decides.
	if b.rayHits(sq, orthogonalDirs[:], byColor, Rook) {
		return true
	}
	return b.rayHits(sq, diagonalDirs[:], byColor, Bishop)
}

// rayHits reports whether the first piece met along any of dirs is a
// byColor slider of type slider or a queen.
func (b *Board) rayHits(sq Square, dirs []direction, byColor Color, slider PieceType) bool {
	for _, d := range dirs {
		for to := sq.Offset(d.df, d.dr); to.IsValid(); to = to.Offset(d.df, d.dr) {
			p := b.squares[to]
			if p.IsEmpty() {
				continue
			}
			if p.Color == byColor && (p.Type == slider || p.Type == Queen) {
				return true
			}
			break
		}
	}
	return false
}

// Attackers returns every square holding a byColor piece that attacks sq.
func (b *Board) Attackers(sq Square, byColor Color) SquareSet {
	var set SquareSet
	for from := A1; from <= H8; from++ {
		p := b.squares[from]
		if p.IsEmpty() || p.Color != byColor {
			continue
		}
		if b.attacksFrom(from).Has(sq) {
			set = set.Add(from)
		}
	}
	return set
}

// attacksFrom returns the squares the piece on from attacks, which for
// pawns is the two diagonals rather than the push squares.
func (b *Board) attacksFrom(from Square) SquareSet {
	p := b.squares[from]
	switch p.Type {
	case Pawn:
		return pawnAttacks[p.Color][from]
	case Knight:
		return knightTargets[from]
	case King:
		return kingTargets[from]
	case Bishop:
		return b.slide(from, diagonalDirs[:], NoColor)
	case Rook:
		return b.slide(from, orthogonalDirs[:], NoColor)
	case Queen:
		return b.slide(from, diagonalDirs[:], NoColor) | b.slide(from, orthogonalDirs[:], NoColor)
	}
	return 0
}
