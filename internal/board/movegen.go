package board

// PseudoLegalMoves returns the destinations the piece on from can reach by
// its movement pattern. Whether the move would leave the mover's own king
// attacked is not considered; castling is the exception, since passing
// through check is part of its movement rule.
func (b *Board) PseudoLegalMoves(from Square) SquareSet {
	p := b.PieceAt(from)
	if p.IsEmpty() {
		return 0
	}

	switch p.Type {
	case Pawn:
		return b.pawnMoves(from, p.Color)
	case Knight:
		return b.stepMoves(from, knightTargets[from], p.Color)
	case Bishop:
		return b.slide(from, diagonalDirs[:], p.Color)
	case Rook:
		return b.slide(from, orthogonalDirs[:], p.Color)
	case Queen:
		return b.slide(from, diagonalDirs[:], p.Color) | b.slide(from, orthogonalDirs[:], p.Color)
	case King:
		return b.stepMoves(from, kingTargets[from], p.Color) | b.castlingMoves(from, p.Color)
	}
	return 0
}

// pawnMoves generates pushes, captures and en passant for one pawn.
func (b *Board) pawnMoves(from Square, us Color) SquareSet {
	var moves SquareSet
	dir := pawnDirection(us)

	// Single and double pushes
	if one := from.Offset(0, dir); one.IsValid() && b.IsEmpty(one) {
		moves = moves.Add(one)
		if from.RelativeRank(us) == 1 {
			if two := from.Offset(0, 2*dir); b.IsEmpty(two) {
				moves = moves.Add(two)
			}
		}
	}

	// Captures, including onto the en passant target
	pawnAttacks[us][from].ForEach(func(to Square) {
		target := b.squares[to]
		if !target.IsEmpty() && target.Color != us {
			moves = moves.Add(to)
		} else if target.IsEmpty() && to == b.EnPassant && b.squares[enPassantVictim(from, to)].Is(Pawn, us.Other()) {
			moves = moves.Add(to)
		}
	})

	return moves
}

// stepMoves filters a fixed target set to squares not held by us.
func (b *Board) stepMoves(from Square, targets SquareSet, us Color) SquareSet {
	var moves SquareSet
	targets.ForEach(func(to Square) {
		if p := b.squares[to]; p.IsEmpty() || p.Color != us {
			moves = moves.Add(to)
		}
	})
	return moves
}

// slide marches along each direction until the edge or a blocker. A blocker
// of color us is excluded; any other blocker is included. Pass NoColor to
// get the attacked squares including friendly blockers.
func (b *Board) slide(from Square, dirs []direction, us Color) SquareSet {
	var moves SquareSet
	for _, d := range dirs {
		for to := from.Offset(d.df, d.dr); to.IsValid(); to = to.Offset(d.df, d.dr) {
			p := b.squares[to]
			if p.IsEmpty() {
				moves = moves.Add(to)
				continue
			}
			if p.Color != us {
				moves = moves.Add(to)
			}
			break
		}
	}
	return moves
}

// castlingMoves generates castling destinations for a king on from.
func (b *Board) castlingMoves(from Square, us Color) SquareSet {
	var moves SquareSet
	home := NewSquare(4, 0)
	if us == Black {
		home = NewSquare(4, 7)
	}
	if from != home {
		return 0
	}
	them := us.Other()

	// The king may not castle out of check.
	if b.IsSquareAttacked(from, them) {
		return 0
	}

	for _, kingSide := range [2]bool{true, false} {
		if !b.CastlingRights.CanCastle(us, kingSide) {
			continue
		}
		step := 1
		if !kingSide {
			step = -1
		}
		to := from.Offset(2*step, 0)
		rookFrom, _ := castlingRookSquares(from, to)
		if !b.squares[rookFrom].Is(Rook, us) {
			continue
		}

		// Squares strictly between king and rook must be empty
		open := true
		for sq := from.Offset(step, 0); sq != rookFrom; sq = sq.Offset(step, 0) {
			if !b.IsEmpty(sq) {
				open = false
				break
			}
		}
		if !open {
			continue
		}

		// King doesn't pass through or land on an attacked square
		if b.IsSquareAttacked(from.Offset(step, 0), them) || b.IsSquareAttacked(to, them) {
			continue
		}
		moves = moves.Add(to)
	}
	return moves
}

// enPassantVictim returns the square of the pawn captured by an en passant
// move from from to to: same file as the destination, same rank as the origin.
func enPassantVictim(from, to Square) Square {
	return NewSquare(to.File(), from.Rank())
}

// isCastling reports whether moving piece p from from to to is a castling move.
func isCastling(p Piece, from, to Square) bool {
	if p.Type != King {
		return false
	}
	df := to.File() - from.File()
	return df >= 2 || df <= -2
}
