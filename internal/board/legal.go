package board

import "fmt"

// promotionOrder is the order promotions are listed in.
var promotionOrder = [4]PieceType{Queen, Rook, Bishop, Knight}

// LegalMoves returns the pseudo-legal destinations of the piece on from
// that do not leave its own king attacked. Each candidate is played on a
// scratch copy of the board; castling skips the replay because its
// generator already refuses to start, pass or land on an attacked square.
func (b *Board) LegalMoves(from Square) (SquareSet, error) {
	p := b.PieceAt(from)
	if p.IsEmpty() {
		return 0, nil
	}

	var legal SquareSet
	var err error
	b.PseudoLegalMoves(from).ForEach(func(to Square) {
		if err != nil {
			return
		}
		if isCastling(p, from, to) {
			legal = legal.Add(to)
			return
		}
		var safe bool
		safe, err = b.leavesKingSafe(from, to)
		if safe {
			legal = legal.Add(to)
		}
	})
	if err != nil {
		return 0, err
	}
	return legal, nil
}

// leavesKingSafe plays from-to on a copy and reports whether the mover's
// king is unattacked afterwards.
func (b *Board) leavesKingSafe(from, to Square) (bool, error) {
	us := b.squares[from].Color
	sim := *b
	sim.applyMove(from, to, Queen)

	ksq, ok := sim.KingSquare(us)
	if !ok {
		return false, fmt.Errorf("%w for %s", ErrKingNotFound, us)
	}
	return !sim.IsSquareAttacked(ksq, us.Other()), nil
}

// LegalMoveList returns every legal move for the side to move. Moves onto
// the last rank by a pawn are listed once per promotion piece.
func (b *Board) LegalMoveList() ([]Move, error) {
	var moves []Move
	for _, from := range b.Occupied(b.SideToMove).Squares() {
		p := b.squares[from]
		targets, err := b.LegalMoves(from)
		if err != nil {
			return nil, err
		}
		targets.ForEach(func(to Square) {
			if isPromotionMove(p, to) {
				for _, promo := range promotionOrder {
					moves = append(moves, NewPromotion(from, to, promo))
				}
				return
			}
			moves = append(moves, NewMove(from, to))
		})
	}
	return moves, nil
}

// MovePiece validates and plays a move. promo names the piece a pawn
// reaching the last rank becomes; NoPieceType means Queen. promo is not
// looked at for any other move. On error the board is unchanged.
func (b *Board) MovePiece(from, to Square, promo PieceType) error {
	p := b.PieceAt(from)
	if p.IsEmpty() {
		return fmt.Errorf("%w: %s", ErrNoPiece, from)
	}
	if p.Color != b.SideToMove {
		return fmt.Errorf("%w: %s on %s", ErrWrongTurn, p.Color, from)
	}
	if !isPromotionMove(p, to) {
		promo = NoPieceType
	} else if promo != NoPieceType && !promo.IsPromotion() {
		return fmt.Errorf("%w: %s", ErrInvalidPromotion, promo)
	}
	if !b.PseudoLegalMoves(from).Has(to) {
		return fmt.Errorf("%w: %s%s", ErrIllegalMove, from, to)
	}
	if !isCastling(p, from, to) {
		safe, err := b.leavesKingSafe(from, to)
		if err != nil {
			return err
		}
		if !safe {
			return fmt.Errorf("%w: %s%s", ErrKingInCheck, from, to)
		}
	}

	b.applyMove(from, to, promo)
	return nil
}

// isPromotionMove reports whether p moving to to is a pawn reaching its last rank.
func isPromotionMove(p Piece, to Square) bool {
	return p.Type == Pawn && to.RelativeRank(p.Color) == 7
}

// Apply plays m through MovePiece.
func (b *Board) Apply(m Move) error {
	return b.MovePiece(m.From, m.To, m.Promotion)
}

// applyMove plays a move without validation.
func (b *Board) applyMove(from, to Square, promo PieceType) {
	piece := b.squares[from]
	us := piece.Color
	captured := b.squares[to]
	pawnMove := piece.Type == Pawn

	// Castling: bring the rook across. Any king move spends both rights.
	if piece.Type == King {
		if isCastling(piece, from, to) {
			rookFrom, rookTo := castlingRookSquares(from, to)
			rook := b.removePiece(rookFrom)
			rook.Moved = true
			rook.MoveCount++
			b.setPiece(rook, rookTo)
		}
		b.CastlingRights &^= bothRights(us)
	}

	// A rook leaving its corner, or anything landing on a corner, ends
	// that corner's right.
	b.CastlingRights &^= cornerRights[from] | cornerRights[to]

	// En passant capture
	if piece.Type == Pawn && to == b.EnPassant && captured.IsEmpty() && from.File() != to.File() {
		captured = b.removePiece(enPassantVictim(from, to))
	}

	// Set en passant square for double pawn push
	b.EnPassant = NoSquare
	if piece.Type == Pawn && (to.Rank()-from.Rank() == 2 || from.Rank()-to.Rank() == 2) {
		b.EnPassant = from.Offset(0, pawnDirection(us))
	}

	// Promotion
	if isPromotionMove(piece, to) {
		if promo == NoPieceType {
			promo = Queen
		}
		piece.Type = promo
	}

	// Move the piece
	b.removePiece(from)
	piece.Moved = true
	piece.MoveCount++
	b.setPiece(piece, to)

	// Update half-move clock
	if pawnMove || !captured.IsEmpty() {
		b.HalfMoveClock = 0
	} else {
		b.HalfMoveClock++
	}

	// Update full-move number
	if us == Black {
		b.FullMoveNumber++
	}

	b.SideToMove = us.Other()
}
