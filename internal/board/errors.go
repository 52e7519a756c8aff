package board

import "errors"

var (
	ErrInvalidSquare    = errors.New("invalid square")
	ErrInvalidFEN       = errors.New("invalid FEN")
	ErrInvalidMove      = errors.New("invalid move string")
	ErrNoPiece          = errors.New("no piece at source square")
	ErrWrongTurn        = errors.New("piece does not belong to the side to move")
	ErrIllegalMove      = errors.New("illegal move")
	ErrKingInCheck      = errors.New("move would leave king in check")
	ErrInvalidPromotion = errors.New("invalid promotion piece")
	ErrKingNotFound     = errors.New("no king found")
	ErrInvalidPosition  = errors.New("invalid position")
)
