package game

import "errors"

var (
	ErrGameOver  = errors.New("game is over")
	ErrNoHistory = errors.New("no moves to undo")
)
