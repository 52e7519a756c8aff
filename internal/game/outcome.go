package game

import "github.com/hailam/chessplay/internal/board"

// Outcome is the result of a game.
type Outcome int

const (
	Ongoing Outcome = iota
	WhiteWins
	BlackWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

// Method is how a finished game ended.
type Method int

const (
	NoMethod Method = iota
	Checkmate
	Stalemate
	ThreefoldRepetition
)

func (m Method) String() string {
	switch m {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case ThreefoldRepetition:
		return "threefold repetition"
	default:
		return "none"
	}
}

// winner returns the outcome of the side c winning.
func winner(c board.Color) Outcome {
	if c == board.White {
		return WhiteWins
	}
	return BlackWins
}
