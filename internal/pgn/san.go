// Package pgn reads and writes games in Standard Algebraic Notation and
// Portable Game Notation.
package pgn

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hailam/chessplay/internal/board"
	"github.com/hailam/chessplay/internal/game"
)

var (
	ErrInvalidSAN   = errors.New("invalid SAN move")
	ErrAmbiguousSAN = errors.New("ambiguous SAN move")
)

// SAN converts a played move to Standard Algebraic Notation. before is
// the board as it stood before the move.
func SAN(before *board.Board, rec game.MoveRecord) string {
	var sb strings.Builder

	switch rec.Castle {
	case board.KingSide, board.QueenSide:
		sb.WriteString(rec.Castle.String())
	default:
		pt := rec.Piece.Type

		// Piece letter (not for pawns)
		if pt != board.Pawn {
			sb.WriteByte("PNBRQK"[pt])
			sb.WriteString(disambiguation(before, rec))
		}

		if rec.IsCapture() {
			if pt == board.Pawn {
				sb.WriteByte('a' + byte(rec.From.File()))
			}
			sb.WriteByte('x')
		}

		sb.WriteString(rec.To.String())

		if rec.Promotion != board.NoPieceType {
			sb.WriteByte('=')
			sb.WriteByte("PNBRQK"[rec.Promotion])
		}
	}

	if rec.Checkmate {
		sb.WriteByte('#')
	} else if rec.Check {
		sb.WriteByte('+')
	}
	return sb.String()
}

// disambiguation returns the file, rank or square needed to tell the mover
// apart from another piece of the same kind that could reach the same square.
func disambiguation(before *board.Board, rec game.MoveRecord) string {
	if rec.Piece.Type == board.King {
		return ""
	}

	var candidates []board.Square
	for sq := board.A1; sq <= board.H8; sq++ {
		if sq == rec.From || !before.PieceAt(sq).Is(rec.Piece.Type, rec.Piece.Color) {
			continue
		}
		moves, err := before.LegalMoves(sq)
		if err == nil && moves.Has(rec.To) {
			candidates = append(candidates, sq)
		}
	}

	// No ambiguity
	if len(candidates) == 0 {
		return ""
	}

	sameFile := false
	sameRank := false
	for _, sq := range candidates {
		if sq.File() == rec.From.File() {
			sameFile = true
		}
		if sq.Rank() == rec.From.Rank() {
			sameRank = true
		}
	}

	if !sameFile {
		return string(rune('a' + rec.From.File()))
	}
	if !sameRank {
		return string(rune('1' + rec.From.Rank()))
	}
	return rec.From.String()
}

// MovesToSAN converts a game history to SAN, replaying it from startFEN.
func MovesToSAN(startFEN string, history []game.MoveRecord) ([]string, error) {
	b, err := board.ParseFEN(startFEN)
	if err != nil {
		return nil, err
	}

	result := make([]string, len(history))
	for i, rec := range history {
		result[i] = SAN(b, rec)
		if err := b.MovePiece(rec.From, rec.To, rec.Promotion); err != nil {
			return nil, fmt.Errorf("move %d (%s): %w", i+1, rec.Move(), err)
		}
	}
	return result, nil
}

// MoveSAN returns the SAN of a legal move m in the game's current position
// without playing it.
func MoveSAN(st *game.State, m board.Move) (string, error) {
	before := st.Board()
	trial := st.Clone()
	if err := trial.MakeMove(m.From, m.To, m.Promotion); err != nil {
		return "", err
	}
	history := trial.History()
	return SAN(&before, history[len(history)-1]), nil
}

// ParseSAN finds the legal move in the game's current position that the
// SAN string s describes.
func ParseSAN(st *game.State, s string) (board.Move, error) {
	text := strings.TrimSpace(s)
	text = strings.TrimRight(text, "+#!?")
	if text == "" {
		return board.NoMove, fmt.Errorf("%w: %q", ErrInvalidSAN, s)
	}

	b := st.Board()
	legal, err := b.LegalMoveList()
	if err != nil {
		return board.NoMove, err
	}

	// Handle castling
	switch text {
	case "O-O", "0-0", "O-O-O", "0-0-0":
		ksq, ok := b.KingSquare(b.SideToMove)
		if !ok {
			return board.NoMove, board.ErrKingNotFound
		}
		to := ksq.Offset(2, 0)
		if len(text) == 5 {
			to = ksq.Offset(-2, 0)
		}
		for _, m := range legal {
			if m.From == ksq && m.To == to {
				return m, nil
			}
		}
		return board.NoMove, fmt.Errorf("%w: %q", ErrInvalidSAN, s)
	}

	// Parse promotion, with or without '='
	promo := board.NoPieceType
	if idx := strings.IndexByte(text, '='); idx >= 0 {
		if idx+1 >= len(text) {
			return board.NoMove, fmt.Errorf("%w: %q", ErrInvalidSAN, s)
		}
		promo = board.PieceTypeFromChar(text[idx+1])
		text = text[:idx]
	} else if n := len(text); n > 2 && strings.IndexByte("NBRQ", text[n-1]) >= 0 {
		promo = board.PieceTypeFromChar(text[n-1])
		text = text[:n-1]
	}
	if promo != board.NoPieceType && !promo.IsPromotion() {
		return board.NoMove, fmt.Errorf("%w: %q", ErrInvalidSAN, s)
	}

	isCapture := strings.Contains(text, "x")
	text = strings.ReplaceAll(text, "x", "")

	// Determine piece type
	pt := board.Pawn
	if len(text) > 0 && strings.IndexByte("NBRQK", text[0]) >= 0 {
		pt = board.PieceTypeFromChar(text[0])
		text = text[1:]
	}

	// Parse destination (last 2 characters)
	if len(text) < 2 {
		return board.NoMove, fmt.Errorf("%w: %q", ErrInvalidSAN, s)
	}
	dest, err := board.ParseSquare(text[len(text)-2:])
	if err != nil {
		return board.NoMove, fmt.Errorf("%w: %q", ErrInvalidSAN, s)
	}
	text = text[:len(text)-2]

	// Parse disambiguation (file, rank, or both)
	disambigFile, disambigRank := -1, -1
	for _, c := range text {
		switch {
		case c >= 'a' && c <= 'h':
			disambigFile = int(c - 'a')
		case c >= '1' && c <= '8':
			disambigRank = int(c - '1')
		default:
			return board.NoMove, fmt.Errorf("%w: %q", ErrInvalidSAN, s)
		}
	}

	var matches []board.Move
	for _, m := range legal {
		if m.To != dest {
			continue
		}
		piece := b.PieceAt(m.From)
		if piece.Type != pt {
			continue
		}
		if disambigFile >= 0 && m.From.File() != disambigFile {
			continue
		}
		if disambigRank >= 0 && m.From.Rank() != disambigRank {
			continue
		}
		if isCapture && !isCaptureMove(&b, m) {
			continue
		}
		// A bare pawn move to the last rank promotes to a queen.
		want := promo
		if want == board.NoPieceType && m.IsPromotion() {
			want = board.Queen
		}
		if m.Promotion != want {
			continue
		}
		matches = append(matches, m)
	}

	switch len(matches) {
	case 0:
		return board.NoMove, fmt.Errorf("%w: %q", ErrInvalidSAN, s)
	case 1:
		return matches[0], nil
	default:
		return board.NoMove, fmt.Errorf("%w: %q", ErrAmbiguousSAN, s)
	}
}

func isCaptureMove(b *board.Board, m board.Move) bool {
	if !b.IsEmpty(m.To) {
		return true
	}
	return b.PieceAt(m.From).Type == board.Pawn && m.To == b.EnPassant
}
