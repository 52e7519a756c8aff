// Package game tracks a chess game on top of the board rules: turn order,
// move history, captured pieces, repetition and the end of the game.
package game

import (
	"fmt"
	"maps"
	"slices"

	"github.com/hailam/chessplay/internal/board"
)

// State is a game in progress. It is not safe for concurrent use.
type State struct {
	board    board.Board
	active   board.Color
	startFEN string

	check     bool
	checkmate bool
	stalemate bool
	method    Method

	repetitions map[uint64]int
	history     []MoveRecord
	captured    [2][]board.Piece // pieces taken by each colour
	index       pieceIndex
}

// New starts a game from the standard position.
func New() *State {
	s, _ := FromFEN(board.StartFEN)
	return s
}

// FromFEN starts a game from an arbitrary position. The position must have
// one king per side and the side not to move must not be in check.
func FromFEN(fen string) (*State, error) {
	b, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	s := &State{
		board:       *b,
		active:      b.SideToMove,
		startFEN:    b.ToFEN(),
		repetitions: map[uint64]int{b.Signature(): 1},
		index:       newPieceIndex(b),
	}
	if err := s.updateStatus(); err != nil {
		return nil, err
	}
	return s, nil
}

// Replay rebuilds a game by playing moves from startFEN.
func Replay(startFEN string, moves []board.Move) (*State, error) {
	s, err := FromFEN(startFEN)
	if err != nil {
		return nil, err
	}
	for i, m := range moves {
		if err := s.MakeMove(m.From, m.To, m.Promotion); err != nil {
			return nil, fmt.Errorf("move %d (%s): %w", i+1, m, err)
		}
	}
	return s, nil
}

// MakeMove plays from-to for the side to move. promo picks the piece a
// promoting pawn becomes; NoPieceType means Queen. On error the game is
// left exactly as it was.
func (s *State) MakeMove(from, to board.Square, promo board.PieceType) error {
	if s.IsGameOver() {
		return ErrGameOver
	}

	snap := s.snapshot()

	mover := s.board.PieceAt(from)
	rec := MoveRecord{
		Piece:     mover,
		Color:     mover.Color,
		From:      from,
		To:        to,
		Captured:  s.board.PieceAt(to),
		Promotion: board.NoPieceType,
	}

	// Work out what the move does before the board changes.
	capturedOn := to
	if mover.Type == board.Pawn && to == s.board.EnPassant && rec.Captured.IsEmpty() && from.File() != to.File() {
		capturedOn = board.NewSquare(to.File(), from.Rank())
		rec.Captured = s.board.PieceAt(capturedOn)
		rec.EnPassant = !rec.Captured.IsEmpty()
	}
	if mover.Type == board.King {
		switch to.File() - from.File() {
		case 2:
			rec.Castle = board.KingSide
		case -2:
			rec.Castle = board.QueenSide
		}
	}
	if mover.Type == board.Pawn && to.RelativeRank(mover.Color) == 7 {
		rec.Promotion = promo
		if promo == board.NoPieceType {
			rec.Promotion = board.Queen
		}
	}

	if !rec.Captured.IsEmpty() && !mover.IsEmpty() {
		s.captured[mover.Color] = append(s.captured[mover.Color], rec.Captured)
		s.index.remove(rec.Captured.Color, rec.Captured.Type, capturedOn)
	}

	if err := s.board.MovePiece(from, to, promo); err != nil {
		s.restore(snap)
		return err
	}

	s.index.remove(mover.Color, mover.Type, from)
	s.index.add(mover.Color, s.board.PieceAt(to).Type, to)
	if rec.Castle != board.NoCastle {
		rookFrom, rookTo := board.NewSquare(7, from.Rank()), board.NewSquare(5, from.Rank())
		if rec.Castle == board.QueenSide {
			rookFrom, rookTo = board.NewSquare(0, from.Rank()), board.NewSquare(3, from.Rank())
		}
		s.index.remove(mover.Color, board.Rook, rookFrom)
		s.index.add(mover.Color, board.Rook, rookTo)
	}

	s.active = s.board.SideToMove
	if rec.IsCapture() || mover.Type == board.Pawn {
		// Positions before a capture or pawn move cannot recur.
		clear(s.repetitions)
	}
	s.repetitions[s.board.Signature()]++

	if err := s.updateStatus(); err != nil {
		s.restore(snap)
		return err
	}

	if s.board.IsInCheck(mover.Color) {
		s.restore(snap)
		return fmt.Errorf("%w: %s%s", board.ErrKingInCheck, from, to)
	}

	rec.Check = s.check
	rec.Checkmate = s.checkmate
	s.history = append(s.history, rec)
	return nil
}

// Clone returns an independent copy of the game.
func (s *State) Clone() *State {
	c := *s
	c.repetitions = maps.Clone(s.repetitions)
	c.history = slices.Clone(s.history)
	c.captured = [2][]board.Piece{slices.Clone(s.captured[board.White]), slices.Clone(s.captured[board.Black])}
	c.index = s.index.clone()
	return &c
}

// Undo takes back the last move by replaying the rest of the game.
func (s *State) Undo() error {
	if len(s.history) == 0 {
		return ErrNoHistory
	}

	moves := make([]board.Move, 0, len(s.history)-1)
	for _, rec := range s.history[:len(s.history)-1] {
		moves = append(moves, rec.Move())
	}
	prev, err := Replay(s.startFEN, moves)
	if err != nil {
		return err
	}
	*s = *prev
	return nil
}

// updateStatus recomputes check, mate, stalemate and repetition for the
// side to move.
func (s *State) updateStatus() error {
	s.check = s.board.IsInCheck(s.active)
	s.checkmate = false
	s.stalemate = false
	s.method = NoMethod

	hasMoves, err := s.hasAnyLegalMoves()
	if err != nil {
		return err
	}
	switch {
	case !hasMoves && s.check:
		s.checkmate = true
		s.method = Checkmate
	case !hasMoves:
		s.stalemate = true
		s.method = Stalemate
	case s.IsThreefoldRepetition():
		s.stalemate = true
		s.method = ThreefoldRepetition
	}
	return nil
}

func (s *State) hasAnyLegalMoves() (bool, error) {
	for p := range s.index[s.active] {
		moves, err := s.board.LegalMoves(p.Square)
		if err != nil {
			return false, err
		}
		if !moves.IsEmpty() {
			return true, nil
		}
	}
	return false, nil
}

type snapshot struct {
	board       board.Board
	active      board.Color
	check       bool
	checkmate   bool
	stalemate   bool
	method      Method
	repetitions map[uint64]int
	historyLen  int
	capturedLen [2]int
	index       pieceIndex
}

func (s *State) snapshot() snapshot {
	return snapshot{
		board:       s.board,
		active:      s.active,
		check:       s.check,
		checkmate:   s.checkmate,
		stalemate:   s.stalemate,
		method:      s.method,
		repetitions: maps.Clone(s.repetitions),
		historyLen:  len(s.history),
		capturedLen: [2]int{len(s.captured[board.White]), len(s.captured[board.Black])},
		index:       s.index.clone(),
	}
}

func (s *State) restore(snap snapshot) {
	s.board = snap.board
	s.active = snap.active
	s.check = snap.check
	s.checkmate = snap.checkmate
	s.stalemate = snap.stalemate
	s.method = snap.method
	s.repetitions = snap.repetitions
	s.history = s.history[:snap.historyLen]
	s.captured[board.White] = s.captured[board.White][:snap.capturedLen[board.White]]
	s.captured[board.Black] = s.captured[board.Black][:snap.capturedLen[board.Black]]
	s.index = snap.index
}

// Board returns a copy of the current board.
func (s *State) Board() board.Board {
	return s.board
}

// FEN returns the current position.
func (s *State) FEN() string {
	return s.board.ToFEN()
}

// StartFEN returns the position the game started from.
func (s *State) StartFEN() string {
	return s.startFEN
}

// ActiveColor returns the side to move.
func (s *State) ActiveColor() board.Color {
	return s.active
}

// LegalMoves returns the legal destinations of the piece on sq.
func (s *State) LegalMoves(sq board.Square) (board.SquareSet, error) {
	return s.board.LegalMoves(sq)
}

// LegalMoveList returns every legal move for the side to move.
func (s *State) LegalMoveList() ([]board.Move, error) {
	return s.board.LegalMoveList()
}

// InCheck returns true if the side to move is in check.
func (s *State) InCheck() bool {
	return s.check
}

// IsCheckmate returns true if the side to move is in check with no legal move.
func (s *State) IsCheckmate() bool {
	return s.checkmate
}

// IsStalemate returns true if the game ended drawn, either with the side to
// move having no legal move or by threefold repetition.
func (s *State) IsStalemate() bool {
	return s.stalemate
}

// IsThreefoldRepetition returns true if any position since the last
// capture or pawn move has occurred three times.
func (s *State) IsThreefoldRepetition() bool {
	for _, n := range s.repetitions {
		if n >= 3 {
			return true
		}
	}
	return false
}

// IsGameOver returns true after checkmate, stalemate or repetition.
func (s *State) IsGameOver() bool {
	return s.checkmate || s.stalemate
}

// CanClaimFiftyMoves returns true once fifty moves by each side have passed
// without a capture or pawn move. The game does not end on its own.
func (s *State) CanClaimFiftyMoves() bool {
	return s.board.HalfMoveClock >= 100
}

// Outcome returns who won, if the game is over.
func (s *State) Outcome() Outcome {
	switch {
	case s.checkmate:
		return winner(s.active.Other())
	case s.stalemate:
		return Draw
	default:
		return Ongoing
	}
}

// Method returns how the game ended.
func (s *State) Method() Method {
	return s.method
}

// Result returns the PGN result token.
func (s *State) Result() string {
	return s.Outcome().String()
}

// History returns the moves played so far.
func (s *State) History() []MoveRecord {
	return slices.Clone(s.history)
}

// Moves returns the played moves in from/to/promotion form.
func (s *State) Moves() []board.Move {
	moves := make([]board.Move, len(s.history))
	for i, rec := range s.history {
		moves[i] = rec.Move()
	}
	return moves
}

// CapturedBy returns the pieces c has taken, in order.
func (s *State) CapturedBy(c board.Color) []board.Piece {
	return slices.Clone(s.captured[c])
}

// Material returns the total value of the pieces c has taken.
func (s *State) Material(c board.Color) int {
	total := 0
	for _, p := range s.captured[c] {
		total += p.Value()
	}
	return total
}

// Placements returns c's pieces ordered by square.
func (s *State) Placements(c board.Color) []Placement {
	return s.index.sorted(c)
}

// HasPieces returns true if c has any piece left.
func (s *State) HasPieces(c board.Color) bool {
	return len(s.index[c]) > 0
}
