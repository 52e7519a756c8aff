// Package console implements a line-oriented command loop for playing and
// inspecting a game from a terminal.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/chessplay/internal/board"
	"github.com/hailam/chessplay/internal/game"
	"github.com/hailam/chessplay/internal/pgn"
	"github.com/hailam/chessplay/internal/storage"
)

var errNoArchive = errors.New("no game archive open")

// Console reads commands from in and writes replies to out.
type Console struct {
	in    io.Reader
	out   io.Writer
	game  *game.State
	store *storage.Storage // nil when running without an archive
	prefs *storage.Preferences

	// Archive record the current game was loaded from or saved to.
	saved    *storage.SavedGame
	recorded bool // result already counted in the stats
}

// New creates a console over in and out. store may be nil, in which case
// the archive commands report an error.
func New(in io.Reader, out io.Writer, store *storage.Storage) *Console {
	c := &Console{
		in:    in,
		out:   out,
		game:  game.New(),
		store: store,
		prefs: storage.DefaultPreferences(),
	}
	if store != nil {
		prefs, err := store.LoadPreferences()
		if err != nil {
			log.Printf("Warning: preferences not loaded: %v", err)
		} else {
			c.prefs = prefs
		}
	}
	return c
}

// Game returns the game being played.
func (c *Console) Game() *game.State {
	return c.game
}

// SetGame replaces the game being played.
func (c *Console) SetGame(st *game.State) {
	c.game = st
	c.saved = nil
	c.recorded = false
}

// Run processes commands until quit or end of input.
func (c *Console) Run() error {
	scanner := bufio.NewScanner(c.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		if cmd == "quit" || cmd == "exit" {
			return nil
		}
		if err := c.dispatch(cmd, args); err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

func (c *Console) dispatch(cmd string, args []string) error {
	switch cmd {
	case "new":
		c.SetGame(game.New())
		return c.handleStatus()
	case "position":
		return c.handlePosition(args)
	case "move", "m":
		return c.handleMove(args)
	case "legal":
		return c.handleLegal(args)
	case "d":
		b := c.game.Board()
		fmt.Fprint(c.out, b.String())
		return c.handleStatus()
	case "fen":
		fmt.Fprintln(c.out, c.game.FEN())
	case "status":
		return c.handleStatus()
	case "undo":
		if err := c.game.Undo(); err != nil {
			return err
		}
		c.recorded = false
		return c.handleStatus()
	case "history":
		return c.handleHistory()
	case "pgn":
		return c.handlePGN(args)
	case "import":
		if len(args) != 1 {
			return errors.New("usage: import <file.pgn>")
		}
		return c.Import(args[0])
	case "save":
		return c.handleSave(args)
	case "load":
		return c.handleLoad(args)
	case "list":
		return c.handleList()
	case "delete":
		return c.handleDelete(args)
	case "stats":
		return c.handleStats()
	case "perft":
		return c.handlePerft(args)
	case "help":
		c.handleHelp()
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
	return nil
}

// handlePosition sets up a game from "startpos" or "fen <fields...>",
// optionally followed by "moves" and a list of UCI moves.
func (c *Console) handlePosition(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: position startpos|fen <fen> [moves ...]")
	}

	var fen string
	var moveIdx int

	switch args[0] {
	case "startpos":
		fen = board.StartFEN
		moveIdx = 1
	case "fen":
		var fenParts []string
		moveIdx = len(args)
		for i := 1; i < len(args); i++ {
			if args[i] == "moves" {
				moveIdx = i
				break
			}
			fenParts = append(fenParts, args[i])
		}
		fen = strings.Join(fenParts, " ")
	default:
		return fmt.Errorf("unknown position type %q", args[0])
	}

	var moves []board.Move
	if moveIdx < len(args) && args[moveIdx] == "moves" {
		for _, text := range args[moveIdx+1:] {
			m, err := board.ParseMove(text)
			if err != nil {
				return err
			}
			moves = append(moves, m)
		}
	}

	st, err := game.Replay(fen, moves)
	if err != nil {
		return err
	}
	c.SetGame(st)
	return c.handleStatus()
}

// handleMove plays a move given in UCI or SAN form.
func (c *Console) handleMove(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: move <e2e4|Nf3>")
	}
	m, err := c.parseMove(args[0])
	if err != nil {
		return err
	}

	san, err := pgn.MoveSAN(c.game, m)
	if err != nil {
		return err
	}
	if err := c.game.MakeMove(m.From, m.To, m.Promotion); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "played %s (%s)\n", san, m)
	return c.handleStatus()
}

// parseMove accepts coordinate notation first and falls back to SAN.
func (c *Console) parseMove(text string) (board.Move, error) {
	if m, err := board.ParseMove(text); err == nil {
		return m, nil
	}
	return pgn.ParseSAN(c.game, text)
}

// handleLegal lists the destinations of the piece on a square, or every
// legal move in SAN when no square is given.
func (c *Console) handleLegal(args []string) error {
	if len(args) == 0 {
		moves, err := c.game.LegalMoveList()
		if err != nil {
			return err
		}
		sans := make([]string, 0, len(moves))
		for _, m := range moves {
			san, err := pgn.MoveSAN(c.game, m)
			if err != nil {
				return err
			}
			sans = append(sans, san)
		}
		fmt.Fprintf(c.out, "%d legal moves: %s\n", len(sans), strings.Join(sans, " "))
		return nil
	}

	sq, err := board.ParseSquare(args[0])
	if err != nil {
		return err
	}
	targets, err := c.game.LegalMoves(sq)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s: %s\n", sq, targets)
	fmt.Fprint(c.out, targets.Diagram())
	return nil
}

func (c *Console) handleStatus() error {
	st := c.game
	switch {
	case st.IsGameOver():
		fmt.Fprintf(c.out, "game over: %s by %s\n", st.Result(), st.Method())
	case st.InCheck():
		fmt.Fprintf(c.out, "%s to move, in check from %s\n", st.ActiveColor(), checkers(st))
	default:
		fmt.Fprintf(c.out, "%s to move\n", st.ActiveColor())
	}
	if !st.IsGameOver() && st.CanClaimFiftyMoves() {
		fmt.Fprintln(c.out, "a draw may be claimed under the fifty-move rule")
	}
	return nil
}

// checkers names the squares of the pieces giving check.
func checkers(st *game.State) string {
	b := st.Board()
	ksq, ok := b.KingSquare(st.ActiveColor())
	if !ok {
		return "?"
	}
	var names []string
	for _, sq := range b.Attackers(ksq, st.ActiveColor().Other()).Squares() {
		names = append(names, sq.String())
	}
	return strings.Join(names, " and ")
}

func (c *Console) handleHistory() error {
	if len(c.game.History()) == 0 {
		fmt.Fprintln(c.out, "no moves")
		return nil
	}
	text, err := pgn.Movetext(c.game)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, text)
	return nil
}

// handlePGN prints the game as PGN, or writes it to the named file.
func (c *Console) handlePGN(args []string) error {
	tags := pgn.DefaultTags(c.prefs.White, c.prefs.Black)
	if len(args) == 0 {
		return pgn.Write(c.out, c.game, tags)
	}

	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	if err := pgn.Write(f, c.game, tags); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "wrote %s\n", args[0])
	return nil
}

// Import replaces the current game with the first game in a PGN file.
func (c *Console) Import(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	st, tags, err := pgn.Read(f)
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	c.SetGame(st)
	if white := tags["White"]; white != "" {
		c.prefs.White = white
	}
	if black := tags["Black"]; black != "" {
		c.prefs.Black = black
	}
	fmt.Fprintf(c.out, "imported %s: %s vs %s, %d moves\n", path, c.prefs.White, c.prefs.Black, len(st.History()))
	return c.handleStatus()
}

// handleSave writes the current game to the archive. Saving the same game
// again updates its record instead of creating another.
func (c *Console) handleSave(args []string) error {
	if c.store == nil {
		return errNoArchive
	}
	if len(args) > 0 {
		c.prefs.White = args[0]
	}
	if len(args) > 1 {
		c.prefs.Black = args[1]
	}

	rec := storage.NewSavedGame(c.game, c.prefs.White, c.prefs.Black)
	if c.saved != nil {
		rec.ID = c.saved.ID
		rec.CreatedAt = c.saved.CreatedAt
	}
	id, err := c.store.SaveGame(rec)
	if err != nil {
		return err
	}
	c.saved = rec

	if c.game.IsGameOver() && !c.recorded {
		if err := c.store.RecordResult(c.game.Result()); err != nil {
			log.Printf("Warning: result not recorded: %v", err)
		} else {
			c.recorded = true
		}
	}

	c.prefs.LastGameID = id
	if err := c.store.SavePreferences(c.prefs); err != nil {
		log.Printf("Warning: preferences not saved: %v", err)
	}
	fmt.Fprintf(c.out, "saved %s\n", id)
	return nil
}

// Load resumes the saved game whose ID starts with prefix.
func (c *Console) Load(prefix string) error {
	return c.handleLoad([]string{prefix})
}

// handleLoad restores a saved game by ID prefix, or the last saved game.
func (c *Console) handleLoad(args []string) error {
	if c.store == nil {
		return errNoArchive
	}

	var rec *storage.SavedGame
	var err error
	switch {
	case len(args) > 0:
		rec, err = c.store.FindGame(args[0])
	case c.prefs.LastGameID != "":
		rec, err = c.store.LoadGame(c.prefs.LastGameID)
	default:
		return errors.New("usage: load <id>")
	}
	if err != nil {
		return err
	}

	st, err := rec.Restore()
	if err != nil {
		return err
	}
	c.SetGame(st)
	c.saved = rec
	c.recorded = st.IsGameOver()
	c.prefs.White, c.prefs.Black = rec.White, rec.Black
	fmt.Fprintf(c.out, "loaded %s: %s vs %s, %d moves\n", rec.ID, rec.White, rec.Black, len(rec.Moves))
	return c.handleStatus()
}

func (c *Console) handleList() error {
	if c.store == nil {
		return errNoArchive
	}
	games, err := c.store.ListGames()
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Fprintln(c.out, "no saved games")
		return nil
	}
	for _, g := range games {
		fmt.Fprintf(c.out, "%s  %s  %s vs %s  %d moves  %s\n",
			g.ID, g.UpdatedAt.Format("2006-01-02 15:04"), g.White, g.Black, len(g.Moves), g.Result)
	}
	return nil
}

func (c *Console) handleDelete(args []string) error {
	if c.store == nil {
		return errNoArchive
	}
	if len(args) != 1 {
		return errors.New("usage: delete <id>")
	}
	rec, err := c.store.FindGame(args[0])
	if err != nil {
		return err
	}
	if err := c.store.DeleteGame(rec.ID); err != nil {
		return err
	}
	if c.saved != nil && c.saved.ID == rec.ID {
		c.saved = nil
	}
	fmt.Fprintf(c.out, "deleted %s\n", rec.ID)
	return nil
}

func (c *Console) handleStats() error {
	if c.store == nil {
		return errNoArchive
	}
	stats, err := c.store.LoadStats()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "games: %d  white: %d  black: %d  draws: %d (%.0f%%)\n",
		stats.GamesPlayed, stats.WhiteWins, stats.BlackWins, stats.Draws, stats.DrawRate())
	return nil
}

func (c *Console) handlePerft(args []string) error {
	depth := 3
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 0 {
			return fmt.Errorf("invalid depth %q", args[0])
		}
		depth = d
	}

	b := c.game.Board()
	start := time.Now()
	nodes, err := b.Perft(depth)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Fprintf(c.out, "Nodes: %d\n", nodes)
	fmt.Fprintf(c.out, "Time: %v\n", elapsed)
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		fmt.Fprintf(c.out, "NPS: %.0f\n", nps)
	}
	return nil
}

func (c *Console) handleHelp() {
	fmt.Fprint(c.out, `commands:
  new                               start a new game
  position startpos|fen <fen> [moves <uci>...]
  move <e2e4|Nf3>                   play a move
  legal [square]                    list legal moves
  d                                 show the board
  fen | status | undo | history
  pgn [file] | import <file>        write or read a PGN game
  save [white] [black] | load [id] | list | delete <id> | stats
  perft <depth>
  quit
`)
}
