// ChessPlay - a two-player chess game for the terminal
package main

import (
	"flag"
	"log"
	"os"

	"github.com/hailam/chessplay/internal/console"
	"github.com/hailam/chessplay/internal/game"
	"github.com/hailam/chessplay/internal/storage"
)

var (
	fenFlag     = flag.String("fen", "", "start from this FEN instead of the standard position")
	dbFlag      = flag.String("db", "", "game archive directory (default: user data directory)")
	loadFlag    = flag.String("load", "", "resume the saved game with this ID prefix")
	pgnFlag     = flag.String("pgn", "", "start from the game in this PGN file")
	noDBFlag    = flag.Bool("nodb", false, "run without a game archive")
	verboseFlag = flag.Bool("v", false, "log database diagnostics")
)

func main() {
	flag.Parse()

	var store *storage.Storage
	if !*noDBFlag {
		var opts []storage.Option
		if *verboseFlag {
			opts = append(opts, storage.WithLogger(log.Default()))
		}

		var err error
		if *dbFlag != "" {
			store, err = storage.Open(*dbFlag, opts...)
		} else {
			store, err = storage.OpenDefault(opts...)
		}
		if err != nil {
			log.Printf("Warning: game archive not available: %v", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	c := console.New(os.Stdin, os.Stdout, store)
	if *fenFlag != "" {
		st, err := game.FromFEN(*fenFlag)
		if err != nil {
			log.Fatal(err)
		}
		c.SetGame(st)
	}
	if *pgnFlag != "" {
		if err := c.Import(*pgnFlag); err != nil {
			log.Fatal(err)
		}
	}
	if *loadFlag != "" {
		if err := c.Load(*loadFlag); err != nil {
			log.Fatal(err)
		}
	}

	if err := c.Run(); err != nil {
		log.Fatal(err)
	}
}
