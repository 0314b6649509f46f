// piot-replay replays a game through the rules engine and reports the
// final position, the annotated movetext, and the elapsed time.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lgbarn/piot-go/internal/engine"
)

const programVersion = "0.1.0"

var (
	startFEN = flag.String("fen", "", "starting position as FEN (default: standard start)")
	chess960 = flag.Bool("chess960", false, "enable Chess960 castling rules (requires -fen)")
	usePMN   = flag.Bool("pmn", false, "read moves as two-character pairs instead of SAN")
	repeat   = flag.Int("n", 1, "number of times to replay the game")
	version  = flag.Bool("version", false, "print version and exit")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: piot-replay [flags] [moves...]\n")
	fmt.Fprintf(os.Stderr, "Moves are read from the arguments, or from stdin when none are given.\n\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("piot-replay version %s\n", programVersion)
		os.Exit(0)
	}

	if *repeat < 1 {
		*repeat = 1
	}

	moves := flag.Args()
	if len(moves) == 0 {
		moves = readMoves(os.Stdin)
	}
	if len(moves) == 0 {
		fmt.Fprintln(os.Stderr, "piot-replay: no moves given")
		usage()
		os.Exit(2)
	}

	var game *engine.Game
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		g, err := newGame()
		if err != nil {
			fmt.Fprintf(os.Stderr, "piot-replay: %v\n", err)
			os.Exit(1)
		}
		if err := replay(g, moves); err != nil {
			fmt.Fprintf(os.Stderr, "piot-replay: %v\n", err)
			os.Exit(1)
		}
		game = g
	}
	elapsed := time.Since(start)

	fmt.Println(game.FEN())
	fmt.Println(game.Movetext())
	if result := game.GameOver(); result != engine.NoResult {
		fmt.Printf("result: %s\n", result)
	}
	fmt.Printf("replayed %d ply x%d in %v\n", game.PlyCount(), *repeat, elapsed)
}

// newGame builds the starting position from the flags.
func newGame() (*engine.Game, error) {
	if *startFEN == "" {
		return engine.NewGame(), nil
	}
	if *chess960 {
		return engine.NewChess960GameFromFEN(*startFEN)
	}
	return engine.NewGameFromFEN(*startFEN)
}

// replay feeds the move list through the engine.
func replay(g *engine.Game, moves []string) error {
	for _, m := range moves {
		var err error
		if *usePMN {
			err = g.MovePMN(m)
		} else {
			err = g.MoveSAN(m)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// readMoves tokenises whitespace-separated moves from a reader, skipping
// move numbers like "1." that PGN-style movetext carries.
func readMoves(f *os.File) []string {
	var out []string
	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		tok := scanner.Text()
		if i := strings.LastIndexByte(tok, '.'); i >= 0 {
			tok = tok[i+1:]
		}
		if tok == "" || tok == ".." {
			continue
		}
		out = append(out, tok)
	}
	return out
}
