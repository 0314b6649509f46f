package engine

import (
	"strconv"
	"strings"
)

// MovePair is one full move of the log: White's and Black's SAN. White
// is ".." when the game started from a black-to-move position.
type MovePair struct {
	Number uint
	White  string
	Black  string
}

// Moves returns the raw SAN log grouped by full-move number.
func (g *Game) Moves() []MovePair {
	return g.pairs(g.rawLog)
}

// AnnotatedMoves returns the move log with check and mate suffixes.
func (g *Game) AnnotatedMoves() []MovePair {
	return g.pairs(g.annotatedLog)
}

// pairs folds a per-ply log into full-move pairs.
func (g *Game) pairs(log []string) []MovePair {
	var out []MovePair
	num := g.startMoveNumber
	i := 0
	if g.blackStarted && len(log) > 0 {
		out = append(out, MovePair{Number: num, White: "..", Black: log[0]})
		num++
		i = 1
	}
	for ; i < len(log); i += 2 {
		pair := MovePair{Number: num, White: log[i]}
		if i+1 < len(log) {
			pair.Black = log[i+1]
		}
		out = append(out, pair)
		num++
	}
	return out
}

// Movetext returns the space-joined movetext of the annotated log,
// "1.e4 e5 2.Nf3 ...", with ".." standing in for an absent White move.
func (g *Game) Movetext() string {
	var parts []string
	for _, pair := range g.AnnotatedMoves() {
		entry := strconv.FormatUint(uint64(pair.Number), 10) + "." + pair.White
		if pair.Black != "" {
			entry += " " + pair.Black
		}
		parts = append(parts, entry)
	}
	return strings.Join(parts, " ")
}

// PlyCount returns the number of half-moves recorded in the log.
func (g *Game) PlyCount() int {
	return len(g.rawLog)
}
