package engine

import (
	"github.com/lgbarn/piot-go/internal/chess"
)

// snapshot captures every piece of mutable game state except the
// snapshot stack itself.
type snapshot struct {
	board         *chess.Board
	toMove        chess.Colour
	castling      [2][2]bool
	epTarget      chess.Square
	hasEP         bool
	halfmoveClock uint
	moveNumber    uint
	rawLog          []string
	annotatedLog    []string
	blackStarted    bool
	startMoveNumber uint
	repetition      map[string]int
	chess960      bool
	kingHomeCol   chess.Col
	rookHomeCol   [2]chess.Col
}

// Begin pushes a copy of the current state onto the snapshot stack.
// Nested transactions are permitted; stack depth is bounded only by
// caller discipline.
func (g *Game) Begin() {
	s := snapshot{
		board:         g.board.Copy(),
		toMove:        g.toMove,
		castling:      g.castling,
		epTarget:      g.epTarget,
		hasEP:         g.hasEP,
		halfmoveClock: g.halfmoveClock,
		moveNumber:    g.moveNumber,
		rawLog:          append([]string(nil), g.rawLog...),
		annotatedLog:    append([]string(nil), g.annotatedLog...),
		blackStarted:    g.blackStarted,
		startMoveNumber: g.startMoveNumber,
		repetition:      make(map[string]int, len(g.repetition)),
		chess960:      g.chess960,
		kingHomeCol:   g.kingHomeCol,
		rookHomeCol:   g.rookHomeCol,
	}
	for k, v := range g.repetition {
		s.repetition[k] = v
	}
	g.snapshots = append(g.snapshots, s)
}

// Rollback pops the newest snapshot and restores the state observed at
// the matching Begin, move log and repetition ledger included.
func (g *Game) Rollback() {
	n := len(g.snapshots)
	if n == 0 {
		return
	}
	s := g.snapshots[n-1]
	g.snapshots = g.snapshots[:n-1]

	g.board = s.board
	g.toMove = s.toMove
	g.castling = s.castling
	g.epTarget = s.epTarget
	g.hasEP = s.hasEP
	g.halfmoveClock = s.halfmoveClock
	g.moveNumber = s.moveNumber
	g.rawLog = s.rawLog
	g.annotatedLog = s.annotatedLog
	g.blackStarted = s.blackStarted
	g.startMoveNumber = s.startMoveNumber
	g.repetition = s.repetition
	g.chess960 = s.chess960
	g.kingHomeCol = s.kingHomeCol
	g.rookHomeCol = s.rookHomeCol
}

// Commit pops the newest snapshot and keeps the current state.
func (g *Game) Commit() {
	n := len(g.snapshots)
	if n == 0 {
		return
	}
	g.snapshots = g.snapshots[:n-1]
}
