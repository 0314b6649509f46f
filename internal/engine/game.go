// Package engine implements the chess rules state machine: move
// validation and application, FEN handling, terminal detection, and
// transactional snapshots.
package engine

import (
	"github.com/lgbarn/piot-go/internal/chess"
)

// Castling side indices into the rights and rook-home tables.
const (
	Kingside  = 0
	Queenside = 1
)

// Game is a complete chess position together with the auxiliary state the
// rules need: castling rights, the en passant target, clocks, the move
// log, and the repetition ledger. A Game is owned by a single caller;
// concurrent use of one instance is not supported.
type Game struct {
	board  *chess.Board
	toMove chess.Colour

	// castling[colour][side] is the availability bit.
	castling [2][2]bool

	// En passant target square; hasEP guards validity.
	epTarget chess.Square
	hasEP    bool

	// Plies since the last capture or pawn move.
	halfmoveClock uint
	moveNumber    uint

	// Move log, one entry per ply. rawLog holds the SAN as rendered at
	// apply time; annotatedLog additionally carries the +/# suffix.
	rawLog       []string
	annotatedLog []string

	// blackStarted records that the first logged ply is Black's, so the
	// movetext can stand in ".." for the absent White move.
	// startMoveNumber is the full-move number the log begins at.
	blackStarted    bool
	startMoveNumber uint

	// repetition counts occurrences of canonical position fingerprints.
	repetition map[string]int

	// Chess960 support: the flag plus the three home files detected on
	// load. Standard games use e, and h/a.
	chess960    bool
	kingHomeCol chess.Col
	rookHomeCol [2]chess.Col

	snapshots []snapshot
}

// NewGame creates a game in the standard starting position.
func NewGame() *Game {
	g := newBlank()
	g.board.SetupInitialPosition()
	g.castling = [2][2]bool{{true, true}, {true, true}}
	g.seedLedger()
	return g
}

// NewBlankGame creates a game with an empty board and no castling
// rights. Pieces are added with Place; the half-move clock stays 0
// unless a later FEN load sets it.
func NewBlankGame() *Game {
	g := newBlank()
	g.seedLedger()
	return g
}

// newBlank builds the zero-state game all constructors share.
func newBlank() *Game {
	return &Game{
		board:           chess.NewBoard(),
		toMove:          chess.White,
		moveNumber:      1,
		startMoveNumber: 1,
		repetition:      make(map[string]int),
		kingHomeCol:     'e',
		rookHomeCol:     [2]chess.Col{'h', 'a'},
	}
}

// NewGameFromFEN creates a game from a FEN string.
func NewGameFromFEN(fen string) (*Game, error) {
	g := newBlank()
	if err := g.LoadFEN(fen); err != nil {
		return nil, err
	}
	return g, nil
}

// NewChess960GameFromFEN creates a Chess960 game from a FEN string,
// detecting the king and rook home files from the back rank.
func NewChess960GameFromFEN(fen string) (*Game, error) {
	g := newBlank()
	g.chess960 = true
	if err := g.LoadFEN(fen); err != nil {
		return nil, err
	}
	return g, nil
}

// Board exposes the underlying board, for hosts seeding custom positions.
func (g *Game) Board() *chess.Board {
	return g.board
}

// ToMove returns the side to move.
func (g *Game) ToMove() chess.Colour {
	return g.toMove
}

// HalfmoveClock returns the plies since the last capture or pawn move.
func (g *Game) HalfmoveClock() uint {
	return g.halfmoveClock
}

// MoveNumber returns the full-move number.
func (g *Game) MoveNumber() uint {
	return g.moveNumber
}

// Chess960 reports whether Chess960 castling rules are enabled.
func (g *Game) Chess960() bool {
	return g.chess960
}

// CanCastle reports the castling availability bit for a colour and side.
func (g *Game) CanCastle(colour chess.Colour, side int) bool {
	return g.castling[colour][side]
}

// EnPassantTarget returns the en passant target square, if one is set.
func (g *Game) EnPassantTarget() (chess.Square, bool) {
	return g.epTarget, g.hasEP
}

// Place puts a piece on the board, for seeding custom positions on a
// blank game. It delegates to the board's placement rules.
func (g *Game) Place(colour chess.Colour, kind chess.Kind, sq chess.Square) error {
	return g.board.Place(colour, kind, sq)
}

// homeRank returns the back rank for a colour.
func homeRank(colour chess.Colour) chess.Rank {
	if colour == chess.White {
		return '1'
	}
	return '8'
}

// seedLedger records the starting position in the repetition ledger.
func (g *Game) seedLedger() {
	g.repetition[g.Fingerprint()]++
}
