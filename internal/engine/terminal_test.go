package engine

import (
	"testing"

	"github.com/lgbarn/piot-go/internal/chess"
)

func TestBackRankMate(t *testing.T) {
	g := mustGame(t, "3k2R1/8/3K4/8/8/8/8/8 b - -")

	if !g.InCheckmate(chess.Black) {
		t.Error("InCheckmate(Black) = false, want true")
	}
	if got := g.GameOver(); got != WhiteWins {
		t.Errorf("GameOver() = %v, want %v", got, WhiteWins)
	}
}

func TestMatingAttackSequence(t *testing.T) {
	g := mustGame(t, "rn3b1N/pp2k2p/4p2q/1NQ5/3P4/8/PPP3PP/5RK1 b - - 1 1")
	mustPlay(t, g, "Kd8", "Qc7+", "Ke8", "Qc8+", "Ke7", "Rf7#")

	if got := g.GameOver(); got != WhiteWins {
		t.Errorf("GameOver() = %v, want %v", got, WhiteWins)
	}
	pairs := g.AnnotatedMoves()
	last := pairs[len(pairs)-1]
	if last.White != "Rf7#" {
		t.Errorf("last annotated move = %q, want %q", last.White, "Rf7#")
	}
}

func TestStalemateDoesNotPerturbState(t *testing.T) {
	g := mustGame(t, "7k/5Q2/6K1/8/8/8/8/8 b - -")
	before := g.FEN()
	movetext := g.Movetext()

	if !g.InStalemate() {
		t.Error("InStalemate() = false, want true")
	}
	if !g.InForcedDraw() {
		t.Error("InForcedDraw() = false, want true")
	}
	if got := g.GameOver(); got != Draw {
		t.Errorf("GameOver() = %v, want %v", got, Draw)
	}

	if got := g.FEN(); got != before {
		t.Errorf("FEN changed by stalemate query: %q", got)
	}
	if got := g.Movetext(); got != movetext {
		t.Errorf("move log changed by stalemate query: %q", got)
	}
}

func TestBasicDrawBishops(t *testing.T) {
	same := mustGame(t, "7B/8/8/8/8/6k1/1b6/5K2 w - -")
	if !same.InBasicDraw() {
		t.Error("same-coloured bishops: InBasicDraw() = false, want true")
	}

	different := mustGame(t, "6B1/8/8/8/8/6k1/1b6/5K2 w - -")
	if different.InBasicDraw() {
		t.Error("different-coloured bishops: InBasicDraw() = true, want false")
	}
}

func TestBasicDrawCases(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want bool
	}{
		{"bare kings", "8/8/8/8/8/8/8/4K2k w - -", true},
		{"knight vs bare king", "8/8/8/8/8/8/8/3NK2k w - -", true},
		{"two knights vs bare king", "8/8/8/8/8/8/8/2NNK2k w - -", true},
		{"knight vs knight", "7n/8/8/8/8/8/8/3NK2k w - -", true},
		{"rook vs bare king", "8/8/8/8/8/8/8/3RK2k w - -", false},
		{"queen vs bare king", "8/8/8/8/8/8/8/3QK2k w - -", false},
		{"pawn vs bare king", "8/8/8/8/8/8/4P3/4K2k w - -", false},
		{"bishop and knight", "8/8/8/8/8/8/8/2BNK2k w - -", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGame(t, tt.fen)
			if got := g.InBasicDraw(); got != tt.want {
				t.Errorf("InBasicDraw() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRepetitionDraws(t *testing.T) {
	g := NewGame()
	cycle := []string{"Nc3", "Nc6", "Nb1", "Nb8"}

	// Two full cycles bring the starting position to its third
	// occurrence: claimable, not forced.
	for i := 0; i < 2; i++ {
		mustPlay(t, g, cycle...)
	}
	if !g.InThreefoldRepetition() {
		t.Error("InThreefoldRepetition() = false after two cycles, want true")
	}
	if !g.InRepetitionDraw() {
		t.Error("InRepetitionDraw() = false after two cycles, want true")
	}
	if g.InFivefoldRepetition() {
		t.Error("InFivefoldRepetition() = true after two cycles, want false")
	}
	if g.InForcedDraw() {
		t.Error("InForcedDraw() = true on a claimable threefold, want false")
	}
	if got := g.GameOver(); got != NoResult {
		t.Errorf("GameOver() = %v on threefold, want %v", got, NoResult)
	}

	// Two more cycles reach the fifth occurrence: the game ends.
	for i := 0; i < 2; i++ {
		mustPlay(t, g, cycle...)
	}
	if !g.InFivefoldRepetition() {
		t.Error("InFivefoldRepetition() = false after four cycles, want true")
	}
	if !g.InRepetitionDraw() {
		t.Error("InRepetitionDraw() = false after four cycles, want true")
	}
	if !g.InForcedDraw() {
		t.Error("InForcedDraw() = false on fivefold, want true")
	}
	if got := g.GameOver(); got != Draw {
		t.Errorf("GameOver() = %v on fivefold, want %v", got, Draw)
	}
}

func TestFiftyMoveDraw(t *testing.T) {
	g := mustGame(t, "4k3/8/8/8/8/8/8/R3K3 w - - 99 80")
	if g.InFiftyMoveDraw() {
		t.Error("InFiftyMoveDraw() = true at clock 99, want false")
	}

	mustPlay(t, g, "Ra2")
	if g.HalfmoveClock() != 100 {
		t.Fatalf("clock = %d, want 100", g.HalfmoveClock())
	}
	if !g.InFiftyMoveDraw() {
		t.Error("InFiftyMoveDraw() = false at clock 100, want true")
	}
	if g.InForcedDraw() {
		t.Error("InForcedDraw() = true on the claimable fifty-move rule, want false")
	}
}

func TestHasMatingMaterial(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		colour chess.Colour
		want   bool
	}{
		{"bare king", "8/8/8/8/8/8/8/4K2k w - -", chess.White, false},
		{"single pawn", "8/8/8/8/8/8/4P3/4K2k w - -", chess.White, true},
		{"single rook", "8/8/8/8/8/8/8/3RK2k w - -", chess.White, true},
		{"single queen", "8/8/8/8/8/8/8/3QK2k w - -", chess.White, true},
		{"one bishop", "8/8/8/8/8/8/8/3BK2k w - -", chess.White, false},
		{"two bishops", "8/8/8/8/8/8/8/2BBK2k w - -", chess.White, true},
		{"two knights", "8/8/8/8/8/8/8/2NNK2k w - -", chess.White, false},
		{"three knights", "8/8/8/8/8/8/8/1NNNK2k w - -", chess.White, true},
		{"bishop and knight", "8/8/8/8/8/8/8/2BNK2k w - -", chess.White, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGame(t, tt.fen)
			if got := g.HasMatingMaterial(tt.colour); got != tt.want {
				t.Errorf("HasMatingMaterial(%v) = %v, want %v", tt.colour, got, tt.want)
			}
		})
	}
}

func TestCheckmateAlgebra(t *testing.T) {
	// Checkmate implies check; stalemate implies no check.
	mate := mustGame(t, "3k2R1/8/3K4/8/8/8/8/8 b - -")
	if !mate.InCheck(chess.Black) {
		t.Error("checkmated side not reported in check")
	}
	if mate.InStalemate() {
		t.Error("checkmate misreported as stalemate")
	}

	stale := mustGame(t, "7k/5Q2/6K1/8/8/8/8/8 b - -")
	if stale.InCheck(chess.Black) {
		t.Error("stalemated side reported in check")
	}
	if stale.InCheckmate(chess.Black) {
		t.Error("stalemate misreported as checkmate")
	}
}

func TestInterposableCheckIsNotMate(t *testing.T) {
	// The rook check on the back rank can be blocked by the black rook.
	g := mustGame(t, "3k2R1/8/3K4/8/8/8/8/5r2 b - -")
	if g.InCheckmate(chess.Black) {
		t.Error("InCheckmate = true, want false (Rf8 blocks)")
	}
}

func TestDoubleCheckIgnoresInterpositions(t *testing.T) {
	// Rook on a1 and bishop on f3 both check the a8 king. The c7 rook
	// could block either check alone, but not both, so it is mate.
	g := mustGame(t, "k7/2rN4/8/8/8/5B2/8/R5K1 b - - 0 1")

	if got := len(g.checkers(chess.Black)); got != 2 {
		t.Fatalf("checker count = %d, want 2", got)
	}
	if !g.InCheckmate(chess.Black) {
		t.Error("InCheckmate = false in double check with no king escape")
	}
	if got := g.GameOver(); got != WhiteWins {
		t.Errorf("GameOver() = %v, want %v", got, WhiteWins)
	}
}
