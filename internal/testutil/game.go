package testutil

import (
	"strings"
	"testing"

	"github.com/lgbarn/piot-go/internal/engine"
)

// MustGameFromFEN builds a game from a FEN string, aborting the test on
// a parse failure.
func MustGameFromFEN(t *testing.T, fen string) *engine.Game {
	t.Helper()
	g, err := engine.NewGameFromFEN(fen)
	if err != nil {
		t.Fatalf("failed to load FEN %q: %v", fen, err)
	}
	return g
}

// MustPlay applies a space-separated sequence of SAN moves, aborting the
// test on the first illegal move.
func MustPlay(t *testing.T, g *engine.Game, moves string) {
	t.Helper()
	for _, san := range strings.Fields(moves) {
		if err := g.MoveSAN(san); err != nil {
			t.Fatalf("move %q failed: %v", san, err)
		}
	}
}
