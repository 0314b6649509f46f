package engine_test

import (
	"testing"

	"github.com/lgbarn/piot-go/internal/chess"
	"github.com/lgbarn/piot-go/internal/engine"
	"github.com/lgbarn/piot-go/internal/testutil"
)

func TestSicilianOpening(t *testing.T) {
	g := engine.NewGame()
	testutil.MustPlay(t, g, "e4 c5 Nf3")

	testutil.AssertEqual(t, g.FEN(),
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2",
		"position after 1.e4 c5 2.Nf3")
}

func TestForcedMateFromMidgameFEN(t *testing.T) {
	g := testutil.MustGameFromFEN(t, "rn3b1N/pp2k2p/4p2q/1NQ5/3P4/8/PPP3PP/5RK1 b - - 1 1")
	testutil.MustPlay(t, g, "Kd8 Qc7+ Ke8 Qc8+ Ke7 Rf7#")

	testutil.AssertEqual(t, g.GameOver(), engine.WhiteWins)
	testutil.AssertTrue(t, g.InCheckmate(chess.Black), "black is mated")
	testutil.AssertContains(t, g.Movetext(), "Rf7#")
}

func TestStalemateIsAForcedDraw(t *testing.T) {
	g := testutil.MustGameFromFEN(t, "7k/5Q2/6K1/8/8/8/8/8 b - -")

	testutil.AssertTrue(t, g.InStalemate(), "stalemate")
	testutil.AssertTrue(t, g.InForcedDraw(), "forced draw")
	testutil.AssertEqual(t, g.GameOver(), engine.Draw)
	testutil.AssertEqual(t, g.Movetext(), "", "log untouched by the queries")
}

func TestClaimableDrawsDoNotEndTheGame(t *testing.T) {
	g := testutil.MustGameFromFEN(t, "4k3/8/8/8/8/8/8/R3K3 w - - 99 80")
	testutil.MustPlay(t, g, "Ra2")

	testutil.AssertTrue(t, g.InFiftyMoveDraw(), "fifty-move rule reached")
	testutil.AssertFalse(t, g.InForcedDraw(), "claimable only")
	testutil.AssertEqual(t, g.GameOver(), engine.NoResult)
}

func TestErrorsAreHumanReadable(t *testing.T) {
	g := engine.NewGame()
	err := g.Move(chess.Sq('e', '7'), chess.Sq('e', '5'), chess.NoKind)
	testutil.AssertError(t, err)
	testutil.AssertContains(t, err.Error(), "Black", "full colour name in message")
	testutil.AssertContains(t, err.Error(), "Pawn", "full piece name in message")
}
