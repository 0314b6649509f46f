package engine

import (
	"testing"

	"github.com/lgbarn/piot-go/internal/chess"
	"github.com/lgbarn/piot-go/internal/errors"
)

func TestFENRoundTrip(t *testing.T) {
	tests := []string{
		InitialFEN,
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2",
		"rn3b1N/pp2k2p/4p2q/1NQ5/3P4/8/PPP3PP/5RK1 b - - 1 1",
		"8/8/8/8/8/8/8/4K2k w - - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 12 34",
		"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 3",
	}
	for _, fen := range tests {
		t.Run(fen, func(t *testing.T) {
			g, err := NewGameFromFEN(fen)
			if err != nil {
				t.Fatalf("NewGameFromFEN(%q) failed: %v", fen, err)
			}
			if got := g.FEN(); got != fen {
				t.Errorf("FEN() = %q, want %q", got, fen)
			}
		})
	}
}

func TestFENDefaultsMissingFields(t *testing.T) {
	tests := []struct {
		fen  string
		want string
	}{
		{
			fen:  "3k2R1/8/3K4/8/8/8/8/8 b -",
			want: "3k2R1/8/3K4/8/8/8/8/8 b - - 0 1",
		},
		{
			fen:  "3k2R1/8/3K4/8/8/8/8/8 b - -",
			want: "3k2R1/8/3K4/8/8/8/8/8 b - - 0 1",
		},
		{
			fen:  "3k2R1/8/3K4/8/8/8/8/8 b - - 7",
			want: "3k2R1/8/3K4/8/8/8/8/8 b - - 7 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.fen, func(t *testing.T) {
			g, err := NewGameFromFEN(tt.fen)
			if err != nil {
				t.Fatalf("NewGameFromFEN failed: %v", err)
			}
			if got := g.FEN(); got != tt.want {
				t.Errorf("FEN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFENErrors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want error
	}{
		{"too few fields", "8/8/8/8/8/8/8/8 w", errors.ErrFenCount},
		{"too many fields", InitialFEN + " extra", errors.ErrFenCount},
		{"empty subfield", "8/8/8/8/8/8/8/4K2k w  - - 0 1", errors.ErrEmptyFen},
		{"bad piece char", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNZ w KQkq - 0 1", errors.ErrFenInvalidPiece},
		{"digit nine", "rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", errors.ErrFenInvalidPiece},
		{"rank too long", "rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", errors.ErrFenTooMuch},
		{"rank too short", "rnbqkbnr/pppppppp/7/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", errors.ErrFenTooLittle},
		{"missing rank", "rnbqkbnr/pppppppp/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", errors.ErrFenTooLittle},
		{"bad side to move", "8/8/8/8/8/8/8/4K2k x - - 0 1", errors.ErrFenTomoveWrong},
		{"castle field too long", "r3k2r/8/8/8/8/8/8/R3K2R w KQkqK - 0 1", errors.ErrFenCastleTooLong},
		{"castle bad letter", "r3k2r/8/8/8/8/8/8/R3K2R w KX - 0 1", errors.ErrFenCastleWrong},
		{"bad en passant", "8/8/8/8/8/8/8/4K2k w - e4 0 1", errors.ErrFenInvalidEnPassant},
		{"bad half-move clock", "8/8/8/8/8/8/8/4K2k w - - x 1", errors.ErrFenInvalidPly},
		{"bad move number", "8/8/8/8/8/8/8/4K2k w - - 0 x", errors.ErrFenInvalidMoveNumber},
		{"zero move number", "8/8/8/8/8/8/8/4K2k w - - 0 0", errors.ErrFenInvalidMoveNumber},
		{"third king", "kkk5/8/8/8/8/8/8/4K3 w - - 0 1", errors.ErrFenTooMuch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGameFromFEN(tt.fen)
			if !errorIs(err, tt.want) {
				t.Errorf("NewGameFromFEN(%q) error = %v, want %v", tt.fen, err, tt.want)
			}
		})
	}
}

func TestFingerprints(t *testing.T) {
	g, err := NewGameFromFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	if err != nil {
		t.Fatalf("NewGameFromFEN failed: %v", err)
	}
	want := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3"
	if got := g.Fingerprint(); got != want {
		t.Errorf("Fingerprint() = %q, want %q", got, want)
	}
	wantNoEP := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq"
	if got := g.FingerprintNoEP(); got != wantNoEP {
		t.Errorf("FingerprintNoEP() = %q, want %q", got, wantNoEP)
	}
}

func TestFreshGameClockIsZero(t *testing.T) {
	if got := NewGame().HalfmoveClock(); got != 0 {
		t.Errorf("NewGame clock = %d, want 0", got)
	}
	if got := NewBlankGame().HalfmoveClock(); got != 0 {
		t.Errorf("NewBlankGame clock = %d, want 0", got)
	}

	g := NewBlankGame()
	if err := g.Place(chess.White, chess.King, chess.Sq('e', '1')); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if err := g.Place(chess.Black, chess.King, chess.Sq('e', '8')); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if got := g.HalfmoveClock(); got != 0 {
		t.Errorf("clock after placements = %d, want 0", got)
	}
}

func TestChess960HomeDetection(t *testing.T) {
	// A Shuffle960 back rank: rooks on c and h, king on d. The standard
	// h-file rook keeps its K/k letter; the c-file rook renders as its
	// file letter.
	fen := "2rk3r/pppppppp/8/8/8/8/PPPPPPPP/2RK3R w HChc - 0 1"
	g, err := NewChess960GameFromFEN(fen)
	if err != nil {
		t.Fatalf("NewChess960GameFromFEN failed: %v", err)
	}

	if !g.CanCastle(chess.White, Kingside) || !g.CanCastle(chess.White, Queenside) ||
		!g.CanCastle(chess.Black, Kingside) || !g.CanCastle(chess.Black, Queenside) {
		t.Error("expected all four castling rights to be set")
	}

	want := "2rk3r/pppppppp/8/8/8/8/PPPPPPPP/2RK3R w KCkc - 0 1"
	if got := g.FEN(); got != want {
		t.Errorf("Chess960 FEN = %q, want %q", got, want)
	}

	// The rendered form is a fixed point.
	g2, err := NewChess960GameFromFEN(want)
	if err != nil {
		t.Fatalf("reload of rendered FEN failed: %v", err)
	}
	if got := g2.FEN(); got != want {
		t.Errorf("Chess960 FEN round trip = %q, want %q", got, want)
	}
}

func TestChess960StandardHomesUseStandardLetters(t *testing.T) {
	g, err := NewChess960GameFromFEN(InitialFEN)
	if err != nil {
		t.Fatalf("NewChess960GameFromFEN failed: %v", err)
	}
	if got := g.FEN(); got != InitialFEN {
		t.Errorf("FEN() = %q, want %q", got, InitialFEN)
	}
}

func TestChess960AsymmetricSetupFailsLoudly(t *testing.T) {
	// Black rooks on c8 and h8, but white's claimed kingside rook is on
	// g1 instead of h1.
	fen := "2rk3r/pppppppp/8/8/8/8/PPPPPPPP/2RK2R1 w HChc - 0 1"
	_, err := NewChess960GameFromFEN(fen)
	if !errorIs(err, errors.ErrFenCastleWrong) {
		t.Errorf("asymmetric setup error = %v, want %v", err, errors.ErrFenCastleWrong)
	}
}
