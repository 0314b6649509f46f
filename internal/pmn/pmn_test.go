package pmn

import (
	"errors"
	"testing"

	"github.com/lgbarn/piot-go/internal/chess"
	cerr "github.com/lgbarn/piot-go/internal/errors"
)

func sq(s string) chess.Square {
	return chess.Square{Col: chess.Col(s[0]), Rank: chess.Rank(s[1])}
}

func TestSquareSymbolAlphabet(t *testing.T) {
	// The interesting fixed points are the alphabet seams.
	tests := []struct {
		square string
		symbol byte
	}{
		{"a1", 'a'},
		{"h1", 'h'},
		{"a2", 'i'},
		{"c4", 'A'},
		{"e8", '8'},
		{"g8", '!'},
		{"h8", '?'},
	}

	for _, tt := range tests {
		got, ok := SquareSymbol(sq(tt.square))
		if !ok || got != tt.symbol {
			t.Errorf("SquareSymbol(%s) = %c, want %c", tt.square, got, tt.symbol)
		}
		back, ok := SymbolSquare(tt.symbol)
		if !ok || back != sq(tt.square) {
			t.Errorf("SymbolSquare(%c) = %v, want %s", tt.symbol, back, tt.square)
		}
	}
}

func TestRoundTripAllSquares(t *testing.T) {
	for c := 0; c < chess.BoardSize; c++ {
		for r := 0; r < chess.BoardSize; r++ {
			from := chess.SquareAt(c, r)
			sym, ok := SquareSymbol(from)
			if !ok {
				t.Fatalf("SquareSymbol(%s) failed", from)
			}
			back, ok := SymbolSquare(sym)
			if !ok || back != from {
				t.Errorf("round trip %s -> %c -> %v", from, sym, back)
			}
		}
	}
}

func TestDecodePlainMove(t *testing.T) {
	// e2 -> e4: e2 is index 12 ('m'), e4 is index 28 ('C').
	from, to, promo, err := Decode("mC")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if from != sq("e2") || to != sq("e4") || promo != chess.NoKind {
		t.Errorf("Decode(mC) = %v %v %v, want e2 e4 NoKind", from, to, promo)
	}
}

func TestDecodePromotionGlyphs(t *testing.T) {
	tests := []struct {
		name  string
		pair  string
		from  string
		to    string
		promo chess.Kind
	}{
		{"white straight queen", "W~", "a7", "a8", chess.Queen},
		{"white right knight from b7", "X)", "b7", "c8", chess.Knight},
		{"white left rook from b7", "X[", "b7", "a8", chess.Rook},
		{"white straight bishop", "Y#", "c7", "c8", chess.Bishop},
		{"black straight queen", "i~", "a2", "a1", chess.Queen},
		{"black left knight from b2", "j(", "b2", "a1", chess.Knight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, promo, err := Decode(tt.pair)
			if err != nil {
				t.Fatalf("Decode(%q) failed: %v", tt.pair, err)
			}
			if from != sq(tt.from) || to != sq(tt.to) || promo != tt.promo {
				t.Errorf("Decode(%q) = %v %v %v, want %s %s %v",
					tt.pair, from, to, promo, tt.from, tt.to, tt.promo)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		pair string
		want error
	}{
		{"too short", "m", cerr.ErrInvalidSquare},
		{"unknown first symbol", "*C", cerr.ErrInvalidSquare},
		{"unknown second symbol", "m*", cerr.ErrInvalidSquare},
		{"glyph off promotion rank", "C~", cerr.ErrInvalidPromote},
		{"left glyph off the a-file", "W{", cerr.ErrInvalidPromote},
		{"right glyph off the h-file", "3}", cerr.ErrInvalidPromote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := Decode(tt.pair)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode(%q) error = %v, want %v", tt.pair, err, tt.want)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		from  string
		to    string
		promo chess.Kind
	}{
		{"plain", "e2", "e4", chess.NoKind},
		{"a-file straight promotion", "a7", "a8", chess.Queen},
		{"h-file straight promotion", "h7", "h8", chess.Rook},
		{"capture promotion left", "b7", "a8", chess.Knight},
		{"black promotion", "d2", "d1", chess.Bishop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair, err := Encode(sq(tt.from), sq(tt.to), tt.promo)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			from, to, promo, err := Decode(pair)
			if err != nil {
				t.Fatalf("Decode(%q) failed: %v", pair, err)
			}
			if from != sq(tt.from) || to != sq(tt.to) || promo != tt.promo {
				t.Errorf("round trip %s-%s-%v via %q = %v %v %v",
					tt.from, tt.to, tt.promo, pair, from, to, promo)
			}
		})
	}
}

func TestEncodeStraightGlyphOnEdgeFiles(t *testing.T) {
	pair, err := Encode(sq("a7"), sq("a8"), chess.Queen)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if pair[1] != '~' {
		t.Errorf("a-file promotion glyph = %c, want ~", pair[1])
	}

	pair, err = Encode(sq("h7"), sq("h8"), chess.Queen)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if pair[1] != '~' {
		t.Errorf("h-file promotion glyph = %c, want ~", pair[1])
	}
}
