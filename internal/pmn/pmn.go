// Package pmn implements the compact two-character move notation: every
// half-move is one source symbol followed by either a destination symbol
// or a promotion glyph.
package pmn

import (
	"strings"

	"github.com/lgbarn/piot-go/internal/chess"
	"github.com/lgbarn/piot-go/internal/errors"
)

// alphabet names the 64 squares in rank-major order, a1 through h8.
// Lowercase, uppercase, digits, then '!' for g8 and '?' for h8.
const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!?"

// promotion glyphs, by kind and lateral direction of the pawn.
type glyph struct {
	kind chess.Kind
	// dc is the file shift: -1 left capture, 0 straight push, +1 right capture.
	dc int
}

var promotionGlyphs = map[byte]glyph{
	'(': {chess.Knight, -1},
	'^': {chess.Knight, 0},
	')': {chess.Knight, 1},
	'[': {chess.Rook, -1},
	'_': {chess.Rook, 0},
	']': {chess.Rook, 1},
	'@': {chess.Bishop, -1},
	'#': {chess.Bishop, 0},
	'$': {chess.Bishop, 1},
	'{': {chess.Queen, -1},
	'~': {chess.Queen, 0},
	'}': {chess.Queen, 1},
}

// glyphFor is the reverse of promotionGlyphs.
func glyphFor(kind chess.Kind, dc int) (byte, bool) {
	for c, g := range promotionGlyphs {
		if g.kind == kind && g.dc == dc {
			return c, true
		}
	}
	return 0, false
}

// SquareSymbol returns the alphabet symbol for a square.
func SquareSymbol(sq chess.Square) (byte, bool) {
	if !sq.Valid() {
		return 0, false
	}
	idx := chess.RankIndex(sq.Rank)*chess.BoardSize + chess.ColIndex(sq.Col)
	return alphabet[idx], true
}

// SymbolSquare returns the square named by an alphabet symbol.
func SymbolSquare(c byte) (chess.Square, bool) {
	idx := strings.IndexByte(alphabet, c)
	if idx < 0 {
		return chess.Square{}, false
	}
	return chess.SquareAt(idx%chess.BoardSize, idx/chess.BoardSize), true
}

// Decode translates a two-character pair into a from square, a to square,
// and a promotion kind. The promotion kind is NoKind unless the second
// character is a promotion glyph; a plain-square pair that happens to be
// a promotion is left for the applier to default to a queen.
func Decode(pair string) (from, to chess.Square, promotion chess.Kind, err error) {
	if len(pair) != 2 {
		return from, to, chess.NoKind, &errors.MoveError{Err: errors.ErrInvalidSquare, Text: pair}
	}

	from, ok := SymbolSquare(pair[0])
	if !ok {
		return from, to, chess.NoKind, &errors.MoveError{Err: errors.ErrInvalidSquare, Text: pair}
	}

	if g, isGlyph := promotionGlyphs[pair[1]]; isGlyph {
		to, err = promotionTarget(from, g.dc)
		if err != nil {
			return from, to, chess.NoKind, err
		}
		return from, to, g.kind, nil
	}

	to, ok = SymbolSquare(pair[1])
	if !ok {
		return from, to, chess.NoKind, &errors.MoveError{Err: errors.ErrInvalidSquare, Text: pair}
	}
	return from, to, chess.NoKind, nil
}

// promotionTarget derives the destination of a promotion glyph from its
// source square: rank 1 for a pawn on rank 2, rank 8 otherwise, with the
// file shifted by the glyph's direction.
func promotionTarget(from chess.Square, dc int) (chess.Square, error) {
	if from.Rank != '2' && from.Rank != '7' {
		return chess.Square{}, &errors.MoveError{Err: errors.ErrInvalidPromote, From: from.String()}
	}
	toRank := chess.Rank('8')
	if from.Rank == '2' {
		toRank = '1'
	}
	to := chess.SquareAt(chess.ColIndex(from.Col)+dc, chess.RankIndex(toRank))
	if !to.Valid() {
		return chess.Square{}, &errors.MoveError{Err: errors.ErrInvalidPromote, From: from.String()}
	}
	return to, nil
}

// Encode translates a move into its two-character pair. Promotions emit
// the glyph matching the promotion kind and the pawn's lateral motion;
// all other moves emit two square symbols.
func Encode(from, to chess.Square, promotion chess.Kind) (string, error) {
	fc, ok := SquareSymbol(from)
	if !ok {
		return "", &errors.MoveError{Err: errors.ErrInvalidSquare, From: from.String()}
	}

	if promotion != chess.NoKind {
		dc := chess.ColIndex(to.Col) - chess.ColIndex(from.Col)
		g, ok := glyphFor(promotion, dc)
		if !ok {
			return "", &errors.MoveError{
				Err:   errors.ErrInvalidPromote,
				Piece: promotion.String(),
				From:  from.String(),
				To:    to.String(),
			}
		}
		return string([]byte{fc, g}), nil
	}

	tc, ok := SquareSymbol(to)
	if !ok {
		return "", &errors.MoveError{Err: errors.ErrInvalidSquare, To: to.String()}
	}
	return string([]byte{fc, tc}), nil
}
