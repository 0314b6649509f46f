// Package san parses Standard Algebraic Notation move text into
// structured moves. Parsing is purely lexical; resolving the source
// square against a position is the engine's job.
package san

import (
	"github.com/lgbarn/piot-go/internal/chess"
	"github.com/lgbarn/piot-go/internal/errors"
)

// isCol returns true if c is a valid column (file) character.
func isCol(c byte) bool {
	return c >= byte(chess.FirstCol) && c <= byte(chess.LastCol)
}

// isRank returns true if c is a valid rank character.
func isRank(c byte) bool {
	return c >= byte(chess.FirstRank) && c <= byte(chess.LastRank)
}

// isPieceLetter returns the kind for an uppercase SAN piece letter,
// NoKind otherwise.
func isPieceLetter(c byte) chess.Kind {
	switch c {
	case 'K':
		return chess.King
	case 'Q':
		return chess.Queen
	case 'R':
		return chess.Rook
	case 'B':
		return chess.Bishop
	case 'N':
		return chess.Knight
	}
	return chess.NoKind
}

// isPromotionLetter returns the kind for a promotion letter, NoKind otherwise.
func isPromotionLetter(c byte) chess.Kind {
	switch c {
	case 'Q':
		return chess.Queen
	case 'R':
		return chess.Rook
	case 'B':
		return chess.Bishop
	case 'N':
		return chess.Knight
	}
	return chess.NoKind
}

// isCastlingChar returns true if c is a castling character.
func isCastlingChar(c byte) bool {
	return c == 'O' || c == '0' || c == 'o'
}

// isCheck returns true if c is a check indicator.
func isCheck(c byte) bool {
	return c == '+' || c == '#'
}

// Parse decodes a SAN token into a structured move. Trailing check
// indicators are tolerated and ignored; they are regenerated by the
// engine's annotated log. Unrecognisable text fails with ErrInvalidSAN.
func Parse(text string) (*chess.Move, error) {
	move := chess.NewMove()
	move.Text = text

	pos := 0
	ok := true

	currentChar := func() byte {
		if pos >= len(text) {
			return 0
		}
		return text[pos]
	}

	advance := func() {
		if pos < len(text) {
			pos++
		}
	}

	peek := func(n int) byte {
		if pos+n >= len(text) {
			return 0
		}
		return text[pos+n]
	}

	switch {
	case len(text) >= 2 && text[1] == '@':
		// Piece placement: Q@d4, P@e5.
		kind := isPieceLetter(text[0])
		if kind == chess.NoKind && text[0] == 'P' {
			kind = chess.Pawn
		}
		if kind == chess.NoKind || kind == chess.King {
			ok = false
			break
		}
		move.Class = chess.PiecePlacement
		move.Piece = kind
		advance()
		advance()
		if isCol(currentChar()) && isRank(peek(1)) {
			move.To = chess.Sq(chess.Col(currentChar()), chess.Rank(peek(1)))
			advance()
			advance()
		} else {
			ok = false
		}

	case isCastlingChar(currentChar()):
		advance()
		if currentChar() == '-' {
			advance()
		}
		if !isCastlingChar(currentChar()) {
			ok = false
			break
		}
		advance()
		if currentChar() == '-' {
			advance()
		}
		if isCastlingChar(currentChar()) {
			move.Class = chess.QueensideCastle
			advance()
		} else {
			move.Class = chess.KingsideCastle
		}
		move.Piece = chess.King

	case currentChar() == 'K':
		// King move: Ke2, Kxe2.
		move.Class = chess.PieceMove
		move.Piece = chess.King
		advance()
		if currentChar() == 'x' {
			move.Capture = true
			advance()
		}
		if isCol(currentChar()) && isRank(peek(1)) {
			move.To = chess.Sq(chess.Col(currentChar()), chess.Rank(peek(1)))
			advance()
			advance()
		} else {
			ok = false
		}

	case isPieceLetter(currentChar()) != chess.NoKind:
		move.Class = chess.PieceMove
		move.Piece = isPieceLetter(currentChar())
		advance()
		ok = parsePieceTail(move, text, &pos)

	case isCol(currentChar()) || currentChar() == 'P':
		// Pawn move, with the P prefix tolerated but not required.
		if currentChar() == 'P' {
			advance()
		}
		move.Class = chess.PawnMove
		move.Piece = chess.Pawn
		ok = parsePawnTail(move, text, &pos)

	default:
		ok = false
	}

	if ok {
		for isCheck(byte(safeChar(text, pos))) {
			pos++
		}
		if pos != len(text) {
			ok = false
		}
	}

	if !ok {
		return nil, &errors.MoveError{Err: errors.ErrInvalidSAN, Text: text}
	}
	return move, nil
}

// safeChar returns the byte at pos or 0 past the end.
func safeChar(text string, pos int) byte {
	if pos >= len(text) {
		return 0
	}
	return text[pos]
}

// parsePawnTail parses the remainder of a pawn move: an optional
// file-or-square disambiguation, an optional capture mark, the
// destination, and an optional promotion.
func parsePawnTail(move *chess.Move, text string, pos *int) bool {
	cur := func() byte { return safeChar(text, *pos) }
	next := func() byte { return safeChar(text, *pos+1) }
	advance := func() { *pos++ }

	if !isCol(cur()) {
		return false
	}
	col := chess.Col(cur())
	advance()

	var rank chess.Rank
	if isRank(cur()) {
		rank = chess.Rank(cur())
		advance()
	}

	switch {
	case cur() == 'x':
		// The leading file (and rank) was a disambiguation: exd5, e4xd5.
		move.Capture = true
		move.FromCol = col
		move.FromRank = rank
		advance()
		if !isCol(cur()) || !isRank(next()) {
			return false
		}
		move.To = chess.Sq(chess.Col(cur()), chess.Rank(next()))
		advance()
		advance()

	case isCol(cur()) && isRank(next()):
		// Fully spelled source: e2e4.
		if rank == 0 {
			return false
		}
		move.FromCol = col
		move.FromRank = rank
		move.To = chess.Sq(chess.Col(cur()), chess.Rank(next()))
		advance()
		advance()

	default:
		// The leading square was the destination: e4.
		if rank == 0 {
			return false
		}
		move.To = chess.Sq(col, rank)
	}

	// Promotion suffix, with the = tolerated but not required.
	if cur() == '=' {
		advance()
		kind := isPromotionLetter(cur())
		if kind == chess.NoKind {
			return false
		}
		move.Class = chess.PawnMoveWithPromotion
		move.Promotion = kind
		advance()
	} else if kind := isPromotionLetter(cur()); kind != chess.NoKind {
		move.Class = chess.PawnMoveWithPromotion
		move.Promotion = kind
		advance()
	}

	return true
}

// parsePieceTail parses the remainder of a piece move: an optional file,
// rank, or full-square disambiguation, an optional capture mark, and the
// destination square.
func parsePieceTail(move *chess.Move, text string, pos *int) bool {
	cur := func() byte { return safeChar(text, *pos) }
	next := func() byte { return safeChar(text, *pos+1) }
	advance := func() { *pos++ }

	if isRank(cur()) {
		// Disambiguating rank: R1e1.
		move.FromRank = chess.Rank(cur())
		advance()
	} else if isCol(cur()) {
		col := chess.Col(cur())
		if isRank(next()) {
			third := safeChar(text, *pos+2)
			if third == 'x' || isCol(third) {
				// Full-square disambiguation: Re1d1, Re1xd1.
				move.FromCol = col
				move.FromRank = chess.Rank(next())
				advance()
				advance()
			}
			// Otherwise the square is the destination; fall through.
		} else {
			// Disambiguating file: Rae1, Raxe1.
			move.FromCol = col
			advance()
		}
	}

	if cur() == 'x' {
		move.Capture = true
		advance()
	}

	if !isCol(cur()) || !isRank(next()) {
		return false
	}
	move.To = chess.Sq(chess.Col(cur()), chess.Rank(next()))
	advance()
	advance()
	return true
}
