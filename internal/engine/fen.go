package engine

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/lgbarn/piot-go/internal/chess"
	"github.com/lgbarn/piot-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// kindFromFENChar converts a FEN placement character to a piece kind.
func kindFromFENChar(c byte) chess.Kind {
	return chess.KindFromLetter(byte(unicode.ToUpper(rune(c))))
}

// fenLetter returns the FEN letter for a piece, lowercase for Black.
// Promoted pawns render as their effective kind.
func fenLetter(p chess.Piece) byte {
	letter := p.Effective.Letter()
	if p.Colour == chess.Black {
		letter = byte(unicode.ToLower(rune(letter)))
	}
	return letter
}

// LoadFEN replaces the game state with the position described by fen.
// Three-, four-, and five-field strings are completed with "- 0 1",
// "0 1", and "1" respectively; any other field count fails.
func (g *Game) LoadFEN(fen string) error {
	fields := strings.Split(strings.TrimSpace(fen), " ")
	for _, f := range fields {
		if f == "" {
			return &errors.FENError{Err: errors.ErrEmptyFen, FEN: fen}
		}
	}
	switch len(fields) {
	case 3:
		fields = append(fields, "-", "0", "1")
	case 4:
		fields = append(fields, "0", "1")
	case 5:
		fields = append(fields, "1")
	case 6:
	default:
		return &errors.FENError{Err: errors.ErrFenCount, FEN: fen}
	}

	g.board = chess.NewBoard()
	g.castling = [2][2]bool{}
	g.hasEP = false
	g.rawLog = nil
	g.annotatedLog = nil
	g.blackStarted = false
	g.repetition = make(map[string]int)

	if err := g.parsePlacement(fen, fields[0]); err != nil {
		return err
	}

	switch fields[1] {
	case "w":
		g.toMove = chess.White
	case "b":
		g.toMove = chess.Black
		g.blackStarted = true
	default:
		return &errors.FENError{Err: errors.ErrFenTomoveWrong, FEN: fen, Value: fields[1]}
	}

	if err := g.parseCastling(fen, fields[2]); err != nil {
		return err
	}

	if fields[3] != "-" {
		sq, ok := chess.ParseSquare(fields[3])
		if !ok || (sq.Rank != '3' && sq.Rank != '6') {
			return &errors.FENError{Err: errors.ErrFenInvalidEnPassant, FEN: fen, Value: fields[3]}
		}
		g.epTarget = sq
		g.hasEP = true
	}

	clock, err := strconv.ParseUint(fields[4], 10, 32)
	if err != nil {
		return &errors.FENError{Err: errors.ErrFenInvalidPly, FEN: fen, Value: fields[4]}
	}
	g.halfmoveClock = uint(clock)

	moveNum, err := strconv.ParseUint(fields[5], 10, 32)
	if err != nil || moveNum == 0 {
		return &errors.FENError{Err: errors.ErrFenInvalidMoveNumber, FEN: fen, Value: fields[5]}
	}
	g.moveNumber = uint(moveNum)
	g.startMoveNumber = g.moveNumber

	g.seedLedger()
	return nil
}

// parsePlacement parses the piece placement field and, for Chess960
// games, detects the king and rook home files from the back ranks.
func (g *Game) parsePlacement(fen, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) > chess.BoardSize {
		return &errors.FENError{Err: errors.ErrFenTooMuch, FEN: fen, Value: placement}
	}
	if len(ranks) < chess.BoardSize {
		return &errors.FENError{Err: errors.ErrFenTooLittle, FEN: fen, Value: placement}
	}

	var blackRooks []chess.Col
	blackKing, whiteKing := chess.Col(0), chess.Col(0)

	for i, rankStr := range ranks {
		rank := chess.ToRank(chess.BoardSize - 1 - i)
		col := 0
		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}
			kind := kindFromFENChar(c)
			if kind == chess.NoKind {
				return &errors.FENError{Err: errors.ErrFenInvalidPiece, FEN: fen, Value: string(c)}
			}
			if col >= chess.BoardSize {
				return &errors.FENError{Err: errors.ErrFenTooMuch, FEN: fen, Value: rankStr}
			}

			colour := chess.White
			if unicode.IsLower(rune(c)) {
				colour = chess.Black
			}
			sq := chess.Sq(chess.ToCol(col), rank)
			if err := g.board.Place(colour, kind, sq); err != nil {
				if isDuplicate(err) {
					return &errors.FENError{Err: errors.ErrFenMultiPiece, FEN: fen, Value: sq.String()}
				}
				return &errors.FENError{Err: errors.ErrFenTooMuch, FEN: fen, Value: sq.String()}
			}

			if rank == '8' && colour == chess.Black {
				switch kind {
				case chess.Rook:
					blackRooks = append(blackRooks, sq.Col)
				case chess.King:
					blackKing = sq.Col
				}
			}
			if rank == '1' && colour == chess.White && kind == chess.King {
				whiteKing = sq.Col
			}
			col++
		}
		if col > chess.BoardSize {
			return &errors.FENError{Err: errors.ErrFenTooMuch, FEN: fen, Value: rankStr}
		}
		if col < chess.BoardSize {
			return &errors.FENError{Err: errors.ErrFenTooLittle, FEN: fen, Value: rankStr}
		}
	}

	if g.chess960 {
		return g.detectHomes(fen, blackRooks, blackKing, whiteKing)
	}
	return nil
}

// detectHomes fixes the Chess960 home files from the rank-8 walk: the
// first black rook found is the queenside rook, the second the kingside
// rook, and the black king sets the king file. A white king on rank 1
// on a different file fails loudly; white's rook files are checked
// against the claimed castling rights in parseCastling.
func (g *Game) detectHomes(fen string, blackRooks []chess.Col, blackKing, whiteKing chess.Col) error {
	if blackKing != 0 {
		g.kingHomeCol = blackKing
	}
	if len(blackRooks) >= 2 {
		g.rookHomeCol[Queenside] = blackRooks[0]
		g.rookHomeCol[Kingside] = blackRooks[1]
	} else if len(blackRooks) == 1 {
		if blackRooks[0] > g.kingHomeCol {
			g.rookHomeCol[Kingside] = blackRooks[0]
		} else {
			g.rookHomeCol[Queenside] = blackRooks[0]
		}
	}

	if whiteKing != 0 && blackKing != 0 && whiteKing != blackKing {
		return &errors.FENError{Err: errors.ErrFenCastleWrong, FEN: fen, Value: string(whiteKing)}
	}
	return nil
}

// isDuplicate reports whether a placement error was a duplicate square.
func isDuplicate(err error) bool {
	return errorIs(err, errors.ErrDuplicateSquare)
}

// parseCastling parses the castling availability field. Letters must be
// a subset of KQkq; with Chess960 enabled, the detected home files are
// also accepted in Shredder form.
func (g *Game) parseCastling(fen, field string) error {
	if field == "-" {
		return nil
	}
	if len(field) > 4 {
		return &errors.FENError{Err: errors.ErrFenCastleTooLong, FEN: fen, Value: field}
	}
	for i := 0; i < len(field); i++ {
		switch c := field[i]; c {
		case 'K':
			g.castling[chess.White][Kingside] = true
		case 'Q':
			g.castling[chess.White][Queenside] = true
		case 'k':
			g.castling[chess.Black][Kingside] = true
		case 'q':
			g.castling[chess.Black][Queenside] = true
		default:
			if !g.chess960 {
				return &errors.FENError{Err: errors.ErrFenCastleWrong, FEN: fen, Value: field}
			}
			if err := g.castling960Letter(c); err != nil {
				return &errors.FENError{Err: errors.ErrFenCastleWrong, FEN: fen, Value: field}
			}
		}
	}

	if g.chess960 {
		// A claimed right whose king or rook is not on the detected home
		// file means white and black disagree about the setup; fail
		// loudly rather than guess.
		for _, colour := range []chess.Colour{chess.White, chess.Black} {
			rank := homeRank(colour)
			for _, side := range []int{Kingside, Queenside} {
				if !g.castling[colour][side] {
					continue
				}
				if !g.pieceIs(chess.Sq(g.kingHomeCol, rank), colour, chess.King) ||
					!g.pieceIs(chess.Sq(g.rookHomeCol[side], rank), colour, chess.Rook) {
					return &errors.FENError{Err: errors.ErrFenCastleWrong, FEN: fen, Value: field}
				}
			}
		}
		return nil
	}

	g.normalizeRights()
	return nil
}

// castling960Letter applies one Shredder-style file letter.
func (g *Game) castling960Letter(c byte) error {
	colour := chess.White
	col := chess.Col(c)
	if c >= 'a' && c <= 'h' {
		colour = chess.Black
	} else if c >= 'A' && c <= 'H' {
		col = chess.Col(c - 'A' + 'a')
	} else {
		return errors.ErrFenCastleWrong
	}
	switch col {
	case g.rookHomeCol[Kingside]:
		g.castling[colour][Kingside] = true
	case g.rookHomeCol[Queenside]:
		g.castling[colour][Queenside] = true
	default:
		return errors.ErrFenCastleWrong
	}
	return nil
}

// normalizeRights drops castling bits whose king or rook is no longer on
// its home square, so a right always implies both pieces are home.
func (g *Game) normalizeRights() {
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		rank := homeRank(colour)
		kingOK := g.pieceIs(chess.Sq(g.kingHomeCol, rank), colour, chess.King)
		for _, side := range []int{Kingside, Queenside} {
			if !g.castling[colour][side] {
				continue
			}
			if !kingOK || !g.pieceIs(chess.Sq(g.rookHomeCol[side], rank), colour, chess.Rook) {
				g.castling[colour][side] = false
			}
		}
	}
}

// pieceIs reports whether sq holds a piece of the given colour acting as
// the given kind.
func (g *Game) pieceIs(sq chess.Square, colour chess.Colour, kind chess.Kind) bool {
	p, ok := g.board.PieceAt(sq)
	return ok && p.Colour == colour && p.Effective == kind
}

// FEN renders the six-field position string.
func (g *Game) FEN() string {
	var sb strings.Builder
	g.writePlacement(&sb)
	sb.WriteByte(' ')
	g.writeSideToMove(&sb)
	sb.WriteByte(' ')
	g.writeCastling(&sb)
	sb.WriteByte(' ')
	g.writeEnPassant(&sb)
	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatUint(uint64(g.halfmoveClock), 10))
	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatUint(uint64(g.moveNumber), 10))
	return sb.String()
}

// Fingerprint renders the canonical repetition key: the FEN without the
// half-move clock and full-move number.
func (g *Game) Fingerprint() string {
	var sb strings.Builder
	g.writePlacement(&sb)
	sb.WriteByte(' ')
	g.writeSideToMove(&sb)
	sb.WriteByte(' ')
	g.writeCastling(&sb)
	sb.WriteByte(' ')
	g.writeEnPassant(&sb)
	return sb.String()
}

// FingerprintNoEP renders the move-count-free fingerprint with the en
// passant field stripped as well.
func (g *Game) FingerprintNoEP() string {
	var sb strings.Builder
	g.writePlacement(&sb)
	sb.WriteByte(' ')
	g.writeSideToMove(&sb)
	sb.WriteByte(' ')
	g.writeCastling(&sb)
	return sb.String()
}

// writePlacement writes the piece placement field, ranks 8 down to 1.
func (g *Game) writePlacement(sb *strings.Builder) {
	for r := chess.BoardSize - 1; r >= 0; r-- {
		emptyCount := 0
		for c := 0; c < chess.BoardSize; c++ {
			p, occupied := g.board.PieceAt(chess.SquareAt(c, r))
			if !occupied {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(fenLetter(p))
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes w or b.
func (g *Game) writeSideToMove(sb *strings.Builder) {
	if g.toMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

// writeCastling writes the castling availability field. Chess960 homes
// that differ from the standard a/h files render as file letters.
func (g *Game) writeCastling(sb *strings.Builder) {
	letters := [2]byte{'K', 'Q'}
	if g.chess960 {
		if g.rookHomeCol[Kingside] != 'h' {
			letters[Kingside] = byte(unicode.ToUpper(rune(g.rookHomeCol[Kingside])))
		}
		if g.rookHomeCol[Queenside] != 'a' {
			letters[Queenside] = byte(unicode.ToUpper(rune(g.rookHomeCol[Queenside])))
		}
	}

	any := false
	if g.castling[chess.White][Kingside] {
		sb.WriteByte(letters[Kingside])
		any = true
	}
	if g.castling[chess.White][Queenside] {
		sb.WriteByte(letters[Queenside])
		any = true
	}
	if g.castling[chess.Black][Kingside] {
		sb.WriteByte(byte(unicode.ToLower(rune(letters[Kingside]))))
		any = true
	}
	if g.castling[chess.Black][Queenside] {
		sb.WriteByte(byte(unicode.ToLower(rune(letters[Queenside]))))
		any = true
	}
	if !any {
		sb.WriteByte('-')
	}
}

// writeEnPassant writes the en passant target square or -.
func (g *Game) writeEnPassant(sb *strings.Builder) {
	if g.hasEP {
		sb.WriteString(g.epTarget.String())
	} else {
		sb.WriteByte('-')
	}
}
