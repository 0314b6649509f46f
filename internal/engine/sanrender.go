package engine

import (
	"strings"

	"github.com/lgbarn/piot-go/internal/chess"
	"github.com/lgbarn/piot-go/internal/errors"
)

// renderSAN produces the minimal SAN for a validated move: the piece
// letter (omitted for pawns), the smallest disambiguation that separates
// the origin from alternative origins of the same kind, the capture
// mark, the destination, and the promotion suffix. Check marks are
// appended later, in the annotated log only.
func (g *Game) renderSAN(piece chess.Piece, from, to chess.Square, capture bool, promotion chess.Kind) string {
	var sb strings.Builder

	if piece.Effective == chess.Pawn {
		// A pawn capture always names its origin file.
		if capture {
			sb.WriteByte(byte(from.Col))
		}
	} else {
		sb.WriteByte(piece.Effective.Letter())
		sb.WriteString(g.disambiguation(piece, from, to))
	}

	if capture {
		sb.WriteByte('x')
	}
	sb.WriteString(to.String())

	if promotion != chess.NoKind {
		sb.WriteByte('=')
		sb.WriteByte(promotion.Letter())
	}
	return sb.String()
}

// disambiguation returns the smallest origin hint that separates from
// among the same-kind pieces that can also reach to: nothing, then the
// file, then the rank, then the full square.
func (g *Game) disambiguation(piece chess.Piece, from, to chess.Square) string {
	var rivals []chess.Square
	for _, p := range g.board.Pieces(piece.Colour) {
		if p.Square == from || p.Effective != piece.Effective {
			continue
		}
		if g.reaches(p.Square, to) {
			rivals = append(rivals, p.Square)
		}
	}
	if len(rivals) == 0 {
		return ""
	}

	sameCol, sameRank := false, false
	for _, r := range rivals {
		if r.Col == from.Col {
			sameCol = true
		}
		if r.Rank == from.Rank {
			sameRank = true
		}
	}
	switch {
	case !sameCol:
		return string([]byte{byte(from.Col)})
	case !sameRank:
		return string([]byte{byte(from.Rank)})
	default:
		return from.String()
	}
}

// sanForSquares converts an explicit square pair into SAN, so square
// moves share the SAN path's validation and logging. A king landing two
// or more files away along its home rank with rights intact, or on the
// target rook's home square, converts to the castle token.
func (g *Game) sanForSquares(from, to chess.Square, promotion chess.Kind) (string, error) {
	if !from.Valid() || !to.Valid() {
		return "", &errors.MoveError{Err: errors.ErrInvalidSquare, From: from.String(), To: to.String()}
	}
	piece, ok := g.board.PieceAt(from)
	if !ok {
		return "", &errors.MoveError{Err: errors.ErrNoPiece, From: from.String(), To: to.String(), FEN: g.FEN()}
	}
	if piece.Colour != g.toMove {
		return "", &errors.MoveError{
			Err:    errors.ErrWrongColor,
			Colour: piece.Colour.String(),
			Piece:  piece.Effective.String(),
			From:   from.String(),
			To:     to.String(),
			FEN:    g.FEN(),
		}
	}

	if text, isCastle := g.castleToken(piece, from, to); isCastle {
		return text, nil
	}

	if !g.reaches(from, to) {
		return "", &errors.MoveError{
			Err:    errors.ErrCantMoveThatWay,
			Colour: piece.Colour.String(),
			Piece:  piece.Effective.String(),
			From:   from.String(),
			To:     to.String(),
			FEN:    g.FEN(),
		}
	}

	occ, occupied := g.board.PieceAt(to)
	capture := (occupied && occ.Colour != piece.Colour) ||
		(piece.Effective == chess.Pawn && g.hasEP && to == g.epTarget && to.Col != from.Col)

	promoting := piece.Effective == chess.Pawn && (to.Rank == '1' || to.Rank == '8')
	if promoting && promotion == chess.NoKind {
		promotion = chess.Queen
	}
	if !promoting && promotion != chess.NoKind {
		return "", &errors.MoveError{
			Err:    errors.ErrInvalidPromote,
			Colour: piece.Colour.String(),
			Piece:  piece.Effective.String(),
			From:   from.String(),
			To:     to.String(),
			FEN:    g.FEN(),
		}
	}

	return g.renderSAN(piece, from, to, capture, promotion), nil
}

// castleToken recognises a king move that means castling: the
// destination two or more files away in a castling direction with the
// rights still present, or the target rook's own home square.
func (g *Game) castleToken(piece chess.Piece, from, to chess.Square) (string, bool) {
	if piece.Effective != chess.King {
		return "", false
	}
	rank := homeRank(piece.Colour)
	if from.Rank != rank || to.Rank != rank {
		return "", false
	}

	if to.Col == g.rookHomeCol[Kingside] && g.castling[piece.Colour][Kingside] {
		return "O-O", true
	}
	if to.Col == g.rookHomeCol[Queenside] && g.castling[piece.Colour][Queenside] {
		return "O-O-O", true
	}

	dc := chess.ColIndex(to.Col) - chess.ColIndex(from.Col)
	if dc >= 2 && g.castling[piece.Colour][Kingside] {
		return "O-O", true
	}
	if dc <= -2 && g.castling[piece.Colour][Queenside] {
		return "O-O-O", true
	}
	return "", false
}
