package engine

import (
	"github.com/lgbarn/piot-go/internal/chess"
	"github.com/lgbarn/piot-go/internal/geometry"
)

// attackersOn enumerates the pieces of a colour that attack sq on the
// given board. Pawns are matched by their capture pattern, not their
// push pattern, and sliders stop at the first blocker on the line.
func attackersOn(board *chess.Board, sq chess.Square, by chess.Colour) []chess.Piece {
	var out []chess.Piece
	for _, p := range board.Pieces(by) {
		if attacks(board, p, sq) {
			out = append(out, p)
		}
	}
	return out
}

// attacks reports whether piece p attacks sq.
func attacks(board *chess.Board, p chess.Piece, sq chess.Square) bool {
	dc := chess.ColIndex(sq.Col) - chess.ColIndex(p.Square.Col)
	dr := chess.RankIndex(sq.Rank) - chess.RankIndex(p.Square.Rank)

	switch p.Effective {
	case chess.Pawn:
		return dr == chess.ColourOffset(p.Colour) && (dc == 1 || dc == -1)
	case chess.Knight:
		return (abs(dc) == 1 && abs(dr) == 2) || (abs(dc) == 2 && abs(dr) == 1)
	case chess.King:
		return (dc != 0 || dr != 0) && abs(dc) <= 1 && abs(dr) <= 1
	case chess.Bishop:
		if abs(dc) != abs(dr) || dc == 0 {
			return false
		}
		return lineClear(board, p.Square, sq)
	case chess.Rook:
		if (dc != 0 && dr != 0) || (dc == 0 && dr == 0) {
			return false
		}
		return lineClear(board, p.Square, sq)
	case chess.Queen:
		if dc == 0 && dr == 0 {
			return false
		}
		if dc != 0 && dr != 0 && abs(dc) != abs(dr) {
			return false
		}
		return lineClear(board, p.Square, sq)
	}
	return false
}

// lineClear reports whether every square strictly between from and to is
// empty.
func lineClear(board *chess.Board, from, to chess.Square) bool {
	between, ok := geometry.RayBetween(from, to)
	if !ok {
		return false
	}
	for _, sq := range between {
		if _, occupied := board.PieceAt(sq); occupied {
			return false
		}
	}
	return true
}

// isAttacked reports whether sq is attacked by the given colour.
func isAttacked(board *chess.Board, sq chess.Square, by chess.Colour) bool {
	return len(attackersOn(board, sq, by)) > 0
}

// attackersOf enumerates the pieces attacking sq in the current position.
func (g *Game) attackersOf(sq chess.Square, by chess.Colour) []chess.Piece {
	return attackersOn(g.board, sq, by)
}

// checkers returns the enemy pieces giving check to a colour's king.
func (g *Game) checkers(colour chess.Colour) []chess.Piece {
	king, ok := g.board.KingSquare(colour)
	if !ok {
		return nil
	}
	return g.attackersOf(king, colour.Opposite())
}

// InCheck reports whether a colour's king is attacked.
func (g *Game) InCheck(colour chess.Colour) bool {
	return len(g.checkers(colour)) > 0
}

// pathToKing returns the squares where an interposing piece could block
// or capture the checker: the attacker's own square for a knight,
// otherwise the ray from the king toward the attacker, attacker's square
// included, closest square first.
func (g *Game) pathToKing(attacker chess.Piece, king chess.Square) []chess.Square {
	if attacker.Effective == chess.Knight {
		return []chess.Square{attacker.Square}
	}
	between, ok := geometry.RayBetween(king, attacker.Square)
	if !ok {
		return []chess.Square{attacker.Square}
	}
	return append(between, attacker.Square)
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
