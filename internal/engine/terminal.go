package engine

import (
	"github.com/lgbarn/piot-go/internal/chess"
)

// Result is the outcome of a finished game.
type Result int

const (
	NoResult Result = iota
	WhiteWins
	BlackWins
	Draw
)

// String returns the result in PGN-style form.
func (r Result) String() string {
	switch r {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	}
	return "*"
}

// InCheckmate reports whether a colour is checkmated: in check, with no
// king escape, and either double-checked or unable to block or capture
// the single checker.
func (g *Game) InCheckmate(colour chess.Colour) bool {
	checkers := g.checkers(colour)
	if len(checkers) == 0 {
		return false
	}
	king, ok := g.board.KingSquare(colour)
	if !ok {
		return false
	}

	for _, to := range g.destinations(king) {
		if g.speculate(king, to) {
			return false
		}
	}

	if len(checkers) >= 2 {
		return true
	}

	path := g.pathToKing(checkers[0], king)
	onPath := func(sq chess.Square) bool {
		for _, p := range path {
			if p == sq {
				return true
			}
		}
		return false
	}

	for _, p := range g.board.Pieces(colour) {
		if p.Effective == chess.King {
			continue
		}
		for _, to := range g.destinations(p.Square) {
			// The en passant capture can remove a checking pawn even
			// though the destination is behind it.
			epCapture := p.Effective == chess.Pawn && g.hasEP && to == g.epTarget
			if !onPath(to) && !epCapture {
				continue
			}
			if g.speculate(p.Square, to) {
				return false
			}
		}
	}
	return true
}

// InStalemate reports whether the side to move has no legal move while
// not being in check. The probe runs inside a transaction, so the move
// log and ledger are untouched by the query.
func (g *Game) InStalemate() bool {
	if g.InCheck(g.toMove) {
		return false
	}
	return !g.hasAnyLegalMove(g.toMove)
}

// hasAnyLegalMove tries every move of every piece of a colour inside a
// transaction.
func (g *Game) hasAnyLegalMove(colour chess.Colour) bool {
	g.Begin()
	defer g.Rollback()
	for _, p := range g.board.Pieces(colour) {
		for _, to := range g.destinations(p.Square) {
			if g.speculate(p.Square, to) {
				return true
			}
		}
	}
	return false
}

// InFiftyMoveDraw reports a claimable draw by the fifty-move rule.
func (g *Game) InFiftyMoveDraw() bool {
	return g.halfmoveClock >= 100
}

// maxRepetition returns the highest occurrence count in the ledger.
func (g *Game) maxRepetition() int {
	max := 0
	for _, n := range g.repetition {
		if n > max {
			max = n
		}
	}
	return max
}

// InThreefoldRepetition reports a claimable threefold repetition that
// has not yet reached the forced fivefold mark.
func (g *Game) InThreefoldRepetition() bool {
	n := g.maxRepetition()
	return n >= 3 && n < 5
}

// InFivefoldRepetition reports the forced fivefold repetition draw.
func (g *Game) InFivefoldRepetition() bool {
	return g.maxRepetition() >= 5
}

// InRepetitionDraw reports that some position has occurred at least
// three times.
func (g *Game) InRepetitionDraw() bool {
	return g.maxRepetition() >= 3
}

// InBasicDraw reports insufficient mating material on both sides:
// K vs K, king and minor against bare king, king and minor each (same
// coloured bishops when both minors are bishops), or two knights
// against a bare king.
func (g *Game) InBasicDraw() bool {
	white := g.nonKings(chess.White)
	black := g.nonKings(chess.Black)
	if len(white)+len(black) > 2 {
		return false
	}

	switch {
	case len(white) == 0 && len(black) == 0:
		return true
	case len(white) == 1 && len(black) == 0:
		return isMinor(white[0])
	case len(white) == 0 && len(black) == 1:
		return isMinor(black[0])
	case len(white) == 1 && len(black) == 1:
		if !isMinor(white[0]) || !isMinor(black[0]) {
			return false
		}
		if white[0].Effective == chess.Bishop && black[0].Effective == chess.Bishop {
			return white[0].Square.IsLight() == black[0].Square.IsLight()
		}
		return true
	case len(white) == 2 && len(black) == 0:
		return white[0].Effective == chess.Knight && white[1].Effective == chess.Knight
	case len(white) == 0 && len(black) == 2:
		return black[0].Effective == chess.Knight && black[1].Effective == chess.Knight
	}
	return false
}

// nonKings returns a colour's live pieces other than the king.
func (g *Game) nonKings(colour chess.Colour) []chess.Piece {
	var out []chess.Piece
	for _, p := range g.board.Pieces(colour) {
		if p.Effective != chess.King {
			out = append(out, p)
		}
	}
	return out
}

// isMinor reports whether a piece acts as a bishop or knight.
func isMinor(p chess.Piece) bool {
	return p.Effective == chess.Bishop || p.Effective == chess.Knight
}

// HasMatingMaterial reports whether a colour could in principle deliver
// mate: any queen, rook, or pawn; two bishops; three knights; or a
// bishop and a knight.
func (g *Game) HasMatingMaterial(colour chess.Colour) bool {
	bishops, knights := 0, 0
	for _, p := range g.nonKings(colour) {
		switch p.Effective {
		case chess.Queen, chess.Rook, chess.Pawn:
			return true
		case chess.Bishop:
			bishops++
		case chess.Knight:
			knights++
		}
	}
	if bishops >= 2 || knights >= 3 {
		return true
	}
	return bishops >= 1 && knights >= 1
}

// InForcedDraw reports a draw that ends the game without a claim:
// stalemate, fivefold repetition, or insufficient material.
func (g *Game) InForcedDraw() bool {
	return g.InStalemate() || g.InFivefoldRepetition() || g.InBasicDraw()
}

// GameOver returns the winner on checkmate, Draw on a forced draw, and
// NoResult otherwise. Claimable draws do not end the game by themselves.
func (g *Game) GameOver() Result {
	if g.InCheckmate(g.toMove) {
		if g.toMove == chess.White {
			return BlackWins
		}
		return WhiteWins
	}
	if g.InForcedDraw() {
		return Draw
	}
	return NoResult
}
