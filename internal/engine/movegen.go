package engine

import (
	"github.com/lgbarn/piot-go/internal/chess"
	"github.com/lgbarn/piot-go/internal/geometry"
)

// destinations returns the pseudo-legal destination squares of the piece
// on from: geometry and occupancy are honoured, but the mover's own king
// is allowed to remain in check. That filter is the applier's, via a
// speculative move and a threat test.
func (g *Game) destinations(from chess.Square) []chess.Square {
	p, ok := g.board.PieceAt(from)
	if !ok {
		return nil
	}

	switch p.Effective {
	case chess.Knight:
		return g.stepTargets(p.Colour, geometry.KnightJumps(from))
	case chess.King:
		return g.stepTargets(p.Colour, geometry.KingSteps(from))
	case chess.Bishop:
		return g.slideTargets(p.Colour, geometry.DiagonalRays(from))
	case chess.Rook:
		return g.slideTargets(p.Colour, geometry.OrthogonalRays(from))
	case chess.Queen:
		out := g.slideTargets(p.Colour, geometry.DiagonalRays(from))
		return append(out, g.slideTargets(p.Colour, geometry.OrthogonalRays(from))...)
	case chess.Pawn:
		return g.pawnTargets(p.Colour, from)
	}
	return nil
}

// stepTargets filters one-step candidate squares down to those not
// occupied by the mover's own pieces.
func (g *Game) stepTargets(colour chess.Colour, candidates []chess.Square) []chess.Square {
	var out []chess.Square
	for _, sq := range candidates {
		if occ, ok := g.board.PieceAt(sq); !ok || occ.Colour != colour {
			out = append(out, sq)
		}
	}
	return out
}

// slideTargets walks each ray closer-first, taking empty squares up to
// the first blocker, and the blocker's square too when it is an enemy.
func (g *Game) slideTargets(colour chess.Colour, rays [4][]chess.Square) []chess.Square {
	var out []chess.Square
	for _, ray := range rays {
		for _, sq := range ray {
			occ, occupied := g.board.PieceAt(sq)
			if !occupied {
				out = append(out, sq)
				continue
			}
			if occ.Colour != colour {
				out = append(out, sq)
			}
			break
		}
	}
	return out
}

// pawnTargets generates pawn pushes, double pushes, captures, and the en
// passant capture when the target is set on an adjacent file.
func (g *Game) pawnTargets(colour chess.Colour, from chess.Square) []chess.Square {
	var out []chess.Square
	dir := chess.ColourOffset(colour)

	if one, ok := from.Offset(0, dir); ok {
		if _, occupied := g.board.PieceAt(one); !occupied {
			out = append(out, one)
			startRank := chess.Rank('2')
			if colour == chess.Black {
				startRank = '7'
			}
			if from.Rank == startRank {
				if two, ok := from.Offset(0, 2*dir); ok {
					if _, occupied := g.board.PieceAt(two); !occupied {
						out = append(out, two)
					}
				}
			}
		}
	}

	for _, dc := range []int{-1, 1} {
		diag, ok := from.Offset(dc, dir)
		if !ok {
			continue
		}
		if occ, occupied := g.board.PieceAt(diag); occupied && occ.Colour != colour {
			out = append(out, diag)
			continue
		}
		if g.hasEP && diag == g.epTarget {
			out = append(out, diag)
		}
	}

	return out
}

// reaches reports whether to is among the pseudo-legal destinations of
// the piece on from.
func (g *Game) reaches(from, to chess.Square) bool {
	for _, sq := range g.destinations(from) {
		if sq == to {
			return true
		}
	}
	return false
}
