// Package geometry provides pure square-geometry computations: rays,
// knight jumps, and king steps. It knows nothing about occupancy.
package geometry

import (
	"github.com/lgbarn/piot-go/internal/chess"
)

// Direction indexes one of the four rays returned by DiagonalRays or
// OrthogonalRays.
type Direction int

// Diagonal ray directions.
const (
	NorthEast Direction = iota
	NorthWest
	SouthEast
	SouthWest
)

// Orthogonal ray directions.
const (
	North Direction = iota
	South
	East
	West
)

var diagonalOffsets = [4][2]int{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
var orthogonalOffsets = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
var knightOffsets = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
var kingOffsets = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}

// ray walks from sq in one direction, closest square first, until the edge.
func ray(sq chess.Square, dc, dr int) []chess.Square {
	var out []chess.Square
	cur := sq
	for {
		next, ok := cur.Offset(dc, dr)
		if !ok {
			return out
		}
		out = append(out, next)
		cur = next
	}
}

// DiagonalRays returns the four diagonal rays from a square, indexed by
// NorthEast/NorthWest/SouthEast/SouthWest. Each ray is ordered with the
// closest square first, so occupancy scans can stop at the first blocker.
func DiagonalRays(sq chess.Square) [4][]chess.Square {
	var rays [4][]chess.Square
	for i, off := range diagonalOffsets {
		rays[i] = ray(sq, off[0], off[1])
	}
	return rays
}

// OrthogonalRays returns the four orthogonal rays from a square, indexed
// by North/South/East/West, each ordered closest square first.
func OrthogonalRays(sq chess.Square) [4][]chess.Square {
	var rays [4][]chess.Square
	for i, off := range orthogonalOffsets {
		rays[i] = ray(sq, off[0], off[1])
	}
	return rays
}

// KnightJumps returns the on-board knight destinations from a square.
func KnightJumps(sq chess.Square) []chess.Square {
	var out []chess.Square
	for _, off := range knightOffsets {
		if next, ok := sq.Offset(off[0], off[1]); ok {
			out = append(out, next)
		}
	}
	return out
}

// KingSteps returns the on-board one-step king destinations from a square.
func KingSteps(sq chess.Square) []chess.Square {
	var out []chess.Square
	for _, off := range kingOffsets {
		if next, ok := sq.Offset(off[0], off[1]); ok {
			out = append(out, next)
		}
	}
	return out
}

// RayBetween returns the squares strictly between from and to when they
// share a rank, file, or diagonal, ordered from the from side. The second
// result is false when the squares are not aligned.
func RayBetween(from, to chess.Square) ([]chess.Square, bool) {
	dc := sign(chess.ColIndex(to.Col) - chess.ColIndex(from.Col))
	dr := sign(chess.RankIndex(to.Rank) - chess.RankIndex(from.Rank))
	if dc == 0 && dr == 0 {
		return nil, false
	}
	colDiff := abs(chess.ColIndex(to.Col) - chess.ColIndex(from.Col))
	rankDiff := abs(chess.RankIndex(to.Rank) - chess.RankIndex(from.Rank))
	if colDiff != 0 && rankDiff != 0 && colDiff != rankDiff {
		return nil, false
	}
	var out []chess.Square
	cur := from
	for {
		next, ok := cur.Offset(dc, dr)
		if !ok || next == to {
			return out, ok
		}
		out = append(out, next)
		cur = next
	}
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sign returns the sign of x: -1, 0, or 1.
func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
