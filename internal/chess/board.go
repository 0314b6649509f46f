package chess

import (
	"github.com/lgbarn/piot-go/internal/errors"
)

// emptyRef marks an empty square in the board array.
const emptyRef = int8(-1)

// Board maps the 64 squares to piece identities and keeps the dual
// piece-table view. The two views stay mutually consistent: a live piece's
// recorded square always resolves back to its slot, and an empty square
// resolves to nothing.
type Board struct {
	// squares[col][rank] holds emptyRef or colour*NumSlots+slot.
	squares [BoardSize][BoardSize]int8
	pieces  [2][NumSlots]pieceEntry
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	b := &Board{}
	for c := 0; c < BoardSize; c++ {
		for r := 0; r < BoardSize; r++ {
			b.squares[c][r] = emptyRef
		}
	}
	return b
}

// SetupInitialPosition fills the board with the standard starting array.
func (b *Board) SetupInitialPosition() {
	*b = *NewBoard()
	backRank := []Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for c := 0; c < BoardSize; c++ {
		b.Place(White, backRank[c], SquareAt(c, 0))
		b.Place(White, Pawn, SquareAt(c, 1))
		b.Place(Black, Pawn, SquareAt(c, 6))
		b.Place(Black, backRank[c], SquareAt(c, 7))
	}
}

// Place puts a new piece of the given colour and kind on a square.
// A non-pawn beyond the initial complement consumes a free pawn slot as a
// promoted pawn; when no slot is left the matching TooMany error is
// returned. Occupied squares fail with ErrDuplicateSquare.
func (b *Board) Place(colour Colour, kind Kind, sq Square) error {
	if colour != White && colour != Black {
		return &errors.PlacementError{Err: errors.ErrInvalidColor, Piece: kind.String(), Square: sq.String()}
	}
	if kind < King || kind > Pawn {
		return &errors.PlacementError{Err: errors.ErrInvalidPiece, Colour: colour.String(), Square: sq.String()}
	}
	if !sq.Valid() {
		return &errors.PlacementError{Err: errors.ErrInvalidSquare, Colour: colour.String(), Piece: kind.String(), Square: sq.String()}
	}
	if b.squares[ColIndex(sq.Col)][RankIndex(sq.Rank)] != emptyRef {
		return &errors.PlacementError{Err: errors.ErrDuplicateSquare, Colour: colour.String(), Piece: kind.String(), Square: sq.String()}
	}

	slot := b.freeSlot(colour, kind)
	if slot < 0 {
		return &errors.PlacementError{
			Err:    errors.TooMany(kind.String()),
			Colour: colour.String(),
			Piece:  kind.String(),
			Square: sq.String(),
		}
	}

	entry := &b.pieces[colour][slot]
	if slot >= FirstPawnSlot {
		entry.kind = Pawn
	} else {
		entry.kind = kind
	}
	entry.effective = kind
	entry.square = sq
	entry.alive = true
	b.squares[ColIndex(sq.Col)][RankIndex(sq.Rank)] = int8(int(colour)*NumSlots + slot)
	return nil
}

// freeSlot finds a free slot for a new piece of the given kind, spilling
// non-pawns into the pawn range as promoted-pawn entries.
func (b *Board) freeSlot(colour Colour, kind Kind) int {
	lo, hi := slotRange(kind)
	for s := lo; s <= hi; s++ {
		if !b.pieces[colour][s].alive {
			return s
		}
	}
	if kind == King || kind == Pawn {
		return -1
	}
	// Spill into an unused pawn slot as a promoted pawn.
	for s := FirstPawnSlot; s < NumSlots; s++ {
		if !b.pieces[colour][s].alive {
			return s
		}
	}
	return -1
}

// PieceAt returns the piece occupying a square.
func (b *Board) PieceAt(sq Square) (Piece, bool) {
	if !sq.Valid() {
		return Piece{}, false
	}
	ref := b.squares[ColIndex(sq.Col)][RankIndex(sq.Rank)]
	if ref == emptyRef {
		return Piece{}, false
	}
	colour := Colour(int(ref) / NumSlots)
	slot := int(ref) % NumSlots
	return b.resolve(colour, slot), true
}

// Remove takes the piece off a square, marking its slot captured.
// The slot keeps its effective kind, so the capture tally can later read
// the kind the piece had when it was taken.
func (b *Board) Remove(sq Square) (Piece, bool) {
	p, ok := b.PieceAt(sq)
	if !ok {
		return Piece{}, false
	}
	b.pieces[p.Colour][p.Slot].alive = false
	b.squares[ColIndex(sq.Col)][RankIndex(sq.Rank)] = emptyRef
	return p, true
}

// Relocate moves the piece on from to the empty square to.
// It reports false when from is empty or to is occupied.
func (b *Board) Relocate(from, to Square) bool {
	p, ok := b.PieceAt(from)
	if !ok || !to.Valid() {
		return false
	}
	if b.squares[ColIndex(to.Col)][RankIndex(to.Rank)] != emptyRef {
		return false
	}
	b.squares[ColIndex(from.Col)][RankIndex(from.Rank)] = emptyRef
	b.squares[ColIndex(to.Col)][RankIndex(to.Rank)] = int8(int(p.Colour)*NumSlots + p.Slot)
	b.pieces[p.Colour][p.Slot].square = to
	return true
}

// RelocatePair moves two pieces at once, allowing their destinations to
// overlap their sources (castling, where king and rook may swap). Both
// destination squares must be empty or one of the two source squares.
func (b *Board) RelocatePair(aFrom, aTo, bFrom, bTo Square) bool {
	pa, okA := b.PieceAt(aFrom)
	pb, okB := b.PieceAt(bFrom)
	if !okA || !okB || !aTo.Valid() || !bTo.Valid() || aTo == bTo {
		return false
	}
	b.squares[ColIndex(aFrom.Col)][RankIndex(aFrom.Rank)] = emptyRef
	b.squares[ColIndex(bFrom.Col)][RankIndex(bFrom.Rank)] = emptyRef
	if b.squares[ColIndex(aTo.Col)][RankIndex(aTo.Rank)] != emptyRef ||
		b.squares[ColIndex(bTo.Col)][RankIndex(bTo.Rank)] != emptyRef {
		// Restore and refuse; a foreign piece sits on a destination.
		b.squares[ColIndex(aFrom.Col)][RankIndex(aFrom.Rank)] = int8(int(pa.Colour)*NumSlots + pa.Slot)
		b.squares[ColIndex(bFrom.Col)][RankIndex(bFrom.Rank)] = int8(int(pb.Colour)*NumSlots + pb.Slot)
		return false
	}
	b.squares[ColIndex(aTo.Col)][RankIndex(aTo.Rank)] = int8(int(pa.Colour)*NumSlots + pa.Slot)
	b.squares[ColIndex(bTo.Col)][RankIndex(bTo.Rank)] = int8(int(pb.Colour)*NumSlots + pb.Slot)
	b.pieces[pa.Colour][pa.Slot].square = aTo
	b.pieces[pb.Colour][pb.Slot].square = bTo
	return true
}

// Promote swaps the effective kind of the pawn on sq to the given kind.
func (b *Board) Promote(sq Square, kind Kind) error {
	p, ok := b.PieceAt(sq)
	if !ok {
		return &errors.MoveError{Err: errors.ErrNoPiece, To: sq.String()}
	}
	if p.Kind != Pawn || kind == King || kind == Pawn || kind == NoKind {
		return &errors.MoveError{
			Err:    errors.ErrInvalidPromote,
			Colour: p.Colour.String(),
			Piece:  p.Kind.String(),
			To:     sq.String(),
		}
	}
	b.pieces[p.Colour][p.Slot].effective = kind
	return nil
}

// Locate returns the current square of a piece identity.
func (b *Board) Locate(colour Colour, slot int) (Square, bool) {
	if colour != White && colour != Black || slot < 0 || slot >= NumSlots {
		return Square{}, false
	}
	entry := b.pieces[colour][slot]
	if !entry.alive {
		return Square{}, false
	}
	return entry.square, true
}

// KingSquare returns the king's square for a colour.
func (b *Board) KingSquare(colour Colour) (Square, bool) {
	return b.Locate(colour, SlotKing)
}

// Pieces returns all live pieces of a colour.
func (b *Board) Pieces(colour Colour) []Piece {
	var out []Piece
	for s := 0; s < NumSlots; s++ {
		if b.pieces[colour][s].alive {
			out = append(out, b.resolve(colour, s))
		}
	}
	return out
}

// Captured returns the captured pieces of a colour, each with the
// effective kind it had when it was taken. Slots that were never filled
// (short positions seeded from FEN) are not reported.
func (b *Board) Captured(colour Colour) []Piece {
	var out []Piece
	for s := 0; s < NumSlots; s++ {
		entry := b.pieces[colour][s]
		if !entry.alive && entry.effective != NoKind {
			out = append(out, b.resolve(colour, s))
		}
	}
	return out
}

// CountEffective counts the live pieces of a colour acting as the given kind.
func (b *Board) CountEffective(colour Colour, kind Kind) int {
	n := 0
	for s := 0; s < NumSlots; s++ {
		entry := b.pieces[colour][s]
		if entry.alive && entry.effective == kind {
			n++
		}
	}
	return n
}

// Copy creates a deep copy of the board. The board holds only value
// arrays, so the assignment copies everything.
func (b *Board) Copy() *Board {
	nb := *b
	return &nb
}

// resolve builds the exported view of one slot.
func (b *Board) resolve(colour Colour, slot int) Piece {
	entry := b.pieces[colour][slot]
	return Piece{
		Colour:    colour,
		Slot:      slot,
		Kind:      entry.kind,
		Effective: entry.effective,
		Square:    entry.square,
	}
}
