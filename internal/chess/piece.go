package chess

// Slot layout of the per-colour piece table. Every piece a side can ever
// own has a fixed slot, which is its identity for the whole game. Slots
// 8-15 are pawn slots; a promoted pawn keeps its slot and only changes
// its effective kind.
const (
	SlotKing        = 0
	SlotQueen       = 1
	FirstRookSlot   = 2
	FirstBishopSlot = 4
	FirstKnightSlot = 6
	FirstPawnSlot   = 8
	NumSlots        = 16
)

// slotRange gives the slot range reserved for each kind's initial complement.
func slotRange(kind Kind) (lo, hi int) {
	switch kind {
	case King:
		return SlotKing, SlotKing
	case Queen:
		return SlotQueen, SlotQueen
	case Rook:
		return FirstRookSlot, FirstRookSlot + 1
	case Bishop:
		return FirstBishopSlot, FirstBishopSlot + 1
	case Knight:
		return FirstKnightSlot, FirstKnightSlot + 1
	case Pawn:
		return FirstPawnSlot, NumSlots - 1
	}
	return -1, -1
}

// pieceEntry is one slot of the piece table.
type pieceEntry struct {
	kind      Kind // Kind the slot was born with (Pawn for promoted pawns)
	effective Kind // Kind the piece currently moves and captures as
	square    Square
	alive     bool
}

// Piece is the resolved view of a live or captured piece: its stable
// identity (colour and slot) together with its current effective kind
// and square.
type Piece struct {
	Colour    Colour
	Slot      int
	Kind      Kind // Original kind; Pawn for promoted pawns
	Effective Kind // Kind the piece currently acts as
	Square    Square
}

// IsPromotedPawn reports whether this piece is a pawn that has promoted.
func (p Piece) IsPromotedPawn() bool {
	return p.Kind == Pawn && p.Effective != Pawn
}
