package chess

// MoveClass categorizes different types of chess moves.
type MoveClass int

const (
	PawnMove MoveClass = iota
	PawnMoveWithPromotion
	PieceMove
	KingsideCastle
	QueensideCastle
	PiecePlacement
	UnknownMove
)

// Move represents a parsed move before it is validated and applied.
// FromCol and FromRank are zero when the source is not disambiguated;
// resolution against the position fills them in.
type Move struct {
	// The move text as given (e.g. "Nf3", "exd5", "O-O").
	Text string

	// Class of move (pawn move, piece move, castle, placement).
	Class MoveClass

	// The kind of piece being moved or placed.
	Piece Kind

	// Source square or partial disambiguation; zero components mean unknown.
	FromCol  Col
	FromRank Rank

	// Destination square.
	To Square

	// Whether the move text marked a capture.
	Capture bool

	// The kind promoted to (NoKind if not a promotion).
	Promotion Kind
}

// NewMove creates a new empty move.
func NewMove() *Move {
	return &Move{Class: UnknownMove}
}

// From returns the source square when both components are known.
func (m *Move) From() (Square, bool) {
	sq := Square{Col: m.FromCol, Rank: m.FromRank}
	return sq, sq.Valid()
}

// IsPromotion returns true if this move is a pawn promotion.
func (m *Move) IsPromotion() bool {
	return m.Class == PawnMoveWithPromotion
}

// IsCastle returns true if this move is a castling move.
func (m *Move) IsCastle() bool {
	switch m.Class {
	case KingsideCastle, QueensideCastle:
		return true
	default:
		return false
	}
}
