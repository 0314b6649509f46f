package engine

import (
	"github.com/lgbarn/piot-go/internal/chess"
	"github.com/lgbarn/piot-go/internal/errors"
	"github.com/lgbarn/piot-go/internal/pmn"
	"github.com/lgbarn/piot-go/internal/san"
)

// MoveSAN validates and applies a move given in SAN. On failure the
// game state is left exactly as it was.
func (g *Game) MoveSAN(text string) error {
	move, err := san.Parse(text)
	if err != nil {
		return err
	}
	return g.applyParsed(move)
}

// Move applies a move given as explicit squares. The pair is converted
// to SAN and re-parsed, so every entry point shares one validation and
// logging path.
func (g *Game) Move(from, to chess.Square, promotion chess.Kind) error {
	text, err := g.sanForSquares(from, to, promotion)
	if err != nil {
		return err
	}
	return g.MoveSAN(text)
}

// MovePMN applies a move given as a two-character pair. A plain-square
// pair that carries a pawn onto the back rank promotes to a queen.
func (g *Game) MovePMN(pair string) error {
	from, to, promotion, err := pmn.Decode(pair)
	if err != nil {
		return err
	}
	if promotion == chess.NoKind {
		if p, ok := g.board.PieceAt(from); ok && p.Effective == chess.Pawn &&
			(to.Rank == '1' || to.Rank == '8') {
			promotion = chess.Queen
		}
	}
	return g.Move(from, to, promotion)
}

// applyParsed runs a parsed move inside a transaction: any failure rolls
// the whole attempt back.
func (g *Game) applyParsed(move *chess.Move) error {
	g.Begin()
	if err := g.applyParsedLocked(move); err != nil {
		g.Rollback()
		return err
	}
	g.Commit()
	return nil
}

// applyParsedLocked dispatches on the move class. It runs under the
// transaction taken by applyParsed.
func (g *Game) applyParsedLocked(move *chess.Move) error {
	switch move.Class {
	case chess.KingsideCastle:
		return g.applyCastle(Kingside)
	case chess.QueensideCastle:
		return g.applyCastle(Queenside)
	case chess.PiecePlacement:
		return g.rejectPlacement(move)
	case chess.PawnMove, chess.PawnMoveWithPromotion, chess.PieceMove:
		return g.applyStandard(move)
	}
	return &errors.MoveError{Err: errors.ErrInvalidSAN, Text: move.Text}
}

// rejectPlacement refuses wild piece-placement moves: a standard game
// has no piece pool to draw from. Pawn drops on the back ranks get the
// more specific error.
func (g *Game) rejectPlacement(move *chess.Move) error {
	if move.Piece == chess.Pawn && (move.To.Rank == '1' || move.To.Rank == '8') {
		return &errors.MoveError{
			Err:    errors.ErrCantPlaceOnBackRank,
			Colour: g.toMove.String(),
			Piece:  move.Piece.String(),
			To:     move.To.String(),
			Text:   move.Text,
		}
	}
	return &errors.MoveError{
		Err:    errors.ErrCantMoveThatWay,
		Colour: g.toMove.String(),
		Piece:  move.Piece.String(),
		To:     move.To.String(),
		Text:   move.Text,
	}
}

// applyStandard validates and applies a pawn or piece move.
func (g *Game) applyStandard(move *chess.Move) error {
	startFEN := g.FEN()

	occ, occupied := g.board.PieceAt(move.To)
	if move.Capture && !occupied {
		epOK := move.Piece == chess.Pawn && g.hasEP && move.To == g.epTarget
		if !epOK {
			return &errors.MoveError{
				Err:    errors.ErrNoPiece,
				Colour: g.toMove.String(),
				Piece:  move.Piece.String(),
				To:     move.To.String(),
				Text:   move.Text,
				FEN:    startFEN,
			}
		}
	}

	from, err := g.resolveFrom(move)
	if err != nil {
		return err
	}
	piece, _ := g.board.PieceAt(from)

	if occupied && occ.Colour == g.toMove {
		return g.moveError(errors.ErrCantCaptureOwn, piece, from, move, startFEN)
	}

	isEP := false
	if piece.Effective == chess.Pawn && g.hasEP && move.To == g.epTarget && move.To.Col != from.Col {
		isEP = true
	}

	promotion := move.Promotion
	promoting := piece.Effective == chess.Pawn && (move.To.Rank == '1' || move.To.Rank == '8')
	if promoting && promotion == chess.NoKind {
		promotion = chess.Queen
	}
	if !promoting && promotion != chess.NoKind {
		return g.moveError(errors.ErrInvalidPromote, piece, from, move, startFEN)
	}

	// Render the SAN before mutating: disambiguation depends on the
	// position the move is made from.
	rawSAN := g.renderSAN(piece, from, move.To, occupied || isEP, promotion)

	wasInCheck := g.InCheck(g.toMove)

	if isEP {
		g.board.Remove(chess.Sq(move.To.Col, from.Rank))
	} else if occupied {
		g.board.Remove(move.To)
	}
	g.board.Relocate(from, move.To)
	if promoting {
		if err := g.board.Promote(move.To, promotion); err != nil {
			return err
		}
	}

	if g.InCheck(g.toMove) {
		if wasInCheck {
			return g.moveError(errors.ErrStillInCheck, piece, from, move, startFEN)
		}
		return g.moveError(errors.ErrMoveWouldCheck, piece, from, move, startFEN)
	}

	captured := occupied || isEP
	if captured || piece.Effective == chess.Pawn {
		g.halfmoveClock = 0
	} else {
		g.halfmoveClock++
	}

	g.hasEP = false
	if piece.Effective == chess.Pawn {
		fromR := chess.RankIndex(from.Rank)
		toR := chess.RankIndex(move.To.Rank)
		if abs(toR-fromR) == 2 {
			g.epTarget = chess.SquareAt(chess.ColIndex(from.Col), (fromR+toR)/2)
			g.hasEP = true
		}
	}

	g.updateRightsAfterMove(piece, from)
	if captured && !isEP {
		g.updateRightsAfterCapture(occ, move.To)
	}

	g.finishPly(rawSAN)
	return nil
}

// updateRightsAfterMove clears castling rights when the king leaves home
// or a rook leaves its home square.
func (g *Game) updateRightsAfterMove(piece chess.Piece, from chess.Square) {
	if piece.Effective == chess.King {
		g.castling[piece.Colour][Kingside] = false
		g.castling[piece.Colour][Queenside] = false
		return
	}
	if piece.Effective != chess.Rook || from.Rank != homeRank(piece.Colour) {
		return
	}
	for _, side := range []int{Kingside, Queenside} {
		if from.Col == g.rookHomeCol[side] {
			g.castling[piece.Colour][side] = false
		}
	}
}

// updateRightsAfterCapture clears a side's right when its rook is taken
// on its home square.
func (g *Game) updateRightsAfterCapture(captured chess.Piece, on chess.Square) {
	if captured.Effective != chess.Rook || on.Rank != homeRank(captured.Colour) {
		return
	}
	for _, side := range []int{Kingside, Queenside} {
		if on.Col == g.rookHomeCol[side] {
			g.castling[captured.Colour][side] = false
		}
	}
}

// resolveFrom determines the unique origin square of a parsed move:
// reachability first, then the disambiguation hints, then a speculative
// legality filter when several origins remain.
func (g *Game) resolveFrom(move *chess.Move) (chess.Square, error) {
	var candidates []chess.Square
	for _, p := range g.board.Pieces(g.toMove) {
		if p.Effective != move.Piece {
			continue
		}
		if move.FromCol != 0 && p.Square.Col != move.FromCol {
			continue
		}
		if move.FromRank != 0 && p.Square.Rank != move.FromRank {
			continue
		}
		if g.reaches(p.Square, move.To) {
			candidates = append(candidates, p.Square)
		}
	}

	switch len(candidates) {
	case 0:
		return chess.Square{}, &errors.MoveError{
			Err:    errors.ErrNoPieceCanDoThat,
			Colour: g.toMove.String(),
			Piece:  move.Piece.String(),
			To:     move.To.String(),
			Text:   move.Text,
			FEN:    g.FEN(),
		}
	case 1:
		return candidates[0], nil
	}

	var legal []chess.Square
	for _, from := range candidates {
		if g.speculate(from, move.To) {
			legal = append(legal, from)
		}
	}
	if len(legal) == 1 {
		return legal[0], nil
	}
	return chess.Square{}, &errors.MoveError{
		Err:    errors.ErrAmbiguous,
		Colour: g.toMove.String(),
		Piece:  move.Piece.String(),
		To:     move.To.String(),
		Text:   move.Text,
		FEN:    g.FEN(),
	}
}

// speculate physically plays the move inside a transaction and reports
// whether the mover's king stays out of check.
func (g *Game) speculate(from, to chess.Square) bool {
	p, ok := g.board.PieceAt(from)
	if !ok {
		return false
	}
	g.Begin()
	defer g.Rollback()

	if p.Effective == chess.Pawn && g.hasEP && to == g.epTarget && to.Col != from.Col {
		g.board.Remove(chess.Sq(to.Col, from.Rank))
	} else if _, occupied := g.board.PieceAt(to); occupied {
		g.board.Remove(to)
	}
	g.board.Relocate(from, to)
	return !g.InCheck(p.Colour)
}

// applyCastle validates and applies castling for the side to move.
func (g *Game) applyCastle(side int) error {
	colour := g.toMove
	rank := homeRank(colour)

	if g.InCheck(colour) {
		return g.castleError(errors.ErrInCheck, side)
	}
	if !g.castling[colour][side] {
		if side == Kingside {
			return g.castleError(errors.ErrCantCastleKingside, side)
		}
		return g.castleError(errors.ErrCantCastleQueenside, side)
	}

	kingFrom, ok := g.board.KingSquare(colour)
	if !ok {
		return g.castleError(errors.ErrNoPiece, side)
	}
	rookFrom := chess.Sq(g.rookHomeCol[side], rank)
	if !g.pieceIs(rookFrom, colour, chess.Rook) {
		if side == Kingside {
			return g.castleError(errors.ErrCantCastleKingside, side)
		}
		return g.castleError(errors.ErrCantCastleQueenside, side)
	}

	kingTo := chess.Sq('g', rank)
	rookTo := chess.Sq('f', rank)
	if side == Queenside {
		kingTo = chess.Sq('c', rank)
		rookTo = chess.Sq('d', rank)
	}

	// Every square the king, the rook, or the move spans must be free,
	// apart from the two moving pieces themselves.
	lo, hi := colSpan(kingFrom.Col, rookFrom.Col, kingTo.Col, rookTo.Col)
	for c := lo; c <= hi; c++ {
		sq := chess.Sq(chess.ToCol(c), rank)
		if sq == kingFrom || sq == rookFrom {
			continue
		}
		if _, occupied := g.board.PieceAt(sq); occupied {
			return g.castleError(errors.ErrCastlePiecesInWay, side)
		}
	}

	// Walk the king one square at a time toward its target on a board
	// with the rook lifted; any attacked square along the way refuses
	// the castle.
	test := g.board.Copy()
	test.Remove(rookFrom)
	dir := sign(chess.ColIndex(kingTo.Col) - chess.ColIndex(kingFrom.Col))
	cur := kingFrom
	for cur != kingTo {
		next, _ := cur.Offset(dir, 0)
		test.Relocate(cur, next)
		if isAttacked(test, next, colour.Opposite()) {
			return g.castleError(errors.ErrCastleWouldCheck, side)
		}
		cur = next
	}

	if !g.board.RelocatePair(kingFrom, kingTo, rookFrom, rookTo) {
		return g.castleError(errors.ErrCastlePiecesInWay, side)
	}

	g.castling[colour][Kingside] = false
	g.castling[colour][Queenside] = false
	g.hasEP = false
	g.halfmoveClock++

	text := "O-O"
	if side == Queenside {
		text = "O-O-O"
	}
	g.finishPly(text)
	return nil
}

// colSpan returns the inclusive 0-based column range covering all given
// columns.
func colSpan(cols ...chess.Col) (int, int) {
	lo, hi := chess.ColIndex(cols[0]), chess.ColIndex(cols[0])
	for _, c := range cols[1:] {
		idx := chess.ColIndex(c)
		if idx < lo {
			lo = idx
		}
		if idx > hi {
			hi = idx
		}
	}
	return lo, hi
}

// finishPly flips the side to move, annotates and records the SAN, and
// updates the repetition ledger.
func (g *Game) finishPly(rawSAN string) {
	g.toMove = g.toMove.Opposite()
	if g.toMove == chess.White {
		g.moveNumber++
	}

	suffix := ""
	if g.InCheck(g.toMove) {
		if g.InCheckmate(g.toMove) {
			suffix = "#"
		} else {
			suffix = "+"
		}
	}

	g.rawLog = append(g.rawLog, rawSAN)
	g.annotatedLog = append(g.annotatedLog, rawSAN+suffix)
	g.repetition[g.Fingerprint()]++
}

// moveError builds a MoveError with full position context. The FEN is
// the position the move was attempted from, not any partial mutation.
func (g *Game) moveError(sentinel error, piece chess.Piece, from chess.Square, move *chess.Move, fen string) error {
	return &errors.MoveError{
		Err:    sentinel,
		Colour: g.toMove.String(),
		Piece:  piece.Effective.String(),
		From:   from.String(),
		To:     move.To.String(),
		Text:   move.Text,
		FEN:    fen,
	}
}

// castleError builds a MoveError for a failed castle.
func (g *Game) castleError(sentinel error, side int) error {
	text := "O-O"
	if side == Queenside {
		text = "O-O-O"
	}
	return &errors.MoveError{
		Err:    sentinel,
		Colour: g.toMove.String(),
		Piece:  chess.King.String(),
		Text:   text,
		FEN:    g.FEN(),
	}
}
