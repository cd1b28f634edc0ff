package model

// Perft counts the leaf nodes of the legal move tree to the given depth. Matching
// published counts is the standard check that a move generator is correct.
func Perft(p *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := p.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		nodes += Perft(p.successor(m), depth-1)
	}
	return nodes
}

// PerftDivide reports the perft count below each root move, keyed by UCI notation.
func PerftDivide(p *Position, depth int) map[string]uint64 {
	result := make(map[string]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range p.LegalMoves() {
		result[MoveUCI(m)] = Perft(p.successor(m), depth-1)
	}
	return result
}

// castlingSquares maps a king or rook home square to the rights lost when a piece
// leaves it or is captured on it.
var castlingSquares = map[Square]CastlingRights{
	E1: WhiteKingside | WhiteQueenside,
	H1: WhiteKingside,
	A1: WhiteQueenside,
	E8: BlackKingside | BlackQueenside,
	H8: BlackKingside,
	A8: BlackQueenside,
}

// successor returns the position after the legal move m. The receiver is untouched.
func (p *Position) successor(m Move) *Position {
	next := &Position{
		board:     p.board.apply(m, p.turn),
		turn:      p.turn.Other(),
		castling:  p.castling,
		epSquare:  NoSquare,
		halfmoves: p.halfmoves + 1,
		fullmoves: p.fullmoves,
	}
	if p.turn == Black {
		next.fullmoves++
	}

	switch m := m.(type) {
	case Normal:
		next.castling &^= castlingSquares[m.From] | castlingSquares[m.To]
		if m.Role == Pawn || m.Capture != NoRole {
			next.halfmoves = 0
		}
		if m.Role == Pawn && (m.To.Rank()-m.From.Rank() == 2 || m.From.Rank()-m.To.Rank() == 2) {
			next.epSquare = SquareAt(m.From.File(), (m.From.Rank()+m.To.Rank())/2)
		}
	case EnPassant:
		next.halfmoves = 0
	case Castle:
		next.castling &^= castlingSquares[m.King]
	case Put:
		if m.Role == Pawn {
			next.halfmoves = 0
		}
	}
	return next
}
