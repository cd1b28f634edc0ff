package model

import "sort"

var promotionRoles = [4]Role{Queen, Rook, Bishop, Knight}

// LegalMoves returns every legal move for the side to move, ordered by origin
// square, then move kind, then destination square. An empty result means the side
// to move is mated or stalemated.
func (p *Position) LegalMoves() []Move {
	legalMoves := p.filterLegalMoves(p.getPseudoMoves())
	sortMoves(legalMoves)
	return legalMoves
}

func (p *Position) getPseudoMoves() []Move {
	moves := make([]Move, 0, 64)
	for sq := A1; sq <= H8; sq++ {
		piece, ok := p.board.PieceAt(sq)
		if !ok || piece.Color != p.turn {
			continue
		}
		switch piece.Role {
		case Pawn:
			moves = p.getPseudoPawnMoves(moves, sq)
		case Knight:
			moves = p.getPseudoStepMoves(moves, sq, Knight, knightDirs[:])
		case Bishop:
			moves = p.getPseudoSlideMoves(moves, sq, Bishop, bishopDirs[:])
		case Rook:
			moves = p.getPseudoSlideMoves(moves, sq, Rook, rookDirs[:])
		case Queen:
			moves = p.getPseudoSlideMoves(moves, sq, Queen, bishopDirs[:])
			moves = p.getPseudoSlideMoves(moves, sq, Queen, rookDirs[:])
		case King:
			moves = p.getPseudoStepMoves(moves, sq, King, kingDirs[:])
			moves = p.getCastleMoves(moves, sq)
		}
	}
	return moves
}

// filterLegalMoves keeps the moves that do not leave the mover's king attacked.
// Pins and discovered checks through an en passant capture fall out of this check.
func (p *Position) filterLegalMoves(pseudoMoves []Move) []Move {
	legalMoves := pseudoMoves[:0]
	for _, move := range pseudoMoves {
		after := p.board.apply(move, p.turn)
		if !isKingInCheck(&after, p.turn) {
			legalMoves = append(legalMoves, move)
		}
	}
	return legalMoves
}

func (p *Position) getPseudoPawnMoves(moves []Move, from Square) []Move {
	fwd := pawnForward(p.turn)
	lastRank := 7
	startRank := 1
	if p.turn == Black {
		lastRank, startRank = 0, 6
	}

	addPawnMove := func(to Square, capture Role) {
		if to.Rank() != lastRank {
			moves = append(moves, Normal{Role: Pawn, From: from, Capture: capture, To: to})
			return
		}
		for _, promo := range promotionRoles {
			moves = append(moves, Normal{Role: Pawn, From: from, Capture: capture, To: to, Promotion: promo})
		}
	}

	// forward 1, then forward 2 from the start rank if both squares are free
	if to, ok := from.Offset(0, fwd); ok && p.board.isEmpty(to) {
		addPawnMove(to, NoRole)
		if from.Rank() == startRank {
			if to2, _ := from.Offset(0, 2*fwd); p.board.isEmpty(to2) {
				addPawnMove(to2, NoRole)
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		to, ok := from.Offset(df, fwd)
		if !ok {
			continue
		}
		if target, occupied := p.board.PieceAt(to); occupied && target.Color != p.turn {
			addPawnMove(to, target.Role)
		}
		if to == p.epSquare {
			moves = append(moves, EnPassant{From: from, To: to})
		}
	}
	return moves
}

func (p *Position) getPseudoStepMoves(moves []Move, from Square, role Role, dirs [][2]int) []Move {
	for _, dir := range dirs {
		to, ok := from.Offset(dir[0], dir[1])
		if !ok {
			continue
		}
		target, occupied := p.board.PieceAt(to)
		if occupied && target.Color == p.turn {
			continue
		}
		moves = append(moves, Normal{Role: role, From: from, Capture: target.Role, To: to})
	}
	return moves
}

func (p *Position) getPseudoSlideMoves(moves []Move, from Square, role Role, dirs [][2]int) []Move {
	for _, dir := range dirs {
		to, ok := from.Offset(dir[0], dir[1])
		for ok {
			target, occupied := p.board.PieceAt(to)
			if occupied {
				if target.Color != p.turn {
					moves = append(moves, Normal{Role: role, From: from, Capture: target.Role, To: to})
				}
				break
			}
			moves = append(moves, Normal{Role: role, From: from, To: to})
			to, ok = to.Offset(dir[0], dir[1])
		}
	}
	return moves
}

// getCastleMoves emits a castle only when the right is held, the king is not in
// check, the squares between king and rook are empty and no square the king crosses
// is attacked.
func (p *Position) getCastleMoves(moves []Move, king Square) []Move {
	them := p.turn.Other()
	if p.board.isAttacked(king, them) {
		return moves
	}
castling:
	for _, side := range castleSides {
		if side.color != p.turn || side.king != king || !p.castling.Has(side.right) {
			continue
		}
		for _, sq := range side.between {
			if !p.board.isEmpty(sq) {
				continue castling
			}
		}
		for _, sq := range side.transit {
			if p.board.isAttacked(sq, them) {
				continue castling
			}
		}
		moves = append(moves, Castle{King: side.king, Rook: side.rook})
	}
	return moves
}

// apply returns a copy of the board with m played by color c.
func (b Board) apply(m Move, c Color) Board {
	switch m := m.(type) {
	case Normal:
		piece := b[m.From]
		if m.Promotion != NoRole {
			piece.Role = m.Promotion
		}
		b[m.From] = Piece{}
		b[m.To] = piece
	case EnPassant:
		b[m.To] = b[m.From]
		b[m.From] = Piece{}
		b[SquareAt(m.To.File(), m.From.Rank())] = Piece{}
	case Castle:
		b[m.King] = Piece{}
		b[m.Rook] = Piece{}
		b[m.KingTo()] = Piece{Color: c, Role: King}
		b[m.RookTo()] = Piece{Color: c, Role: Rook}
	case Put:
		b[m.To] = Piece{Color: c, Role: m.Role}
	}
	return b
}

func promotionOrder(m Move) int {
	if n, ok := m.(Normal); ok {
		for i, r := range promotionRoles {
			if n.Promotion == r {
				return i
			}
		}
	}
	return 0
}

func sortMoves(moves []Move) {
	sort.SliceStable(moves, func(i, j int) bool {
		fi, ti := moveSquares(moves[i])
		fj, tj := moveSquares(moves[j])
		if fi != fj {
			return fi < fj
		}
		if ki, kj := moves[i].Kind(), moves[j].Kind(); ki != kj {
			return ki < kj
		}
		if ti != tj {
			return ti < tj
		}
		return promotionOrder(moves[i]) < promotionOrder(moves[j])
	})
}
