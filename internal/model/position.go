package model

// CastlingRights is a set of the four standard castling options.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

// Has reports whether every right in r is present.
func (c CastlingRights) Has(r CastlingRights) bool {
	return c&r == r
}

// castleSide describes one castling option on the standard board.
type castleSide struct {
	right CastlingRights
	color Color
	king  Square
	rook  Square
	// squares that must be empty between king and rook
	between []Square
	// squares the king crosses, destination included
	transit []Square
	letter  byte
}

var castleSides = [4]castleSide{
	{WhiteKingside, White, E1, H1, []Square{F1, G1}, []Square{F1, G1}, 'K'},
	{WhiteQueenside, White, E1, A1, []Square{D1, C1, B1}, []Square{D1, C1}, 'Q'},
	{BlackKingside, Black, E8, H8, []Square{F8, G8}, []Square{F8, G8}, 'k'},
	{BlackQueenside, Black, E8, A8, []Square{D8, C8, B8}, []Square{D8, C8}, 'q'},
}

// Position is a parsed, validated chess position. It is never mutated after
// construction; successor positions are built as fresh values.
type Position struct {
	board     Board
	turn      Color
	castling  CastlingRights
	epSquare  Square
	halfmoves uint32
	fullmoves uint32
}

// StartingFEN is the standard initial position.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func (p *Position) Board() Board { return p.board }

func (p *Position) Turn() Color { return p.turn }

func (p *Position) Castling() CastlingRights { return p.castling }

// EnPassantTarget returns the en passant target square, if any.
func (p *Position) EnPassantTarget() (Square, bool) {
	return p.epSquare, p.epSquare != NoSquare
}

func (p *Position) Halfmoves() uint32 { return p.halfmoves }

func (p *Position) Fullmoves() uint32 { return p.fullmoves }

// PieceAt returns the piece on sq and whether there is one.
func (p *Position) PieceAt(sq Square) (Piece, bool) {
	return p.board.PieceAt(sq)
}

// KingSquare returns the square of the king of color c.
func (p *Position) KingSquare(c Color) (Square, bool) {
	return p.board.findKing(c)
}

// IsAttacked reports whether sq is attacked by any piece of color by.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	return p.board.isAttacked(sq, by)
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool {
	return isKingInCheck(&p.board, p.turn)
}

func isKingInCheck(b *Board, c Color) bool {
	king, ok := b.findKing(c)
	if !ok {
		return false
	}
	return b.isAttacked(king, c.Other())
}
