package model

import "fmt"

// MoveKind discriminates the Move variants. The numeric order is the order moves
// from the same origin square are listed in.
type MoveKind uint8

const (
	KindNormal MoveKind = iota
	KindEnPassant
	KindCastle
	KindPut
)

func (k MoveKind) String() string {
	switch k {
	case KindNormal:
		return "Normal"
	case KindEnPassant:
		return "EnPassant"
	case KindCastle:
		return "Castle"
	case KindPut:
		return "Put"
	}
	return fmt.Sprintf("MoveKind(%d)", uint8(k))
}

// Move is a closed set of variants: Normal, EnPassant, Castle and Put. Consumers
// type-switch over them; no other package can add a variant.
type Move interface {
	Kind() MoveKind
	sealed()
}

// Normal is any move that is not en passant, castling or a drop. Capture and
// Promotion are NoRole when absent.
type Normal struct {
	Role      Role
	From      Square
	Capture   Role
	To        Square
	Promotion Role
}

// EnPassant is a pawn capturing the pawn that just passed it. The captured pawn is
// not on To.
type EnPassant struct {
	From Square
	To   Square
}

// Castle is identified by the king's and the castling rook's origin squares.
type Castle struct {
	King Square
	Rook Square
}

// Put drops a piece from a reserve. Standard chess never produces it.
type Put struct {
	Role Role
	To   Square
}

func (Normal) Kind() MoveKind    { return KindNormal }
func (EnPassant) Kind() MoveKind { return KindEnPassant }
func (Castle) Kind() MoveKind    { return KindCastle }
func (Put) Kind() MoveKind       { return KindPut }

func (Normal) sealed()    {}
func (EnPassant) sealed() {}
func (Castle) sealed()    {}
func (Put) sealed()       {}

// KingTo is where the king lands: two files from its origin towards the rook.
func (c Castle) KingTo() Square {
	if c.Rook.File() > c.King.File() {
		return SquareAt(6, c.King.Rank())
	}
	return SquareAt(2, c.King.Rank())
}

// RookTo is where the rook lands, on the square the king crossed.
func (c Castle) RookTo() Square {
	if c.Rook.File() > c.King.File() {
		return SquareAt(5, c.King.Rank())
	}
	return SquareAt(3, c.King.Rank())
}

// moveSquares returns the origin and destination of m. A Put has no origin.
func moveSquares(m Move) (from, to Square) {
	switch m := m.(type) {
	case Normal:
		return m.From, m.To
	case EnPassant:
		return m.From, m.To
	case Castle:
		return m.King, m.KingTo()
	case Put:
		return NoSquare, m.To
	}
	panic(fmt.Sprintf("model: unknown move variant %T", m))
}

// MoveUCI renders m in UCI long algebraic notation, e.g. "e2e4", "e7e8q", "e1g1".
func MoveUCI(m Move) string {
	if put, ok := m.(Put); ok {
		return fmt.Sprintf("%c@%s", put.Role.getRoleLetter(), put.To.getSquareNotation())
	}
	from, to := moveSquares(m)
	s := from.getSquareNotation() + to.getSquareNotation()
	if n, ok := m.(Normal); ok && n.Promotion != NoRole {
		s += string(n.Promotion.getRoleLetter() + 'a' - 'A')
	}
	return s
}
