package model

import "fmt"

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Other returns the opposing color.
func (c Color) Other() Color {
	return c ^ 1
}

// Role is the kind of a piece. NoRole marks an empty square or an absent capture/promotion.
type Role uint8

const (
	NoRole Role = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var roleNames = [...]string{"", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}

// getRoleLetter returns the uppercase FEN letter of the role.
func (r Role) getRoleLetter() byte {
	switch r {
	case Pawn:
		return 'P'
	case Knight:
		return 'N'
	case Bishop:
		return 'B'
	case Rook:
		return 'R'
	case Queen:
		return 'Q'
	case King:
		return 'K'
	}
	return '?'
}

// Square is one of the 64 cells, a1 = 0, b1 = 1, ..., h8 = 63.
type Square int8

const NoSquare Square = -1

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

const (
	A8 Square = iota + 56
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// SquareAt returns the square on the given zero-based file and rank.
func SquareAt(file, rank int) Square {
	return Square(rank*8 + file)
}

// ParseSquare reads a lowercase algebraic square such as "e3".
func ParseSquare(s string) (Square, bool) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, false
	}
	return SquareAt(int(s[0]-'a'), int(s[1]-'1')), true
}

func (s Square) File() int { return int(s) & 7 }
func (s Square) Rank() int { return int(s) >> 3 }

// Offset steps df files and dr ranks away, reporting false when that leaves the board.
func (s Square) Offset(df, dr int) (Square, bool) {
	f, r := s.File()+df, s.Rank()+dr
	if !boundaryCheck(f, r) {
		return NoSquare, false
	}
	return SquareAt(f, r), true
}

// String renders the square as an uppercase token, e.g. "E1".
func (s Square) String() string {
	if s < 0 || s > 63 {
		return "NoSquare"
	}
	return fmt.Sprintf("%c%d", 'A'+s.File(), s.Rank()+1)
}

// getSquareNotation renders the square in lowercase algebraic form, e.g. "e1".
func (s Square) getSquareNotation() string {
	return fmt.Sprintf("%c%d", 'a'+s.File(), s.Rank()+1)
}

func boundaryCheck(file, rank int) bool {
	return file >= 0 && file < 8 && rank >= 0 && rank < 8
}

type Piece struct {
	Color Color
	Role  Role
}

// IsEmpty reports whether the piece is the zero value of an empty square.
func (p Piece) IsEmpty() bool {
	return p.Role == NoRole
}

func (p Piece) getPieceLetter() byte {
	l := p.Role.getRoleLetter()
	if p.Color == Black {
		l += 'a' - 'A'
	}
	return l
}

// Board maps each square to the piece standing on it. It is a value type: copying a
// Board yields an independent board.
type Board [64]Piece

// PieceAt returns the piece on sq and whether there is one.
func (b *Board) PieceAt(sq Square) (Piece, bool) {
	p := b[sq]
	return p, !p.IsEmpty()
}

func (b *Board) isEmpty(sq Square) bool {
	return b[sq].IsEmpty()
}

func (b *Board) findKing(c Color) (Square, bool) {
	for sq := A1; sq <= H8; sq++ {
		if b[sq] == (Piece{Color: c, Role: King}) {
			return sq, true
		}
	}
	return NoSquare, false
}

var (
	rookDirs   = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	knightDirs = [8][2]int{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	kingDirs   = [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// pawnForward is the rank direction pawns of c advance in.
func pawnForward(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

// isAttacked reports whether any piece of color by attacks sq. It walks outward from
// sq along each attack pattern, so it works for empty and occupied squares alike.
func (b *Board) isAttacked(sq Square, by Color) bool {
	return b.attackers(sq, by, 1) > 0
}

// attackers counts pieces of color by attacking sq, stopping once limit is reached.
func (b *Board) attackers(sq Square, by Color, limit int) int {
	n := 0
	hit := func(target Square, roles ...Role) bool {
		p := b[target]
		if p.IsEmpty() || p.Color != by {
			return false
		}
		for _, r := range roles {
			if p.Role == r {
				n++
				return true
			}
		}
		return false
	}
	slide := func(dirs [4][2]int, roles ...Role) bool {
		for _, dir := range dirs {
			target, ok := sq.Offset(dir[0], dir[1])
			for ok {
				if !b.isEmpty(target) {
					hit(target, roles...)
					break
				}
				target, ok = target.Offset(dir[0], dir[1])
			}
			if n >= limit {
				return true
			}
		}
		return false
	}
	step := func(dirs [][2]int, role Role) bool {
		for _, dir := range dirs {
			if target, ok := sq.Offset(dir[0], dir[1]); ok {
				hit(target, role)
			}
			if n >= limit {
				return true
			}
		}
		return false
	}

	if slide(rookDirs, Rook, Queen) || slide(bishopDirs, Bishop, Queen) {
		return n
	}
	if step(knightDirs[:], Knight) || step(kingDirs[:], King) {
		return n
	}
	// a pawn of color by attacks sq from one rank behind, relative to its own direction
	back := -pawnForward(by)
	step([][2]int{{-1, back}, {1, back}}, Pawn)
	return n
}
