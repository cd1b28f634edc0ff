package model

import (
	"fmt"
	"strconv"
	"strings"
)

type parseConfig struct {
	allowOppositeCheck bool
}

// ParseOption adjusts how strictly ParseFEN validates a position.
type ParseOption func(*parseConfig)

// AllowOppositeCheck accepts positions where the side not to move is in check.
// Such positions cannot arise in a game but are sometimes fed in for analysis.
func AllowOppositeCheck(allow bool) ParseOption {
	return func(c *parseConfig) {
		c.allowOppositeCheck = allow
	}
}

// ParseFEN decodes a FEN string into a validated Position. Either the whole position
// is well formed and legal, or a *FenError is returned.
func ParseFEN(input string, opts ...ParseOption) (*Position, error) {
	cfg := parseConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	fields := strings.Fields(input)
	if len(fields) < 4 || len(fields) > 6 {
		return nil, fenError(ErrFieldCountMismatch, "fen", "got %d fields, want 4 to 6", len(fields))
	}

	pos := &Position{epSquare: NoSquare, fullmoves: 1}
	if err := parsePlacement(&pos.board, fields[0]); err != nil {
		return nil, err
	}

	switch fields[1] {
	case "w":
		pos.turn = White
	case "b":
		pos.turn = Black
	default:
		return nil, fenError(ErrInvalidColor, "active color", "%q", fields[1])
	}

	castling, err := parseCastling(fields[2])
	if err != nil {
		return nil, err
	}
	pos.castling = castling

	if pos.epSquare, err = parseEnPassant(fields[3], pos.turn); err != nil {
		return nil, err
	}

	if len(fields) > 4 {
		if pos.halfmoves, err = parseCounter("halfmove clock", fields[4]); err != nil {
			return nil, err
		}
	}
	if len(fields) > 5 {
		if pos.fullmoves, err = parseCounter("fullmove number", fields[5]); err != nil {
			return nil, err
		}
		if pos.fullmoves == 0 {
			return nil, fenError(ErrInvalidCounter, "fullmove number", "must start at 1")
		}
	}

	if err := pos.validate(cfg); err != nil {
		return nil, err
	}
	return pos, nil
}

func parsePlacement(board *Board, field string) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return fenError(ErrInvalidPlacement, "placement", "got %d ranks, want 8", len(ranks))
	}
	for i, group := range ranks {
		rank := 7 - i
		file := 0
		for _, c := range group {
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				if file > 8 {
					break
				}
				continue
			}
			piece, ok := pieceFromLetter(c)
			if !ok {
				return fenError(ErrInvalidPlacement, "placement", "unexpected %q in rank %d", c, rank+1)
			}
			if file >= 8 {
				file++
				break
			}
			board[SquareAt(file, rank)] = piece
			file++
		}
		if file != 8 {
			return fenError(ErrInvalidPlacement, "placement", "rank %d does not span 8 files", rank+1)
		}
	}
	return nil
}

func pieceFromLetter(c rune) (Piece, bool) {
	color := White
	if c >= 'a' && c <= 'z' {
		color = Black
		c -= 'a' - 'A'
	}
	var role Role
	switch c {
	case 'P':
		role = Pawn
	case 'N':
		role = Knight
	case 'B':
		role = Bishop
	case 'R':
		role = Rook
	case 'Q':
		role = Queen
	case 'K':
		role = King
	default:
		return Piece{}, false
	}
	return Piece{Color: color, Role: role}, true
}

func parseCastling(field string) (CastlingRights, error) {
	if field == "-" {
		return NoCastling, nil
	}
	rights := NoCastling
	for _, c := range field {
		var r CastlingRights
		switch c {
		case 'K':
			r = WhiteKingside
		case 'Q':
			r = WhiteQueenside
		case 'k':
			r = BlackKingside
		case 'q':
			r = BlackQueenside
		default:
			return NoCastling, fenError(ErrInvalidCastling, "castling", "unexpected %q", c)
		}
		if rights.Has(r) {
			return NoCastling, fenError(ErrInvalidCastling, "castling", "duplicate %q", c)
		}
		rights |= r
	}
	return rights, nil
}

func parseEnPassant(field string, turn Color) (Square, error) {
	if field == "-" {
		return NoSquare, nil
	}
	sq, ok := ParseSquare(field)
	if !ok {
		return NoSquare, fenError(ErrInvalidEnPassant, "en passant", "%q is not a square", field)
	}
	// the target sits behind a pawn the side not to move just pushed two squares
	wantRank := 2
	if turn == White {
		wantRank = 5
	}
	if sq.Rank() != wantRank {
		return NoSquare, fenError(ErrInvalidEnPassant, "en passant", "%s is not on rank %d", field, wantRank+1)
	}
	return sq, nil
}

func parseCounter(field, s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fenError(ErrInvalidCounter, field, "%q", s)
	}
	return uint32(n), nil
}

// validate performs the cross-field legality checks that need the whole position.
func (p *Position) validate(cfg parseConfig) error {
	var kings, pawns, pieces [2]int
	for sq := A1; sq <= H8; sq++ {
		piece, ok := p.board.PieceAt(sq)
		if !ok {
			continue
		}
		pieces[piece.Color]++
		switch piece.Role {
		case King:
			kings[piece.Color]++
		case Pawn:
			pawns[piece.Color]++
			if sq.Rank() == 0 || sq.Rank() == 7 {
				return fenError(ErrIllegalPosition, "placement", "pawn on back rank %s", sq)
			}
		}
	}
	for _, c := range []Color{White, Black} {
		if kings[c] != 1 {
			return fenError(ErrIllegalPosition, "placement", "%s has %d kings", c, kings[c])
		}
		if pieces[c] > 16 || pawns[c] > 8 {
			return fenError(ErrIllegalPosition, "placement", "%s has too much material", c)
		}
	}

	for _, side := range castleSides {
		if !p.castling.Has(side.right) {
			continue
		}
		if p.board[side.king] != (Piece{Color: side.color, Role: King}) ||
			p.board[side.rook] != (Piece{Color: side.color, Role: Rook}) {
			return fenError(ErrInvalidCastling, "castling", "%c without king and rook on their home squares", side.letter)
		}
	}

	if p.epSquare != NoSquare {
		// the pushed pawn stands one rank past the target, seen from the side to move
		fwd := pawnForward(p.turn)
		pushed, _ := p.epSquare.Offset(0, -fwd)
		origin, _ := p.epSquare.Offset(0, fwd)
		if p.board[pushed] != (Piece{Color: p.turn.Other(), Role: Pawn}) ||
			!p.board.isEmpty(p.epSquare) || !p.board.isEmpty(origin) {
			return fenError(ErrIllegalPosition, "en passant", "no double-stepped pawn behind %s", p.epSquare)
		}
	}

	if !cfg.allowOppositeCheck && isKingInCheck(&p.board, p.turn.Other()) {
		return fenError(ErrIllegalPosition, "placement", "%s is in check but it is %s to move", p.turn.Other(), p.turn)
	}
	if king, _ := p.board.findKing(p.turn); p.board.attackers(king, p.turn.Other(), 3) > 2 {
		return fenError(ErrIllegalPosition, "placement", "%s is checked by more than two pieces", p.turn)
	}
	return nil
}

// FEN renders the position back into Forsyth-Edwards Notation.
func (p *Position) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece, ok := p.board.PieceAt(SquareAt(file, rank))
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(piece.getPieceLetter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.turn == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	if p.castling == NoCastling {
		sb.WriteByte('-')
	}
	for _, side := range castleSides {
		if p.castling.Has(side.right) {
			sb.WriteByte(side.letter)
		}
	}

	sb.WriteByte(' ')
	if p.epSquare == NoSquare {
		sb.WriteByte('-')
	} else {
		sb.WriteString(p.epSquare.getSquareNotation())
	}

	fmt.Fprintf(&sb, " %d %d", p.halfmoves, p.fullmoves)
	return sb.String()
}

func (p *Position) String() string {
	return p.FEN()
}
