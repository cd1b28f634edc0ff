package model

import "fmt"

// HandSquare is the origin reported for a Put move, which has no board origin.
const HandSquare = "Hand"

// Record is the serialized form of a legal move. Capture and Promotion are null
// when absent; Type is dropped from JSON when left empty.
type Record struct {
	Type      string  `json:"type,omitempty"`
	Role      string  `json:"role"`
	From      string  `json:"from"`
	Capture   *string `json:"capture"`
	To        string  `json:"to"`
	Promotion *string `json:"promotion"`
}

func optionalRole(r Role) *string {
	if r == NoRole {
		return nil
	}
	s := r.String()
	return &s
}

// NewRecord serializes m. For a castle, To is the king's destination, not the rook's
// square.
func NewRecord(m Move) Record {
	switch m := m.(type) {
	case Normal:
		return Record{
			Type:      KindNormal.String(),
			Role:      m.Role.String(),
			From:      m.From.String(),
			Capture:   optionalRole(m.Capture),
			To:        m.To.String(),
			Promotion: optionalRole(m.Promotion),
		}
	case EnPassant:
		return Record{
			Type:    KindEnPassant.String(),
			Role:    Pawn.String(),
			From:    m.From.String(),
			Capture: optionalRole(Pawn),
			To:      m.To.String(),
		}
	case Castle:
		return Record{
			Type: KindCastle.String(),
			Role: King.String(),
			From: m.King.String(),
			To:   m.KingTo().String(),
		}
	case Put:
		return Record{
			Type: KindPut.String(),
			Role: m.Role.String(),
			From: HandSquare,
			To:   m.To.String(),
		}
	}
	panic(fmt.Sprintf("model: unknown move variant %T", m))
}

// NewRecords serializes moves in order. The result is never nil, so an empty move
// list encodes as a JSON empty array.
func NewRecords(moves []Move, includeType bool) []Record {
	records := make([]Record, 0, len(moves))
	for _, m := range moves {
		r := NewRecord(m)
		if !includeType {
			r.Type = ""
		}
		records = append(records, r)
	}
	return records
}
