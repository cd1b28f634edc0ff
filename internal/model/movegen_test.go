package model

import (
	"testing"

	"github.com/benbeisheim/legalmoves-backend/internal/testutil"
)

func mustParse(t *testing.T, fen string) *Position {
	t.Helper()
	pos, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return pos
}

func movesFrom(moves []Move, from Square) []Move {
	var out []Move
	for _, m := range moves {
		if f, _ := moveSquares(m); f == from {
			out = append(out, m)
		}
	}
	return out
}

func castles(moves []Move) []Castle {
	var out []Castle
	for _, m := range moves {
		if c, ok := m.(Castle); ok {
			out = append(out, c)
		}
	}
	return out
}

func TestLegalMovesStartingPosition(t *testing.T) {
	pos := mustParse(t, StartingFEN)
	moves := pos.LegalMoves()
	testutil.AssertEqual(t, len(moves), 20)

	// ordered by origin: b1 knight first, h2 pawn last
	testutil.AssertEqual(t, moves[0], Move(Normal{Role: Knight, From: B1, To: SquareAt(0, 2)}))
	testutil.AssertEqual(t, moves[1], Move(Normal{Role: Knight, From: B1, To: SquareAt(2, 2)}))
	testutil.AssertEqual(t, moves[19], Move(Normal{Role: Pawn, From: SquareAt(7, 1), To: SquareAt(7, 3)}))
}

func TestLegalMovesDeterministic(t *testing.T) {
	for _, fen := range []string{
		StartingFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	} {
		first := mustParse(t, fen).LegalMoves()
		second := mustParse(t, fen).LegalMoves()
		testutil.AssertEqual(t, second, first, fen)
	}
}

func TestLegalMovesOrdering(t *testing.T) {
	pos := mustParse(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	moves := pos.LegalMoves()
	for i := 1; i < len(moves); i++ {
		pf, pt := moveSquares(moves[i-1])
		cf, ct := moveSquares(moves[i])
		switch {
		case pf < cf:
		case pf > cf:
			t.Fatalf("move %d (%s) listed before %s by origin", i, MoveUCI(moves[i-1]), MoveUCI(moves[i]))
		case moves[i-1].Kind() > moves[i].Kind():
			t.Fatalf("move %d (%s) listed before %s by kind", i, MoveUCI(moves[i-1]), MoveUCI(moves[i]))
		case moves[i-1].Kind() == moves[i].Kind() && pt > ct:
			t.Fatalf("move %d (%s) listed before %s by destination", i, MoveUCI(moves[i-1]), MoveUCI(moves[i]))
		}
	}
}

func TestPromotionExpansion(t *testing.T) {
	a7, a8 := SquareAt(0, 6), A8
	pos := mustParse(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	want := []Move{
		Normal{Role: Pawn, From: a7, To: a8, Promotion: Queen},
		Normal{Role: Pawn, From: a7, To: a8, Promotion: Rook},
		Normal{Role: Pawn, From: a7, To: a8, Promotion: Bishop},
		Normal{Role: Pawn, From: a7, To: a8, Promotion: Knight},
	}
	testutil.AssertEqual(t, movesFrom(pos.LegalMoves(), a7), want)
}

func TestPromotionWithCapture(t *testing.T) {
	b7 := SquareAt(1, 6)
	pos := mustParse(t, "rn2k3/1P6/8/8/8/8/8/4K3 w - - 0 1")
	moves := movesFrom(pos.LegalMoves(), b7)
	// b8 is blocked and c8 is empty, so only the a8 capture promotes
	testutil.AssertEqual(t, len(moves), 4)
	for _, m := range moves {
		n := m.(Normal)
		testutil.AssertEqual(t, n.To, A8)
		testutil.AssertEqual(t, n.Capture, Rook)
	}
}

func TestPinnedPieces(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		piece string
		want  []string
	}{
		{"bishop pinned on file", "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1", "e2", nil},
		{"rook slides along pin", "4k3/4r3/8/8/8/8/4R3/4K3 w - - 0 1", "e2", []string{"e2e3", "e2e4", "e2e5", "e2e6", "e2e7"}},
		{"knight pinned on diagonal", "4k3/8/8/b7/8/8/3N4/4K3 w - - 0 1", "d2", nil},
		{"pawn pinned on rank", "4k3/8/8/8/r2PK3/8/8/8 w - - 0 1", "d4", nil},
		{"pawn capture along pin", "4k3/8/8/8/8/2b5/3P4/4K3 w - - 0 1", "d2", []string{"d2c3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustParse(t, tt.fen)
			var got []string
			for _, m := range movesFrom(pos.LegalMoves(), mustSquare(t, tt.piece)) {
				got = append(got, MoveUCI(m))
			}
			testutil.AssertEqual(t, got, tt.want)
		})
	}
}

func TestMovesNeverLeaveKingAttacked(t *testing.T) {
	for _, fen := range []string{
		StartingFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"8/8/8/KPp4r/8/8/8/7k w - c6 0 2",
		"4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1",
	} {
		pos := mustParse(t, fen)
		for _, m := range pos.LegalMoves() {
			after := pos.successor(m)
			king, _ := after.KingSquare(pos.Turn())
			if after.IsAttacked(king, after.Turn()) {
				t.Errorf("%s: %s leaves the king attacked", fen, MoveUCI(m))
			}
		}
	}
}

func TestCastlingGating(t *testing.T) {
	kingside := Castle{King: E1, Rook: H1}
	queenside := Castle{King: E1, Rook: A1}
	tests := []struct {
		name string
		fen  string
		want []Castle
	}{
		{"both sides", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", []Castle{queenside, kingside}},
		{"kingside right removed", "r3k2r/8/8/8/8/8/8/R3K2R w Qkq - 0 1", []Castle{queenside}},
		{"queenside right removed", "r3k2r/8/8/8/8/8/8/R3K2R w Kkq - 0 1", []Castle{kingside}},
		{"no rights", "r3k2r/8/8/8/8/8/8/R3K2R w kq - 0 1", nil},
		{"transit square occupied", "r3k2r/8/8/8/8/8/8/R3K1NR w KQkq - 0 1", []Castle{queenside}},
		{"rook side square occupied", "r3k2r/8/8/8/8/8/8/RN2K2R w KQkq - 0 1", []Castle{kingside}},
		{"king in check", "r3k2r/8/8/8/8/8/4r3/R3K2R w KQkq - 0 1", nil},
		{"transit square attacked", "r3k2r/8/8/8/8/8/5r2/R3K2R w KQkq - 0 1", []Castle{queenside}},
		{"destination attacked", "r3k2r/8/8/8/8/8/2r5/R3K2R w KQkq - 0 1", []Castle{kingside}},
		{"b-file attack does not matter", "r3k2r/8/8/8/8/8/1r6/R3K2R w KQkq - 0 1", []Castle{queenside, kingside}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustParse(t, tt.fen)
			testutil.AssertEqual(t, castles(pos.LegalMoves()), tt.want)
		})
	}
}

func TestBlackCastling(t *testing.T) {
	pos := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1")
	want := []Castle{{King: E8, Rook: A8}, {King: E8, Rook: H8}}
	got := castles(pos.LegalMoves())
	testutil.AssertEqual(t, got, want)
	testutil.AssertEqual(t, got[0].KingTo(), C8)
	testutil.AssertEqual(t, got[1].KingTo(), G8)
}

func TestCastleWithMobileRook(t *testing.T) {
	pos := mustParse(t, "r3k2r/8/8/8/3q4/p4p1p/P4P1P/4K2R w Kkq - 0 1")
	want := []Move{
		Normal{Role: King, From: E1, To: F1},
		Castle{King: E1, Rook: H1},
		Normal{Role: Rook, From: H1, To: F1},
		Normal{Role: Rook, From: H1, To: G1},
	}
	testutil.AssertEqual(t, pos.LegalMoves(), want)
}

func TestEnPassant(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want []EnPassant
	}{
		{
			"adjacent pawn only",
			"4k3/8/8/P2pP3/8/8/8/4K3 w - d6 0 2",
			[]EnPassant{{From: SquareAt(4, 4), To: SquareAt(3, 5)}},
		},
		{
			"both sides",
			"4k3/8/8/2PpP3/8/8/8/4K3 w - d6 0 2",
			[]EnPassant{{From: SquareAt(2, 4), To: SquareAt(3, 5)}, {From: SquareAt(4, 4), To: SquareAt(3, 5)}},
		},
		{
			"black captures",
			"4k3/8/8/8/3Pp3/8/8/4K3 b - d3 0 1",
			[]EnPassant{{From: SquareAt(4, 3), To: SquareAt(3, 2)}},
		},
		{
			"capture removes the checking pawn",
			"8/8/8/2k5/3Pp3/8/8/4K3 b - d3 0 1",
			[]EnPassant{{From: SquareAt(4, 3), To: SquareAt(3, 2)}},
		},
		{
			"discovered check along the rank",
			"8/8/8/KPp4r/8/8/8/7k w - c6 0 2",
			nil,
		},
		{
			"no target square",
			"4k3/8/8/3pP3/8/8/8/4K3 w - - 0 2",
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []EnPassant
			for _, m := range mustParse(t, tt.fen).LegalMoves() {
				if ep, ok := m.(EnPassant); ok {
					got = append(got, ep)
				}
			}
			testutil.AssertEqual(t, got, tt.want)
		})
	}
}

func TestNoLegalMoves(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		inCheck bool
	}{
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", false},
		{"back rank mate", "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1", true},
		{"fool's mate", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustParse(t, tt.fen)
			moves := pos.LegalMoves()
			testutil.AssertEqual(t, len(moves), 0)
			testutil.AssertEqual(t, pos.InCheck(), tt.inCheck)
		})
	}
}

func TestMoveUCI(t *testing.T) {
	tests := []struct {
		move Move
		want string
	}{
		{Normal{Role: Pawn, From: SquareAt(4, 1), To: SquareAt(4, 3)}, "e2e4"},
		{Normal{Role: Pawn, From: SquareAt(4, 6), To: E8, Promotion: Queen}, "e7e8q"},
		{Normal{Role: Pawn, From: SquareAt(4, 6), To: D8, Capture: Rook, Promotion: Knight}, "e7d8n"},
		{EnPassant{From: SquareAt(4, 4), To: SquareAt(3, 5)}, "e5d6"},
		{Castle{King: E1, Rook: H1}, "e1g1"},
		{Castle{King: E8, Rook: A8}, "e8c8"},
		{Put{Role: Knight, To: SquareAt(5, 2)}, "N@f3"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			testutil.AssertEqual(t, MoveUCI(tt.move), tt.want)
		})
	}
}
