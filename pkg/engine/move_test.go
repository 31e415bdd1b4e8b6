package engine

import (
	"testing"

	"github.com/arowdev/bgmcts/internal/positionid"
)

func freshStart(dice []int) *Position {
	p := NewPosition()
	p.started = true
	p.nature = false
	p.turn = White
	p.dice = dice
	return p
}

func TestLegalCheckerMovesStartingPosition31(t *testing.T) {
	p := freshStart([]int{3, 1})
	moves := LegalCheckerMoves(p)

	if len(moves) == 0 {
		t.Fatal("expected at least one legal move for 3-1 from the starting position")
	}

	for i, m := range moves {
		if m.NumSteps() != 2 {
			t.Errorf("move %d: expected both dice played, got %d steps", i, m.NumSteps())
		}
	}
}

func TestLegalCheckerMovesStartingPositionDoubles(t *testing.T) {
	p := freshStart([]int{6, 6, 6, 6})
	moves := LegalCheckerMoves(p)

	if len(moves) == 0 {
		t.Fatal("expected at least one legal move for 6-6 from the starting position")
	}

	for i, m := range moves {
		if m.NumSteps() != 4 {
			t.Errorf("move %d: expected all four dice played, got %d steps", i, m.NumSteps())
		}
	}
}

func TestLegalCheckerMovesDedupOnResultingPosition(t *testing.T) {
	p := freshStart([]int{3, 1})
	moves := LegalCheckerMoves(p)

	seen := map[positionid.Key]bool{}
	for _, m := range moves {
		board, bar, borneOff := ApplyMove(White, p.board, p.bar, p.borneOff, m)
		k := positionid.MakeKey(board, bar, borneOff)
		if seen[k] {
			t.Errorf("duplicate resulting position found among legal moves: %+v", m)
		}
		seen[k] = true
	}
}

func TestLegalCheckerMovesForcedPass(t *testing.T) {
	p := &Position{nature: false, started: true, turn: White, dice: []int{1, 1, 1, 1}}
	// WHITE fully blocked: every point one pip away occupied by 2+ BLACK checkers.
	p.board[White][23] = 15
	for pt := 0; pt < 24; pt++ {
		if pt != 23 {
			p.board[Black][pt] = 0
		}
	}
	p.board[Black][22] = 2

	moves := LegalCheckerMoves(p)
	if len(moves) != 1 || !moves[0].IsPass() {
		t.Fatalf("expected a single forfeit pass move, got %+v", moves)
	}
}

func TestLegalCheckerMovesMaximalPipsRule(t *testing.T) {
	// WHITE can play the 2 but never the 6, neither before nor after the
	// 2: the legal set must contain only the single 2-pip move.
	p := &Position{nature: false, started: true, turn: White, dice: []int{6, 2}}
	p.board[White][7] = 1
	p.board[White][23] = 1 // stuck outside home, so 7->5 cannot bear off with the 6
	p.board[Black][1] = 2  // blocks the 6 (7->1)
	p.board[Black][21] = 2 // blocks 23->21
	p.board[Black][17] = 2 // blocks 23->17
	p.board[Black][4] = 0

	moves := LegalCheckerMoves(p)
	for _, m := range moves {
		if m.NumSteps() != 1 {
			t.Errorf("expected single-step moves when only one die is playable, got %+v", m)
		}
		if m.Pips[0] != 2 {
			t.Errorf("expected the only playable die (2) to be used, got pip %d", m.Pips[0])
		}
	}
}

func TestApplyMoveBearOff(t *testing.T) {
	var board [2][NumPoints]uint8
	board[White][0] = 1
	bar := [2]uint8{}
	borneOff := [2]uint8{}

	m := Move{Kind: Checker}
	m.From[0], m.To[0], m.Pips[0] = 0, int8(bearOffPoint(White)), 1

	nb, _, nbo := ApplyMove(White, board, bar, borneOff, m)
	if nbo[White] != 1 {
		t.Errorf("expected one checker borne off, got %d", nbo[White])
	}
	if nb[White][0] != 0 {
		t.Errorf("expected point 0 cleared, got %d", nb[White][0])
	}
}

func TestApplyMoveHitsBlot(t *testing.T) {
	var board [2][NumPoints]uint8
	board[White][10] = 1
	board[Black][8] = 1
	bar := [2]uint8{}
	borneOff := [2]uint8{}

	m := Move{Kind: Checker}
	m.From[0], m.To[0], m.Pips[0] = 10, 8, 2

	nb, nbar, _ := ApplyMove(White, board, bar, borneOff, m)
	if nbar[Black] != 1 {
		t.Errorf("expected BLACK checker sent to the bar, got bar count %d", nbar[Black])
	}
	if nb[Black][8] != 0 {
		t.Errorf("expected BLACK's blot removed from point 8")
	}
	if nb[White][8] != 1 {
		t.Errorf("expected WHITE checker on point 8 after the hit")
	}
}
