package search

import (
	"testing"
	"time"

	"github.com/arowdev/bgmcts/pkg/engine"
)

func TestChooseMoveReturnsLegalMove(t *testing.T) {
	p := engine.NewPosition()
	p.Apply(engine.Move{Kind: engine.DiceRoll, I: 5, J: 2})

	opts := DefaultOptions()
	opts.MaxRollouts = 200
	opts.Seed = 1

	move, value := ChooseMove(p, opts)

	found := false
	for _, m := range p.LegalMoves() {
		if m == move {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("ChooseMove returned a move not in the legal set: %+v", move)
	}
	if value < 0 || value > 1 {
		t.Errorf("expected a value readout in [0, 1], got %v", value)
	}
}

func TestChooseMoveSingleLegalMoveShortCircuit(t *testing.T) {
	p := engine.NewPosition()
	var board [2][engine.NumPoints]uint8
	board[engine.White][0] = 1
	board[engine.Black][23] = 1
	p.Reset(board, [2]uint8{}, [2]uint8{14, 14})
	p.Apply(engine.Move{Kind: engine.DiceRoll, I: 1, J: 2})

	moves := p.LegalMoves()
	if len(moves) != 1 {
		t.Fatalf("test setup invalid: expected exactly one legal move, got %d: %+v", len(moves), moves)
	}

	opts := DefaultOptions()
	opts.Seed = 1
	opts.MaxRollouts = 50

	move, value := ChooseMove(p, opts)
	if move != moves[0] {
		t.Errorf("expected the single legal move to be returned unchanged, got %+v", move)
	}
	if value < 0 || value > 1 {
		t.Errorf("expected a value readout in [0, 1], got %v", value)
	}
}

func TestChooseMoveRespectsTimeBudget(t *testing.T) {
	p := engine.NewPosition()
	p.Apply(engine.Move{Kind: engine.DiceRoll, I: 6, J: 1})

	opts := DefaultOptions()
	opts.TimeBudget = 20 * time.Millisecond
	opts.Seed = 42

	start := time.Now()
	ChooseMove(p, opts)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("ChooseMove took %v, expected to respect a short time budget", elapsed)
	}
}

func TestUniformRolloutPolicyReturnsZeroOrOne(t *testing.T) {
	p := engine.NewPosition()
	p.Apply(engine.Move{Kind: engine.DiceRoll, I: 4, J: 3})

	rng := newRNG(7)
	v := UniformRolloutPolicy(rng, p)
	if v != 0 && v != 1 {
		t.Errorf("expected UniformRolloutPolicy to return exactly 0 or 1, got %v", v)
	}
}
