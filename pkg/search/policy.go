package search

import (
	"math"
	"math/rand"

	"github.com/arowdev/bgmcts/internal/feature"
	"github.com/arowdev/bgmcts/pkg/engine"
)

// UniformRolloutPolicy plays pos to completion choosing uniformly at
// random among the legal moves at every turn, and returns 1 if WHITE
// won, 0 if BLACK won — the plain random-rollout default policy named
// in §4.2 and §9.
func UniformRolloutPolicy(rng *rand.Rand, pos *engine.Position) float64 {
	p := pos.Clone()
	for !p.GameEnded() {
		moves := p.LegalMoves()
		p.Apply(moves[rng.Intn(len(moves))])
	}
	if p.Winner() == engine.White {
		return 1
	}
	return 0
}

// TruncatedRolloutPolicy plays pos forward at most depth checker
// turns (dice rolls don't count against depth), then falls back to
// model's linear evaluation instead of continuing to a terminal
// position — the "truncated rollout plus linear value approximator"
// variant named in §9.
func TruncatedRolloutPolicy(depth int, model feature.LinearModel) DefaultPolicy {
	return func(rng *rand.Rand, pos *engine.Position) float64 {
		p := pos.Clone()
		played := 0
		for !p.GameEnded() && played < depth {
			moves := p.LegalMoves()
			move := moves[rng.Intn(len(moves))]
			p.Apply(move)
			if move.Kind == engine.Checker {
				played++
			}
		}
		if p.GameEnded() {
			if p.Winner() == engine.White {
				return 1
			}
			return 0
		}
		// model.Value is an unclamped linear score; §4.2/§6 require
		// every DefaultPolicy to return a value in [0, 1], so the
		// consumer (this policy) clamps it.
		return math.Max(0, math.Min(1, model.Value(p)))
	}
}
