// Package search implements the Monte Carlo Tree Search engine:
// decision nodes for checker turns, chance nodes for dice rolls,
// UCB1 selection, and a pluggable rollout default policy (§4.2).
package search

import (
	"math"
	"math/rand"
	"time"

	"github.com/arowdev/bgmcts/pkg/engine"
)

// DefaultPolicy estimates the value of pos from WHITE's perspective,
// without searching further. It is invoked at the frontier of the
// tree in place of (or at the end of) a random rollout — see §9's
// note on the pluggable default policy.
type DefaultPolicy func(rng *rand.Rand, pos *engine.Position) float64

// Progress reports periodic rollout progress during ChooseMove,
// mirroring the teacher's RolloutProgress/ProgressCallback pattern
// (rollout.go), adapted from a batch-trial count to an MCTS iteration
// count.
type Progress struct {
	Iterations int
	Budget     int // 0 if unbounded by MaxRollouts
	Elapsed    time.Duration
}

// Options configures a single ChooseMove call.
type Options struct {
	// ExplorationC is the UCB1 exploration constant. Zero selects the
	// conventional sqrt(2).
	ExplorationC float64

	// TimeBudget bounds wall-clock search time; zero means unbounded
	// (rely on MaxRollouts instead).
	TimeBudget time.Duration

	// MaxRollouts caps the number of rollouts/evaluations performed;
	// zero means unbounded (rely on TimeBudget instead).
	MaxRollouts int

	// Policy evaluates frontier positions in place of a full random
	// rollout. Nil selects UniformRolloutPolicy.
	Policy DefaultPolicy

	// Seed seeds the search's RNG, making a run reproducible. Zero
	// seeds from the current time.
	Seed int64

	// Progress, if non-nil, is invoked periodically (every 1000
	// iterations) during ChooseMove.
	Progress func(Progress)
}

// defaultMaxRollouts mirrors the teacher's DefaultRolloutOptions
// Trials default (1296 == 36^2, full dice-roll coverage), so a
// DefaultOptions() search terminates on its own instead of relying on
// the caller to remember to set a budget.
const defaultMaxRollouts = 1296

// DefaultOptions returns sensible defaults: sqrt(2) exploration
// constant, a uniform random rollout policy, a 1296-rollout cap (no
// time cap), current-time seeding.
func DefaultOptions() Options {
	return Options{
		ExplorationC: math.Sqrt2,
		MaxRollouts:  defaultMaxRollouts,
		Policy:       UniformRolloutPolicy,
	}
}
