package search

import (
	"math"
	"math/rand"
	"time"

	"github.com/arowdev/bgmcts/pkg/engine"
)

const noParent = -1
const noChild = -1

// nodeKind distinguishes a decision node (a checker turn, where the
// side to move chooses among LegalMoves via UCB1) from a chance node
// (nature's turn, where the next state is sampled uniformly — see
// §4.2 and §9's note on tagging chance nodes).
type nodeKind int8

const (
	decisionNode nodeKind = iota
	chanceNode
)

// node is one arena slot: the position it represents, its parent and
// children by arena index, the move set corresponding 1:1 to
// children, and the running visit count / backpropagated value sum.
// Value is always accumulated from WHITE's perspective; there is no
// sign flip on backpropagation (§4.2).
type node struct {
	position *engine.Position
	parent   int
	kind     nodeKind
	turn     engine.Side
	moves    []engine.Move
	children []int
	visits   int
	value    float64
}

// tree is the per-call search arena: nodes are appended to a slice
// and referenced by index rather than owned by pointer, so the whole
// tree is released in one step when ChooseMove returns (§5, §9).
type tree struct {
	nodes []node
}

func (t *tree) addNode(pos *engine.Position, parent int) int {
	kind := decisionNode
	if pos.IsNatureTurn() {
		kind = chanceNode
	}

	var moves []engine.Move
	var children []int
	if !pos.GameEnded() {
		moves = pos.LegalMoves()
		children = make([]int, len(moves))
		for i := range children {
			children[i] = noChild
		}
	}

	t.nodes = append(t.nodes, node{
		position: pos,
		parent:   parent,
		kind:     kind,
		turn:     pos.Turn(),
		moves:    moves,
		children: children,
	})
	return len(t.nodes) - 1
}

// ChooseMove runs MCTS from root until opts' time or rollout budget is
// exhausted, and returns the most-visited move along with the
// resulting estimate of WHITE's win probability at root (§4.2's
// "value readout"). root must be a checker-turn decision; callers
// choose moves, not dice rolls.
func ChooseMove(root *engine.Position, opts Options) (engine.Move, float64) {
	// Terminal root: move is undefined (§4.2), so return the zero
	// Move and the actual outcome rather than entering the tree with
	// no children to choose among.
	if root.GameEnded() {
		if root.Winner() == engine.White {
			return engine.Move{}, 1
		}
		return engine.Move{}, 0
	}

	legal := root.LegalMoves()
	if len(legal) == 1 {
		return legal[0], evaluateOnce(root, legal[0], opts)
	}

	c := opts.ExplorationC
	if c == 0 {
		c = math.Sqrt2
	}
	policy := opts.Policy
	if policy == nil {
		policy = UniformRolloutPolicy
	}
	rng := newRNG(opts.Seed)

	t := &tree{}
	t.addNode(root, noParent)

	start := time.Now()
	iterations := 0
	for withinBudget(opts, start, iterations) {
		leaf := t.selectAndExpand(0, c, rng)
		value := t.evaluate(leaf, policy, rng)
		t.backpropagate(leaf, value)

		iterations++
		if opts.Progress != nil && iterations%1000 == 0 {
			opts.Progress(Progress{Iterations: iterations, Budget: opts.MaxRollouts, Elapsed: time.Since(start)})
		}
	}

	best := t.bestChild(0)
	rootNode := t.nodes[0]
	value := 0.5
	if rootNode.visits > 0 {
		value = rootNode.value / float64(rootNode.visits)
	}
	return rootNode.moves[best], value
}

func newRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func withinBudget(opts Options, start time.Time, iterations int) bool {
	if opts.MaxRollouts > 0 && iterations >= opts.MaxRollouts {
		return false
	}
	if opts.TimeBudget > 0 && time.Since(start) >= opts.TimeBudget {
		return false
	}
	return true
}

// evaluateOnce handles §9's single-legal-move short circuit: there is
// nothing to choose between, so the move is returned immediately with
// one policy evaluation of the resulting position in place of a full
// search.
func evaluateOnce(pos *engine.Position, move engine.Move, opts Options) float64 {
	policy := opts.Policy
	if policy == nil {
		policy = UniformRolloutPolicy
	}
	rng := newRNG(opts.Seed)

	child := pos.Clone()
	child.Apply(move)
	if child.GameEnded() {
		if child.Winner() == engine.White {
			return 1
		}
		return 0
	}
	return policy(rng, child)
}

// selectAndExpand walks down from idx, expanding the first untried
// move it finds (first-visit expansion, §4.2), or descending via
// UCB1 (decision nodes) / uniform sampling (chance nodes) once every
// child has been tried at least once. Returns the arena index of the
// newly expanded node, or of a terminal node reached along the way.
func (t *tree) selectAndExpand(idx int, c float64, rng *rand.Rand) int {
	for {
		n := &t.nodes[idx]
		if n.position.GameEnded() {
			return idx
		}

		if untried := t.untriedMoves(idx); len(untried) > 0 {
			i := untried[0]
			child := n.position.Clone()
			child.Apply(n.moves[i])
			childIdx := t.addNode(child, idx)
			t.nodes[idx].children[i] = childIdx
			return childIdx
		}

		if n.kind == chanceNode {
			idx = n.children[rng.Intn(len(n.children))]
		} else {
			idx = t.selectUCB(idx, c)
		}
	}
}

func (t *tree) untriedMoves(idx int) []int {
	n := &t.nodes[idx]
	var untried []int
	for i, ch := range n.children {
		if ch == noChild {
			untried = append(untried, i)
		}
	}
	return untried
}

// selectUCB picks the child of idx maximizing UCB1:
// q(child) + c*sqrt(ln(N_parent)/n_child), where q is always read from
// WHITE's perspective and flipped when the parent's turn is BLACK
// (§4.2).
func (t *tree) selectUCB(idx int, c float64) int {
	n := &t.nodes[idx]
	lnN := math.Log(float64(n.visits))

	best := n.children[0]
	bestScore := math.Inf(-1)
	for _, ch := range n.children {
		child := &t.nodes[ch]
		q := child.value / float64(child.visits)
		if n.turn == engine.Black {
			q = 1 - q
		}
		score := q + c*math.Sqrt(lnN/float64(child.visits))
		if score > bestScore {
			bestScore = score
			best = ch
		}
	}
	return best
}

// evaluate returns the default-policy value of the node at idx:
// the terminal outcome if the game has ended there, otherwise the
// configured DefaultPolicy's estimate.
func (t *tree) evaluate(idx int, policy DefaultPolicy, rng *rand.Rand) float64 {
	n := &t.nodes[idx]
	if n.position.GameEnded() {
		if n.position.Winner() == engine.White {
			return 1
		}
		return 0
	}
	return policy(rng, n.position)
}

// backpropagate adds value to every ancestor of idx (idx included),
// incrementing visit counts along the way. Value is never sign-flipped
// during backpropagation — it is always WHITE's-perspective win
// probability, per §4.2.
func (t *tree) backpropagate(idx int, value float64) {
	for idx != noParent {
		n := &t.nodes[idx]
		n.visits++
		n.value += value
		idx = n.parent
	}
}

// bestChild returns the index (into node.moves/children) of idx's
// child with the highest visit count, ties broken by the side-to-
// move's mean value (perspective-flipped exactly as selectUCB's q),
// further ties broken by move enumeration order (§4.2).
func (t *tree) bestChild(idx int) int {
	n := &t.nodes[idx]
	best := 0
	bestVisits := -1
	bestValue := math.Inf(-1)
	for i, ch := range n.children {
		if ch == noChild {
			continue
		}
		child := &t.nodes[ch]
		v := child.visits
		value := 0.0
		if v > 0 {
			value = child.value / float64(v)
			if n.turn == engine.Black {
				value = 1 - value
			}
		}
		switch {
		case v > bestVisits:
			bestVisits, bestValue, best = v, value, i
		case v == bestVisits && value > bestValue:
			bestValue, best = value, i
		}
	}
	return best
}
