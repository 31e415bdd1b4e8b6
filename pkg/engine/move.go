package engine

import "github.com/arowdev/bgmcts/internal/positionid"

// MoveKind discriminates the two Move variants described in the data
// model: a dice roll (nature's turn) or a compound checker turn.
type MoveKind int8

const (
	Checker MoveKind = iota
	DiceRoll
)

// maxSteps is the most pip-moves a single compound turn can contain
// (four, for doubles).
const maxSteps = 4

// Move is a tagged variant: either a DiceRoll{I,J} produced on
// nature's turn, or a compound Checker turn of up to four individual
// pip-moves (From[i], To[i], Pips[i]). Unused trailing step slots are
// marked by Pips[i] == 0 (From/To legitimately hold -1 themselves, as
// the bar/bear-off sentinel, so they can't mark "unused").
type Move struct {
	Kind MoveKind
	I, J int8

	From [maxSteps]int8
	To   [maxSteps]int8
	Pips [maxSteps]int8
}

// NumSteps returns how many checker sub-moves this compound turn
// contains: 0 for a forfeited/no-op turn or an empty DiceRoll field
// set, up to 4 for a double.
func (m Move) NumSteps() int {
	for i := 0; i < maxSteps; i++ {
		if m.Pips[i] == 0 {
			return i
		}
	}
	return maxSteps
}

// IsPass reports whether this is the forfeit no-op move returned when
// the side to move has no legal pip-move at all.
func (m Move) IsPass() bool {
	return m.Kind == Checker && m.NumSteps() == 0
}

// Hash returns a stable 64-bit hash of the move, for GUI lookup of a
// clicked move against the legal set (§6).
func (m Move) Hash() uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	h := uint64(offset64)
	mix := func(b byte) {
		h ^= uint64(b)
		h *= prime64
	}
	mix(byte(m.Kind))
	mix(byte(m.I))
	mix(byte(m.J))
	for i := 0; i < maxSteps; i++ {
		mix(byte(m.From[i]))
		mix(byte(m.To[i]))
		mix(byte(m.Pips[i]))
	}
	return h
}

func dir(side Side) int {
	if side == White {
		return -1
	}
	return 1
}

// distanceToOff returns the number of pips a checker on src needs to
// bear off for side.
func distanceToOff(side Side, src int) int {
	if side == White {
		return src + 1
	}
	return NumPoints - src
}

func homeRange(side Side) (lo, hi int) {
	if side == White {
		return 0, 5
	}
	return 18, 23
}

// travelPoint maps a travel-order index (0 == nearest the bar entry
// area, 23 == deepest into the home board) to the absolute point for
// side, so the move generator can share one iteration order for both
// directions of travel.
func travelPoint(side Side, idx int) int {
	if side == White {
		return 23 - idx
	}
	return idx
}

// checkerGen accumulates the legal compound moves for one checker
// turn: the set of distinct resulting positions reachable by playing
// the maximal number of pips, per §4.1.
type checkerGen struct {
	side     Side
	opp      Side
	maxSteps int
	maxPips  int
	moves    []Move
	seen     map[positionid.Key]bool

	// origBoard/origBar/origBorneOff are the position's state at the
	// start of the whole turn, before any sub-move in any candidate
	// sequence — save() always replays a path from here, never from
	// the evolving per-depth board, so a sequence's earlier steps are
	// never re-applied on top of themselves.
	origBoard    [2][NumPoints]uint8
	origBar      [2]uint8
	origBorneOff [2]uint8
}

// LegalCheckerMoves enumerates the legal compound moves for the side
// to move on a checker turn. If no pip sequence can be played at all,
// returns a single forfeit no-op move (§4.1).
func LegalCheckerMoves(p *Position) []Move {
	side := p.turn
	gen := &checkerGen{
		side: side, opp: side.Opponent(),
		seen:         map[positionid.Key]bool{},
		origBoard:    p.board,
		origBar:      p.bar,
		origBorneOff: p.borneOff,
	}

	for _, order := range diceOrderings(p.dice) {
		gen.explore(order, 0, 23, nil, p.board, p.bar, p.borneOff)
	}

	if len(gen.moves) == 0 {
		return []Move{{Kind: Checker}}
	}
	return gen.moves
}

// diceOrderings returns the die-value sequences to try. Doubles have
// one ordering (four equal pips); a mixed roll is tried in both
// orders so either die may be played first.
func diceOrderings(dice []int) [][]int {
	if len(dice) == 4 {
		return [][]int{dice}
	}
	if len(dice) == 2 && dice[0] != dice[1] {
		return [][]int{{dice[0], dice[1]}, {dice[1], dice[0]}}
	}
	return [][]int{dice}
}

// step is one constituent pip-move, tracked through the recursion so
// save() can rebuild a completed sequence's Move and resulting position
// by replaying it from the turn's starting state.
type step struct {
	src, dst int
	pips     int8
}

// explore recursively tries every legal sub-move at depth, saving
// completed sequences (via save) at every point a sequence can no
// longer be extended. idxLimit is the highest travel-order index tried
// at this depth; every call passes 23 (the full range), and different
// orderings that reach the same position are collapsed by save().
//
// Returns true if no sub-move was legal at this depth (the sequence
// ending one level up is therefore maximal and should be saved).
func (g *checkerGen) explore(dice []int, depth, idxLimit int, path []step,
	board [2][NumPoints]uint8, bar, borneOff [2]uint8) bool {

	if depth >= len(dice) || dice[depth] == 0 {
		return true
	}
	pip := dice[depth]
	used := false

	if bar[g.side] > 0 {
		src := barPoint(g.side)
		dst := src + pip*dir(g.side)
		if dst < 0 || dst >= NumPoints || board[g.opp][dst] >= 2 {
			return true // entry blocked: this sequence can't be extended
		}

		nb, nbar, nbo := board, bar, borneOff
		applySubMove(&nb, &nbar, &nbo, g.side, g.opp, src, dst)
		nPath := append(append([]step(nil), path...), step{src, dst, int8(pip)})

		if g.explore(dice, depth+1, 23, nPath, nb, nbar, nbo) {
			g.save(nPath)
		}
		return false
	}

	for idx := idxLimit; idx >= 0; idx-- {
		src := travelPoint(g.side, idx)
		if board[g.side][src] == 0 {
			continue
		}
		dst, ok := checkerDest(g.side, src, pip, board, bar)
		if !ok {
			continue
		}
		used = true

		nb, nbar, nbo := board, bar, borneOff
		applySubMove(&nb, &nbar, &nbo, g.side, g.opp, src, dst)
		nPath := append(append([]step(nil), path...), step{src, dst, int8(pip)})

		// Always recurse over the full travel range: a sub-move pushes
		// the checker to a higher travel index, so capping the next
		// depth's idxLimit at this depth's idx (as doubles did before)
		// makes a checker's second move unreachable. Duplicate
		// orderings of the same source multiset are instead collapsed
		// by save()'s positionid dedup.
		if g.explore(dice, depth+1, 23, nPath, nb, nbar, nbo) {
			g.save(nPath)
		}
	}

	return !used
}

// checkerDest reports the legal destination for moving src by pip
// pips for side, applying the bear-off condition from §4.1 (2).
func checkerDest(side Side, src, pip int, board [2][NumPoints]uint8, bar [2]uint8) (int, bool) {
	opp := side.Opponent()
	dst := src + pip*dir(side)

	if dst >= 0 && dst < NumPoints {
		if board[opp][dst] >= 2 {
			return 0, false
		}
		return dst, true
	}

	// Off the board: only legal if bearing off.
	lo, hi := homeRange(side)
	if bar[side] > 0 {
		return 0, false
	}
	for pt := 0; pt < NumPoints; pt++ {
		if pt < lo || pt > hi {
			if board[side][pt] > 0 {
				return 0, false
			}
		}
	}

	exact := pip == distanceToOff(side, src)
	if exact {
		return bearOffPoint(side), true
	}

	// Overshoot: legal only if src is the farthest-from-home occupied point.
	farthest := -1
	for pt := lo; pt <= hi; pt++ {
		if board[side][pt] == 0 {
			continue
		}
		if farthest == -1 || distanceToOff(side, pt) > distanceToOff(side, farthest) {
			farthest = pt
		}
	}
	if farthest == src {
		return bearOffPoint(side), true
	}
	return 0, false
}

// applySubMove mutates board/bar/borneOff by moving one checker of
// side from src to dst, handling bar re-entry, hits, and bearing off.
func applySubMove(board *[2][NumPoints]uint8, bar *[2]uint8, borneOff *[2]uint8, side, opp Side, src, dst int) {
	if src == barPoint(side) {
		bar[side]--
	} else {
		board[side][src]--
	}

	if dst == bearOffPoint(side) {
		borneOff[side]++
		return
	}

	if board[opp][dst] == 1 {
		board[opp][dst] = 0
		bar[opp]++
	}
	board[side][dst]++
}

// save records a completed compound move, keeping only the sequences
// that use the maximal number of sub-moves (and, among those, the
// maximal total pip count — see §4.1 and §9's note on the single-die
// priority rule), deduplicated on the resulting position.
func (g *checkerGen) save(path []step) {
	n := len(path)
	pips := 0
	for _, s := range path {
		pips += int(s.pips)
	}

	if n < g.maxSteps {
		return
	}
	if n > g.maxSteps {
		g.maxSteps = n
		g.maxPips = pips
		g.moves = g.moves[:0]
		g.seen = map[positionid.Key]bool{}
	} else if pips < g.maxPips {
		return
	} else if pips > g.maxPips {
		g.maxPips = pips
		g.moves = g.moves[:0]
		g.seen = map[positionid.Key]bool{}
	}

	board, bar, borneOff := g.origBoard, g.origBar, g.origBorneOff
	move := Move{Kind: Checker}
	for i, s := range path {
		move.From[i] = int8(s.src)
		move.To[i] = int8(s.dst)
		move.Pips[i] = s.pips
		applySubMove(&board, &bar, &borneOff, g.side, g.opp, s.src, s.dst)
	}

	key := positionid.MakeKey(board, bar, borneOff)
	if g.seen[key] {
		return
	}
	g.seen[key] = true
	g.moves = append(g.moves, move)
}

// ApplyMove applies m to a copy of board/bar/borneOff and returns the
// result, without mutating the inputs.
func ApplyMove(side Side, board [2][NumPoints]uint8, bar, borneOff [2]uint8, m Move) ([2][NumPoints]uint8, [2]uint8, [2]uint8) {
	opp := side.Opponent()
	n := m.NumSteps()
	for i := 0; i < n; i++ {
		applySubMove(&board, &bar, &borneOff, side, opp, int(m.From[i]), int(m.To[i]))
	}
	return board, bar, borneOff
}
