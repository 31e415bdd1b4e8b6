package engine

// LegalDiceRolls enumerates the legal DiceRoll moves for nature's
// turn. Before the game has started, ties are never legal outcomes —
// per §9's resolved open question, a tied pre-game roll is discarded
// and re-rolled rather than modeled as a move, so only the 30 outcomes
// with distinct dice appear, and the higher die is conventionally
// assigned to WHITE. Once the game is under way, all 36 ordered pairs
// are legal, including doubles.
func LegalDiceRolls(p *Position) []Move {
	rolls := make([]Move, 0, 36)
	for i := 1; i <= 6; i++ {
		for j := 1; j <= 6; j++ {
			if !p.started && i == j {
				continue
			}
			rolls = append(rolls, Move{Kind: DiceRoll, I: int8(i), J: int8(j)})
		}
	}
	return rolls
}

// LegalMoves dispatches to the legal move set for whichever kind of
// turn p is currently on: DiceRoll moves for nature's turn, compound
// Checker moves otherwise.
func (p *Position) LegalMoves() []Move {
	if p.nature {
		return LegalDiceRolls(p)
	}
	return LegalCheckerMoves(p)
}

// dicePips expands a DiceRoll's two die values into the pip multiset
// that governs the following checker turn: two pips for a mixed roll,
// four equal pips for doubles.
func dicePips(m Move) []int {
	if m.I == m.J {
		v := int(m.I)
		return []int{v, v, v, v}
	}
	return []int{int(m.I), int(m.J)}
}

// Apply applies m to the position, advancing it to the resulting
// state. m must be a member of the set returned by LegalMoves() for
// the current position; supplying any other move is a programmer
// error (§7 Invalid-move) and panics with *InvalidMoveError.
func (p *Position) Apply(m Move) {
	if !isLegal(p, m) {
		panic(&InvalidMoveError{Move: m})
	}

	switch m.Kind {
	case DiceRoll:
		if !p.started {
			p.started = true
			p.turn = White
		}
		p.dice = dicePips(m)
		p.nature = false

	case Checker:
		p.board, p.bar, p.borneOff = ApplyMove(p.turn, p.board, p.bar, p.borneOff, m)
		p.turn = p.turn.Opponent()
		p.dice = nil
		p.nature = true
	}
}

func isLegal(p *Position, m Move) bool {
	for _, legal := range p.LegalMoves() {
		if legal == m {
			return true
		}
	}
	return false
}
