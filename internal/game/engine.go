package game

// Engine applies player actions to a State. It keeps no per-game data, so
// one Engine serves every game as long as its Rand is safe for concurrent
// use. Callers must not mutate the same State from two goroutines at once.
type Engine struct {
	rng Rand
}

func NewEngine(rng Rand) *Engine {
	if rng == nil {
		rng = NewCryptoRand()
	}
	return &Engine{rng: rng}
}

// Reveal opens the cell at (r, c) and flood-fills through zero cells.
// Clicks on a finished game, outside the board, or on a flagged or already
// revealed cell are no-ops that return an empty diff.
func (e *Engine) Reveal(s *State, r, c int) *UpdateResult {
	res := newResult(s)

	if s.Terminal() || !s.InBounds(r, c) {
		return res
	}
	if cell := s.Cell(r, c); cell.Flagged || cell.Revealed {
		return res
	}

	if s.FirstClick {
		PlaceMinesAvoiding(s, e.rng, r, c)
		ComputeNeighbors(s)
		s.FirstClick = false
	}

	e.flood(s, r, c, res)
	e.checkWin(s, res)

	res.refresh(s)
	return res
}

// flood reveals (r, c) and, while it keeps hitting zero cells, their
// neighbors. An explicit stack bounds the work to the board area.
func (e *Engine) flood(s *State, r, c int, res *UpdateResult) {
	stack := [][2]int{{r, c}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		cell := s.Cell(top[0], top[1])
		if cell.Revealed || cell.Flagged {
			continue
		}

		cell.Revealed = true
		s.RevealedCount++
		res.add(cell)

		if cell.Mine {
			e.explode(s, cell, res)
			return
		}

		if cell.NeighborMines == 0 {
			s.forEachNeighbor(top[0], top[1], func(nr, nc int) {
				n := s.Cell(nr, nc)
				if !n.Revealed && !n.Flagged {
					stack = append(stack, [2]int{nr, nc})
				}
			})
		}
	}
}

// explode ends the game and uncovers every mine. The mine that was hit is
// already in the diff and is not repeated.
func (e *Engine) explode(s *State, hit *Cell, res *UpdateResult) {
	s.IsGameOver = true
	s.StatusMessage = StatusLost

	s.each(func(cell *Cell) {
		if !cell.Mine || cell == hit {
			return
		}
		cell.Revealed = true
		res.add(cell)
	})
}

// checkWin flags every mine once all safe cells are open. The auto-placed
// flags are part of the diff and FlagsLeft drops to match, so a client that
// only applies diffs stays in sync with the stored board.
func (e *Engine) checkWin(s *State, res *UpdateResult) {
	if s.IsGameOver || s.RevealedCount < s.SafeCells() {
		return
	}

	s.IsWin = true
	s.StatusMessage = StatusWon

	s.each(func(cell *Cell) {
		if cell.Mine && !cell.Flagged {
			cell.Flagged = true
			s.FlagsLeft--
			res.add(cell)
		}
	})
}

// ToggleFlag flips the flag on a hidden cell. FlagsLeft is not clamped and
// goes negative when more cells are flagged than there are mines.
func (e *Engine) ToggleFlag(s *State, r, c int) *UpdateResult {
	res := newResult(s)

	if s.Terminal() || !s.InBounds(r, c) {
		return res
	}

	cell := s.Cell(r, c)
	if cell.Revealed {
		return res
	}

	cell.Flagged = !cell.Flagged
	if cell.Flagged {
		s.FlagsLeft--
	} else {
		s.FlagsLeft++
	}

	res.add(cell)
	res.refresh(s)
	return res
}
