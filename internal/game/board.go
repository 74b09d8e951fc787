package game

const (
	MinRows  = 5
	MaxRows  = 24
	MinCols  = 5
	MaxCols  = 30
	MinMines = 1

	StatusInProgress = "Game in progress"
	StatusLost       = "Game Over! You hit a mine."
	StatusWon        = "You Win!"
)

// Cell is a single square of the board.
type Cell struct {
	R             int  `json:"r"`
	C             int  `json:"c"`
	Mine          bool `json:"mine"`
	Revealed      bool `json:"revealed"`
	Flagged       bool `json:"flagged"`
	NeighborMines int  `json:"neighborMines"`
}

// State is the whole server-side game. It is mutated in place by Engine and
// serialized as-is by Marshal.
type State struct {
	Rows           int      `json:"rows"`
	Cols           int      `json:"cols"`
	Mines          int      `json:"mines"`
	RevealedCount  int      `json:"revealedCount"`
	FlagsLeft      int      `json:"flagsLeft"`
	FirstClick     bool     `json:"firstClick"`
	IsGameOver     bool     `json:"isGameOver"`
	IsWin          bool     `json:"isWin"`
	StatusMessage  string   `json:"statusMessage"`
	ElapsedSeconds int      `json:"elapsedSeconds"`
	Board          [][]Cell `json:"board"` // [r][c]
}

// CreateNew builds an empty, mine-free board. Out of range arguments are
// clamped rather than rejected. Mines are placed on the first reveal.
func CreateNew(rows, cols, mines int) *State {
	rows = clamp(rows, MinRows, MaxRows)
	cols = clamp(cols, MinCols, MaxCols)
	mines = clamp(mines, MinMines, rows*cols-1)

	board := make([][]Cell, rows)
	for r := 0; r < rows; r++ {
		board[r] = make([]Cell, cols)
		for c := 0; c < cols; c++ {
			board[r][c] = Cell{R: r, C: c}
		}
	}

	return &State{
		Rows:          rows,
		Cols:          cols,
		Mines:         mines,
		FlagsLeft:     mines,
		FirstClick:    true,
		StatusMessage: StatusInProgress,
		Board:         board,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// InBounds reports whether (r, c) addresses a cell of the board.
func (s *State) InBounds(r, c int) bool {
	return r >= 0 && r < s.Rows && c >= 0 && c < s.Cols
}

// Cell returns a pointer into the board. The caller must check InBounds first.
func (s *State) Cell(r, c int) *Cell {
	return &s.Board[r][c]
}

// Terminal reports whether the game is won or lost.
func (s *State) Terminal() bool {
	return s.IsGameOver || s.IsWin
}

// SafeCells is the number of cells that must be revealed to win.
func (s *State) SafeCells() int {
	return s.Rows*s.Cols - s.Mines
}

// FlaggedCount counts the cells currently carrying a flag.
func (s *State) FlaggedCount() int {
	n := 0
	s.each(func(cell *Cell) {
		if cell.Flagged {
			n++
		}
	})
	return n
}

// MineCount counts the mined cells. It is zero until the first reveal.
func (s *State) MineCount() int {
	n := 0
	s.each(func(cell *Cell) {
		if cell.Mine {
			n++
		}
	})
	return n
}

func (s *State) each(fn func(cell *Cell)) {
	for r := range s.Board {
		for c := range s.Board[r] {
			fn(&s.Board[r][c])
		}
	}
}

// forEachNeighbor calls fn for each in-bounds cell around (r, c), excluding
// (r, c) itself. Corners have 3 neighbors, edges 5, interior cells 8.
func (s *State) forEachNeighbor(r, c int, fn func(nr, nc int)) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			nr, nc := r+dr, c+dc
			if s.InBounds(nr, nc) {
				fn(nr, nc)
			}
		}
	}
}
