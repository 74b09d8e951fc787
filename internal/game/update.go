package game

import (
	"fmt"
	"strconv"
)

const (
	MineGlyph = "💣"
	FlagGlyph = "🚩"
)

// CellUpdate is the wire form of one changed cell.
type CellUpdate struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	Revealed      bool   `json:"revealed"`
	Flagged       bool   `json:"flagged"`
	Mine          bool   `json:"mine"`
	NeighborMines int    `json:"neighborMines"`
}

// UpdateResult is returned by every Reveal and ToggleFlag call: the cells
// that changed plus a snapshot of the game-level fields.
type UpdateResult struct {
	StatusMessage string       `json:"statusMessage"`
	FlagsLeft     int          `json:"flagsLeft"`
	IsGameOver    bool         `json:"isGameOver"`
	IsWin         bool         `json:"isWin"`
	Updates       []CellUpdate `json:"updates"`
}

// CellID is the DOM id the client uses for the cell at (r, c).
func CellID(r, c int) string {
	return fmt.Sprintf("cell-%d-%d", r, c)
}

// ToUpdate maps a cell to its external representation.
func ToUpdate(cell *Cell) CellUpdate {
	text := ""
	switch {
	case cell.Revealed && cell.Mine:
		text = MineGlyph
	case cell.Revealed && cell.NeighborMines > 0:
		text = strconv.Itoa(cell.NeighborMines)
	case !cell.Revealed && cell.Flagged:
		text = FlagGlyph
	}

	return CellUpdate{
		ID:            CellID(cell.R, cell.C),
		Text:          text,
		Revealed:      cell.Revealed,
		Flagged:       cell.Flagged,
		Mine:          cell.Mine,
		NeighborMines: cell.NeighborMines,
	}
}

func newResult(s *State) *UpdateResult {
	res := &UpdateResult{Updates: []CellUpdate{}}
	res.refresh(s)
	return res
}

func (res *UpdateResult) add(cell *Cell) {
	res.Updates = append(res.Updates, ToUpdate(cell))
}

func (res *UpdateResult) refresh(s *State) {
	res.StatusMessage = s.StatusMessage
	res.FlagsLeft = s.FlagsLeft
	res.IsGameOver = s.IsGameOver
	res.IsWin = s.IsWin
}

// Snapshot renders the whole board as a list of updates, for clients that
// (re)connect and need a full redraw. Hidden cells keep their mine and count
// fields zeroed so a snapshot never leaks the layout of an unfinished game.
func Snapshot(s *State) *UpdateResult {
	res := newResult(s)
	s.each(func(cell *Cell) {
		u := ToUpdate(cell)
		if !cell.Revealed && !s.Terminal() {
			u.Mine = false
			u.NeighborMines = 0
		}
		res.Updates = append(res.Updates, u)
	})
	return res
}
