package game

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCorruptState is wrapped by every Unmarshal failure. A corrupt blob is
// reported, never repaired.
var ErrCorruptState = errors.New("corrupt game state")

// Marshal encodes the full state, board included.
func Marshal(s *State) ([]byte, error) {
	return json.Marshal(s)
}

// Unmarshal decodes a blob produced by Marshal and checks that it describes
// a board the engine can keep playing.
func Unmarshal(blob []byte) (*State, error) {
	var s State
	if err := json.Unmarshal(blob, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if err := validate(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return &s, nil
}

func validate(s *State) error {
	if s.Rows < MinRows || s.Rows > MaxRows {
		return fmt.Errorf("rows %d out of range", s.Rows)
	}
	if s.Cols < MinCols || s.Cols > MaxCols {
		return fmt.Errorf("cols %d out of range", s.Cols)
	}
	if s.Mines < MinMines || s.Mines > s.Rows*s.Cols-1 {
		return fmt.Errorf("mines %d out of range", s.Mines)
	}
	if s.IsGameOver && s.IsWin {
		return errors.New("game both lost and won")
	}
	if len(s.Board) != s.Rows {
		return fmt.Errorf("board has %d rows, want %d", len(s.Board), s.Rows)
	}

	mines, flagged, revealed := 0, 0, 0
	for r, row := range s.Board {
		if len(row) != s.Cols {
			return fmt.Errorf("board row %d has %d cells, want %d", r, len(row), s.Cols)
		}
		for c, cell := range row {
			if cell.R != r || cell.C != c {
				return fmt.Errorf("cell at %d,%d claims position %d,%d", r, c, cell.R, cell.C)
			}
			if cell.NeighborMines < 0 || cell.NeighborMines > 8 {
				return fmt.Errorf("cell %d,%d has %d neighbor mines", r, c, cell.NeighborMines)
			}
			if cell.Mine {
				mines++
			}
			if cell.Flagged {
				flagged++
			}
			if cell.Revealed && !cell.Mine {
				revealed++
			}
		}
	}

	if s.FirstClick {
		if mines != 0 || revealed != 0 {
			return errors.New("board touched before first click")
		}
	} else if mines != s.Mines {
		return fmt.Errorf("board has %d mines, want %d", mines, s.Mines)
	}
	if s.FlagsLeft != s.Mines-flagged {
		return fmt.Errorf("flagsLeft %d does not match %d flags", s.FlagsLeft, flagged)
	}
	if !s.IsGameOver && s.RevealedCount > s.SafeCells() {
		return fmt.Errorf("revealedCount %d exceeds %d safe cells", s.RevealedCount, s.SafeCells())
	}
	return nil
}
