package game

import (
	"math/rand"
	"testing"
)

func seeded(seed int64) *Engine {
	return NewEngine(rand.New(rand.NewSource(seed)))
}

// fixture returns an in-progress board with mines at the given positions and
// neighbor counts already computed, as if the first click had happened.
func fixture(t *testing.T, rows, cols int, mines ...[2]int) *State {
	t.Helper()
	s := CreateNew(rows, cols, len(mines))
	for _, m := range mines {
		s.Board[m[0]][m[1]].Mine = true
	}
	ComputeNeighbors(s)
	s.FirstClick = false
	return s
}

// checkInvariants asserts the properties that must hold after every call.
func checkInvariants(t *testing.T, s *State) {
	t.Helper()
	if !s.FirstClick && s.MineCount() != s.Mines {
		t.Fatalf("mine count = %d; want %d", s.MineCount(), s.Mines)
	}
	if got, want := s.FlagsLeft, s.Mines-s.FlaggedCount(); got != want {
		t.Fatalf("flagsLeft = %d; want %d", got, want)
	}
	if !s.IsGameOver && s.RevealedCount > s.SafeCells() {
		t.Fatalf("revealedCount %d exceeds safe cells %d", s.RevealedCount, s.SafeCells())
	}
	if s.IsGameOver && s.IsWin {
		t.Fatalf("game is both lost and won")
	}
}

func updateIDs(res *UpdateResult) map[string]int {
	ids := make(map[string]int, len(res.Updates))
	for _, u := range res.Updates {
		ids[u.ID]++
	}
	return ids
}

func cloneState(t *testing.T, s *State) *State {
	t.Helper()
	blob, err := Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out, err := Unmarshal(blob)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return out
}
