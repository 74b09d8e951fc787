package game

// ComputeNeighbors stores, for every cell, how many of its in-bounds
// neighbors are mined. It runs once, right after PlaceMinesAvoiding.
func ComputeNeighbors(s *State) {
	for r := 0; r < s.Rows; r++ {
		for c := 0; c < s.Cols; c++ {
			count := 0
			s.forEachNeighbor(r, c, func(nr, nc int) {
				if s.Board[nr][nc].Mine {
					count++
				}
			})
			s.Board[r][c].NeighborMines = count
		}
	}
}
