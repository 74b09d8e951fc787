package game

import (
	"crypto/rand"
	"math/big"
)

// Rand is the random source used for mine placement. *math/rand.Rand
// satisfies it, which is what tests use for reproducible boards.
type Rand interface {
	Intn(n int) int
}

type cryptoRand struct{}

// NewCryptoRand returns a Rand backed by crypto/rand. It is safe for
// concurrent use, so a single instance can serve every game in the process.
func NewCryptoRand() Rand {
	return cryptoRand{}
}

func (cryptoRand) Intn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails when the OS source is unavailable
		panic("game: crypto/rand failed: " + err.Error())
	}
	return int(v.Int64())
}

// PlaceMinesAvoiding mines exactly s.Mines cells, none of them the clicked
// cell or one of its neighbors. Cells are drawn from the explicit pool of
// eligible positions with a partial Fisher-Yates shuffle, so placement always
// finishes in O(rows*cols) regardless of density.
//
// When the board is so dense that the pool holds fewer cells than s.Mines,
// the pool is mined completely and the remainder spills onto the clicked
// cell's neighbors in row-major order. The clicked cell is never mined.
func PlaceMinesAvoiding(s *State, rng Rand, firstR, firstC int) {
	forbidden := make(map[int]bool, 9)
	forbidden[firstR*s.Cols+firstC] = true
	s.forEachNeighbor(firstR, firstC, func(nr, nc int) {
		forbidden[nr*s.Cols+nc] = true
	})

	total := s.Rows * s.Cols
	pool := make([]int, 0, total)
	var spill []int
	for idx := 0; idx < total; idx++ {
		switch {
		case idx == firstR*s.Cols+firstC:
		case forbidden[idx]:
			spill = append(spill, idx)
		default:
			pool = append(pool, idx)
		}
	}

	take := s.Mines
	if take > len(pool) {
		take = len(pool)
	}
	for i := 0; i < take; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
		s.Board[pool[i]/s.Cols][pool[i]%s.Cols].Mine = true
	}

	for _, idx := range spill[:s.Mines-take] {
		s.Board[idx/s.Cols][idx%s.Cols].Mine = true
	}
}
