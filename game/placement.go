package game

import (
	"github.com/sirupsen/logrus"
)

// Rand is the source of randomness used for mine placement.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// PlacementFallback records that weighted placement gave up on its draws and
// placed the remaining mines uniformly.
type PlacementFallback struct {
	Weighted   int // mines placed by weighted draws
	Uniform    int // mines placed uniformly afterwards
	Rejections int // consecutive rejected draws that triggered the fallback
}

// Positions of cells which are not yet mines. Picking swaps the chosen
// entry out, so every pick is uniform over the remaining cells.
type candidatePool struct {
	indexes []int
}

func newCandidatePool(numCells int) *candidatePool {
	indexes := make([]int, numCells)
	for i := range indexes {
		indexes[i] = i
	}
	return &candidatePool{indexes: indexes}
}

func (pool *candidatePool) pick(r Rand) (pos int, idx int) {
	pos = r.Intn(len(pool.indexes))
	return pos, pool.indexes[pos]
}

func (pool *candidatePool) remove(pos int) {
	last := len(pool.indexes) - 1
	pool.indexes[pos] = pool.indexes[last]
	pool.indexes = pool.indexes[:last]
}

func (board *Board) placeMines() {
	pool := newCandidatePool(board.NumCells())

	switch board.mode {
	case Weighted:
		board.placeWeighted(pool, board.numMines)
	default:
		board.placeUniform(pool, board.numMines)
	}

	board.countNeighborMines()
}

func (board *Board) setMine(idx int) {
	board.cells[idx/board.width][idx%board.width].isMine = true
}

func (board *Board) placeUniform(pool *candidatePool, mines int) {
	for placed := 0; placed < mines; placed++ {
		pos, idx := pool.pick(board.rand)
		pool.remove(pos)
		board.setMine(idx)
	}
}

func (board *Board) placeWeighted(pool *candidatePool, mines int) {
	placed, rejections := 0, 0

	for placed < mines {
		if rejections >= board.maxRejections {
			board.fallback = &PlacementFallback{
				Weighted:   placed,
				Uniform:    mines - placed,
				Rejections: rejections,
			}
			board.log.WithFields(logrus.Fields{
				"placed":     placed,
				"remaining":  mines - placed,
				"rejections": rejections,
			}).Warn("Weighted mine placement stalled; placing remaining mines uniformly")

			board.placeUniform(pool, mines-placed)
			return
		}

		pos, idx := pool.pick(board.rand)
		x, y := idx%board.width, idx/board.width

		if board.rand.Intn(100) <= board.mineLikelihood(x, y) {
			pool.remove(pos)
			board.setMine(idx)
			placed++
			rejections = 0
		} else {
			rejections++
		}
	}
}

// mineLikelihood is the percentage of the cell's neighbours which are
// already mines
func (board *Board) mineLikelihood(x, y int) int {
	neighbors, mines := 0, 0
	board.forEachNeighbor(x, y, func(neighbor *Cell) {
		neighbors++
		if neighbor.isMine {
			mines++
		}
	})

	if neighbors == 0 {
		return 100
	}
	return mines * 100 / neighbors
}

func (board *Board) countNeighborMines() {
	for y := range board.cells {
		for x := range board.cells[y] {
			cell := &board.cells[y][x]
			cell.numMines = 0
			board.forEachNeighbor(x, y, func(neighbor *Cell) {
				if neighbor.isMine {
					cell.numMines++
				}
			})
		}
	}
}
