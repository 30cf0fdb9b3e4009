package game

import (
	"github.com/gammazero/deque"
)

type point struct {
	x, y int
}

type Visitor func(*Cell) bool

// flood visits the cell at (x, y) and expands breadth-first through every
// cell the visitor accepts whose neighbour mine count is zero. The visitor
// is the visited-guard: it must return false for cells it has already
// handled, or for cells which must not be expanded from.
func (board *Board) flood(x, y int, visit Visitor) {
	var queue deque.Deque
	queue.PushBack(point{x, y})

	for queue.Len() > 0 {
		pt := queue.PopFront().(point)
		cell := &board.cells[pt.y][pt.x]

		if !visit(cell) {
			continue
		}

		if cell.numMines == 0 && !cell.isMine {
			board.forEachNeighbor(pt.x, pt.y, func(neighbor *Cell) {
				if !neighbor.isRevealed && !neighbor.isFlagged {
					queue.PushBack(point{neighbor.x, neighbor.y})
				}
			})
		}
	}
}
