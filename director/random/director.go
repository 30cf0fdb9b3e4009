package random

import (
	"math/rand"

	"github.com/they4kman/sweepcore/game"
	"github.com/they4kman/sweepcore/util/collections"
)

type position struct {
	x, y int
}

// Director clicks hidden, unflagged cells in a random order
type Director struct {
	rand  *rand.Rand
	board *game.Board

	order []position
	done  collections.Set[position]
}

func New(seed int64) *Director {
	return &Director{rand: rand.New(rand.NewSource(seed))}
}

func (director *Director) Init(board *game.Board) {
	director.board = board
	director.done = make(collections.Set[position])

	director.order = make([]position, 0, board.NumCells())
	for y := 0; y < board.Height(); y++ {
		for x := 0; x < board.Width(); x++ {
			director.order = append(director.order, position{x, y})
		}
	}

	director.rand.Shuffle(len(director.order), func(i, j int) {
		director.order[i], director.order[j] = director.order[j], director.order[i]
	})
}

func (director *Director) Act() (game.CellAction, bool) {
	for _, pos := range director.order {
		if director.done.Contains(pos) {
			continue
		}

		cell, err := director.board.Tile(pos.x, pos.y)
		if err != nil || cell.IsRevealed() {
			director.done.Add(pos)
			continue
		}
		if cell.IsFlagged() {
			continue
		}

		director.done.Add(pos)
		return cell.Click(), true
	}

	return game.CellAction{}, false
}
