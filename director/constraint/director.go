package constraint

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/they4kman/sweepcore/director/random"
	"github.com/they4kman/sweepcore/game"
	"github.com/they4kman/sweepcore/util/collections"
)

type position struct {
	x, y int
}

// Director plays from the constraints revealed numbers put on their hidden
// neighbours, falling back to the least likely mine, and then to a random
// click when nothing is known.
type Director struct {
	board    *game.Board
	fallback *random.Director
}

// Observation states that numMines of cells are mines
type Observation struct {
	origin   *position
	numMines int
	cells    collections.Set[position]
}

func (observation Observation) String() string {
	cells := observation.sortedCells()
	cellsRepr := make([]string, len(cells))
	for i, cell := range cells {
		cellsRepr[i] = fmt.Sprintf("(%d, %d)", cell.x, cell.y)
	}

	var originRepr string
	if observation.origin == nil {
		originRepr = "?"
	} else {
		originRepr = fmt.Sprintf("(%d, %d)", observation.origin.x, observation.origin.y)
	}

	return fmt.Sprintf("Obs[%8s, %d ε %s]", originRepr, observation.numMines, strings.Join(cellsRepr, ", "))
}

func (observation Observation) MineProbability() float64 {
	return float64(observation.numMines) / float64(len(observation.cells))
}

// Cells in row order, so actions are reproducible
func (observation Observation) sortedCells() []position {
	cells := make([]position, 0, len(observation.cells))
	for cell := range observation.cells {
		cells = append(cells, cell)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].y != cells[j].y {
			return cells[i].y < cells[j].y
		}
		return cells[i].x < cells[j].x
	})
	return cells
}

func (observation Observation) isSubsetOf(other Observation) bool {
	return len(observation.cells) < len(other.cells) && observation.cells.Difference(other.cells).Len() == 0
}

func New(seed int64) *Director {
	return &Director{fallback: random.New(seed)}
}

func (director *Director) Init(board *game.Board) {
	director.board = board
	director.fallback.Init(board)
}

func (director *Director) Act() (game.CellAction, bool) {
	observations := director.observe()

	if action, ok := director.actDeliberate(observations); ok {
		return action, true
	}
	if action, ok := director.actDeliberate(simplify(observations)); ok {
		return action, true
	}
	if action, ok := director.actLowestProbability(observations); ok {
		return action, true
	}
	return director.fallback.Act()
}

// observe builds one observation per revealed number bordering hidden cells
func (director *Director) observe() []Observation {
	var observations []Observation

	for y, row := range director.board.Cells() {
		for x, cell := range row {
			if !cell.IsRevealed() || cell.IsMine() || cell.NumMines() == 0 {
				continue
			}

			observation := Observation{
				origin:   &position{x, y},
				numMines: cell.NumMines(),
				cells:    make(collections.Set[position]),
			}

			neighbors, _ := director.board.Neighbors(x, y)
			for _, neighbor := range neighbors {
				if neighbor.IsRevealed() {
					continue
				}
				if neighbor.IsFlagged() {
					observation.numMines--
				} else {
					observation.cells.Add(position{neighbor.X(), neighbor.Y()})
				}
			}

			if len(observation.cells) > 0 && observation.numMines >= 0 {
				observations = append(observations, observation)
			}
		}
	}

	return observations
}

// simplify splits observations which contain another observation's cells
func simplify(observations []Observation) []Observation {
	var split []Observation
	for _, observation := range observations {
		for _, other := range observations {
			if !observation.isSubsetOf(other) {
				continue
			}
			split = append(split, Observation{
				numMines: other.numMines - observation.numMines,
				cells:    other.cells.Difference(observation.cells),
			})
		}
	}
	return split
}

func (director *Director) actDeliberate(observations []Observation) (game.CellAction, bool) {
	for _, observation := range observations {
		switch {
		case observation.numMines == 0:
			cell := observation.sortedCells()[0]
			return game.CellAction{X: cell.x, Y: cell.y, Action: game.Click}, true

		case observation.numMines == len(observation.cells) && director.board.FlagsRemaining() > 0:
			cell := observation.sortedCells()[0]
			return game.CellAction{X: cell.x, Y: cell.y, Action: game.RightClick}, true
		}
	}
	return game.CellAction{}, false
}

func (director *Director) actLowestProbability(observations []Observation) (game.CellAction, bool) {
	lowestProbability := math.Inf(1)
	var lowest *Observation

	for i := range observations {
		if probability := observations[i].MineProbability(); probability < lowestProbability {
			lowestProbability = probability
			lowest = &observations[i]
		}
	}

	if lowest == nil {
		return game.CellAction{}, false
	}

	cell := lowest.sortedCells()[0]
	return game.CellAction{X: cell.x, Y: cell.y, Action: game.Click}, true
}
