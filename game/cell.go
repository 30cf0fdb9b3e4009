package game

import (
	"fmt"
)

// Cell is one grid position. Cells are only mutated by the Board that owns
// them; callers receive copies.
type Cell struct {
	x, y     int
	numMines uint8

	isMine, isRevealed, isFlagged bool
}

func (cell Cell) String() string {
	return fmt.Sprintf("Cell(%v, %v)", cell.x, cell.y)
}

func (cell Cell) X() int {
	return cell.x
}

func (cell Cell) Y() int {
	return cell.y
}

func (cell Cell) IsMine() bool {
	return cell.isMine
}

func (cell Cell) IsRevealed() bool {
	return cell.isRevealed
}

func (cell Cell) IsFlagged() bool {
	return cell.isFlagged
}

// NumMines is the number of mines among the cell's neighbours
func (cell Cell) NumMines() int {
	return int(cell.numMines)
}

// State is what a player is allowed to see of the cell
func (cell Cell) State() CellState {
	switch {
	case cell.isRevealed && cell.isMine:
		return Mine
	case cell.isRevealed:
		return CellState(cell.numMines)
	case cell.isFlagged:
		return Flag
	default:
		return Unrevealed
	}
}

func (cell Cell) serialize() byte {
	switch {
	case cell.isMine:
		switch {
		case cell.isRevealed:
			return '*'
		case cell.isFlagged:
			return 'F'
		default:
			return 'O'
		}
	case cell.isFlagged:
		return 'f'
	case cell.isRevealed:
		return '.'
	default:
		return '#'
	}
}

func (cell *Cell) deserialize(c rune, fresh bool) bool {
	switch c {
	case '*', 'F', 'O':
		cell.isMine = true
	case 'f', '.', '#':
		cell.isMine = false
	default:
		return false
	}

	if !fresh {
		cell.isRevealed = c == '*' || c == '.'
		cell.isFlagged = c == 'F' || c == 'f'
	}

	return true
}
