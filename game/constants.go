package game

import "fmt"

type CellState int
type BoardState int
type PlacementMode int

const (
	Unrevealed CellState = iota - 1
	Empty
	Number1
	Number2
	Number3
	Number4
	Number5
	Number6
	Number7
	Number8
	Flag
	Mine
)

var CellStates = []CellState{
	Unrevealed,
	Empty,
	Number1,
	Number2,
	Number3,
	Number4,
	Number5,
	Number6,
	Number7,
	Number8,
	Flag,
	Mine,
}

// Rune used when rendering the player's view of a cell
func (state CellState) Rune() rune {
	switch {
	case state == Unrevealed:
		return '#'
	case state == Empty:
		return '.'
	case state >= Number1 && state <= Number8:
		return rune('0' + int(state))
	case state == Flag:
		return 'F'
	case state == Mine:
		return '*'
	default:
		return '?'
	}
}

const (
	Lost BoardState = iota
	Won
	Ongoing
)

func (state BoardState) String() string {
	switch state {
	case Lost:
		return "lost"
	case Won:
		return "won"
	case Ongoing:
		return "ongoing"
	default:
		return fmt.Sprintf("BoardState(%d)", int(state))
	}
}

const (
	Uniform PlacementMode = iota
	Weighted
)

var PlacementModes = map[string]PlacementMode{
	"uniform":  Uniform,
	"weighted": Weighted,
}

func (mode PlacementMode) String() string {
	for name, m := range PlacementModes {
		if m == mode {
			return name
		}
	}
	return fmt.Sprintf("PlacementMode(%d)", int(mode))
}

const (
	// Points for each safe cell revealed
	revealScore = 1
	// Points for each correctly flagged mine once the game is lost
	flaggedMineBonus = 10

	// Consecutive rejected weighted draws before falling back to uniform placement
	DefaultMaxRejections = 1000
)
