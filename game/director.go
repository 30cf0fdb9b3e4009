package game

type Action int

const (
	Click Action = iota
	RightClick
)

func (action Action) String() string {
	switch action {
	case Click:
		return "click"
	case RightClick:
		return "right-click"
	default:
		return "unknown"
	}
}

type CellAction struct {
	X, Y   int
	Action Action
}

func (cell Cell) Click() CellAction {
	return CellAction{X: cell.x, Y: cell.y, Action: Click}
}

func (cell Cell) RightClick() CellAction {
	return CellAction{X: cell.x, Y: cell.y, Action: RightClick}
}

// Apply performs a click (reveal) or right-click (flag toggle). It returns
// true if a mine was revealed.
func (board *Board) Apply(action CellAction) (bool, error) {
	switch action.Action {
	case RightClick:
		return false, board.FlagTile(action.X, action.Y)
	default:
		return board.SelectTile(action.X, action.Y)
	}
}

// Director plays a board through the same actions a player has
type Director interface {
	// Init is called once, before the first Act, with the board to play
	Init(*Board)

	// Act picks the next action. A false result means the director has
	// nothing left to do.
	Act() (CellAction, bool)
}
