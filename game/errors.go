package game

import (
	"github.com/pkg/errors"
)

var (
	// ErrOutOfBounds is returned for coordinates outside the board
	ErrOutOfBounds = errors.New("coordinates out of bounds")

	// ErrInvalidConfiguration is returned when a board cannot be built from
	// the requested dimensions, mine count or layout
	ErrInvalidConfiguration = errors.New("invalid board configuration")
)

func outOfBounds(board *Board, x, y int) error {
	return errors.Wrapf(ErrOutOfBounds, "(%d, %d) on %dx%d board", x, y, board.width, board.height)
}

func invalidConfiguration(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidConfiguration, format, args...)
}

// ValidateCustom applies the rules for player-chosen boards: each side at
// least 3 cells and at least one safe cell.
func ValidateCustom(width, height, mines int) error {
	if width < 3 || height < 3 {
		return invalidConfiguration("board must be at least 3x3, got %dx%d", width, height)
	}
	if mines < 0 || mines > width*height-1 {
		return invalidConfiguration("%d mines do not fit a %dx%d board", mines, width, height)
	}
	return nil
}
