package game

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// Layout is a text description of a board, one row per line:
//
//	#  hidden safe cell     O  hidden mine
//	.  revealed safe cell   F  flagged mine
//	f  flagged safe cell    *  revealed mine
type Layout struct {
	Seed  int64  `yaml:"seed"`
	Board string `yaml:"board"`
}

func (layout *Layout) Serialize() (string, error) {
	out, err := yaml.Marshal(layout)
	if err != nil {
		return "", errors.Wrap(err, "marshal layout")
	}
	return string(out), nil
}

func LoadLayout(in string) (*Layout, error) {
	var layout Layout
	if err := yaml.Unmarshal([]byte(in), &layout); err != nil {
		return nil, errors.Wrap(err, "unmarshal layout")
	}
	return &layout, nil
}

func (layout *Layout) rows() []string {
	lines := strings.Split(strings.TrimSpace(layout.Board), "\n")
	rows := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			rows = append(rows, line)
		}
	}
	return rows
}

// CreateBoard builds the board the layout describes. With fresh set, only
// the mines are taken from the layout and every cell starts hidden.
func (layout *Layout) CreateBoard(fresh bool, opts ...Option) (*Board, error) {
	rows := layout.rows()
	if len(rows) == 0 {
		return nil, invalidConfiguration("empty layout")
	}

	height, width := len(rows), len(rows[0])
	for y, row := range rows {
		if len(row) != width {
			return nil, invalidConfiguration("layout row %d has %d cells, expected %d", y, len(row), width)
		}
	}

	opts = append([]Option{WithSeed(layout.Seed)}, opts...)
	board := createBoard(width, height, 0, Uniform, newBoardConfig(opts))

	for y, row := range rows {
		for x, c := range row {
			cell := &board.cells[y][x]
			if !cell.deserialize(c, fresh) {
				return nil, invalidConfiguration("unknown layout cell %q at (%d, %d)", c, x, y)
			}

			if cell.isMine {
				board.numMines++
			}
			if cell.isFlagged {
				board.numFlags++
			}
			if cell.isRevealed {
				if cell.isMine {
					board.state = Lost
				} else {
					board.score += revealScore
				}
			}
		}
	}

	if board.numMines >= board.NumCells() {
		return nil, invalidConfiguration("layout has no safe cells")
	}
	if board.numFlags > board.numMines {
		return nil, invalidConfiguration("layout has %d flags for %d mines", board.numFlags, board.numMines)
	}

	board.countNeighborMines()

	board.log.WithFields(logrus.Fields{
		"width":  width,
		"height": height,
		"mines":  board.numMines,
		"fresh":  fresh,
	}).Debug("Created board from layout")

	return board, nil
}

// Layout describes the board's current state, mines included
func (board *Board) Layout() *Layout {
	var b strings.Builder
	for y, row := range board.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, cell := range row {
			b.WriteByte(cell.serialize())
		}
	}

	return &Layout{
		Seed:  board.seed,
		Board: b.String(),
	}
}
