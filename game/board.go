package game

import (
	"math/rand"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// Board is the state of a single game. It is not safe for concurrent use;
// the caller owns it for the lifetime of the game and replaces it on a new
// game.
type Board struct {
	width, height int // in number of cells
	numMines      int
	cells         [][]Cell

	state      BoardState
	numFlags   int
	score      int
	lossScored bool

	mode          PlacementMode
	maxRejections int
	fallback      *PlacementFallback

	startTime time.Time
	endTime   *time.Time

	seed int64
	rand Rand
	now  func() time.Time
	log  logrus.FieldLogger
}

type boardConfig struct {
	seed          int64
	rand          Rand
	now           func() time.Time
	log           logrus.FieldLogger
	maxRejections int
}

type Option func(*boardConfig)

// WithRand sets the random source used to place mines
func WithRand(r Rand) Option {
	return func(config *boardConfig) {
		config.seed = 0
		config.rand = r
	}
}

// WithSeed places mines from a math/rand source seeded with seed
func WithSeed(seed int64) Option {
	return func(config *boardConfig) {
		config.seed = seed
		config.rand = rand.New(rand.NewSource(seed))
	}
}

// WithClock replaces time.Now for start and end stamps
func WithClock(now func() time.Time) Option {
	return func(config *boardConfig) {
		config.now = now
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(config *boardConfig) {
		config.log = log
	}
}

// WithMaxRejections bounds the consecutive rejected draws of weighted
// placement before the remaining mines are placed uniformly
func WithMaxRejections(n int) Option {
	return func(config *boardConfig) {
		if n < 0 {
			n = 0
		}
		config.maxRejections = n
	}
}

func newBoardConfig(opts []Option) boardConfig {
	config := boardConfig{
		now:           time.Now,
		log:           Log,
		maxRejections: DefaultMaxRejections,
	}
	for _, opt := range opts {
		opt(&config)
	}
	if config.rand == nil {
		config.seed = time.Now().UnixNano()
		config.rand = rand.New(rand.NewSource(config.seed))
	}
	return config
}

// New creates a board of width x height cells with mines placed either
// uniformly or, if weighted, clustered around mines already placed.
func New(width, height, mines int, weighted bool, opts ...Option) (*Board, error) {
	if width < 1 || height < 1 {
		return nil, invalidConfiguration("board must be at least 1x1, got %dx%d", width, height)
	}
	if mines < 0 || mines >= width*height {
		return nil, invalidConfiguration("%d mines do not fit a %dx%d board", mines, width, height)
	}

	mode := Uniform
	if weighted {
		mode = Weighted
	}

	board := createBoard(width, height, mines, mode, newBoardConfig(opts))
	board.placeMines()

	board.log.WithFields(logrus.Fields{
		"width":    width,
		"height":   height,
		"mines":    mines,
		"mode":     mode,
		"fallback": board.fallback != nil,
	}).Debug("Created board")

	return board, nil
}

func createBoard(width, height, mines int, mode PlacementMode, config boardConfig) *Board {
	board := &Board{
		state:         Ongoing,
		width:         width,
		height:        height,
		numMines:      mines,
		cells:         make([][]Cell, height),
		mode:          mode,
		maxRejections: config.maxRejections,
		seed:          config.seed,
		rand:          config.rand,
		now:           config.now,
		log:           config.log,
	}

	for y := 0; y < height; y++ {
		row := make([]Cell, width)
		for x := range row {
			row[x].x, row[x].y = x, y
		}
		board.cells[y] = row
	}

	board.startTime = board.now()

	return board
}

func (board *Board) Width() int {
	return board.width
}

func (board *Board) Height() int {
	return board.height
}

func (board *Board) NumCells() int {
	return board.width * board.height
}

func (board *Board) NumMines() int {
	return board.numMines
}

func (board *Board) NumFlags() int {
	return board.numFlags
}

// FlagsRemaining is the number of flags the player may still place
func (board *Board) FlagsRemaining() int {
	return board.numMines - board.numFlags
}

func (board *Board) Score() int {
	return board.score
}

func (board *Board) State() BoardState {
	return board.state
}

// Seed of the random source the board was built with. Boards built with
// WithRand report zero.
func (board *Board) Seed() int64 {
	return board.seed
}

func (board *Board) Mode() PlacementMode {
	return board.mode
}

// Fallback reports whether weighted placement gave up and placed mines
// uniformly; nil if it did not.
func (board *Board) Fallback() *PlacementFallback {
	return board.fallback
}

func (board *Board) StartTime() time.Time {
	return board.startTime
}

// EndTime returns the instant the game ended, if it has
func (board *Board) EndTime() (time.Time, bool) {
	if board.endTime == nil {
		return time.Time{}, false
	}
	return *board.endTime, true
}

// Elapsed is the duration of the game so far, or of the whole game once it
// has ended
func (board *Board) Elapsed() time.Duration {
	if board.endTime != nil {
		return board.endTime.Sub(board.startTime)
	}
	return board.now().Sub(board.startTime)
}

func (board *Board) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < board.width && y < board.height
}

func (board *Board) cellAt(x, y int) *Cell {
	if board.inBounds(x, y) {
		return &board.cells[y][x]
	}
	return nil
}

// Tile returns a copy of the cell at (x, y)
func (board *Board) Tile(x, y int) (Cell, error) {
	cell := board.cellAt(x, y)
	if cell == nil {
		return Cell{}, outOfBounds(board, x, y)
	}
	return *cell, nil
}

// Cells returns a copy of the grid, indexed [y][x]
func (board *Board) Cells() [][]Cell {
	rows := make([][]Cell, len(board.cells))
	for y, row := range board.cells {
		rows[y] = append([]Cell(nil), row...)
	}
	return rows
}

// Neighbors returns copies of the up to 8 cells around (x, y)
func (board *Board) Neighbors(x, y int) ([]Cell, error) {
	if !board.inBounds(x, y) {
		return nil, outOfBounds(board, x, y)
	}

	neighbors := make([]Cell, 0, 8)
	board.forEachNeighbor(x, y, func(neighbor *Cell) {
		neighbors = append(neighbors, *neighbor)
	})
	return neighbors, nil
}

func (board *Board) forEachNeighbor(x, y int, fn func(*Cell)) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if neighbor := board.cellAt(x+dx, y+dy); neighbor != nil {
				fn(neighbor)
			}
		}
	}
}

// SelectTile reveals the cell at (x, y), flooding outward from cells with no
// neighbouring mines. It returns true if the revealed cell is a mine.
// Revealed and flagged cells are left alone.
func (board *Board) SelectTile(x, y int) (bool, error) {
	cell := board.cellAt(x, y)
	if cell == nil {
		return false, outOfBounds(board, x, y)
	}

	if cell.isRevealed || cell.isFlagged {
		return false, nil
	}

	if cell.isMine {
		cell.isRevealed = true
		if board.state == Ongoing {
			board.state = Lost
		}
		board.log.WithField("cell", cell).Debug("Mine revealed")
		return true, nil
	}

	board.flood(x, y, board.reveal)
	return false, nil
}

func (board *Board) reveal(cell *Cell) bool {
	if cell.isRevealed || cell.isFlagged {
		return false
	}
	cell.isRevealed = true
	board.score += revealScore
	return true
}

// FlagTile toggles the flag on a hidden cell. New flags are refused once
// there are as many flags as mines; removing a flag always succeeds.
func (board *Board) FlagTile(x, y int) error {
	cell := board.cellAt(x, y)
	if cell == nil {
		return outOfBounds(board, x, y)
	}

	if cell.isRevealed {
		return nil
	}

	if cell.isFlagged {
		cell.isFlagged = false
		board.numFlags--
		return nil
	}

	if board.numFlags >= board.numMines {
		return nil
	}

	cell.isFlagged = true
	board.numFlags++
	return nil
}

// IsWin reports whether every safe cell has been revealed. The first time it
// reports a win, the end of the game is stamped.
func (board *Board) IsWin() bool {
	for y := range board.cells {
		for x := range board.cells[y] {
			cell := &board.cells[y][x]
			if !cell.isMine && !cell.isRevealed {
				return false
			}
		}
	}

	if board.endTime == nil {
		board.stampEnd()
		board.log.WithFields(logrus.Fields{
			"score":   board.score,
			"elapsed": board.Elapsed(),
		}).Info("Board won")
	}
	if board.state == Ongoing {
		board.state = Won
	}

	return true
}

// OnLost ends the game: every mine is revealed, and each flagged mine is
// worth a bonus. Only the first call has any effect.
func (board *Board) OnLost() {
	board.stampEnd()

	if board.lossScored {
		return
	}
	board.lossScored = true
	board.state = Lost

	for y := range board.cells {
		for x := range board.cells[y] {
			cell := &board.cells[y][x]
			if !cell.isMine {
				continue
			}
			cell.isRevealed = true
			if cell.isFlagged {
				board.score += flaggedMineBonus
			}
		}
	}

	board.log.WithFields(logrus.Fields{
		"score":   board.score,
		"elapsed": board.Elapsed(),
	}).Info("Board lost")
}

func (board *Board) stampEnd() {
	if board.endTime == nil {
		end := board.now()
		board.endTime = &end
	}
}

// String renders the player's view, one row per line
func (board *Board) String() string {
	var b strings.Builder
	for y, row := range board.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, cell := range row {
			b.WriteRune(cell.State().Rune())
		}
	}
	return b.String()
}
