package game

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Log.SetLevel(logrus.DebugLevel)
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	os.Exit(m.Run())
}

func layoutBoard(t *testing.T, rows string, opts ...Option) *Board {
	t.Helper()
	board, err := (&Layout{Board: rows}).CreateBoard(true, opts...)
	require.NoError(t, err)
	return board
}

func countMines(board *Board) int {
	mines := 0
	for _, row := range board.Cells() {
		for _, cell := range row {
			if cell.IsMine() {
				mines++
			}
		}
	}
	return mines
}

func TestNewPlacesExactMineCount(t *testing.T) {
	tests := []struct {
		width, height, mines int
	}{
		{1, 1, 0},
		{3, 3, 1},
		{3, 3, 8},
		{9, 9, 10},
		{16, 16, 40},
		{30, 16, 99},
		{30, 16, 479},
	}

	for _, test := range tests {
		for _, weighted := range []bool{false, true} {
			name := fmt.Sprintf("%dx%d(%d) weighted=%v", test.width, test.height, test.mines, weighted)
			t.Run(name, func(t *testing.T) {
				for seed := int64(1); seed <= 5; seed++ {
					board, err := New(test.width, test.height, test.mines, weighted, WithSeed(seed))
					require.NoError(t, err)

					assert.Equal(t, test.mines, countMines(board))
					assert.Equal(t, test.mines, board.NumMines())
					assert.Equal(t, 0, board.NumFlags())
					assert.Equal(t, 0, board.Score())
					assert.Equal(t, Ongoing, board.State())
				}
			})
		}
	}
}

func TestNeighborMineCounts(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		board, err := New(12, 7, 30, seed%2 == 0, WithSeed(seed))
		require.NoError(t, err)

		for y := 0; y < board.Height(); y++ {
			for x := 0; x < board.Width(); x++ {
				expected := 0
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := x+dx, y+dy
						if (dx == 0 && dy == 0) || nx < 0 || ny < 0 || nx >= board.Width() || ny >= board.Height() {
							continue
						}
						if board.cells[ny][nx].isMine {
							expected++
						}
					}
				}

				cell, err := board.Tile(x, y)
				require.NoError(t, err)
				assert.Equal(t, expected, cell.NumMines(), "cell (%d, %d)", x, y)
			}
		}
	}
}

func TestNewRejectsInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name                 string
		width, height, mines int
	}{
		{"zero width", 0, 5, 0},
		{"zero height", 5, 0, 0},
		{"negative mines", 3, 3, -1},
		{"no safe cell", 3, 3, 9},
		{"more mines than cells", 3, 3, 10},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for _, weighted := range []bool{false, true} {
				board, err := New(test.width, test.height, test.mines, weighted)
				assert.Nil(t, board)
				assert.True(t, errors.Is(err, ErrInvalidConfiguration), "got %v", err)
			}
		})
	}
}

func TestSameSeedSameBoard(t *testing.T) {
	for _, weighted := range []bool{false, true} {
		first, err := New(20, 10, 40, weighted, WithSeed(42))
		require.NoError(t, err)
		second, err := New(20, 10, 40, weighted, WithSeed(42))
		require.NoError(t, err)

		assert.Equal(t, first.Layout().Board, second.Layout().Board)
		assert.Equal(t, int64(42), first.Seed())
	}
}

func TestOutOfBounds(t *testing.T) {
	board := layoutBoard(t, "O##\n###\n###")

	coords := [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {100, 100}}
	for _, c := range coords {
		x, y := c[0], c[1]

		hitMine, err := board.SelectTile(x, y)
		assert.False(t, hitMine)
		assert.True(t, errors.Is(err, ErrOutOfBounds), "select (%d, %d): %v", x, y, err)

		err = board.FlagTile(x, y)
		assert.True(t, errors.Is(err, ErrOutOfBounds), "flag (%d, %d): %v", x, y, err)

		_, err = board.Tile(x, y)
		assert.True(t, errors.Is(err, ErrOutOfBounds), "tile (%d, %d): %v", x, y, err)

		_, err = board.Neighbors(x, y)
		assert.True(t, errors.Is(err, ErrOutOfBounds), "neighbors (%d, %d): %v", x, y, err)
	}

	assert.Equal(t, 0, board.Score())
	assert.Equal(t, 0, board.NumFlags())
}

func TestSelectTileSingleNumber(t *testing.T) {
	board := layoutBoard(t, "O##\n###\n###")

	hitMine, err := board.SelectTile(1, 1)
	require.NoError(t, err)
	assert.False(t, hitMine)
	assert.Equal(t, 1, board.Score())
	assert.Equal(t, "###\n#1#\n###", board.String())
}

func TestSelectTileCornerFloodsBoard(t *testing.T) {
	// A single mine in the corner leaves (2, 2) with no neighbouring mines,
	// so revealing it floods every safe cell
	board := layoutBoard(t, "O##\n###\n###")

	cell, err := board.Tile(2, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, cell.NumMines())

	hitMine, err := board.SelectTile(2, 2)
	require.NoError(t, err)
	assert.False(t, hitMine)
	assert.Equal(t, 8, board.Score())
	assert.Equal(t, "#1.\n11.\n...", board.String())
	assert.True(t, board.IsWin())

	hitMine, err = board.SelectTile(0, 0)
	require.NoError(t, err)
	assert.True(t, hitMine)
	assert.Equal(t, 8, board.Score())
}

func TestSelectTileMine(t *testing.T) {
	board := layoutBoard(t, "O##\n###\n###")

	hitMine, err := board.SelectTile(0, 0)
	require.NoError(t, err)
	assert.True(t, hitMine)
	assert.Equal(t, 0, board.Score())
	assert.Equal(t, Lost, board.State())

	cell, _ := board.Tile(0, 0)
	assert.True(t, cell.IsRevealed())
	assert.True(t, cell.IsMine())
	assert.Equal(t, Mine, cell.State())
}

func TestSelectTileIsIdempotent(t *testing.T) {
	board := layoutBoard(t, "#O###\n#O###\n#O###")

	_, err := board.SelectTile(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, board.Score())

	for i := 0; i < 3; i++ {
		hitMine, err := board.SelectTile(0, 1)
		require.NoError(t, err)
		assert.False(t, hitMine)
		assert.Equal(t, 1, board.Score())

		cell, _ := board.Tile(0, 1)
		assert.True(t, cell.IsRevealed())
	}
}

func TestSelectTileSkipsFlagged(t *testing.T) {
	board := layoutBoard(t, "O##\n###\n###")

	require.NoError(t, board.FlagTile(0, 0))
	hitMine, err := board.SelectTile(0, 0)
	require.NoError(t, err)
	assert.False(t, hitMine)
	assert.Equal(t, Ongoing, board.State())

	cell, _ := board.Tile(0, 0)
	assert.False(t, cell.IsRevealed())
	assert.True(t, cell.IsFlagged())
}

func TestFloodStopsAtNumbers(t *testing.T) {
	board := layoutBoard(t, "#O###\n#O###\n#O###")

	hitMine, err := board.SelectTile(4, 1)
	require.NoError(t, err)
	assert.False(t, hitMine)

	assert.Equal(t, "##2..\n##3..\n##2..", board.String())
	assert.Equal(t, 9, board.Score())
	assert.False(t, board.IsWin())
}

func TestFloodDoesNotCrossFlags(t *testing.T) {
	board := layoutBoard(t, "####\n####\n###O")

	require.NoError(t, board.FlagTile(1, 0))
	_, err := board.SelectTile(0, 0)
	require.NoError(t, err)

	assert.Equal(t, ".F..\n..11\n..1#", board.String())
	assert.Equal(t, 10, board.Score())
}

// floodRegion reveals nothing; it is a recursive reference for which cells a
// reveal of (x, y) should open
func floodRegion(board *Board, x, y int, region map[[2]int]bool) {
	if region[[2]int{x, y}] {
		return
	}
	region[[2]int{x, y}] = true
	if board.cells[y][x].numMines != 0 {
		return
	}
	board.forEachNeighbor(x, y, func(neighbor *Cell) {
		floodRegion(board, neighbor.x, neighbor.y, region)
	})
}

func TestFloodRevealsConnectedRegion(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		board, err := New(16, 16, 30, false, WithSeed(seed))
		require.NoError(t, err)

		var start *Cell
		for y := range board.cells {
			for x := range board.cells[y] {
				cell := &board.cells[y][x]
				if start == nil && !cell.isMine && cell.numMines == 0 {
					start = cell
				}
			}
		}
		if start == nil {
			continue
		}

		expected := make(map[[2]int]bool)
		floodRegion(board, start.x, start.y, expected)

		_, err = board.SelectTile(start.x, start.y)
		require.NoError(t, err)

		for y := range board.cells {
			for x := range board.cells[y] {
				assert.Equal(t, expected[[2]int{x, y}], board.cells[y][x].isRevealed,
					"seed %d cell (%d, %d)", seed, x, y)
			}
		}
		assert.Equal(t, len(expected), board.Score(), "seed %d", seed)
	}
}

func TestEmptyBoardRevealsEverything(t *testing.T) {
	board, err := New(5, 5, 0, false)
	require.NoError(t, err)

	hitMine, err := board.SelectTile(2, 2)
	require.NoError(t, err)
	assert.False(t, hitMine)
	assert.Equal(t, 25, board.Score())
	assert.True(t, board.IsWin())
	assert.Equal(t, Won, board.State())
}

func TestLargeBoardFlood(t *testing.T) {
	board, err := New(500, 500, 0, false)
	require.NoError(t, err)

	_, err = board.SelectTile(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 500*500, board.Score())
	assert.True(t, board.IsWin())
}

func TestFlagTile(t *testing.T) {
	board := layoutBoard(t, "O#O\n###\n###")
	require.Equal(t, 2, board.NumMines())

	require.NoError(t, board.FlagTile(1, 1))
	assert.Equal(t, 1, board.NumFlags())
	assert.Equal(t, 1, board.FlagsRemaining())

	require.NoError(t, board.FlagTile(1, 2))
	assert.Equal(t, 2, board.NumFlags())

	// Budget exhausted
	require.NoError(t, board.FlagTile(0, 0))
	assert.Equal(t, 2, board.NumFlags())
	cell, _ := board.Tile(0, 0)
	assert.False(t, cell.IsFlagged())

	// Unflagging still works
	require.NoError(t, board.FlagTile(1, 1))
	assert.Equal(t, 1, board.NumFlags())
	cell, _ = board.Tile(1, 1)
	assert.False(t, cell.IsFlagged())
	assert.Equal(t, Unrevealed, cell.State())

	require.NoError(t, board.FlagTile(0, 0))
	assert.Equal(t, 2, board.NumFlags())
	cell, _ = board.Tile(0, 0)
	assert.Equal(t, Flag, cell.State())
}

func TestFlagTileIgnoresRevealed(t *testing.T) {
	board := layoutBoard(t, "O##\n###\n###")

	_, err := board.SelectTile(1, 1)
	require.NoError(t, err)

	require.NoError(t, board.FlagTile(1, 1))
	assert.Equal(t, 0, board.NumFlags())
	cell, _ := board.Tile(1, 1)
	assert.False(t, cell.IsFlagged())
}

func TestFlagTileWithoutMines(t *testing.T) {
	board, err := New(3, 3, 0, false)
	require.NoError(t, err)

	require.NoError(t, board.FlagTile(0, 0))
	assert.Equal(t, 0, board.NumFlags())
}

func TestIsWin(t *testing.T) {
	board := layoutBoard(t, "#O###\n#O###\n#O###")

	_, err := board.SelectTile(4, 1)
	require.NoError(t, err)
	assert.False(t, board.IsWin())
	_, ok := board.EndTime()
	assert.False(t, ok, "a board which is not won has not ended")

	require.NoError(t, board.FlagTile(1, 0))
	for y := 0; y < 3; y++ {
		_, err := board.SelectTile(0, y)
		require.NoError(t, err)
	}

	// Mines do not need flags, and flags do not matter
	assert.True(t, board.IsWin())
	assert.Equal(t, Won, board.State())
	_, ok = board.EndTime()
	assert.True(t, ok)
}

func TestOnLost(t *testing.T) {
	board := layoutBoard(t, "O#O\n###\nO##")

	require.NoError(t, board.FlagTile(0, 0))
	require.NoError(t, board.FlagTile(1, 1)) // wrong
	_, err := board.SelectTile(2, 2)
	require.NoError(t, err)
	scoreBefore := board.Score()

	hitMine, err := board.SelectTile(2, 0)
	require.NoError(t, err)
	require.True(t, hitMine)

	board.OnLost()
	assert.Equal(t, scoreBefore+10, board.Score())
	assert.Equal(t, Lost, board.State())

	for _, pos := range [][2]int{{0, 0}, {2, 0}, {0, 2}} {
		cell, _ := board.Tile(pos[0], pos[1])
		assert.True(t, cell.IsRevealed(), "mine (%d, %d)", pos[0], pos[1])
	}

	cell, _ := board.Tile(1, 1)
	assert.False(t, cell.IsRevealed())
	assert.True(t, cell.IsFlagged())
	cell, _ = board.Tile(1, 0)
	assert.False(t, cell.IsRevealed())

	board.OnLost()
	assert.Equal(t, scoreBefore+10, board.Score())
}

func TestOnLostUnflaggedMinesScoreNothing(t *testing.T) {
	board := layoutBoard(t, "O#O\n###\n###")

	board.OnLost()
	assert.Equal(t, 0, board.Score())
}

type fakeClock struct {
	now time.Time
}

func (clock *fakeClock) Now() time.Time {
	return clock.now
}

func (clock *fakeClock) advance(d time.Duration) {
	clock.now = clock.now.Add(d)
}

func TestTiming(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	board := layoutBoard(t, "O##\n###\n###", WithClock(clock.Now))

	assert.Equal(t, clock.now, board.StartTime())
	assert.Equal(t, time.Duration(0), board.Elapsed())

	clock.advance(3 * time.Second)
	assert.Equal(t, 3*time.Second, board.Elapsed())

	assert.False(t, board.IsWin())
	_, ok := board.EndTime()
	assert.False(t, ok)

	board.OnLost()
	end, ok := board.EndTime()
	require.True(t, ok)
	assert.Equal(t, clock.now, end)

	clock.advance(time.Minute)
	board.OnLost()
	board.IsWin()
	assert.Equal(t, 3*time.Second, board.Elapsed())
	end2, _ := board.EndTime()
	assert.Equal(t, end, end2)
}

func TestTimingEndsWithinSameTick(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	board, err := New(3, 3, 0, false, WithClock(clock.Now))
	require.NoError(t, err)

	_, err = board.SelectTile(0, 0)
	require.NoError(t, err)
	require.True(t, board.IsWin())

	end, ok := board.EndTime()
	require.True(t, ok)
	assert.Equal(t, board.StartTime(), end)

	clock.advance(time.Hour)
	assert.Equal(t, time.Duration(0), board.Elapsed())
}

func TestCellsIsACopy(t *testing.T) {
	board := layoutBoard(t, "O##\n###\n###")

	cells := board.Cells()
	cells[1][1].isRevealed = true

	cell, _ := board.Tile(1, 1)
	assert.False(t, cell.IsRevealed())
}

func TestNeighbors(t *testing.T) {
	board := layoutBoard(t, "O##\n###\n###")

	corner, err := board.Neighbors(0, 0)
	require.NoError(t, err)
	assert.Len(t, corner, 3)

	edge, err := board.Neighbors(1, 0)
	require.NoError(t, err)
	assert.Len(t, edge, 5)

	middle, err := board.Neighbors(1, 1)
	require.NoError(t, err)
	assert.Len(t, middle, 8)
}

func TestApply(t *testing.T) {
	board := layoutBoard(t, "O##\n###\n###")

	cell, _ := board.Tile(0, 0)
	hitMine, err := board.Apply(cell.RightClick())
	require.NoError(t, err)
	assert.False(t, hitMine)
	assert.Equal(t, 1, board.NumFlags())

	cell, _ = board.Tile(1, 1)
	hitMine, err = board.Apply(cell.Click())
	require.NoError(t, err)
	assert.False(t, hitMine)
	assert.Equal(t, 1, board.Score())

	_, err = board.Apply(CellAction{X: 5, Y: 5, Action: Click})
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}
