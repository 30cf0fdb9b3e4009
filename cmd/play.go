package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/they4kman/sweepcore/game"
)

const playHelp = `commands:
  r X Y   reveal the cell at column X, row Y
  f X Y   flag or unflag the cell at column X, row Y
  n       start a new game
  q       quit`

func runPlay(cmd *cobra.Command, args []string) error {
	config, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	board, err := config.CreateBoard()
	if err != nil {
		return err
	}

	return play(cmd.InOrStdin(), cmd.OutOrStdout(), board, config.CreateBoard)
}

// play reads commands from in until the input ends or the player quits
func play(in io.Reader, out io.Writer, board *game.Board, newBoard func(...game.Option) (*game.Board, error)) error {
	fmt.Fprintln(out, playHelp)
	render(out, board)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "q", "quit":
			return nil

		case "n", "new":
			next, err := newBoard()
			if err != nil {
				return err
			}
			board = next

		case "r", "reveal", "f", "flag":
			if board.State() != game.Ongoing {
				fmt.Fprintln(out, "game over; n for a new game, q to quit")
				continue
			}

			x, y, err := parseCoords(fields[1:])
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}

			action := game.CellAction{X: x, Y: y, Action: game.Click}
			if fields[0][0] == 'f' {
				action.Action = game.RightClick
			}

			hitMine, err := board.Apply(action)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			if hitMine {
				board.OnLost()
			} else if action.Action == game.Click {
				board.IsWin()
			}

		default:
			fmt.Fprintln(out, playHelp)
			continue
		}

		render(out, board)
	}

	return scanner.Err()
}

func parseCoords(fields []string) (int, int, error) {
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("expected X and Y")
	}
	x, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid X %q", fields[0])
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid Y %q", fields[1])
	}
	return x, y, nil
}

func render(out io.Writer, board *game.Board) {
	fmt.Fprintf(out, "\n%03d flags left   score %d   %s\n",
		board.FlagsRemaining(), board.Score(), board.Elapsed().Truncate(time.Second))
	fmt.Fprintln(out, board.String())

	switch board.State() {
	case game.Won:
		fmt.Fprintln(out, "WIN!")
	case game.Lost:
		fmt.Fprintln(out, "LOSE :(")
	}
}
