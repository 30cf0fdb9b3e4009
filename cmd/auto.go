package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/they4kman/sweepcore/director/constraint"
	"github.com/they4kman/sweepcore/director/random"
	"github.com/they4kman/sweepcore/game"
)

var (
	numGames     int
	directorName string
)

var directors = map[string]func(seed int64) game.Director{
	"random": func(seed int64) game.Director {
		return random.New(seed)
	},
	"constraint": func(seed int64) game.Director {
		return constraint.New(seed)
	},
}

type autoStats struct {
	Games, Wins, Losses int
	TotalScore          int
}

var autoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Let a director play games and report how it did",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := buildConfig(cmd)
		if err != nil {
			return err
		}

		newDirector, ok := directors[directorName]
		if !ok {
			return fmt.Errorf("unknown director %q", directorName)
		}

		if config.Seed == 0 {
			config.Seed = time.Now().UnixNano()
		}

		stats, err := autoplay(config, newDirector, numGames)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d games: %d won, %d lost, average score %.1f\n",
			stats.Games, stats.Wins, stats.Losses, float64(stats.TotalScore)/float64(stats.Games))
		return nil
	},
}

// autoplay plays games boards in a row; each board and director gets its
// own seed drawn from the config's seed
func autoplay(config game.GameConfig, newDirector func(int64) game.Director, games int) (autoStats, error) {
	seeds := rand.New(rand.NewSource(config.Seed))
	stats := autoStats{}

	for i := 0; i < games; i++ {
		config.Seed = seeds.Int63()
		board, err := config.CreateBoard()
		if err != nil {
			return stats, err
		}

		state, err := game.Autoplay(board, newDirector(seeds.Int63()))
		if err != nil {
			return stats, errors.Wrapf(err, "game %d", i+1)
		}

		stats.Games++
		stats.TotalScore += board.Score()
		switch state {
		case game.Won:
			stats.Wins++
		case game.Lost:
			stats.Losses++
		}

		game.Log.WithFields(logrus.Fields{
			"game":  i + 1,
			"seed":  config.Seed,
			"state": state,
			"score": board.Score(),
		}).Debug("Game finished")
	}

	return stats, nil
}

func init() {
	autoCmd.Flags().IntVarP(&numGames, "games", "n", 1, "Number of games to play")
	autoCmd.Flags().StringVar(&directorName, "director", "constraint", "Director to play with: random or constraint")
}
