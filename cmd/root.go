package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/they4kman/sweepcore/game"
)

var (
	configPath string
	difficulty string
	layoutPath string
	verbose    bool

	flagConfig = game.NewGameConfig()
)

var rootCmd = &cobra.Command{
	Use:   "gosweep",
	Short: "Play manual or computer-driven Minesweeper",
	Long: `gosweep is a Minesweeper game which supports human- or
computer-driven playing.

Run with no arguments to play in the terminal
	gosweep

Let a director play a few games for you
	gosweep auto --games 10 --director constraint
`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			game.Log.SetLevel(logrus.DebugLevel)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, args)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type placementModeValue game.PlacementMode

func newPlacementModeValue(val game.PlacementMode, p *game.PlacementMode) *placementModeValue {
	*p = val
	return (*placementModeValue)(p)
}

func (modeVal *placementModeValue) String() string {
	return game.PlacementMode(*modeVal).String()
}

func (modeVal *placementModeValue) Set(value string) error {
	if mode, isValid := game.PlacementModes[value]; isValid {
		*modeVal = placementModeValue(mode)
		return nil
	} else {
		return fmt.Errorf("invalid placement mode %q", value)
	}
}

func (modeVal *placementModeValue) Type() string {
	return "game.PlacementMode"
}

// buildConfig layers the config file, the difficulty preset and any flags
// given explicitly, in that order
func buildConfig(cmd *cobra.Command) (game.GameConfig, error) {
	config := game.NewGameConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return config, errors.Wrap(err, "read config")
		}
		if config, err = game.LoadGameConfig(data); err != nil {
			return config, err
		}
	}

	if difficulty != "" {
		preset, err := game.ParseDifficulty(difficulty)
		if err != nil {
			return config, err
		}
		config.ApplyDifficulty(preset)
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		config.Width = flagConfig.Width
	}
	if flags.Changed("height") {
		config.Height = flagConfig.Height
	}
	if flags.Changed("mines") {
		config.NumMines = flagConfig.NumMines
	}
	if flags.Changed("mode") {
		config.Mode = flagConfig.Mode
	}
	if flags.Changed("seed") {
		config.Seed = flagConfig.Seed
	}
	if flags.Changed("max-rejections") {
		config.MaxRejections = flagConfig.MaxRejections
	}

	if layoutPath != "" {
		data, err := os.ReadFile(layoutPath)
		if err != nil {
			return config, errors.Wrap(err, "read layout")
		}
		if config.Layout, err = game.LoadLayout(string(data)); err != nil {
			return config, err
		}
	}

	return config, config.Validate()
}

func init() {
	// Define our root -help without a shorthand, as we'll use -h for --height
	// Ref: https://github.com/spf13/cobra/issues/291
	rootCmd.PersistentFlags().Bool("help", false, "Help for this command")

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML file with the game configuration")
	rootCmd.PersistentFlags().StringVarP(&difficulty, "difficulty", "d", "", "Preset board size: easy, medium or hard")
	rootCmd.PersistentFlags().StringVar(&layoutPath, "layout", "", "YAML layout to build the board from")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output")

	rootCmd.PersistentFlags().IntVarP(&flagConfig.Width, "width", "w", flagConfig.Width, "Width of game board, in cells")
	rootCmd.PersistentFlags().IntVarP(&flagConfig.Height, "height", "h", flagConfig.Height, "Height of game board, in cells")
	rootCmd.PersistentFlags().IntVarP(&flagConfig.NumMines, "mines", "m", flagConfig.NumMines, "Number of mines to place in the game board")
	rootCmd.PersistentFlags().Int64Var(&flagConfig.Seed, "seed", 0, "Seed for mine placement (0 picks one from the clock)")
	rootCmd.PersistentFlags().IntVar(&flagConfig.MaxRejections, "max-rejections", flagConfig.MaxRejections,
		"Rejected weighted draws in a row before the remaining mines are placed uniformly")
	rootCmd.PersistentFlags().Var(newPlacementModeValue(game.Uniform, &flagConfig.Mode), "mode", `Mine placement, controlling how mines are spread.
uniform: every cell is equally likely to hold a mine
weighted: mines cluster around mines already placed`)

	rootCmd.AddCommand(autoCmd, layoutCmd)
}
