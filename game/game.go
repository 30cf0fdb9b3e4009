package game

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

type GameConfig struct {
	Width    int           `yaml:"width"`
	Height   int           `yaml:"height"`
	NumMines int           `yaml:"mines"`
	Mode     PlacementMode `yaml:"mode"`

	// Zero picks a seed from the clock
	Seed int64 `yaml:"seed"`

	// Consecutive rejected weighted draws before placing uniformly
	MaxRejections int `yaml:"max_rejections"`

	// Layout to build the board from, instead of placing mines
	Layout *Layout `yaml:"layout,omitempty"`
	// Whether to set all cells as unrevealed when loading the Layout
	LoadLayoutFresh bool `yaml:"layout_fresh"`
}

func NewGameConfig() GameConfig {
	return GameConfig{
		Width:           30,
		Height:          16,
		NumMines:        99,
		Mode:            Uniform,
		MaxRejections:   DefaultMaxRejections,
		Layout:          nil,
		LoadLayoutFresh: true,
	}
}

// LoadGameConfig reads a YAML config on top of the defaults
func LoadGameConfig(in []byte) (GameConfig, error) {
	config := NewGameConfig()
	if err := yaml.Unmarshal(in, &config); err != nil {
		return config, errors.Wrap(err, "unmarshal game config")
	}
	return config, nil
}

func (config *GameConfig) ApplyDifficulty(difficulty Difficulty) {
	config.Width = difficulty.Width
	config.Height = difficulty.Height
	config.NumMines = difficulty.NumMines
}

// Validate applies the rules for player-chosen boards. Layouts are checked
// when the board is built.
func (config GameConfig) Validate() error {
	if config.Layout != nil {
		return nil
	}
	return ValidateCustom(config.Width, config.Height, config.NumMines)
}

func (config GameConfig) CreateBoard(opts ...Option) (*Board, error) {
	opts = append([]Option{WithMaxRejections(config.MaxRejections)}, opts...)

	if config.Layout != nil {
		return config.Layout.CreateBoard(config.LoadLayoutFresh, opts...)
	}

	if config.Seed != 0 {
		opts = append([]Option{WithSeed(config.Seed)}, opts...)
	}
	return New(config.Width, config.Height, config.NumMines, config.Mode == Weighted, opts...)
}

// Autoplay lets the director play the board until the game is won or lost,
// or the director gives up.
func Autoplay(board *Board, director Director) (BoardState, error) {
	director.Init(board)

	moves := 0
	for {
		action, ok := director.Act()
		if !ok {
			break
		}
		moves++

		hitMine, err := board.Apply(action)
		if err != nil {
			return board.State(), errors.Wrapf(err, "move %d (%s)", moves, action.Action)
		}

		if hitMine {
			board.OnLost()
			break
		}
		if action.Action == Click && board.IsWin() {
			break
		}
	}

	board.log.WithFields(logrus.Fields{
		"moves": moves,
		"state": board.State(),
		"score": board.Score(),
	}).Debug("Autoplay finished")

	return board.State(), nil
}

func (mode PlacementMode) MarshalYAML() (interface{}, error) {
	return mode.String(), nil
}

func (mode *PlacementMode) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	parsed, ok := PlacementModes[strings.ToLower(name)]
	if !ok {
		return invalidConfiguration("unknown placement mode %q", name)
	}
	*mode = parsed
	return nil
}
