package game

import (
	"sort"
	"strings"
)

type Difficulty struct {
	Name          string
	Width, Height int
	NumMines      int
}

var (
	Easy   = Difficulty{Name: "easy", Width: 10, Height: 10, NumMines: 5}
	Medium = Difficulty{Name: "medium", Width: 15, Height: 15, NumMines: 30}
	Hard   = Difficulty{Name: "hard", Width: 25, Height: 25, NumMines: 50}
)

var Difficulties = map[string]Difficulty{
	Easy.Name:   Easy,
	Medium.Name: Medium,
	Hard.Name:   Hard,
}

// DifficultyNames lists the presets, easiest first
func DifficultyNames() []string {
	names := make([]string, 0, len(Difficulties))
	for name := range Difficulties {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return Difficulties[names[i]].NumMines < Difficulties[names[j]].NumMines
	})
	return names
}

func ParseDifficulty(name string) (Difficulty, error) {
	difficulty, ok := Difficulties[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Difficulty{}, invalidConfiguration("unknown difficulty %q (want one of %s)",
			name, strings.Join(DifficultyNames(), ", "))
	}
	return difficulty, nil
}
