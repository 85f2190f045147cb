// boards/boards.go

// Package boards carries the built-in board descriptors: which chips a board
// name covers, the system oscillator frequency the divisor math depends on,
// and how many USART units are populated.
package boards

import (
	_ "embed"
	"errors"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed boards.yaml
var rawBoards []byte

var boards []Board

// Board describes one supported target board.
type Board struct {
	Name         string   `yaml:"name"`
	Chips        []string `yaml:"chips"`
	OscillatorHz uint32   `yaml:"oscillator-hz"`
	Units        int      `yaml:"units"`
}

// ErrUnknownBoard reports a name or chip with no descriptor.
var ErrUnknownBoard = errors.New("boards: unknown board")

// All returns every built-in board descriptor.
func All() []Board {
	return slices.Clone(boards)
}

// FindByName returns the board with the given name.
func FindByName(name string) (Board, error) {
	for _, b := range boards {
		if b.Name == strings.ToLower(name) {
			return b, nil
		}
	}
	return Board{}, ErrUnknownBoard
}

// FindByChip returns the first board populated with the given chip.
func FindByChip(chip string) (Board, error) {
	for _, b := range boards {
		if slices.Contains(b.Chips, strings.ToLower(chip)) {
			return b, nil
		}
	}
	return Board{}, ErrUnknownBoard
}

// Default returns the descriptor used when no board is selected.
func Default() Board {
	b, err := FindByName("arduino-mega")
	if err != nil {
		panic(err)
	}
	return b
}

func init() {
	var t struct {
		Elements []Board `yaml:"boards"`
	}
	if err := yaml.Unmarshal(rawBoards, &t); err != nil {
		panic(err)
	}
	boards = t.Elements
}
