package mines

import (
	"fmt"
	"strings"
)

type Difficulty uint8

const (
	Easy Difficulty = iota
	Medium
	Hard
)

var difficultyNames = [...]string{
	Easy:   "easy",
	Medium: "medium",
	Hard:   "hard",
}

func (d Difficulty) String() string {
	if int(d) < len(difficultyNames) {
		return difficultyNames[d]
	}
	return fmt.Sprintf("Difficulty(%d)", uint8(d))
}

// Params returns the board dimensions and mine count of the preset.
// Unknown difficulties yield zero params, which never validate.
func (d Difficulty) Params() GameParams {
	switch d {
	case Easy:
		return GameParams{Width: 9, Height: 9, MineCount: 10}
	case Medium:
		return GameParams{Width: 16, Height: 16, MineCount: 40}
	case Hard:
		return GameParams{Width: 30, Height: 16, MineCount: 99}
	default:
		return GameParams{}
	}
}

func ParseDifficulty(s string) (Difficulty, error) {
	for d, name := range difficultyNames {
		if strings.EqualFold(s, name) {
			return Difficulty(d), nil
		}
	}
	return 0, fmt.Errorf(
		"difficulty must be one of %s, got %q",
		strings.Join(difficultyNames[:], ", "), s,
	)
}

// Custom boards may not exceed these dimensions.
const (
	MaxWidth  = 100
	MaxHeight = 100
)

type GameParams struct {
	Width, Height, MineCount int
}

func (p GameParams) Unpack() (w int, h int, mc int) {
	return p.Width, p.Height, p.MineCount
}

func (p GameParams) Size() int {
	return p.Width * p.Height
}

// Validate reports a *ParamsError unless the grid is non-empty, within
// MaxWidth x MaxHeight, and leaves at least one safe tile for the first
// click.
func (p GameParams) Validate() error {
	switch {
	case p.Width <= 0:
		return &ParamsError{p, "width must be positive"}
	case p.Height <= 0:
		return &ParamsError{p, "height must be positive"}
	case p.Width > MaxWidth:
		return &ParamsError{p, fmt.Sprintf("width must not exceed %d", MaxWidth)}
	case p.Height > MaxHeight:
		return &ParamsError{p, fmt.Sprintf("height must not exceed %d", MaxHeight)}
	case p.MineCount < 0:
		return &ParamsError{p, "mine count must not be negative"}
	case p.MineCount > p.Size()-1:
		return &ParamsError{p, "mine count must leave room for the first click"}
	}
	return nil
}

func (p GameParams) String() string {
	return fmt.Sprintf("%dx%d(%d)", p.Width, p.Height, p.MineCount)
}
