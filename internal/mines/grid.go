package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellStatus int8

const (
	Unknown      CellStatus = -2
	Flag         CellStatus = -1
	CorrectFlag  CellStatus = 64 // post-game-over
	ExplodedMine CellStatus = 65
	WrongFlag    CellStatus = 66
	HiddenMine   CellStatus = 67
	// 0-8 for an open tile with that many mined neighbors
)

func (s CellStatus) String() string {
	switch s {
	case Unknown:
		return "*"
	case Flag, CorrectFlag:
		return "F"
	case WrongFlag:
		return "x"
	case ExplodedMine:
		return "b"
	case HiddenMine:
		return "m"
	case 0, 1, 2, 3, 4, 5, 6, 7, 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

type Grid []CellStatus

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			if x > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprint(&b, g[y*width+x].String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// View is what the player may see. Mines stay hidden until the game is
// over, at which point flags are marked correct or wrong.
func (b *Board) View() Grid {
	over := b.state.Over()
	grid := make(Grid, len(b.tiles))
	for i, t := range b.tiles {
		switch {
		case t.revealed && t.mine:
			grid[i] = ExplodedMine
		case t.revealed:
			grid[i] = CellStatus(t.adjacentMines)
		case !over && t.flagged:
			grid[i] = Flag
		case !over:
			grid[i] = Unknown
		case t.flagged && t.mine:
			grid[i] = CorrectFlag
		case t.flagged:
			grid[i] = WrongFlag
		case t.mine:
			grid[i] = HiddenMine
		default:
			grid[i] = Unknown
		}
	}
	return grid
}

func (b *Board) String() string {
	return b.View().ToString(b.params.Width)
}
