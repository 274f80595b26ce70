package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper/internal/mines"
)

type wsCommand string

const (
	wsNoop    wsCommand = "g"
	wsOpen    wsCommand = "o"
	wsFlag    wsCommand = "f"
	wsChord   wsCommand = "c"
	wsForfeit wsCommand = "r"
)

// Maps known commands to number of arguments
var commandNargs = map[wsCommand]int{
	wsNoop:    0,
	wsOpen:    1,
	wsFlag:    1,
	wsChord:   1,
	wsForfeit: 0,
}

type command struct {
	name  wsCommand
	index int
}

func parseCommand(line string) (command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return command{}, errors.New("empty command")
	}
	name := wsCommand(parts[0])
	nargs, ok := commandNargs[name]
	if !ok {
		return command{}, errors.New("unknown command")
	}
	if nargs != len(parts)-1 {
		return command{}, errors.New("invalid number of arguments")
	}
	c := command{name: name}
	if nargs == 1 {
		index, err := strconv.Atoi(parts[1])
		if err != nil {
			return command{}, errors.New("argument must be an int")
		}
		c.index = index
	}
	return c, nil
}

func parseCommands(message string) ([]command, error) {
	var cmds []command
	for _, line := range strings.Split(message, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		c, err := parseCommand(line)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, c)
	}
	return cmds, nil
}

func (c command) apply(b *mines.Board) error {
	switch c.name {
	case wsOpen:
		return b.OnClick(c.index, true)
	case wsFlag:
		return b.OnClick(c.index, false)
	case wsChord:
		return b.Chord(c.index)
	case wsForfeit:
		b.Forfeit()
	}
	return nil
}

// kind is the metrics label of the move, empty for no-ops.
func (c command) kind() string {
	switch c.name {
	case wsOpen:
		return "reveal"
	case wsFlag:
		return "flag"
	case wsChord:
		return "chord"
	case wsForfeit:
		return "forfeit"
	default:
		return ""
	}
}
