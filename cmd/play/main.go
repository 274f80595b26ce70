package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/mines"
)

var errQuit = errors.New("quit")

const usage = `commands:
  x y     reveal tile at column x, row y
  f x y   toggle flag
  c x y   chord
  q       quit
`

func main() {
	var (
		difficulty = flag.String("difficulty", "easy", "easy, medium or hard")
		seed       = flag.Uint64("seed", 0, "mine placement seed, random when 0")
		debug      = flag.Bool("debug", false, "log board internals to stderr")
	)
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	d, err := mines.ParseDifficulty(*difficulty)
	if err != nil {
		log.WithError(err).Fatal("bad -difficulty")
	}

	opts := []mines.Option{}
	if *seed != 0 {
		opts = append(opts, mines.WithRandom(mines.NewSeededRand(*seed)))
	}
	if *debug {
		log.SetLevel(logrus.DebugLevel)
		opts = append(opts, mines.WithDebug(func(msg string) {
			log.Debug(msg)
		}))
	}

	board := mines.New(d, opts...)
	if err := play(board, os.Stdin, os.Stdout); err != nil && !errors.Is(err, errQuit) {
		log.WithError(err).Fatal("game aborted")
	}
}

func play(b *mines.Board, in io.Reader, out io.Writer) error {
	fmt.Fprint(out, usage)
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "\n%s%d mines left\n> ", b, b.RemainingMines())
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			return errQuit
		}

		if err := step(b, scanner.Text()); err != nil {
			if errors.Is(err, errQuit) {
				return err
			}
			fmt.Fprintln(out, err)
			continue
		}

		switch b.State() {
		case mines.Won:
			fmt.Fprintf(out, "\n%syou win\n", b)
			return nil
		case mines.Lost:
			fmt.Fprintf(out, "\n%sboom\n", b)
			return nil
		}
	}
}

func step(b *mines.Board, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	cmd := "o"
	switch fields[0] {
	case "q":
		return errQuit
	case "f", "c":
		cmd, fields = fields[0], fields[1:]
	}
	if len(fields) != 2 {
		return fmt.Errorf("expected x and y, got %q", line)
	}
	x, err := strconv.Atoi(fields[0])
	if err != nil {
		return fmt.Errorf("bad x: %w", err)
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("bad y: %w", err)
	}
	index, err := b.IndexOf(x, y)
	if err != nil {
		return err
	}

	switch cmd {
	case "f":
		return b.OnClick(index, false)
	case "c":
		return b.Chord(index)
	default:
		return b.OnClick(index, true)
	}
}
