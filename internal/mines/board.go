package mines

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type State uint8

const (
	Ready State = iota
	Playing
	Lost
	Won
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Playing:
		return "playing"
	case Lost:
		return "lost"
	case Won:
		return "won"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Over reports whether the state is terminal.
func (s State) Over() bool {
	return s == Lost || s == Won
}

// DebugFunc receives diagnostic messages. It must not affect the game.
type DebugFunc func(message string)

type Option func(*Board)

func WithRandom(r Random) Option {
	return func(b *Board) {
		b.random = r
	}
}

func WithDebug(f DebugFunc) Option {
	return func(b *Board) {
		b.debug = f
	}
}

/*
Board is a single minesweeper game. Mines are placed on the first
reveal so that the first clicked tile is never a mine.

A Board is not safe for concurrent use.
*/
type Board struct {
	params         GameParams
	tiles          []Tile
	state          State
	firstClickDone bool
	random         Random
	debug          DebugFunc
}

// New panics on difficulties outside Easy, Medium and Hard.
func New(d Difficulty, opts ...Option) *Board {
	b, err := NewCustom(d.Params(), opts...)
	if err != nil {
		panic(fmt.Errorf("unknown difficulty %s: %w", d, err))
	}
	return b
}

func NewCustom(params GameParams, opts ...Option) (*Board, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	tiles := make([]Tile, params.Size())
	for i := range tiles {
		tiles[i] = newTile(i)
	}
	b := &Board{
		params: params,
		tiles:  tiles,
		state:  Ready,
		debug: func(message string) {
			Log.Debug(message)
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.random == nil {
		b.random = NewRand()
	}
	return b, nil
}

func (b *Board) State() State {
	return b.state
}

func (b *Board) Width() int {
	return b.params.Width
}

func (b *Board) Height() int {
	return b.params.Height
}

func (b *Board) Mines() int {
	return b.params.MineCount
}

func (b *Board) Params() GameParams {
	return b.params
}

// Tiles returns a copy; mutating it does not affect the board.
func (b *Board) Tiles() []Tile {
	return slices.Clone(b.tiles)
}

func (b *Board) Tile(index int) (Tile, error) {
	if err := b.checkIndex(index); err != nil {
		return Tile{}, err
	}
	return b.tiles[index], nil
}

func (b *Board) Flags() (n int) {
	for _, t := range b.tiles {
		if t.flagged && !t.revealed {
			n++
		}
	}
	return
}

// RemainingMines is the mine count minus the placed flags. It goes
// negative when the player over-flags.
func (b *Board) RemainingMines() int {
	return b.params.MineCount - b.Flags()
}

func (b *Board) IndexOf(x, y int) (int, error) {
	if x < 0 || x >= b.params.Width || y < 0 || y >= b.params.Height {
		return 0, &IndexError{Index: y*b.params.Width + x, Size: len(b.tiles)}
	}
	return y*b.params.Width + x, nil
}

func (b *Board) Point(index int) (x, y int) {
	return index % b.params.Width, index / b.params.Width
}

func (b *Board) checkIndex(index int) error {
	if index < 0 || index >= len(b.tiles) {
		return &IndexError{Index: index, Size: len(b.tiles)}
	}
	return nil
}

// OnClick reveals (left) or toggles the flag on (right) the tile at index.
// Clicks on a finished game are ignored.
func (b *Board) OnClick(index int, isLeftClick bool) error {
	if err := b.checkIndex(index); err != nil {
		return err
	}
	if b.state.Over() {
		return nil
	}
	if !isLeftClick {
		b.toggleFlag(index)
		return nil
	}
	b.open(index)
	return nil
}

func (b *Board) toggleFlag(index int) {
	t := &b.tiles[index]
	if t.revealed {
		return
	}
	t.flagged = !t.flagged
	b.debugf("tile %d flagged=%t", index, t.flagged)
}

func (b *Board) open(index int) {
	t := &b.tiles[index]
	if t.revealed {
		return
	}
	t.revealed = true

	if !b.firstClickDone {
		b.placeMines(index, b.params.MineCount)
		b.firstClickDone = true
	}

	b.expand(index)
	b.updateState()
}

// Chord reveals every unflagged neighbor of a revealed numbered tile once
// the player has flagged as many neighbors as the number says.
func (b *Board) Chord(index int) error {
	if err := b.checkIndex(index); err != nil {
		return err
	}
	if b.state.Over() {
		return nil
	}
	t := b.tiles[index]
	if !t.revealed || t.mine || t.adjacentMines == 0 {
		return nil
	}

	flags := 0
	hidden := make([]int, 0, 8)
	for _, n := range b.neighbors(index) {
		switch nt := b.tiles[n]; {
		case nt.revealed:
		case nt.flagged:
			flags++
		default:
			hidden = append(hidden, n)
		}
	}
	if flags != t.adjacentMines {
		return nil
	}

	for _, n := range hidden {
		b.open(n)
		if b.state.Over() {
			break
		}
	}
	return nil
}

// Forfeit ends an unfinished game as lost.
func (b *Board) Forfeit() {
	if b.state.Over() {
		return
	}
	b.state = Lost
	b.debugf("forfeited")
}

var directions = [8][2]int{
	{1, 1}, {1, 0}, {1, -1},
	{-1, 1}, {-1, 0}, {-1, -1},
	{0, 1}, {0, -1},
}

func (b *Board) neighbors(index int) []int {
	w, h := b.params.Width, b.params.Height
	x, y := index%w, index/w
	ns := make([]int, 0, len(directions))
	for _, d := range directions {
		xx, yy := x+d[0], y+d[1]
		if xx < 0 || xx >= w || yy < 0 || yy >= h {
			continue
		}
		ns = append(ns, yy*w+xx)
	}
	return ns
}

// maxRejections bounds rejection sampling, per tile, before placement
// switches to drawing from the list of free tiles.
const maxRejections = 64

func (b *Board) placeMines(excluded, count int) {
	size := len(b.tiles)
	placed, rejected := 0, 0
	for placed < count {
		if rejected > maxRejections*size {
			b.debugf("rejection limit hit after %d mines", placed)
			b.placeFromCandidates(excluded, count-placed)
			break
		}
		i := draw(b.random, size)
		if i == excluded || b.tiles[i].mine {
			rejected++
			continue
		}
		b.tiles[i].mine = true
		placed++
	}

	b.number()
	b.state = Playing
	b.debugf("placed %d mines on %s avoiding tile %d", count, b.params, excluded)
}

func (b *Board) placeFromCandidates(excluded, count int) {
	candidates := make([]int, 0, len(b.tiles))
	for i, t := range b.tiles {
		if i != excluded && !t.mine {
			candidates = append(candidates, i)
		}
	}
	k := len(candidates)
	for range count {
		i := draw(b.random, k)
		b.tiles[candidates[i]].mine = true
		k--
		candidates[i] = candidates[k]
	}
}

func (b *Board) number() {
	for i := range b.tiles {
		if b.tiles[i].mine {
			continue
		}
		n := 0
		for _, j := range b.neighbors(i) {
			if b.tiles[j].mine {
				n++
			}
		}
		b.tiles[i].adjacentMines = n
	}
}

// expand reveals the region reachable from index through zero tiles.
// Flagged tiles are never revealed here.
func (b *Board) expand(index int) {
	stack := []int{index}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if t := b.tiles[i]; t.mine || t.adjacentMines != 0 {
			continue
		}
		for _, n := range b.neighbors(i) {
			nt := &b.tiles[n]
			if nt.revealed || nt.flagged {
				continue
			}
			nt.revealed = true
			stack = append(stack, n)
		}
	}
}

func (b *Board) updateState() {
	if b.state.Over() {
		return
	}
	covered := 0
	for _, t := range b.tiles {
		if t.mine && t.revealed {
			b.state = Lost
			b.debugf("mine hit at tile %d", t.index)
			return
		}
		if !t.mine && !t.revealed {
			covered++
		}
	}
	if covered == 0 {
		b.state = Won
		b.debugf("all safe tiles revealed")
	}
}

func (b *Board) debugf(format string, args ...any) {
	if b.debug == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			Log.WithField("panic", r).Warn("debug sink panicked")
		}
	}()
	b.debug(fmt.Sprintf(format, args...))
}
