package mines

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Log.SetLevel(logrus.DebugLevel)
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	m.Run()
}

// at returns a source whose draws land on the given indices of a grid of
// size tiles, cycling when exhausted.
func at(size int, indices ...int) RandomFunc {
	i := 0
	return func() float64 {
		v := (float64(indices[i%len(indices)]) + 0.5) / float64(size)
		i++
		return v
	}
}

// rigged returns a board in the Playing state with mines at the given
// indices and no tile revealed.
func rigged(t *testing.T, params GameParams, mines ...int) *Board {
	t.Helper()
	params.MineCount = len(mines)
	b, err := NewCustom(params)
	require.NoError(t, err)
	for _, i := range mines {
		b.tiles[i].mine = true
	}
	b.firstClickDone = true
	b.state = Playing
	b.number()
	return b
}

func naiveCount(b *Board, x, y int) (count int) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			xx, yy := x+dx, y+dy
			if xx >= 0 && xx < b.Width() && yy >= 0 && yy < b.Height() &&
				b.tiles[yy*b.Width()+xx].mine {
				count++
			}
		}
	}
	return
}

func countMines(tiles []Tile) (n int) {
	for _, t := range tiles {
		if t.HasMine() {
			n++
		}
	}
	return
}

func TestNewBoard(t *testing.T) {
	tests := []struct {
		difficulty            Difficulty
		width, height, mines int
	}{
		{Easy, 9, 9, 10},
		{Medium, 16, 16, 40},
		{Hard, 30, 16, 99},
	}

	for _, test := range tests {
		t.Run(test.difficulty.String(), func(t *testing.T) {
			b := New(test.difficulty)
			assert.Equal(t, Ready, b.State())
			assert.Equal(t, test.width, b.Width())
			assert.Equal(t, test.height, b.Height())
			assert.Equal(t, test.mines, b.Mines())

			tiles := b.Tiles()
			require.Len(t, tiles, test.width*test.height)
			for i, tile := range tiles {
				assert.Equal(t, i, tile.Index())
				assert.False(t, tile.IsRevealed())
				assert.False(t, tile.IsFlagged())
				assert.False(t, tile.HasMine())
			}
		})
	}
}

func TestNewPanicsOnUnknownDifficulty(t *testing.T) {
	assert.Panics(t, func() { New(Difficulty(42)) })
}

func TestNewCustomRejectsInvalidParams(t *testing.T) {
	for _, p := range []GameParams{
		{Width: 0, Height: 5, MineCount: 1},
		{Width: 5, Height: -1, MineCount: 1},
		{Width: 3, Height: 3, MineCount: -1},
		{Width: 3, Height: 3, MineCount: 9},
	} {
		_, err := NewCustom(p)
		assert.ErrorIs(t, err, ErrInvalidParams, p.String())
	}
}

func TestEasyEndToEnd(t *testing.T) {
	// (0,0) is walled in by mines so it is never auto-revealed.
	mines := []int{1, 9, 10, 74, 75, 76, 77, 78, 79, 80}
	b := New(Easy, WithRandom(at(81, mines...)))
	require.Equal(t, Ready, b.State())

	require.NoError(t, b.OnClick(40, true))

	assert.Equal(t, Playing, b.State())
	tiles := b.Tiles()
	assert.Len(t, tiles, 81)
	assert.True(t, tiles[40].IsRevealed())
	assert.False(t, tiles[0].IsRevealed())
	assert.Equal(t, 10, countMines(tiles))
	for _, i := range mines {
		assert.True(t, tiles[i].HasMine(), "tile %d", i)
	}
}

func TestFirstClickIsNeverAMine(t *testing.T) {
	for _, d := range []Difficulty{Easy, Medium, Hard} {
		t.Run(d.String(), func(t *testing.T) {
			p := d.Params()
			for seed := range uint64(25) {
				r := NewSeededRand(seed)
				start := r.IntN(p.Size())
				b := New(d, WithRandom(r))

				require.NoError(t, b.OnClick(start, true))

				tiles := b.Tiles()
				assert.False(t, tiles[start].HasMine())
				assert.True(t, tiles[start].IsRevealed())
				assert.Equal(t, p.MineCount, countMines(tiles))
				assert.Contains(t, []State{Playing, Won}, b.State())
			}
		})
	}
}

func TestPlacementFallsBackFromDegenerateRandom(t *testing.T) {
	zero := RandomFunc(func() float64 { return 0 })
	b, err := NewCustom(GameParams{Width: 2, Height: 1, MineCount: 1}, WithRandom(zero))
	require.NoError(t, err)

	require.NoError(t, b.OnClick(0, true))

	tiles := b.Tiles()
	assert.False(t, tiles[0].HasMine())
	assert.True(t, tiles[1].HasMine())
	assert.Equal(t, Won, b.State())
}

func TestDenseBoardPlacement(t *testing.T) {
	p := GameParams{Width: 4, Height: 4, MineCount: 15}
	for seed := range uint64(10) {
		b, err := NewCustom(p, WithRandom(NewSeededRand(seed)))
		require.NoError(t, err)
		require.NoError(t, b.OnClick(5, true))
		assert.Equal(t, 15, countMines(b.Tiles()))
		assert.Equal(t, Won, b.State())
	}
}

func TestNumbering(t *testing.T) {
	b := rigged(t, GameParams{Width: 3, Height: 3}, 0, 8)
	want := map[int]int{1: 1, 2: 0, 3: 1, 4: 2, 5: 1, 6: 0, 7: 1}
	for i, n := range want {
		assert.Equal(t, n, b.tiles[i].AdjacentMines(), "tile %d", i)
	}

	for seed := range uint64(10) {
		b := New(Hard, WithRandom(NewSeededRand(seed)))
		require.NoError(t, b.OnClick(0, true))
		for i, tile := range b.Tiles() {
			if tile.HasMine() {
				continue
			}
			x, y := b.Point(i)
			// corners, edges and interior alike
			assert.Equal(t, naiveCount(b, x, y), tile.AdjacentMines(), "tile %d:%d", x, y)
		}
	}
}

func TestWin(t *testing.T) {
	b, err := NewCustom(
		GameParams{Width: 2, Height: 1, MineCount: 1},
		WithRandom(at(2, 1)),
	)
	require.NoError(t, err)

	require.NoError(t, b.OnClick(0, true))

	assert.Equal(t, Won, b.State())
	assert.True(t, b.Tiles()[1].HasMine())
}

func TestLoss(t *testing.T) {
	b := rigged(t, GameParams{Width: 3, Height: 3}, 0)

	require.NoError(t, b.OnClick(0, true))

	assert.Equal(t, Lost, b.State())
	tiles := b.Tiles()
	assert.True(t, tiles[0].IsRevealed())
	for _, tile := range tiles[1:] {
		assert.False(t, tile.IsRevealed(), "tile %d", tile.Index())
	}
}

func TestClicksIgnoredAfterGameOver(t *testing.T) {
	b := rigged(t, GameParams{Width: 3, Height: 3}, 0)
	require.NoError(t, b.OnClick(0, true))
	require.Equal(t, Lost, b.State())
	before := b.Tiles()

	require.NoError(t, b.OnClick(4, true))
	require.NoError(t, b.OnClick(5, false))
	require.NoError(t, b.Chord(4))
	b.Forfeit()

	assert.Equal(t, before, b.Tiles())
	assert.Equal(t, Lost, b.State())
}

func TestOutOfBoundsOnFinishedBoard(t *testing.T) {
	b := New(Easy)
	b.Forfeit()
	require.Equal(t, Lost, b.State())

	assert.ErrorIs(t, b.OnClick(81, true), ErrOutOfBounds)
	assert.ErrorIs(t, b.OnClick(-1, false), ErrOutOfBounds)
	assert.ErrorIs(t, b.Chord(81), ErrOutOfBounds)
	assert.NoError(t, b.OnClick(0, true))
	assert.Equal(t, Lost, b.State())
}

func TestOutOfBounds(t *testing.T) {
	b := New(Easy)
	for _, i := range []int{-1, 81, 1000} {
		err := b.OnClick(i, true)
		require.ErrorIs(t, err, ErrOutOfBounds)

		var ie *IndexError
		require.True(t, errors.As(err, &ie))
		assert.Equal(t, i, ie.Index)
		assert.Equal(t, 81, ie.Size)

		assert.ErrorIs(t, b.OnClick(i, false), ErrOutOfBounds)
		assert.ErrorIs(t, b.Chord(i), ErrOutOfBounds)
		_, err = b.Tile(i)
		assert.ErrorIs(t, err, ErrOutOfBounds)
	}
	assert.Equal(t, Ready, b.State())

	_, err := b.IndexOf(9, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	i, err := b.IndexOf(4, 4)
	require.NoError(t, err)
	assert.Equal(t, 40, i)
}

func TestFlagToggle(t *testing.T) {
	b := rigged(t, GameParams{Width: 3, Height: 3}, 0)

	require.NoError(t, b.OnClick(8, false))
	assert.True(t, b.tiles[8].IsFlagged())
	assert.Equal(t, 0, b.RemainingMines())

	require.NoError(t, b.OnClick(8, false))
	assert.False(t, b.tiles[8].IsFlagged())
	assert.Equal(t, 1, b.RemainingMines())

	require.NoError(t, b.OnClick(4, true))
	require.NoError(t, b.OnClick(4, false))
	assert.False(t, b.tiles[4].IsFlagged(), "revealed tiles cannot be flagged")
	assert.Equal(t, Playing, b.State())
}

func TestFlaggingBeforeFirstRevealKeepsReady(t *testing.T) {
	b := New(Easy)
	require.NoError(t, b.OnClick(3, false))
	assert.Equal(t, Ready, b.State())
	assert.True(t, b.Tiles()[3].IsFlagged())
	assert.Zero(t, countMines(b.Tiles()))
}

func TestFlagsBlockFloodFill(t *testing.T) {
	b := rigged(t, GameParams{Width: 4, Height: 4}, 15)
	require.NoError(t, b.OnClick(0, false))

	require.NoError(t, b.OnClick(5, true))

	tiles := b.Tiles()
	assert.False(t, tiles[0].IsRevealed())
	assert.True(t, tiles[0].IsFlagged())
	assert.Zero(t, tiles[0].AdjacentMines())
	assert.True(t, tiles[10].IsRevealed())
	assert.Equal(t, 1, tiles[10].AdjacentMines())
	assert.False(t, tiles[15].IsRevealed())
	assert.Equal(t, Playing, b.State())

	// a direct click still opens a flagged tile
	require.NoError(t, b.OnClick(0, true))
	assert.Equal(t, Won, b.State())
}

func TestExpandIsIdempotent(t *testing.T) {
	b := rigged(t, GameParams{Width: 6, Height: 5}, 5, 17, 29)
	b.tiles[0].revealed = true
	b.expand(0)
	once := b.Tiles()

	b.expand(0)

	assert.Equal(t, once, b.Tiles())
	assert.True(t, once[7].IsRevealed())
}

func TestRevealedTileClickIsNoop(t *testing.T) {
	b := rigged(t, GameParams{Width: 3, Height: 3}, 0)
	require.NoError(t, b.OnClick(4, true))
	before := b.Tiles()

	require.NoError(t, b.OnClick(4, true))

	assert.Equal(t, before, b.Tiles())
	assert.Equal(t, Playing, b.State())
}

func TestChord(t *testing.T) {
	t.Run("opens neighbors", func(t *testing.T) {
		b := rigged(t, GameParams{Width: 3, Height: 3}, 0)
		require.NoError(t, b.OnClick(4, true))
		require.NoError(t, b.OnClick(0, false))

		require.NoError(t, b.Chord(4))

		assert.Equal(t, Won, b.State())
		assert.False(t, b.tiles[0].IsRevealed())
	})

	t.Run("needs matching flags", func(t *testing.T) {
		b := rigged(t, GameParams{Width: 3, Height: 3}, 0)
		require.NoError(t, b.OnClick(4, true))
		before := b.Tiles()

		require.NoError(t, b.Chord(4))

		assert.Equal(t, before, b.Tiles())
	})

	t.Run("wrong flag loses", func(t *testing.T) {
		b := rigged(t, GameParams{Width: 3, Height: 3}, 0)
		require.NoError(t, b.OnClick(4, true))
		require.NoError(t, b.OnClick(1, false))

		require.NoError(t, b.Chord(4))

		assert.Equal(t, Lost, b.State())
		assert.True(t, b.tiles[0].IsRevealed())
	})

	t.Run("hidden tile", func(t *testing.T) {
		b := rigged(t, GameParams{Width: 3, Height: 3}, 0)
		require.NoError(t, b.Chord(4))
		assert.False(t, b.tiles[4].IsRevealed())
	})
}

func TestForfeit(t *testing.T) {
	b := New(Easy)
	b.Forfeit()
	assert.Equal(t, Lost, b.State())

	w, err := NewCustom(GameParams{Width: 2, Height: 1, MineCount: 1}, WithRandom(at(2, 1)))
	require.NoError(t, err)
	require.NoError(t, w.OnClick(0, true))
	w.Forfeit()
	assert.Equal(t, Won, w.State())
}

func TestTilesIsACopy(t *testing.T) {
	b := New(Easy)
	tiles := b.Tiles()
	tiles[0] = Tile{index: 99, revealed: true, mine: true}
	assert.False(t, b.Tiles()[0].IsRevealed())
	assert.Equal(t, 0, b.Tiles()[0].Index())
}

func TestDebugSink(t *testing.T) {
	var messages []string
	b := New(Easy,
		WithRandom(NewSeededRand(7)),
		WithDebug(func(m string) { messages = append(messages, m) }),
	)
	require.NoError(t, b.OnClick(40, true))
	assert.NotEmpty(t, messages)

	p := New(Easy, WithDebug(func(string) { panic("sink broke") }))
	assert.NotPanics(t, func() { p.OnClick(40, true) })
	assert.NotEqual(t, Ready, p.State())
}
