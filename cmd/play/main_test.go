package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/mines"
)

func newBoard(t *testing.T, width, height, mineCount int) *mines.Board {
	t.Helper()
	b, err := mines.NewCustom(
		mines.GameParams{Width: width, Height: height, MineCount: mineCount},
		mines.WithRandom(mines.NewSeededRand(7)),
	)
	require.NoError(t, err)
	return b
}

func TestPlayWin(t *testing.T) {
	b := newBoard(t, 2, 1, 1)
	var out strings.Builder

	err := play(b, strings.NewReader("f 1 0\nnonsense\n0 0\n"), &out)
	require.NoError(t, err)

	assert.Equal(t, mines.Won, b.State())
	assert.Contains(t, out.String(), "* F\n")
	assert.Contains(t, out.String(), `expected x and y, got "nonsense"`)
	assert.True(t, strings.HasSuffix(out.String(), "1 F\nyou win\n"))
}

func TestPlayQuit(t *testing.T) {
	b := newBoard(t, 3, 3, 2)
	var out strings.Builder

	err := play(b, strings.NewReader("3 0\nq\n0 0\n"), &out)
	assert.ErrorIs(t, err, errQuit)
	assert.Equal(t, mines.Ready, b.State())
	assert.Contains(t, out.String(), "out of bounds")
}

func TestStep(t *testing.T) {
	b := newBoard(t, 3, 3, 2)

	require.NoError(t, step(b, ""))
	require.NoError(t, step(b, "f 2 2"))
	tile, err := b.Tile(8)
	require.NoError(t, err)
	assert.True(t, tile.IsFlagged())

	assert.Error(t, step(b, "f x 1"))
	assert.Error(t, step(b, "c 1"))
	require.NoError(t, step(b, "c 0 0"))
	assert.ErrorIs(t, step(b, "q"), errQuit)
}
