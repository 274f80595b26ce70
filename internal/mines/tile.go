package mines

// Tile is a snapshot of one grid cell. Boards hand out copies only.
type Tile struct {
	index         int
	revealed      bool
	flagged       bool
	mine          bool
	adjacentMines int
}

func newTile(index int) Tile {
	return Tile{index: index}
}

func (t Tile) Index() int {
	return t.index
}

func (t Tile) HasMine() bool {
	return t.mine
}

// AdjacentMines is only meaningful for tiles without a mine.
func (t Tile) AdjacentMines() int {
	return t.adjacentMines
}

func (t Tile) IsRevealed() bool {
	return t.revealed
}

func (t Tile) IsFlagged() bool {
	return t.flagged
}
