package domain

// Board is stored column-major: board[column][row], with row 0 at the top.
type Board [Columns][Rows]Cell

func InBounds(column, row int) bool {
	return column >= 0 && column < Columns && row >= 0 && row < Rows
}

// At reports Empty for anything outside the grid.
func (b *Board) At(column, row int) Cell {
	if !InBounds(column, row) {
		return Empty
	}
	return b[column][row]
}

func (b *Board) IsColumnFull(column int) bool {
	// the top cell is the last one to be filled
	return b[column][0] != Empty
}

// DropDisc lets the disc fall to the lowest empty cell of the column and
// returns the row it landed in.
func (b *Board) DropDisc(column int, disc Cell) (int, error) {
	if column < 0 || column >= Columns {
		return -1, ErrInvalidColumn
	}

	for row := Rows - 1; row >= 0; row-- {
		if b[column][row] == Empty {
			b[column][row] = disc
			return row, nil
		}
	}

	return -1, ErrColumnFull
}

func (b *Board) IsFull() bool {
	for c := 0; c < Columns; c++ {
		if !b.IsColumnFull(c) {
			return false
		}
	}

	return true
}

func (b *Board) ValidColumns() []int {
	columns := []int{}
	for c := 0; c < Columns; c++ {
		if !b.IsColumnFull(c) {
			columns = append(columns, c)
		}
	}
	return columns
}

// RowMajor returns a row-major copy, which is the shape renderers and JSON
// clients expect.
func (b *Board) RowMajor() [][]int {
	grid := make([][]int, Rows)
	for r := 0; r < Rows; r++ {
		grid[r] = make([]int, Columns)
		for c := 0; c < Columns; c++ {
			grid[r][c] = int(b[c][r])
		}
	}
	return grid
}
