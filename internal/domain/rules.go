package domain

// reach is how far a winning line can extend on either side of the disc
// that completes it.
const reach = ToWin - 1

// axes are the column/row steps of the four line directions. Row grows
// downwards.
var axes = [4][2]int{
	{1, 0},  // horizontal
	{0, 1},  // vertical
	{1, 1},  // "\" descends while the column increases
	{1, -1}, // "/" climbs while the column increases
}

// CheckWin only looks at lines passing through (column, row), the cell that
// was just filled, and only for the given player. On a win it also returns
// the four cells that completed the line.
func CheckWin(board *Board, column, row int, player Cell) (bool, []Position) {
	for _, axis := range axes {
		if line := scanWindow(board, column, row, axis[0], axis[1], player); line != nil {
			return true, line
		}
	}
	return false, nil
}

// scanWindow walks the 7 points centred on (column, row) along one axis.
// Points off the board break the chain like any non-matching cell.
func scanWindow(board *Board, column, row, deltaCol, deltaRow int, player Cell) []Position {
	chain := 0
	for i := -reach; i <= reach; i++ {
		c, r := column+i*deltaCol, row+i*deltaRow
		if InBounds(c, r) && board.At(c, r) == player {
			chain++
			if chain == ToWin {
				line := make([]Position, 0, ToWin)
				for k := ToWin - 1; k >= 0; k-- {
					line = append(line, Position{Column: c - k*deltaCol, Row: r - k*deltaRow})
				}
				return line
			}
		} else {
			chain = 0
		}
	}
	return nil
}
