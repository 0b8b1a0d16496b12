package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// play drops discs into the given columns in order and returns the last result.
func play(t *testing.T, g *Game, columns ...int) PlacementResult {
	t.Helper()
	var res PlacementResult
	for i, col := range columns {
		var err error
		res, err = g.PlaceDisc(col)
		require.NoErrorf(t, err, "move %d into column %d", i+1, col)
	}
	return res
}

// pair fills two columns so that x gets B,R,B,... and y gets R,B,R,...
// from the bottom up, starting on Blue's turn.
func pair(x, y int) []int {
	return []int{x, y, y, x, x, y, y, x, x, y, y, x}
}

func drawSequence() []int {
	seq := []int{0, 0, 0, 0, 0, 0}
	seq = append(seq, pair(1, 6)...)
	seq = append(seq, pair(4, 2)...)
	seq = append(seq, pair(5, 3)...)
	return seq
}

func TestNewGame(t *testing.T) {
	g := NewGame()

	assert.Equal(t, StatusInProgress, g.Status())
	assert.Equal(t, Blue, g.CurrentTurn())
	assert.Equal(t, Empty, g.Winner())
	assert.Equal(t, 0, g.MoveCount())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, g.ValidColumns())
	for c := 0; c < Columns; c++ {
		for r := 0; r < Rows; r++ {
			assert.Equal(t, Empty, g.Cell(c, r))
		}
	}
}

func TestPlaceDisc_Gravity(t *testing.T) {
	g := NewGame()

	for want := Rows - 1; want >= 0; want-- {
		res, err := g.PlaceDisc(3)
		require.NoError(t, err)
		assert.Equal(t, want, res.Row)
		assert.Equal(t, 3, res.Column)
		assert.NotEqual(t, Empty, g.Cell(3, want))
	}

	res, err := g.PlaceDisc(2)
	require.NoError(t, err)
	assert.Equal(t, Rows-1, res.Row, "other columns are unaffected")
}

func TestPlaceDisc_TurnAlternates(t *testing.T) {
	g := NewGame()
	want := []Cell{Blue, Red, Blue, Red, Blue}

	for i, col := range []int{0, 1, 2, 3, 4} {
		assert.Equal(t, want[i], g.CurrentTurn())
		res, err := g.PlaceDisc(col)
		require.NoError(t, err)
		assert.Equal(t, want[i], res.Disc)
		assert.Equal(t, want[i], g.Cell(col, Rows-1))
		assert.Equal(t, i+1, res.MoveNumber)
	}
	assert.Equal(t, Red, g.CurrentTurn())
}

func TestPlaceDisc_InvalidColumn(t *testing.T) {
	g := NewGame()
	play(t, g, 2)
	before := g.Snapshot()

	for _, col := range []int{-1, Columns, 42} {
		_, err := g.PlaceDisc(col)
		assert.ErrorIs(t, err, ErrInvalidColumn)
	}

	assert.Equal(t, before, g.Snapshot())
	assert.Equal(t, Red, g.CurrentTurn())
}

func TestPlaceDisc_ColumnFull(t *testing.T) {
	g := NewGame()
	play(t, g, 0, 0, 0, 0, 0, 0)
	before := g.Snapshot()

	_, err := g.PlaceDisc(0)
	require.ErrorIs(t, err, ErrColumnFull)
	assert.Equal(t, before, g.Snapshot())
	assert.Equal(t, Blue, g.CurrentTurn(), "turn does not advance on a rejected move")
	assert.NotContains(t, g.ValidColumns(), 0)
}

func TestPlaceDisc_VerticalWin(t *testing.T) {
	g := NewGame()
	play(t, g, 0, 1, 0, 1, 0, 1)
	assert.Equal(t, StatusInProgress, g.Status())

	res, err := g.PlaceDisc(0)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Row)
	assert.Equal(t, Blue, res.Disc)
	assert.Equal(t, StatusWon, res.Status)
	assert.Equal(t, Blue, res.Winner)
	assert.Equal(t, 7, res.MoveNumber)
	assert.ElementsMatch(t, []Position{{0, 5}, {0, 4}, {0, 3}, {0, 2}}, res.WinningLine)

	assert.Equal(t, StatusWon, g.Status())
	assert.Equal(t, Blue, g.Winner())
	assert.Equal(t, Blue, g.CurrentTurn(), "turn stays with the winner")
	assert.Empty(t, g.ValidColumns())
}

func TestPlaceDisc_HorizontalWinForRed(t *testing.T) {
	g := NewGame()
	// Blue wastes moves on column 6 while Red builds the bottom row.
	play(t, g, 6, 0, 6, 1, 6, 2, 5)
	res := play(t, g, 3)

	assert.Equal(t, StatusWon, res.Status)
	assert.Equal(t, Red, res.Winner)
	assert.Equal(t, Rows-1, res.Row)
	assert.ElementsMatch(t, []Position{{0, 5}, {1, 5}, {2, 5}, {3, 5}}, res.WinningLine)
}

func TestPlaceDisc_DiagonalWin(t *testing.T) {
	g := NewGame()
	play(t, g, 0, 1, 1, 2, 3, 2, 2, 3, 6, 3)
	assert.Equal(t, StatusInProgress, g.Status())

	res := play(t, g, 3)

	assert.Equal(t, 2, res.Row)
	assert.Equal(t, StatusWon, g.Status())
	assert.Equal(t, Blue, g.Winner())
	assert.ElementsMatch(t, []Position{{0, 5}, {1, 4}, {2, 3}, {3, 2}}, res.WinningLine)
}

func TestPlaceDisc_AntiDiagonalWin(t *testing.T) {
	g := NewGame()
	play(t, g, 6, 5, 5, 4, 3, 4, 4, 3, 0, 3)

	res := play(t, g, 3)

	assert.Equal(t, StatusWon, res.Status)
	assert.Equal(t, Blue, res.Winner)
	assert.ElementsMatch(t, []Position{{3, 2}, {4, 3}, {5, 4}, {6, 5}}, res.WinningLine)
}

func TestPlaceDisc_GapIsNotAWin(t *testing.T) {
	g := NewGame()
	// Blue on 0, 1 and 3 of the bottom row with column 2 empty.
	play(t, g, 0, 0, 1, 1, 3)

	assert.Equal(t, StatusInProgress, g.Status())
	assert.Equal(t, Red, g.CurrentTurn())
}

func TestPlaceDisc_FillingGapWins(t *testing.T) {
	g := NewGame()
	play(t, g, 0, 0, 1, 1, 3, 3)

	res := play(t, g, 2)
	assert.Equal(t, StatusWon, res.Status)
	assert.Equal(t, Blue, res.Winner)
}

func TestPlaceDisc_Draw(t *testing.T) {
	g := NewGame()
	seq := drawSequence()
	require.Len(t, seq, Rows*Columns)

	res := play(t, g, seq[:len(seq)-1]...)
	assert.Equal(t, StatusInProgress, res.Status)

	res = play(t, g, seq[len(seq)-1])
	assert.Equal(t, StatusDraw, res.Status)
	assert.Equal(t, Empty, res.Winner)
	assert.Equal(t, StatusDraw, g.Status())
	assert.Equal(t, Rows*Columns, g.MoveCount())
	assert.Empty(t, g.ValidColumns())
}

func TestPlaceDisc_AfterGameOver(t *testing.T) {
	g := NewGame()
	play(t, g, 0, 1, 0, 1, 0, 1, 0)
	before := g.Snapshot()

	for _, col := range []int{2, 0, -1} {
		_, err := g.PlaceDisc(col)
		assert.ErrorIs(t, err, ErrGameOver)
	}
	assert.Equal(t, before, g.Snapshot())

	g = NewGame()
	play(t, g, drawSequence()...)
	_, err := g.PlaceDisc(0)
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestReset(t *testing.T) {
	g := NewGame()
	play(t, g, 0, 1, 0, 1, 0, 1, 0)
	require.True(t, g.IsFinished())

	g.Reset()

	assert.Equal(t, NewGame().Snapshot(), g.Snapshot())
	assert.Equal(t, Blue, g.CurrentTurn())
	assert.Equal(t, StatusInProgress, g.Status())
	assert.Nil(t, g.WinningLine())

	res := play(t, g, 0)
	assert.Equal(t, Rows-1, res.Row)
	assert.Equal(t, Blue, res.Disc)
}

func TestSnapshot_IsACopy(t *testing.T) {
	g := NewGame()
	play(t, g, 4)

	snap := g.Snapshot()
	assert.Equal(t, int(Blue), snap.Board[Rows-1][4])
	snap.Board[Rows-1][4] = int(Red)

	assert.Equal(t, Blue, g.Cell(4, Rows-1))
}

func TestCell_OutOfBounds(t *testing.T) {
	g := NewGame()
	assert.Equal(t, Empty, g.Cell(-1, 0))
	assert.Equal(t, Empty, g.Cell(0, Rows))
	assert.Equal(t, Empty, g.Cell(Columns, 3))
}
