package domain

// Game is the board state machine. It is not safe for concurrent use;
// callers serialize access to it.
type Game struct {
	board       Board
	currentTurn Cell
	status      Status
	winner      Cell
	winningLine []Position
	moveCount   int
}

// PlacementResult describes a successful PlaceDisc call.
type PlacementResult struct {
	Column      int        `json:"column"`
	Row         int        `json:"row"`
	Disc        Cell       `json:"disc"`
	Status      Status     `json:"status"`
	Winner      Cell       `json:"winner"`
	WinningLine []Position `json:"winningLine,omitempty"`
	MoveNumber  int        `json:"moveNumber"`
}

func NewGame() *Game {
	g := &Game{}
	g.Reset()
	return g
}

// Reset empties the board and hands the first move back to Blue.
func (g *Game) Reset() {
	g.board = Board{}
	g.currentTurn = Blue
	g.status = StatusInProgress
	g.winner = Empty
	g.winningLine = nil
	g.moveCount = 0
}

// PlaceDisc drops a disc of the current colour into column. A rejected
// placement leaves the game untouched.
func (g *Game) PlaceDisc(column int) (PlacementResult, error) {
	if g.status != StatusInProgress {
		return PlacementResult{}, ErrGameOver
	}

	if column < 0 || column >= Columns {
		return PlacementResult{}, ErrInvalidColumn
	}

	if g.board.IsColumnFull(column) {
		return PlacementResult{}, ErrColumnFull
	}

	disc := g.currentTurn
	row, err := g.board.DropDisc(column, disc)
	if err != nil {
		return PlacementResult{}, err
	}

	g.moveCount++

	if won, line := CheckWin(&g.board, column, row, disc); won {
		g.status = StatusWon
		g.winner = disc
		g.winningLine = line
	} else if g.board.IsFull() {
		g.status = StatusDraw
	} else {
		g.currentTurn = disc.Opponent()
	}

	return PlacementResult{
		Column:      column,
		Row:         row,
		Disc:        disc,
		Status:      g.status,
		Winner:      g.winner,
		WinningLine: g.WinningLine(),
		MoveNumber:  g.moveCount,
	}, nil
}

func (g *Game) Cell(column, row int) Cell {
	return g.board.At(column, row)
}

func (g *Game) Status() Status {
	return g.status
}

// Winner is Empty unless the status is StatusWon.
func (g *Game) Winner() Cell {
	return g.winner
}

// CurrentTurn is the colour of the next disc. Once the game is won it stays
// on the winner.
func (g *Game) CurrentTurn() Cell {
	return g.currentTurn
}

func (g *Game) MoveCount() int {
	return g.moveCount
}

func (g *Game) IsFinished() bool {
	return g.status == StatusWon || g.status == StatusDraw
}

func (g *Game) WinningLine() []Position {
	if g.winningLine == nil {
		return nil
	}
	line := make([]Position, len(g.winningLine))
	copy(line, g.winningLine)
	return line
}

// ValidColumns lists the columns that still accept a disc.
func (g *Game) ValidColumns() []int {
	if g.IsFinished() {
		return []int{}
	}
	return g.board.ValidColumns()
}

// Snapshot is a read-only copy of the game for rendering and serialization.
type Snapshot struct {
	Board        [][]int    `json:"board"`
	CurrentTurn  Cell       `json:"currentTurn"`
	Status       Status     `json:"status"`
	Winner       Cell       `json:"winner"`
	WinningLine  []Position `json:"winningLine,omitempty"`
	MoveCount    int        `json:"moveCount"`
	ValidColumns []int      `json:"validColumns"`
}

func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Board:        g.board.RowMajor(),
		CurrentTurn:  g.currentTurn,
		Status:       g.status,
		Winner:       g.winner,
		WinningLine:  g.WinningLine(),
		MoveCount:    g.moveCount,
		ValidColumns: g.ValidColumns(),
	}
}
