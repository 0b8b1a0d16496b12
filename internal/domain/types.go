package domain

// Cell is the content of a single board position. The two disc colours
// double as the Turn values.
type Cell int

const (
	Empty Cell = 0
	Blue  Cell = 1
	Red   Cell = 2
)

func (c Cell) String() string {
	switch c {
	case Blue:
		return "blue"
	case Red:
		return "red"
	default:
		return "empty"
	}
}

func (c Cell) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Cell) UnmarshalText(text []byte) error {
	switch string(text) {
	case "blue":
		*c = Blue
	case "red":
		*c = Red
	case "empty", "":
		*c = Empty
	default:
		return Error("unknown cell " + string(text))
	}
	return nil
}

// Opponent returns the other disc colour.
func (c Cell) Opponent() Cell {
	if c == Blue {
		return Red
	}
	return Blue
}

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// to represent the game status
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusDraw       Status = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidColumn Error = "invalid column"
	ErrColumnFull    Error = "column is full"
	ErrGameOver      Error = "game is over"
)

// Position addresses a cell, row 0 being the top of the board.
type Position struct {
	Column int `json:"column"`
	Row    int `json:"row"`
}
