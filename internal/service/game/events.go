package game

import (
	"github.com/fourinarow/connectfour/internal/domain"
)

type EventType string

const (
	EventDiscPlaced EventType = "disc_placed"
	EventGameOver   EventType = "game_over"
	EventGameReset  EventType = "game_reset"
	EventRemoved    EventType = "game_removed"
)

// Event is what the presentation layer reacts to: the landing row of a
// disc for the drop animation, and the end of the game.
type Event struct {
	Type        EventType         `json:"type"`
	GameID      string            `json:"gameId"`
	Column      int               `json:"column"`
	Row         int               `json:"row"`
	Disc        domain.Cell       `json:"disc,omitempty"`
	NextTurn    domain.Cell       `json:"nextTurn,omitempty"`
	Status      domain.Status     `json:"status,omitempty"`
	Winner      domain.Cell       `json:"winner,omitempty"`
	WinningLine []domain.Position `json:"winningLine,omitempty"`
	Snapshot    *domain.Snapshot  `json:"snapshot,omitempty"`
}

// Notifier receives every event. Publish is called while the game's lock is
// held and must not block.
type Notifier interface {
	Publish(event Event)
}

type noopNotifier struct{}

func (noopNotifier) Publish(Event) {}
