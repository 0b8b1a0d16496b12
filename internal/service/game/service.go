package game

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/fourinarow/connectfour/internal/domain"
	"github.com/fourinarow/connectfour/pkg/uid"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrTooManyGames = errors.New("too many active games")
)

// GameSession wraps one engine. The engine is not reentrant, so every call
// into it goes through mu.
type GameSession struct {
	GameID       string
	Game         *domain.Game
	CreatedAt    time.Time
	LastActivity time.Time
	FinishedAt   time.Time
	mu           sync.Mutex
}

// SessionManager manages the live games of this process
type SessionManager struct {
	Session     map[string]*GameSession // gameID → GameSession
	mu          sync.RWMutex
	maxSessions int
	notifier    Notifier
	now         func() time.Time
}

func NewSessionManager(maxSessions int, notifier Notifier) *SessionManager {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &SessionManager{
		Session:     make(map[string]*GameSession),
		maxSessions: maxSessions,
		notifier:    notifier,
		now:         time.Now,
	}
}

func (sm *SessionManager) CreateSession() (*GameSession, error) {
	gameID, err := uid.GenerateGameID()
	if err != nil {
		return nil, err
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.maxSessions > 0 && len(sm.Session) >= sm.maxSessions {
		return nil, ErrTooManyGames
	}

	now := sm.now()
	session := &GameSession{
		GameID:       gameID,
		Game:         domain.NewGame(),
		CreatedAt:    now,
		LastActivity: now,
	}
	sm.Session[gameID] = session

	log.Printf("[GAME] Created game %s", gameID)
	return session, nil
}

func (sm *SessionManager) GetSession(gameID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.Session[gameID]
	return session, exists
}

func (sm *SessionManager) lookup(gameID string) (*GameSession, error) {
	session, exists := sm.GetSession(gameID)
	if !exists {
		return nil, fmt.Errorf("game %s: %w", gameID, ErrGameNotFound)
	}
	return session, nil
}

func (sm *SessionManager) Snapshot(gameID string) (domain.Snapshot, error) {
	session, err := sm.lookup(gameID)
	if err != nil {
		return domain.Snapshot{}, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.Game.Snapshot(), nil
}

// PlaceDisc drops the current player's disc into column and publishes the
// resulting events. Engine errors are returned wrapped, so errors.Is still
// matches the domain sentinels.
func (sm *SessionManager) PlaceDisc(gameID string, column int) (domain.PlacementResult, domain.Snapshot, error) {
	session, err := sm.lookup(gameID)
	if err != nil {
		return domain.PlacementResult{}, domain.Snapshot{}, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	result, err := session.Game.PlaceDisc(column)
	if err != nil {
		return domain.PlacementResult{}, domain.Snapshot{}, fmt.Errorf("game %s: %w", gameID, err)
	}
	session.LastActivity = sm.now()
	if session.Game.IsFinished() {
		session.FinishedAt = session.LastActivity
	}
	snapshot := session.Game.Snapshot()
	nextTurn := session.Game.CurrentTurn()

	// published under the session lock so watchers see moves in order
	sm.notifier.Publish(Event{
		Type:     EventDiscPlaced,
		GameID:   gameID,
		Column:   result.Column,
		Row:      result.Row,
		Disc:     result.Disc,
		NextTurn: nextTurn,
		Status:   result.Status,
		Snapshot: &snapshot,
	})

	if result.Status != domain.StatusInProgress {
		log.Printf("[GAME] Game %s finished: status=%s winner=%s moves=%d",
			gameID, result.Status, result.Winner, result.MoveNumber)

		sm.notifier.Publish(Event{
			Type:        EventGameOver,
			GameID:      gameID,
			Column:      result.Column,
			Row:         result.Row,
			Disc:        result.Disc,
			Status:      result.Status,
			Winner:      result.Winner,
			WinningLine: result.WinningLine,
			Snapshot:    &snapshot,
		})
	}

	return result, snapshot, nil
}

func (sm *SessionManager) Reset(gameID string) (domain.Snapshot, error) {
	session, err := sm.lookup(gameID)
	if err != nil {
		return domain.Snapshot{}, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	session.Game.Reset()
	session.LastActivity = sm.now()
	session.FinishedAt = time.Time{}
	snapshot := session.Game.Snapshot()

	log.Printf("[GAME] Game %s reset", gameID)
	sm.notifier.Publish(Event{
		Type:     EventGameReset,
		GameID:   gameID,
		NextTurn: snapshot.CurrentTurn,
		Status:   snapshot.Status,
		Snapshot: &snapshot,
	})

	return snapshot, nil
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	if _, exists := sm.Session[gameID]; !exists {
		sm.mu.Unlock()
		return fmt.Errorf("game %s: %w", gameID, ErrGameNotFound)
	}
	delete(sm.Session, gameID)
	sm.mu.Unlock()

	log.Printf("[GAME] Removed game %s", gameID)
	sm.notifier.Publish(Event{Type: EventRemoved, GameID: gameID})
	return nil
}

type GameSummary struct {
	GameID       string        `json:"gameId"`
	Status       domain.Status `json:"status"`
	CurrentTurn  domain.Cell   `json:"currentTurn"`
	Winner       domain.Cell   `json:"winner,omitempty"`
	MoveCount    int           `json:"moveCount"`
	CreatedAt    time.Time     `json:"createdAt"`
	LastActivity time.Time     `json:"lastActivity"`
}

// ActiveGames lists every live game, oldest first.
func (sm *SessionManager) ActiveGames() []GameSummary {
	sm.mu.RLock()
	sessions := make([]*GameSession, 0, len(sm.Session))
	for _, session := range sm.Session {
		sessions = append(sessions, session)
	}
	sm.mu.RUnlock()

	games := make([]GameSummary, 0, len(sessions))
	for _, session := range sessions {
		session.mu.Lock()
		games = append(games, GameSummary{
			GameID:       session.GameID,
			Status:       session.Game.Status(),
			CurrentTurn:  session.Game.CurrentTurn(),
			Winner:       session.Game.Winner(),
			MoveCount:    session.Game.MoveCount(),
			CreatedAt:    session.CreatedAt,
			LastActivity: session.LastActivity,
		})
		session.mu.Unlock()
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].CreatedAt.Before(games[j].CreatedAt)
	})
	return games
}

// CleanupIdleSessions drops games nobody has touched for maxIdle and
// returns how many were removed.
func (sm *SessionManager) CleanupIdleSessions(maxIdle time.Duration) int {
	now := sm.now()
	removed := []string{}

	sm.mu.Lock()
	for gameID, session := range sm.Session {
		session.mu.Lock()
		idle := now.Sub(session.LastActivity)
		session.mu.Unlock()

		if idle > maxIdle {
			delete(sm.Session, gameID)
			removed = append(removed, gameID)
		}
	}
	sm.mu.Unlock()

	for _, gameID := range removed {
		sm.notifier.Publish(Event{Type: EventRemoved, GameID: gameID})
	}

	if len(removed) > 0 {
		log.Printf("[GAME] Memory cleanup: Removed %d idle games", len(removed))
	}
	return len(removed)
}
