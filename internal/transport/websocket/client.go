package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/fourinarow/connectfour/internal/service/game"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 32
)

// client is one websocket watching one game. Only writePump writes to conn,
// since gorilla connections allow a single concurrent writer.
type client struct {
	gameID string
	conn   *websocket.Conn
	send   chan []byte
	once   sync.Once
}

func newClient(gameID string, conn *websocket.Conn) *client {
	return &client{
		gameID: gameID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
	}
}

func (cl *client) close() {
	cl.once.Do(func() {
		close(cl.send)
	})
}

func (cl *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()

	for {
		select {
		case message, ok := <-cl.send:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[WS] Write error for game %s: %v", cl.gameID, err)
				return
			}
		case <-ticker.C:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Hub fans game events out to every client watching that game. It
// implements game.Notifier.
type Hub struct {
	clients map[string]map[*client]struct{} // gameID → clients
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*client]struct{}),
	}
}

func (h *Hub) register(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[cl.gameID] == nil {
		h.clients[cl.gameID] = make(map[*client]struct{})
	}
	h.clients[cl.gameID][cl] = struct{}{}
}

func (h *Hub) unregister(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if watchers, exists := h.clients[cl.gameID]; exists {
		delete(watchers, cl)
		if len(watchers) == 0 {
			delete(h.clients, cl.gameID)
		}
	}
	cl.close()
}

// WatcherCount reports how many connections follow gameID.
func (h *Hub) WatcherCount(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[gameID])
}

func (h *Hub) Publish(event game.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[WS] Failed to encode %s event: %v", event.Type, err)
		return
	}
	h.broadcast(event.GameID, data)

	if event.Type == game.EventRemoved {
		h.CloseGame(event.GameID)
	}
}

func (h *Hub) broadcast(gameID string, data []byte) {
	h.mu.RLock()
	var slow []*client
	for cl := range h.clients[gameID] {
		select {
		case cl.send <- data:
		default:
			slow = append(slow, cl)
		}
	}
	h.mu.RUnlock()

	// A client that cannot keep up would miss a landing row; drop it instead.
	for _, cl := range slow {
		log.Printf("[WS] Dropping slow client for game %s", gameID)
		h.unregister(cl)
	}
}

// sendTo queues a message for a single client.
func (h *Hub) sendTo(cl *client, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("[WS] Failed to encode message: %v", err)
		return
	}

	h.mu.RLock()
	_, registered := h.clients[cl.gameID][cl]
	if registered {
		select {
		case cl.send <- data:
		default:
		}
	}
	h.mu.RUnlock()
}

// CloseGame disconnects everyone watching gameID.
func (h *Hub) CloseGame(gameID string) {
	h.mu.Lock()
	watchers := h.clients[gameID]
	delete(h.clients, gameID)
	h.mu.Unlock()

	for cl := range watchers {
		cl.close()
	}
}
