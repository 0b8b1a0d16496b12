package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/fourinarow/connectfour/internal/domain"
	"github.com/fourinarow/connectfour/internal/service/game"
)

// ClientMessage is what the presentation layer sends over the socket.
type ClientMessage struct {
	Type   string `json:"type"`
	Column *int   `json:"column,omitempty"`
}

// ServerMessage carries replies that are not game events.
type ServerMessage struct {
	Type     string           `json:"type"`
	GameID   string           `json:"gameId,omitempty"`
	Message  string           `json:"message,omitempty"`
	Snapshot *domain.Snapshot `json:"snapshot,omitempty"`
}

// Handler manages WebSocket dependencies
type Handler struct {
	Hub            *Hub
	SessionManager *game.SessionManager
	Upgrader       websocket.Upgrader
}

// NewHandler creates a new WebSocket handler. allowedOrigins mirrors the
// CORS list; requests without an Origin header are accepted.
func NewHandler(hub *Hub, sm *game.SessionManager, allowedOrigins []string) *Handler {
	return &Handler{
		Hub:            hub,
		SessionManager: sm,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == origin {
						return true
					}
				}
				log.Printf("[WS] Rejected origin %s", origin)
				return false
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket upgrades GET /ws?gameId=... and streams that game's events.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	gameID := c.Query("gameId")
	if _, exists := h.SessionManager.GetSession(gameID); !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	cl := newClient(gameID, conn)
	go cl.writePump()

	snapshot, err := h.attach(cl)
	if err != nil {
		log.Printf("[WS] Game %s went away before the watcher joined", gameID)
		return
	}

	log.Printf("[WS] Watcher joined game %s (%d watching)", gameID, h.Hub.WatcherCount(gameID))
	h.Hub.sendTo(cl, ServerMessage{Type: "game_state", GameID: gameID, Snapshot: &snapshot})

	h.readLoop(cl)
}

// attach registers cl before reading the snapshot, so any move or removal
// after the read still reaches it through the hub. A game removed before
// registration closes cl.
func (h *Handler) attach(cl *client) (domain.Snapshot, error) {
	h.Hub.register(cl)

	snapshot, err := h.SessionManager.Snapshot(cl.gameID)
	if err != nil {
		h.Hub.unregister(cl)
		return domain.Snapshot{}, err
	}
	return snapshot, nil
}

func (h *Handler) readLoop(cl *client) {
	defer func() {
		h.Hub.unregister(cl)
		log.Printf("[WS] Watcher left game %s", cl.gameID)
	}()

	cl.conn.SetReadLimit(512)
	cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		cl.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] Watcher disconnected unexpectedly: %v", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Invalid message format: %v", err)
			h.Hub.sendTo(cl, ServerMessage{Type: "error", GameID: cl.gameID, Message: "Invalid message format"})
			continue
		}

		h.processMessage(cl, msg)
	}
}

// processMessage routes specific actions. Successful actions are answered
// through the hub's broadcast, failures only to the sender.
func (h *Handler) processMessage(cl *client, msg ClientMessage) {
	var err error

	switch msg.Type {
	case "place_disc":
		if msg.Column == nil {
			h.Hub.sendTo(cl, ServerMessage{Type: "error", GameID: cl.gameID, Message: "column is required"})
			return
		}
		_, _, err = h.SessionManager.PlaceDisc(cl.gameID, *msg.Column)

	case "reset_game":
		_, err = h.SessionManager.Reset(cl.gameID)

	case "get_state":
		var snapshot domain.Snapshot
		snapshot, err = h.SessionManager.Snapshot(cl.gameID)
		if err == nil {
			h.Hub.sendTo(cl, ServerMessage{Type: "game_state", GameID: cl.gameID, Snapshot: &snapshot})
		}

	default:
		h.Hub.sendTo(cl, ServerMessage{Type: "error", GameID: cl.gameID, Message: "unknown message type " + msg.Type})
		return
	}

	if err != nil {
		h.Hub.sendTo(cl, ServerMessage{Type: "error", GameID: cl.gameID, Message: err.Error()})
	}
}
