package http

import (
	"errors"
	"net/http"

	"github.com/fourinarow/connectfour/internal/domain"
	"github.com/fourinarow/connectfour/internal/service/game"
	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	SessionManager *game.SessionManager
}

func NewGameHandler(sm *game.SessionManager) *GameHandler {
	return &GameHandler{SessionManager: sm}
}

type gameResponse struct {
	GameID string `json:"gameId"`
	domain.Snapshot
}

type moveRequest struct {
	Column *int `json:"column" binding:"required"`
}

type moveResponse struct {
	GameID string                 `json:"gameId"`
	Result domain.PlacementResult `json:"result"`
	Game   domain.Snapshot        `json:"game"`
}

// errorStatus maps service and engine errors to HTTP codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidColumn):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrColumnFull), errors.Is(err, domain.ErrGameOver):
		return http.StatusConflict
	case errors.Is(err, game.ErrTooManyGames):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondWithError(c *gin.Context, err error) {
	code := errorStatus(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "Internal server error"
	}
	c.JSON(code, gin.H{"error": message})
}

func (h *GameHandler) CreateGame(c *gin.Context) {
	session, err := h.SessionManager.CreateSession()
	if err != nil {
		respondWithError(c, err)
		return
	}

	snapshot, err := h.SessionManager.Snapshot(session.GameID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gameResponse{GameID: session.GameID, Snapshot: snapshot})
}

func (h *GameHandler) ListGames(c *gin.Context) {
	c.JSON(http.StatusOK, h.SessionManager.ActiveGames())
}

func (h *GameHandler) GetGame(c *gin.Context) {
	gameID := c.Param("id")
	snapshot, err := h.SessionManager.Snapshot(gameID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gameResponse{GameID: gameID, Snapshot: snapshot})
}

func (h *GameHandler) PlaceDisc(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	gameID := c.Param("id")
	result, snapshot, err := h.SessionManager.PlaceDisc(gameID, *req.Column)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, moveResponse{GameID: gameID, Result: result, Game: snapshot})
}

func (h *GameHandler) ResetGame(c *gin.Context) {
	gameID := c.Param("id")
	snapshot, err := h.SessionManager.Reset(gameID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gameResponse{GameID: gameID, Snapshot: snapshot})
}

func (h *GameHandler) DeleteGame(c *gin.Context) {
	if err := h.SessionManager.RemoveSession(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterRoutes mounts the game API on r.
func (h *GameHandler) RegisterRoutes(r gin.IRouter) {
	games := r.Group("/api/games")
	games.POST("", h.CreateGame)
	games.GET("", h.ListGames)
	games.GET("/:id", h.GetGame)
	games.DELETE("/:id", h.DeleteGame)
	games.POST("/:id/moves", h.PlaceDisc)
	games.POST("/:id/reset", h.ResetGame)
}
