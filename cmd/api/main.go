package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/fourinarow/connectfour/internal/config"
	"github.com/fourinarow/connectfour/internal/service/cleanup"
	"github.com/fourinarow/connectfour/internal/service/game"
	transportHttp "github.com/fourinarow/connectfour/internal/transport/http"
	"github.com/fourinarow/connectfour/internal/transport/http/middleware"
	"github.com/fourinarow/connectfour/internal/transport/websocket"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.LoadConfig()
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// 1. Event fan-out and game sessions
	hub := websocket.NewHub()
	sessionManager := game.NewSessionManager(cfg.MaxActiveGames, hub)

	// 2. Background workers
	cleanupWorker := cleanup.NewWorker(sessionManager, cfg.GameIdleTimeout, cfg.CleanupInterval)
	cleanupWorker.Start()

	// 3. Handlers
	gameHandler := transportHttp.NewGameHandler(sessionManager)
	wsHandler := websocket.NewHandler(hub, sessionManager, cfg.AllowedOrigins)

	// 4. Router
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	gameHandler.RegisterRoutes(router)
	router.GET("/ws", wsHandler.HandleWebSocket)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cleanupWorker.Stop()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
