package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port            string
	AllowedOrigins  []string
	FrontendURL     string
	GameIdleTimeout time.Duration
	CleanupInterval time.Duration
	MaxActiveGames  int
	GinMode         string
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOriginsStr := GetEnv("ALLOWED_ORIGINS", "")

	// Build allowed origins list (Frontend URL + CSV values)
	allowedOrigins := []string{frontendURL}
	if allowedOriginsStr != "" {
		extras := strings.Split(allowedOriginsStr, ",")
		for _, origin := range extras {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	// Game lifecycle
	idleTimeoutMin := GetEnvAsPositiveInt("GAME_IDLE_TIMEOUT_MINUTES", 30)
	cleanupIntervalMin := GetEnvAsPositiveInt("CLEANUP_INTERVAL_MINUTES", 5)
	maxActiveGames := GetEnvAsInt("MAX_ACTIVE_GAMES", 1000)

	AppConfig = &Config{
		Port:            port,
		AllowedOrigins:  allowedOrigins,
		FrontendURL:     frontendURL,
		GameIdleTimeout: time.Duration(idleTimeoutMin) * time.Minute,
		CleanupInterval: time.Duration(cleanupIntervalMin) * time.Minute,
		MaxActiveGames:  maxActiveGames,
		GinMode:         GetEnv("GIN_MODE", ""),
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsPositiveInt is GetEnvAsInt for settings where zero or a negative
// value is unusable, such as ticker intervals.
func GetEnvAsPositiveInt(key string, defaultValue int) int {
	value := GetEnvAsInt(key, defaultValue)
	if value <= 0 {
		log.Printf("Invalid integer value for %s: %d, using default: %d", key, value, defaultValue)
		return defaultValue
	}
	return value
}
