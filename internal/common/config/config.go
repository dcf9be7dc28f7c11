package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int

	AuthURL    string
	EditorURL  string
	AuthDBPath string

	AnthropicAPIKey string
	AnthropicModel  string
	AIMaxRetries    int
}

// Load загружает .env (если есть) и конфигурацию из переменных окружения.
// defaultPort используется, когда PORT не задан.
func Load(defaultPort string) *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[CONFIG] .env: %v", err)
	}

	return &Config{
		Port:         getEnv("PORT", defaultPort),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),

		AuthURL:    getEnv("AUTH_URL", "http://localhost:3002"),
		EditorURL:  getEnv("EDITOR_URL", "http://localhost:3001"),
		AuthDBPath: getEnv("AUTH_DB_PATH", "data/db/auth.db"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-5"),
		AIMaxRetries:    getEnvAsInt("AI_MAX_RETRIES", 2),
	}
}

// AIEnabled: задан ли ключ для генерации макетов.
func (c *Config) AIEnabled() bool {
	return c.AnthropicAPIKey != ""
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
