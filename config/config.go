package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime options read from the environment.
type Config struct {
	Port          string
	PacksFile     string
	AllowedOrigin string
	PublicLobbies bool // expose the public lobby listing
	RoundDelay    time.Duration
	LobbyCodeLen  int
}

// App is populated once by Load at startup.
var App Config

// Load reads .env (if present) and the environment into App.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, reading environment variables")
	}

	App = Config{
		Port:          getEnv("PORT", "4000"),
		PacksFile:     getEnv("PACKS_FILE", "packs.json"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
		PublicLobbies: getEnvBool("PUBLIC_LOBBIES", true),
		RoundDelay:    time.Duration(getEnvInt("ROUND_DELAY_SEC", 8)) * time.Second,
		LobbyCodeLen:  getEnvInt("LOBBY_CODE_LEN", 5),
	}
	return App
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("[WARN] invalid %s=%q, using %d", key, v, fallback)
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("[WARN] invalid %s=%q, using %t", key, v, fallback)
	}
	return fallback
}
