// Package config resolves process settings from the environment and an
// optional .env file in the working directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/carewise/internal/llm"
	"github.com/joho/godotenv"
)

const (
	DefaultDataDir  = "saved_data"
	DefaultHTTPAddr = ":7860"
)

// Config holds everything main needs to wire the application.
type Config struct {
	DBPath   string
	DataDir  string
	HTTPAddr string
	LLM      llm.LLMConfig
}

// Load reads .env files (missing files are ignored) and then the process
// environment. Variables already set in the environment win over .env.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	dbPath := os.Getenv("CAREWISE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".carewise", "carewise.db")
	}

	return &Config{
		DBPath:   dbPath,
		DataDir:  getEnv("CAREWISE_DATA_DIR", DefaultDataDir),
		HTTPAddr: getEnv("CAREWISE_HTTP_ADDR", DefaultHTTPAddr),
		LLM:      llm.LoadConfig(),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
