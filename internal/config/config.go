package config

import (
	"log"
	"os"
)

type StorageBackend string

const (
	BackendMemory    StorageBackend = "memory"
	BackendBolt      StorageBackend = "bolt"
	BackendFirestore StorageBackend = "firestore"
)

type Config struct {
	Port string

	// Gemini
	GoogleAPIKey string
	ModelName    string
	UseMockLLM   bool

	// Storage
	StorageBackend StorageBackend
	BoltPath       string
	GCPProjectID   string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

// Load reads all env vars and builds the config
func Load() *Config {
	cfg := &Config{
		Port: getEnv("SALES_PORT", "8080"),

		GoogleAPIKey: getEnv("GOOGLE_API_KEY", ""),
		ModelName:    getEnv("SALES_MODEL_NAME", "gemini-2.0-flash"),
		UseMockLLM:   getBoolEnv("SALES_USE_MOCK_LLM", false),

		StorageBackend: StorageBackend(getEnv("SALES_STORAGE_BACKEND", "bolt")),
		BoltPath:       getEnv("SALES_BOLT_PATH", "data/sales-assistant.db"),
		GCPProjectID:   getEnv("SALES_GCP_PROJECT", ""),
	}

	switch cfg.StorageBackend {
	case BackendMemory, BackendBolt, BackendFirestore:
	default:
		log.Fatalf("unknown SALES_STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	if cfg.StorageBackend == BackendFirestore && cfg.GCPProjectID == "" {
		log.Fatal("SALES_GCP_PROJECT must be set for the firestore backend")
	}

	if !cfg.UseMockLLM && cfg.GoogleAPIKey == "" {
		log.Fatal("GOOGLE_API_KEY must be set (or SALES_USE_MOCK_LLM=1)")
	}

	return cfg
}
