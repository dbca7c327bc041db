package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	defaultHost        = "0.0.0.0"
	defaultPort        = "8080"
	defaultBasePath    = "./data/images"
	defaultBackend     = "file"
	defaultCatalogPath = "./config/aspect_ratios.json"
)

// Config is the configuration surface consumed by the service. Backend
// selection is consumed only by the wiring layer in cmd/api; the image domain
// never branches on it.
type Config struct {
	Host        string
	Port        string
	BasePath    string // root directory for image storage
	CatalogPath string // aspect-ratio catalog document
	Backend     string // metadata backend: file | badger | db
	BadgerPath  string // badger data directory (Backend == "badger")
	DatabaseURL string // gorm DSN, sqlite path or postgres URL (Backend == "db")
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	cfg := &Config{
		Host:        getEnv("HOST", defaultHost),
		Port:        getEnv("PORT", defaultPort),
		BasePath:    getEnv("IMAGE_BASE_PATH", defaultBasePath),
		CatalogPath: getEnv("ASPECT_RATIOS_PATH", defaultCatalogPath),
		Backend:     getEnv("METADATA_BACKEND", defaultBackend),
		BadgerPath:  getEnv("BADGER_PATH", ""),
		DatabaseURL: getEnv("DATABASE_URL", ""),
	}

	if cfg.BadgerPath == "" {
		cfg.BadgerPath = cfg.BasePath + "/metadata_badger"
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "images.db"
	}
	return cfg
}

func getEnv(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
