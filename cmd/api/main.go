package main

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"imageapi/internal/config"
	"imageapi/internal/database"
	"imageapi/internal/domain/image"
	"imageapi/internal/middleware"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg := config.Load()

	repo, err := buildRepository(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Backend).Msg("failed to initialize metadata store")
	}
	if closer, ok := repo.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close metadata store")
			}
		}()
	}

	service := image.NewService(repo, cfg.BasePath, cfg.CatalogPath)
	handler := image.NewHandler(service)

	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	image.RegisterRoutes(v1, handler)

	addr := cfg.Host + ":" + cfg.Port
	log.Info().Str("addr", addr).Str("backend", cfg.Backend).Msg("starting image API")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func buildRepository(cfg *config.Config) (image.Repository, error) {
	switch cfg.Backend {
	case "badger":
		return image.NewBadgerRepository(cfg.BadgerPath)
	case "db":
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return image.NewGormRepository(db)
	default:
		return image.NewFileRepository(cfg.BasePath)
	}
}
