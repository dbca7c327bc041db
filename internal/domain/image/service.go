package image

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	goimage "image"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// thumbnailHeight is always materialized at upload time when the catalog does
// not already yield it and the original is tall enough.
const thumbnailHeight = 160

// Service coordinates upload, lazy variation fetch, and delete while keeping
// the filesystem and the metadata store mutually consistent. It owns the
// directory layout: {basePath}/{id}/original{ext} plus one
// {basePath}/{id}/{height}px{ext} file per variation.
type Service struct {
	repo        Repository
	basePath    string
	catalogPath string
	flight      singleflight.Group
}

func NewService(repo Repository, basePath, catalogPath string) *Service {
	return &Service{
		repo:        repo,
		basePath:    basePath,
		catalogPath: catalogPath,
	}
}

// Upload stores the original bytes, materializes every catalog resolution
// below the original height plus a 160px thumbnail, and inserts the metadata
// record. Catalog trouble degrades to the thumbnail alone; it never fails the
// upload.
func (s *Service) Upload(ctx context.Context, data []byte, filename, contentType string) (*ImageRecord, error) {
	if len(data) == 0 {
		return nil, ErrEmptyUpload
	}

	id := uuid.NewString()
	dir := filepath.Join(s.basePath, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}

	cfg, format, err := goimage.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, ErrNotAnImage
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = extensionForFormat(format)
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	originalPath := filepath.Join(dir, "original"+ext)
	if err := os.WriteFile(originalPath, data, 0o644); err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to write original: %w", err)
	}

	variations, err := s.materializeCatalogVariations(data, dir, ext, cfg.Width, cfg.Height)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, err
	}

	rec := &ImageRecord{
		ID:          id,
		Original:    Variation{Height: cfg.Height, Width: cfg.Width, Path: originalPath},
		Variations:  variations,
		UploadedAt:  time.Now().UTC(),
		Size:        int64(len(data)),
		ContentType: contentType,
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to store metadata: %w", err)
	}

	log.Info().Str("id", id).Int("width", cfg.Width).Int("height", cfg.Height).
		Int("variations", len(variations)).Msg("image uploaded")
	return rec, nil
}

// materializeCatalogVariations walks every catalog resolution and produces one
// variation per distinct height strictly below the original, then backfills
// the 160px thumbnail when no catalog entry yielded it.
func (s *Service) materializeCatalogVariations(data []byte, dir, ext string, origWidth, origHeight int) ([]Variation, error) {
	variations := []Variation{}

	catalog, err := LoadCatalog(s.catalogPath)
	if err != nil {
		log.Warn().Err(err).Str("path", s.catalogPath).Msg("catalog unavailable, falling back to thumbnail only")
	}

	for _, resolutions := range catalog {
		for _, res := range resolutions {
			if res.Height >= origHeight || hasHeight(variations, res.Height) {
				continue
			}
			v, err := MaterializeVariation(data, dir, ext, res.Height, origWidth, origHeight)
			if err != nil {
				return nil, err
			}
			variations = append(variations, v)
		}
	}

	if origHeight > thumbnailHeight && !hasHeight(variations, thumbnailHeight) {
		v, err := MaterializeVariation(data, dir, ext, thumbnailHeight, origWidth, origHeight)
		if err != nil {
			return nil, err
		}
		variations = append(variations, v)
	}

	return variations, nil
}

// GetOriginal returns the path of the as-uploaded artifact. A record whose
// backing file has gone missing reports not-found so callers can tell drift
// from a generic failure.
func (s *Service) GetOriginal(ctx context.Context, id string) (string, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(rec.Original.Path); err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("id", id).Str("path", rec.Original.Path).Msg("original file missing on disk")
			return "", ErrImageNotFound
		}
		return "", fmt.Errorf("failed to stat original: %w", err)
	}

	return rec.Original.Path, nil
}

// GetVariation returns the path of the variation at the requested height,
// materializing it from the original on first request. Concurrent requests for
// the same (id, height) pair are collapsed into a single materialization.
func (s *Service) GetVariation(ctx context.Context, id string, height int) (string, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	if height > rec.Original.Height {
		return "", ErrHeightExceedsOriginal
	}
	// The original already is the artifact at its own height; materializing a
	// copy would duplicate that height in the record.
	if height == rec.Original.Height {
		return rec.Original.Path, nil
	}
	if v, ok := rec.FindVariation(height); ok {
		return v.Path, nil
	}

	key := fmt.Sprintf("%s:%d", id, height)
	path, err, _ := s.flight.Do(key, func() (any, error) {
		return s.materializeAndRecord(ctx, id, height)
	})
	if err != nil {
		return "", err
	}
	return path.(string), nil
}

// materializeAndRecord runs inside the singleflight group. The record is
// re-read first: a concurrent caller may have materialized the height between
// the outer miss and this flight winning the key.
func (s *Service) materializeAndRecord(ctx context.Context, id string, height int) (string, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if v, ok := rec.FindVariation(height); ok {
		return v.Path, nil
	}

	src, err := os.ReadFile(rec.Original.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrImageNotFound
		}
		return "", fmt.Errorf("failed to read original: %w", err)
	}

	dir := filepath.Dir(rec.Original.Path)
	ext := filepath.Ext(rec.Original.Path)
	v, err := MaterializeVariation(src, dir, ext, height, rec.Original.Width, rec.Original.Height)
	if err != nil {
		return "", err
	}

	rec.Variations = append(rec.Variations, v)
	if err := s.repo.Update(ctx, rec); err != nil {
		_ = os.Remove(v.Path)
		return "", fmt.Errorf("failed to update metadata: %w", err)
	}

	log.Info().Str("id", id).Int("height", height).Int("width", v.Width).Msg("variation materialized")
	return v.Path, nil
}

// Delete removes the storage directory and the metadata record. Deleting an
// unknown id is a no-op, so a retry after a partial failure is always safe.
func (s *Service) Delete(ctx context.Context, id string) error {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrImageNotFound) {
			log.Debug().Str("id", id).Msg("delete of unknown image id")
			return nil
		}
		return err
	}

	dir := filepath.Dir(rec.Original.Path)
	if _, err := os.Stat(dir); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat image directory: %w", err)
		}
		log.Warn().Str("id", id).Str("dir", dir).Msg("image directory missing on disk, removing metadata only")
	} else if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove image directory: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete metadata: %w", err)
	}

	log.Info().Str("id", id).Msg("image deleted")
	return nil
}

func hasHeight(variations []Variation, height int) bool {
	for _, v := range variations {
		if v.Height == height {
			return true
		}
	}
	return false
}

func extensionForFormat(format string) string {
	switch format {
	case "jpeg":
		return ".jpg"
	case "":
		return ""
	default:
		return "." + format
	}
}
