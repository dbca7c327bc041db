package image

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imageapi/internal/database"
)

func newGormRepo(t *testing.T) *GormRepository {
	t.Helper()
	db, err := database.Connect(filepath.Join(t.TempDir(), "images.db"))
	require.NoError(t, err)

	repo, err := NewGormRepository(db)
	require.NoError(t, err)
	return repo
}

func TestGormRepositoryRoundTrip(t *testing.T) {
	repo := newGormRepo(t)
	ctx := context.Background()

	rec := testRecord("g1")
	require.NoError(t, repo.Insert(ctx, rec))

	got, err := repo.GetByID(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, rec.Original, got.Original)
	assert.Equal(t, rec.Variations, got.Variations)
	assert.Equal(t, rec.ContentType, got.ContentType)
}

func TestGormRepositoryInsertConflict(t *testing.T) {
	repo := newGormRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, testRecord("g1")))
	assert.ErrorIs(t, repo.Insert(ctx, testRecord("g1")), ErrConflict)
}

func TestGormRepositoryGetMiss(t *testing.T) {
	repo := newGormRepo(t)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrImageNotFound)
}

func TestGormRepositoryUpdateReplacesRecord(t *testing.T) {
	repo := newGormRepo(t)
	ctx := context.Background()

	rec := testRecord("g1")
	require.NoError(t, repo.Insert(ctx, rec))

	rec.Variations = append(rec.Variations, Variation{Height: 360, Width: 640, Path: "/img/g1/360px.png"})
	require.NoError(t, repo.Update(ctx, rec))

	got, err := repo.GetByID(ctx, "g1")
	require.NoError(t, err)
	assert.Len(t, got.Variations, 2)
}

func TestGormRepositoryDeleteIdempotent(t *testing.T) {
	repo := newGormRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, testRecord("g1")))
	require.NoError(t, repo.Delete(ctx, "g1"))

	_, err := repo.GetByID(ctx, "g1")
	assert.ErrorIs(t, err, ErrImageNotFound)

	assert.NoError(t, repo.Delete(ctx, "g1"))
}
