package image

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "aspect_ratios.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCatalog(t *testing.T) {
	path := writeCatalog(t, t.TempDir(), `{
		"aspectRatios": {
			"16:9": [
				{"width": 1280, "height": 720},
				{"width": 1920, "height": 1080}
			],
			"4:3": [
				{"width": 1024, "height": 768}
			]
		}
	}`)

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, catalog, 2)
	require.Equal(t, []Resolution{{Width: 1280, Height: 720}, {Width: 1920, Height: 1080}}, catalog["16:9"])
	require.Equal(t, []Resolution{{Width: 1024, Height: 768}}, catalog["4:3"])
}

func TestLoadCatalogMissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrCatalogUnavailable))
}

func TestLoadCatalogMalformed(t *testing.T) {
	path := writeCatalog(t, t.TempDir(), `{"aspectRatios": [not json`)

	_, err := LoadCatalog(path)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrCatalogUnavailable))
}

func TestLoadCatalogMissingMapping(t *testing.T) {
	path := writeCatalog(t, t.TempDir(), `{"somethingElse": 1}`)

	_, err := LoadCatalog(path)
	require.True(t, errors.Is(err, ErrCatalogUnavailable))
}

func TestLoadCatalogReadsFreshOnEveryCall(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalog(t, dir, `{"aspectRatios": {"16:9": [{"width": 1280, "height": 720}]}}`)

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, catalog["16:9"], 1)

	writeCatalog(t, dir, `{"aspectRatios": {"16:9": [{"width": 1280, "height": 720}, {"width": 640, "height": 360}]}}`)

	catalog, err = LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, catalog["16:9"], 2)
}
