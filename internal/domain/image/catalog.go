package image

import (
	"encoding/json"
	"fmt"
	"os"
)

// catalogDocument mirrors the on-disk shape of the aspect-ratio catalog:
//
//	{"aspectRatios": {"16:9": [{"width": 1920, "height": 1080}, ...]}}
type catalogDocument struct {
	AspectRatios map[string][]Resolution `json:"aspectRatios"`
}

// LoadCatalog reads the aspect-ratio catalog from path. The file is read fresh
// on every call so edits are picked up between uploads. Callers treat a failure
// as "no supplementary resolutions available", not as a fatal condition.
func LoadCatalog(path string) (map[string][]Resolution, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	var doc catalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	if doc.AspectRatios == nil {
		return nil, fmt.Errorf("%w: missing aspectRatios mapping", ErrCatalogUnavailable)
	}

	return doc.AspectRatios, nil
}
