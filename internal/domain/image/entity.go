package image

import "time"

// Variation describes one stored artifact of an image: the file at Path holds
// the bytes, Height/Width record the dimensions the artifact stands for.
// Width always preserves the original aspect ratio for the given Height.
type Variation struct {
	Height int    `json:"height"`
	Width  int    `json:"width"`
	Path   string `json:"path"`
}

// ImageRecord is the metadata persisted for one uploaded image. The ID doubles
// as the storage-directory name under the configured base path.
type ImageRecord struct {
	ID          string      `json:"id"`
	Original    Variation   `json:"original"`
	Variations  []Variation `json:"variations"`
	UploadedAt  time.Time   `json:"uploaded_at"`
	Size        int64       `json:"size"`
	ContentType string      `json:"content_type"`
}

// Resolution is one entry of the aspect-ratio catalog.
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// FindVariation returns the variation with the exact height, if present.
func (r *ImageRecord) FindVariation(height int) (Variation, bool) {
	for _, v := range r.Variations {
		if v.Height == height {
			return v, true
		}
	}
	return Variation{}, false
}

// Clone returns a deep copy so callers can mutate the result without aliasing
// store-internal state.
func (r *ImageRecord) Clone() *ImageRecord {
	cp := *r
	cp.Variations = make([]Variation, len(r.Variations))
	copy(cp.Variations, r.Variations)
	return &cp
}
