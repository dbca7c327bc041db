package image

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// ComputeWidth returns the width that preserves the original aspect ratio at
// targetHeight, rounded to the nearest integer. Pure computation, no I/O.
func ComputeWidth(originalWidth, originalHeight, targetHeight int) int {
	aspectRatio := float64(originalWidth) / float64(originalHeight)
	return int(math.Round(float64(targetHeight) * aspectRatio))
}

// MaterializeVariation writes src under {dir}/{targetHeight}px{ext} and returns
// the populated descriptor. The bytes are stored verbatim: a variation records
// the computed target width but is not resampled.
func MaterializeVariation(src []byte, dir, ext string, targetHeight, originalWidth, originalHeight int) (Variation, error) {
	width := ComputeWidth(originalWidth, originalHeight, targetHeight)
	path := filepath.Join(dir, fmt.Sprintf("%dpx%s", targetHeight, ext))

	if err := os.WriteFile(path, src, 0o644); err != nil {
		return Variation{}, fmt.Errorf("failed to write variation %dpx: %w", targetHeight, err)
	}

	return Variation{Height: targetHeight, Width: width, Path: path}, nil
}
