package image

import "errors"

var (
	ErrEmptyUpload           = errors.New("no file uploaded")
	ErrNotAnImage            = errors.New("uploaded file is not a valid image")
	ErrImageNotFound         = errors.New("image not found")
	ErrHeightExceedsOriginal = errors.New("requested height exceeds original image height")
	ErrConflict              = errors.New("image id already exists")
	ErrCatalogUnavailable    = errors.New("aspect ratio catalog unavailable")
)
