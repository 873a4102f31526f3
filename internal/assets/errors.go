package assets

import "errors"

// Sentinel errors for asset loading.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrLayoutNotFound   = errors.New("layout not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrInvalidBasePath  = errors.New("invalid asset directory")

	// ErrAssetRead covers I/O failures, including symlinks that leave the
	// asset directory.
	ErrAssetRead = errors.New("failed to read asset")
)
