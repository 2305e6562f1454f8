package template

import "errors"

var (
	// ErrNoValidFiles indicates every file in an upload batch was
	// rejected by the extension allow-list.
	ErrNoValidFiles = errors.New("no valid files in upload")

	// ErrStorage indicates the asset store rejected a write.
	ErrStorage = errors.New("asset storage unavailable")
)
