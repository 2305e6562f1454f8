package resume

import "errors"

var (
	// ErrNoValidFiles indicates every file in an upload batch was
	// rejected by the extension allow-list.
	ErrNoValidFiles = errors.New("no valid files in upload")

	// ErrStorage indicates the asset store rejected a write. The whole
	// dispatch aborts so the operator sees the infrastructure problem
	// instead of a silently shrunken batch.
	ErrStorage = errors.New("asset storage unavailable")
)
