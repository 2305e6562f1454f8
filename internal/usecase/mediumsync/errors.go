package mediumsync

import "errors"

var (
	// ErrFeedFetch indicates the feed endpoint could not be reached or
	// returned a non-success status.
	ErrFeedFetch = errors.New("failed to fetch feed")

	// ErrFeedParse indicates the fetched payload is not a valid RSS/Atom feed.
	ErrFeedParse = errors.New("failed to parse feed")
)
