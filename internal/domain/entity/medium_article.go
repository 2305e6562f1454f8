package entity

import "time"

// MediumArticle represents an article synced from the external Medium feed.
// MediumID is the source's stable identifier (the canonical link URL) and is
// unique across all rows; re-syncing updates the row in place.
type MediumArticle struct {
	ID          int64
	MediumID    string
	Title       string
	Link        string
	Excerpt     *string
	Category    *string
	PublishedAt time.Time
	SyncedAt    time.Time
}
