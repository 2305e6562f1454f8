package entity

import "time"

// Resume represents an uploaded résumé document.
// StoredKey addresses the byte blob in the asset store; it is randomly
// generated at upload time and never exposed to clients.
type Resume struct {
	ID          int64
	DisplayName string
	StoredKey   string
	MimeType    *string
	UploadedAt  time.Time
}

// Template represents an uploaded document template.
// Unlike resumes, templates carry a public slug and usage counters.
type Template struct {
	ID            int64
	Slug          string
	DisplayName   string
	StoredKey     string
	MimeType      *string
	UploadedAt    time.Time
	ViewCount     int64
	DownloadCount int64
	ShareCount    int64
}

// Counter identifies one of the per-template usage counters.
type Counter string

// Usage counters tracked per template.
const (
	CounterView     Counter = "view"
	CounterDownload Counter = "download"
	CounterShare    Counter = "share"
)

// Valid reports whether c is a known counter name.
func (c Counter) Valid() bool {
	switch c {
	case CounterView, CounterDownload, CounterShare:
		return true
	}
	return false
}
