package metrics

import "time"

// RecordSyncRun records the outcome and duration of one Medium feed
// synchronization run.
func RecordSyncRun(success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	MediumSyncRunsTotal.WithLabelValues(status).Inc()
	MediumSyncDuration.Observe(duration.Seconds())
}

// RecordArticlesUpserted records the number of created and updated
// articles written by one sync run.
func RecordArticlesUpserted(created, updated int) {
	MediumArticlesUpsertedTotal.WithLabelValues("created").Add(float64(created))
	MediumArticlesUpsertedTotal.WithLabelValues("updated").Add(float64(updated))
}

// RecordAssetUpload records stored uploads for an asset class.
func RecordAssetUpload(class string, count int) {
	AssetUploadsTotal.WithLabelValues(class).Add(float64(count))
}

// RecordAssetStream records one served asset stream.
// Inline views and attachment downloads are tracked separately.
func RecordAssetStream(class string, inline bool) {
	disposition := "attachment"
	if inline {
		disposition = "inline"
	}
	AssetStreamsTotal.WithLabelValues(class, disposition).Inc()
}

// RecordUnlockAttempt records the outcome of a resume gate unlock attempt.
// Outcome should be one of "success", "failure", "unconfigured", "rate_limited".
func RecordUnlockAttempt(outcome string) {
	ResumeUnlocksTotal.WithLabelValues(outcome).Inc()
}
