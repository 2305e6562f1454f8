package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordSyncRun(t *testing.T) {
	tests := []struct {
		name    string
		success bool
	}{
		{name: "success", success: true},
		{name: "failure", success: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordSyncRun(tt.success, 2*time.Second)
			})
		})
	}
}

func TestRecordArticlesUpserted(t *testing.T) {
	before := testutil.ToFloat64(MediumArticlesUpsertedTotal.WithLabelValues("created"))

	RecordArticlesUpserted(3, 2)

	created := testutil.ToFloat64(MediumArticlesUpsertedTotal.WithLabelValues("created"))
	assert.Equal(t, before+3, created)
}

func TestRecordAssetStream(t *testing.T) {
	before := testutil.ToFloat64(AssetStreamsTotal.WithLabelValues("templates", "inline"))

	RecordAssetStream("templates", true)
	RecordAssetStream("templates", false)

	inline := testutil.ToFloat64(AssetStreamsTotal.WithLabelValues("templates", "inline"))
	assert.Equal(t, before+1, inline)
}

func TestRecordUnlockAttempt(t *testing.T) {
	for _, outcome := range []string{"success", "failure", "unconfigured", "rate_limited"} {
		assert.NotPanics(t, func() {
			RecordUnlockAttempt(outcome)
		})
	}
}
