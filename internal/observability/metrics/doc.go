// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes the application's business metrics:
//   - Medium feed synchronization runs and upsert counts
//   - Asset uploads and served streams per class
//   - Resume gate unlock attempts
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "personal-site/internal/observability/metrics"
//
//	func syncFeed(source string) {
//	    start := time.Now()
//	    stats, err := svc.Sync(ctx, source)
//
//	    metrics.RecordSyncRun(err == nil, time.Since(start))
//	}
package metrics
