// Package tracing provides OpenTelemetry tracing integration.
//
// The HTTP middleware extracts W3C Trace Context from incoming requests,
// opens a server span per request and echoes the trace ID back in the
// X-Trace-Id response header so clients can correlate their logs with
// server-side traces. Without a configured exporter the spans are no-ops,
// which keeps the middleware safe to run everywhere.
//
// Example usage:
//
//	import "personal-site/internal/observability/tracing"
//
//	func processRequest(ctx context.Context) {
//	    ctx, span := tracing.GetTracer().Start(ctx, "process-request")
//	    defer span.End()
//	    // ... process request ...
//	}
package tracing
