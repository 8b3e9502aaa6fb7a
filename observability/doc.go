// Package observability provides OpenTelemetry tracing and metrics
// integration plus stream middlewares that observe pipeline traversals.
//
// Setup from configuration:
//
//	shutdown, err := observability.Setup(ctx, settings)
//	defer shutdown(ctx)
//
// Middlewares are ordinary stream.Op values and compose with stream.Chain.
// Each one watches a single traversal of the source it wraps, starting on the
// first pull and ending on exhaustion, failure or Close:
//
//	metrics, _ := observability.NewMetrics(observability.Meter("orders"))
//	observe := stream.Chain(
//		observability.Logged[Order](log, "orders"),
//		observability.Metered[Order](metrics, "orders"),
//		observability.Traced[Order](nil, "orders"),
//	)
//	orders, err := stream.Collect(ctx, observe(src))
//
// Stacked middlewares share one traversal id. The id and the active span are
// visible to upstream sources through the pull context.
package observability
