// Package observability instruments pipeline evaluations with OpenTelemetry.
//
// Each terminal operation runs inside a span named "pipeline.<operation>" and
// records element counters and a duration histogram. Telemetry built with
// Global uses the otel global providers, which are no-ops until the host
// installs SDK providers, for example with InitProviders:
//
//	providers, err := observability.InitProviders(ctx, observability.DefaultProviderConfig("svc"))
//	defer providers.Shutdown(ctx)
//
//	tel, err := observability.Global("my/scope")
//	ctx, ev := tel.Start(ctx, "all", observability.StageCount(3))
//	defer ev.End(ctx, stats, err)
package observability
