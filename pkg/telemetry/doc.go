// Package telemetry groups the observability concerns of the ladder
// runtime: structured logging, Prometheus metrics exposure, and
// OpenTelemetry tracing.
package telemetry
