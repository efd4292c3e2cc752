// Package tracing wraps OpenTelemetry so that approval runs can be observed
// without callers importing the SDK. Without a Provider spans go to the
// global tracer provider.
package tracing
