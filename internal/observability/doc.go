// Package observability provides structured logging and Prometheus metrics
// for the dashboard API.
//
// Loggers are zap-based. Metrics are registered on the default Prometheus
// registry and exposed through Handler.
package observability
