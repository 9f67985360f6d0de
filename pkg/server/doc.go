// Package server exposes the cost engine over HTTP.
//
// # Endpoints
//
//   - POST /v1/costs: accepts a usage export payload (JSON object) and
//     returns the same payload with cost_usd written into every record
//     that could be priced.
//   - GET /healthz: liveness probe.
//   - GET /metrics: Prometheus exposition (when metrics are enabled).
//
// The server shuts down gracefully on SIGINT/SIGTERM or context
// cancellation, draining in-flight requests.
package server
