// Package services implements the business logic layer between the HTTP
// handlers and the data pipeline. Handlers stay thin: they decode requests
// and encode responses, while everything about dataset sessions, view
// computation and error classification lives here.
//
// Services follow the usual structure of this codebase:
//
//	1. Constructor injection (logger, metrics, config section)
//	2. Context propagation on every operation
//	3. Sentinel errors the transport layer maps to problem responses
//
// The central service is DashboardService, which owns the in-memory upload
// sessions and recomputes every view from the raw table on each request.
// HealthService answers the liveness and readiness probes.
package services
