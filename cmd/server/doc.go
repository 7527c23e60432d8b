// Package main is the entry point for the soma-api audit pipeline server.
//
// The service exposes a single computation endpoint and, on every call,
// persists two correlated audit records: a technical execution record and a
// classified business record. Audit-store faults never affect the
// user-visible response.
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 8080 -db data/soma_logs.db
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
