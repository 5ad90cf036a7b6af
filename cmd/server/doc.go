// Package main is the entry point for the FakeOS desktop server.
//
// The server hosts simulated desktop sessions. A page connects to
// GET /desktop over WebSocket, sends clicks, keystrokes and pointer drags,
// and renders the snapshots the session sends back.
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 8000 -profile office.yaml
//
//	# Development mode (colored logs)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
