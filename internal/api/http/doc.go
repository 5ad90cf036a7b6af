// Package http provides the read-only HTTP endpoints of the desktop server.
//
// Endpoints:
//   - GET /: Service info
//   - GET /health: Live session count and a metrics snapshot
//   - GET /profile: The seed profile new sessions start from
//   - GET /sessions, GET /sessions/:id: Live sessions and their latest snapshot
//   - GET /metrics/json: Metrics summary
//
// Desktop input never arrives over HTTP; it goes through the WebSocket
// handler in package ws.
package http
