// Package types provides the wire structures shared by the HTTP and
// WebSocket layers.
//
// Request Types:
//   - WSMessage: one input message from the page
//
// Response Types:
//   - Frame types sent over the desktop WebSocket (snapshot, error, pong)
//   - ServiceInfo, HealthResponse: HTTP bodies
package types
