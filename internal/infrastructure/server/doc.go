// Package server wires the desktop server together: configuration, the seed
// profile, metrics, tracing, middleware, the HTTP routes and the desktop
// WebSocket endpoint.
package server
