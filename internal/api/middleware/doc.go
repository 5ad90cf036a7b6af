// Package middleware provides the HTTP middleware for the desktop server.
//
// Middleware stack includes:
//   - CORS: Cross-origin access for the page's GETs and the WebSocket upgrade
//   - RateLimit: Per-IP token bucket rate limiting
//
// Rate Limiting:
//   - Per-IP tracking, idle clients are swept after IdleTimeout
//   - Token bucket algorithm (golang.org/x/time/rate)
//   - Global rate limiting option
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
