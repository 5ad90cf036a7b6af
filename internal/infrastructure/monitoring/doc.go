/*
Package monitoring provides Prometheus metrics for the desktop server.

# Overview

Metrics are registered on a caller supplied prometheus.Registerer, so tests
can build as many collectors as they like. Metrics also implements
desktop.Recorder, which lets sessions report commands, window operations and
phase transitions without importing this package.

# Metrics

- HTTP requests (count, latency, response size) by route template
- Live and total desktop sessions, refused connections
- Terminal commands by name and outcome
- Window operations by kind and window
- Phase transitions
- WebSocket messages by direction and type
- Uptime

# Usage

	metrics := monitoring.NewMetrics(prometheus.DefaultRegisterer)
	router.Use(monitoring.Middleware(metrics))
	factory.WithRecorder(metrics)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
*/
package monitoring
