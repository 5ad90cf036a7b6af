/*
Package tracing provides lightweight request tracing for the desktop server.

# Overview

Every HTTP request (including the WebSocket upgrade) gets a span. The trace id
is taken from the X-Trace-ID request header when present, otherwise a new
ULID-based id is minted. Both ids are echoed in the response headers so a
page can quote them when reporting a problem. Finished spans are logged by a
background collector.

# Usage

	tracer := tracing.New("fakeos", logger.Component("tracing"))
	defer tracer.Close()
	router.Use(tracing.HTTPMiddleware(tracer))

	traceID := tracing.GetTraceID(c.Request.Context())
*/
package tracing
