/*
Package tracing provides distributed tracing for debugging production issues.

# Overview

This package implements lightweight distributed tracing for request flows
through the service. It follows OpenTelemetry concepts but with a minimal
implementation tailored to the system's needs.

# Features

- Trace context propagation via HTTP headers
- Span creation with parent-child relationships
- Automatic trace ID generation
- HTTP middleware for automatic instrumentation
- Span access from the request context for attribute annotation
- Structured logging integration
- Low overhead with buffered span collection

# Usage

	// Create tracer
	tracer := tracing.New("soma-api", logger)

	// HTTP middleware
	router.Use(tracing.HTTPMiddleware(tracer))

	// Inside a handler: annotate the ambient span
	span := tracing.SpanFromContext(ctx)
	span.SetTag("operation.id", opID)

	// Manual span creation
	span, ctx := tracer.StartSpan(ctx, "operation")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()

# Trace Format

Traces use standard HTTP headers for propagation:
- X-Trace-ID: Unique identifier for entire request flow
- X-Span-ID: Identifier for current operation

# Performance

The tracing system is designed for minimal overhead:
- Buffered span collection (1000 spans)
- Async span processing
- Structured logging integration
*/
package tracing
