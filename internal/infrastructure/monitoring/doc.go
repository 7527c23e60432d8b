/*
Package monitoring provides performance monitoring and metrics collection.

# Overview

This package implements Prometheus-based metrics collection for the backend
service, tracking HTTP requests, computed operations, and audit-store writes.

# Features

- HTTP request metrics (latency, throughput, size)
- Operation metrics (computations performed)
- Audit write metrics (attempts and failures per record kind)
- System metrics (uptime)

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Record custom metrics
	metrics.IncOperations("sum")
	metrics.RecordAuditWrite(monitoring.AuditRecordOperation, true)

# Metrics Endpoint

Expose metrics via the standard Prometheus endpoint:

	import "github.com/prometheus/client_golang/prometheus/promhttp"
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
*/
package monitoring
