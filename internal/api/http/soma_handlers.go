// Package http contains the gin request handlers for the public API surface.
package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/somalabs/soma-api/internal/audit"
	"github.com/somalabs/soma-api/internal/infrastructure/monitoring"
	"github.com/somalabs/soma-api/internal/infrastructure/tracing"
	"github.com/somalabs/soma-api/internal/logging"
	"github.com/somalabs/soma-api/internal/shared/id"
	"github.com/somalabs/soma-api/internal/shared/realip"
	"github.com/somalabs/soma-api/internal/store"
)

const operationTypeSum = "sum"

// SomaResponse is the payload returned by the sum endpoint. It echoes the
// correlation identifiers so callers can join their request to the audit
// trail.
type SomaResponse struct {
	OperationID     string `json:"operationId"`
	InputA          int32  `json:"inputA"`
	InputB          int32  `json:"inputB"`
	Result          int32  `json:"result"`
	ExecutionTimeMs int64  `json:"executionTimeMs"`
	UserID          string `json:"userId"`
	TraceID         string `json:"traceId"`
}

// Handlers bundles the API handlers and their collaborators.
type Handlers struct {
	recorder *audit.Recorder
	store    *store.Store
	metrics  *monitoring.Metrics
	logger   *logging.Logger
}

// NewHandlers creates the handler set.
func NewHandlers(recorder *audit.Recorder, st *store.Store, metrics *monitoring.Metrics, logger *logging.Logger) *Handlers {
	return &Handlers{
		recorder: recorder,
		store:    st,
		metrics:  metrics,
		logger:   logger,
	}
}

// Soma handles GET /soma/:a/:b. It computes the sum, writes the technical
// and business audit records best-effort, annotates the active span, and
// returns the result with its correlation identifiers.
func (h *Handlers) Soma(c *gin.Context) {
	a, errA := parseInt32(c.Param("a"))
	b, errB := parseInt32(c.Param("b"))
	if errA != nil || errB != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path parameters must be signed 32-bit integers"})
		return
	}

	userID := c.DefaultQuery("user_id", "anonymous")

	operationID := id.NewOperationID().String()
	start := time.Now()

	ctx := c.Request.Context()
	traceID := tracing.GetTraceID(ctx).String()
	spanID := tracing.GetSpanID(ctx).String()
	span := tracing.SpanFromContext(ctx)

	clientIP := realip.FromRequest(c.Request)

	// Arithmetic cannot realistically fault, but the contract still defines
	// the behavior: any panic between here and the response is recorded on
	// the span and surfaced as a generic server error.
	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("soma operation panic: %v", rec)
			if span != nil {
				span.RecordError(err)
			}
			h.logger.Error("Sum operation failed",
				zap.Error(err),
				zap.String("operation_id", operationID),
				zap.String("user_id", userID),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "calculation failed"})
		}
	}()

	h.logger.Info("Starting sum operation",
		zap.Int32("input_a", a),
		zap.Int32("input_b", b),
		zap.String("operation_id", operationID),
		zap.String("user_id", userID),
		zap.String("client_ip", clientIP),
	)

	if span != nil {
		span.SetTag("operation.id", operationID)
		span.SetTag("operation.type", operationTypeSum)
		span.SetTag("user.id", userID)
		span.SetTag("client.ip", clientIP)
	}

	// Native int32 wraparound on overflow; not specially guarded.
	result := a + b
	executionTime := time.Since(start).Milliseconds()

	h.recorder.RecordOperation(ctx, audit.Operation{
		ID:              operationID,
		Type:            operationTypeSum,
		InputA:          a,
		InputB:          b,
		Result:          result,
		ExecutionTimeMs: executionTime,
		TraceID:         traceID,
		SpanID:          spanID,
	})

	h.recorder.RecordBusinessOperation(ctx, audit.BusinessOperation{
		OperationID:     operationID,
		UserID:          userID,
		Type:            operationTypeSum,
		InputA:          a,
		InputB:          b,
		Result:          result,
		ExecutionTimeMs: executionTime,
		TraceID:         traceID,
		IPAddress:       clientIP,
	})

	if span != nil {
		span.SetTag("operation.result", strconv.FormatInt(int64(result), 10))
		span.SetTag("operation.execution_time_ms", strconv.FormatInt(executionTime, 10))
	}
	h.metrics.IncOperations(operationTypeSum)

	h.logger.Info("Sum operation completed",
		zap.Int32("result", result),
		zap.Int64("execution_time_ms", executionTime),
		zap.String("operation_id", operationID),
		zap.String("user_id", userID),
	)

	c.JSON(http.StatusOK, SomaResponse{
		OperationID:     operationID,
		InputA:          a,
		InputB:          b,
		Result:          result,
		ExecutionTimeMs: executionTime,
		UserID:          userID,
		TraceID:         traceID,
	})
}

func parseInt32(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}
