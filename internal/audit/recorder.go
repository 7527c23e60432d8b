// Package audit writes the two correlated audit records produced by every
// computation request: a technical operation record and a classified
// business record.
//
// Both writes are deliberately decoupled: each is its own store round-trip,
// and a failure in either is logged and swallowed so audit infrastructure
// problems can never fail the primary request or roll back a
// partially-written trail. This is an at-most-once, best-effort guarantee.
package audit

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/somalabs/soma-api/internal/infrastructure/monitoring"
	"github.com/somalabs/soma-api/internal/logging"
	"github.com/somalabs/soma-api/internal/store"
)

// Record status values for business logs.
const (
	StatusSuccess = "SUCCESS"
	StatusFailure = "FAILURE"
)

// Operation carries the fields of a completed technical execution.
type Operation struct {
	ID              string
	Type            string
	InputA          int32
	InputB          int32
	Result          int32
	ExecutionTimeMs int64
	TraceID         string
	SpanID          string
}

// BusinessOperation carries the request context for a classified business
// record. Hour of day and day period are derived from wall-clock time at
// write time, not from the operation's original timestamp.
type BusinessOperation struct {
	OperationID     string
	UserID          string
	Type            string
	InputA          int32
	InputB          int32
	Result          int32
	ExecutionTimeMs int64
	TraceID         string
	IPAddress       string
}

// Recorder persists audit records best-effort.
type Recorder struct {
	store   *store.Store
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewRecorder creates a recorder over the given store.
func NewRecorder(st *store.Store, logger *logging.Logger) *Recorder {
	return &Recorder{store: st, logger: logger}
}

// WithMetrics attaches a metrics collector to the recorder.
func (r *Recorder) WithMetrics(m *monitoring.Metrics) *Recorder {
	r.metrics = m
	return r
}

// RecordOperation inserts one technical record. A store failure is logged
// and swallowed; the caller is never informed.
func (r *Recorder) RecordOperation(ctx context.Context, op Operation) {
	rec := &store.Operation{
		ID:              op.ID,
		Timestamp:       time.Now(),
		OperationType:   op.Type,
		InputA:          op.InputA,
		InputB:          op.InputB,
		Result:          op.Result,
		ExecutionTimeMs: op.ExecutionTimeMs,
		TraceID:         op.TraceID,
		SpanID:          op.SpanID,
	}

	if err := r.store.CreateOperation(ctx, rec); err != nil {
		r.logger.Error("Failed to record operation",
			zap.Error(err),
			zap.String("operation_id", op.ID),
			zap.String("trace_id", op.TraceID),
		)
		r.countWrite(monitoring.AuditRecordOperation, false)
		return
	}

	r.logger.Info("Operation recorded",
		zap.String("operation_id", op.ID),
		zap.Int32("input_a", op.InputA),
		zap.Int32("input_b", op.InputB),
		zap.Int32("result", op.Result),
	)
	r.countWrite(monitoring.AuditRecordOperation, true)
}

// RecordBusinessOperation classifies the request by time of day and inserts
// one business record. Failures are handled identically to RecordOperation.
func (r *Recorder) RecordBusinessOperation(ctx context.Context, op BusinessOperation) {
	now := time.Now()
	hour := now.Hour()
	period := ClassifyHour(hour)
	inputValues := fmt.Sprintf("%d + %d", op.InputA, op.InputB)

	rec := &store.BusinessLog{
		OperationID:     op.OperationID,
		UserID:          op.UserID,
		Timestamp:       now,
		HourOfDay:       hour,
		DayPeriod:       string(period),
		OperationType:   op.Type,
		InputValues:     inputValues,
		ResultValue:     op.Result,
		ExecutionTimeMs: op.ExecutionTimeMs,
		TraceID:         op.TraceID,
		IPAddress:       op.IPAddress,
		Status:          StatusSuccess,
		Message: fmt.Sprintf("User %s performed %s operation: %s = %d",
			op.UserID, op.Type, inputValues, op.Result),
	}

	if err := r.store.CreateBusinessLog(ctx, rec); err != nil {
		r.logger.Error("Failed to record business operation",
			zap.Error(err),
			zap.String("operation_id", op.OperationID),
			zap.String("user_id", op.UserID),
		)
		r.countWrite(monitoring.AuditRecordBusiness, false)
		return
	}

	r.logger.Info("Business log created",
		zap.String("operation_id", op.OperationID),
		zap.String("user_id", op.UserID),
		zap.String("input_values", inputValues),
		zap.String("day_period", string(period)),
	)
	r.countWrite(monitoring.AuditRecordBusiness, true)
}

func (r *Recorder) countWrite(kind string, ok bool) {
	if r.metrics == nil {
		return
	}
	r.metrics.RecordAuditWrite(kind, ok)
}
