package audit

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somalabs/soma-api/internal/infrastructure/monitoring"
	"github.com/somalabs/soma-api/internal/logging"
	"github.com/somalabs/soma-api/internal/store"
)

func newTestRecorder(t *testing.T) (*Recorder, *store.Store, *monitoring.Metrics) {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.EnsureSchema())

	metrics := monitoring.NewMetricsWith(prometheus.NewRegistry())
	rec := NewRecorder(st, logging.NewNop()).WithMetrics(metrics)
	return rec, st, metrics
}

func TestRecordOperation(t *testing.T) {
	rec, st, _ := newTestRecorder(t)

	rec.RecordOperation(context.Background(), Operation{
		ID:              "7d1f2a30-1111-4abc-9def-000000000001",
		Type:            "sum",
		InputA:          3,
		InputB:          4,
		Result:          7,
		ExecutionTimeMs: 1,
		TraceID:         "trc_x",
		SpanID:          "spn_x",
	})

	var got store.Operation
	require.NoError(t, st.DB().First(&got, "id = ?", "7d1f2a30-1111-4abc-9def-000000000001").Error)
	assert.Equal(t, "sum", got.OperationType)
	assert.Equal(t, int32(3), got.InputA)
	assert.Equal(t, int32(4), got.InputB)
	assert.Equal(t, int32(7), got.Result)
	assert.Equal(t, "trc_x", got.TraceID)
	assert.Equal(t, "spn_x", got.SpanID)
}

func TestRecordBusinessOperation(t *testing.T) {
	rec, st, _ := newTestRecorder(t)

	hourBefore := time.Now().Hour()
	rec.RecordBusinessOperation(context.Background(), BusinessOperation{
		OperationID:     "op-biz-1",
		UserID:          "alice",
		Type:            "sum",
		InputA:          3,
		InputB:          4,
		Result:          7,
		ExecutionTimeMs: 1,
		TraceID:         "trc_x",
		IPAddress:       "10.0.0.1",
	})
	hourAfter := time.Now().Hour()

	var got store.BusinessLog
	require.NoError(t, st.DB().First(&got, "operation_id = ?", "op-biz-1").Error)

	assert.Equal(t, "alice", got.UserID)
	assert.Equal(t, "3 + 4", got.InputValues)
	assert.Equal(t, int32(7), got.ResultValue)
	assert.Equal(t, "10.0.0.1", got.IPAddress)
	assert.Equal(t, StatusSuccess, got.Status)
	assert.Equal(t, "User alice performed sum operation: 3 + 4 = 7", got.Message)

	// Hour and period are taken from wall-clock time at write time
	assert.Contains(t, []int{hourBefore, hourAfter}, got.HourOfDay)
	assert.Equal(t, string(ClassifyHour(got.HourOfDay)), got.DayPeriod)
}

func TestRecordBusinessOperationNegativeInputs(t *testing.T) {
	rec, st, _ := newTestRecorder(t)

	rec.RecordBusinessOperation(context.Background(), BusinessOperation{
		OperationID: "op-biz-neg",
		UserID:      "bob",
		Type:        "sum",
		InputA:      -5,
		InputB:      3,
		Result:      -2,
	})

	var got store.BusinessLog
	require.NoError(t, st.DB().First(&got, "operation_id = ?", "op-biz-neg").Error)
	assert.Equal(t, "-5 + 3", got.InputValues)
	assert.Equal(t, "User bob performed sum operation: -5 + 3 = -2", got.Message)
}

func TestRecorderSwallowsStoreFailures(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	require.NoError(t, st.EnsureSchema())
	require.NoError(t, st.Close())

	metrics := monitoring.NewMetricsWith(prometheus.NewRegistry())
	rec := NewRecorder(st, logging.NewNop()).WithMetrics(metrics)

	// Neither write may panic or surface the store failure
	rec.RecordOperation(context.Background(), Operation{ID: "doomed-op"})
	rec.RecordBusinessOperation(context.Background(), BusinessOperation{OperationID: "doomed-op"})

	opFailures := testutil.ToFloat64(metrics.AuditWriteFailures.WithLabelValues(monitoring.AuditRecordOperation))
	bizFailures := testutil.ToFloat64(metrics.AuditWriteFailures.WithLabelValues(monitoring.AuditRecordBusiness))
	assert.Equal(t, 1.0, opFailures)
	assert.Equal(t, 1.0, bizFailures)
}

func TestRecorderWritesAreIndependent(t *testing.T) {
	rec, st, metrics := newTestRecorder(t)
	ctx := context.Background()

	// A business record with no matching technical record still persists:
	// the two writes share no transaction by design.
	rec.RecordBusinessOperation(ctx, BusinessOperation{
		OperationID: "orphan-op",
		UserID:      "carol",
		Type:        "sum",
	})

	var count int64
	require.NoError(t, st.DB().Model(&store.BusinessLog{}).Where("operation_id = ?", "orphan-op").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	writes := testutil.ToFloat64(metrics.AuditWritesTotal.WithLabelValues(monitoring.AuditRecordBusiness))
	assert.Equal(t, 1.0, writes)
}

func TestRecorderConcurrentWrites(t *testing.T) {
	rec, st, _ := newTestRecorder(t)
	ctx := context.Background()

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			opID := fmt.Sprintf("33333333-0000-4000-8000-%012d", n)
			rec.RecordOperation(ctx, Operation{ID: opID, Type: "sum"})
			rec.RecordBusinessOperation(ctx, BusinessOperation{OperationID: opID, UserID: "u", Type: "sum"})
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	var opCount, bizCount int64
	require.NoError(t, st.DB().Model(&store.Operation{}).Count(&opCount).Error)
	require.NoError(t, st.DB().Model(&store.BusinessLog{}).Count(&bizCount).Error)
	assert.Equal(t, int64(10), opCount)
	assert.Equal(t, int64(10), bizCount)
}
