package store

import "time"

// Operation is the technical execution record: one row per computation
// request, written once and never mutated.
type Operation struct {
	ID              string    `gorm:"primaryKey;column:id" json:"id"`
	Timestamp       time.Time `gorm:"column:timestamp;default:CURRENT_TIMESTAMP" json:"timestamp"`
	OperationType   string    `gorm:"column:operation_type" json:"operation_type"`
	InputA          int32     `gorm:"column:input_a" json:"input_a"`
	InputB          int32     `gorm:"column:input_b" json:"input_b"`
	Result          int32     `gorm:"column:result" json:"result"`
	ExecutionTimeMs int64     `gorm:"column:execution_time_ms" json:"execution_time_ms"`
	TraceID         string    `gorm:"column:trace_id" json:"trace_id"`
	SpanID          string    `gorm:"column:span_id" json:"span_id"`
}

// TableName overrides the gorm default pluralization.
func (Operation) TableName() string { return "operations" }

// BusinessLog is the classified, human-readable audit record. It references
// its technical counterpart through OperationID; the link is honored by the
// application write order, not by a cross-table transaction.
type BusinessLog struct {
	ID              uint       `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	OperationID     string     `gorm:"column:operation_id;index" json:"operation_id"`
	Operation       *Operation `gorm:"foreignKey:OperationID;references:ID" json:"operation,omitempty"`
	UserID          string     `gorm:"column:user_id" json:"user_id"`
	Timestamp       time.Time  `gorm:"column:timestamp;default:CURRENT_TIMESTAMP" json:"timestamp"`
	HourOfDay       int        `gorm:"column:hour_of_day" json:"hour_of_day"`
	DayPeriod       string     `gorm:"column:day_period" json:"day_period"`
	OperationType   string     `gorm:"column:operation_type" json:"operation_type"`
	InputValues     string     `gorm:"column:input_values" json:"input_values"`
	ResultValue     int32      `gorm:"column:result_value" json:"result_value"`
	ExecutionTimeMs int64      `gorm:"column:execution_time_ms" json:"execution_time_ms"`
	TraceID         string     `gorm:"column:trace_id" json:"trace_id"`
	IPAddress       string     `gorm:"column:ip_address;type:varchar(45)" json:"ip_address"`
	Status          string     `gorm:"column:status" json:"status"`
	Message         string     `gorm:"column:message;type:text" json:"message"`
}

// TableName overrides the gorm default pluralization.
func (BusinessLog) TableName() string { return "business_logs" }
