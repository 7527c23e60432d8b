// Package id provides centralized ID generation for the backend.
//
// Two identity families coexist:
//   - Operation IDs: random UUIDv4 strings. They are the primary key of the
//     operations audit table and are echoed in API responses, so they must be
//     plain UUIDs with no decoration.
//   - Trace/span IDs: prefixed ULIDs. Lexicographically sortable, cheap to
//     generate, and readable in logs (trc_*, spn_*).
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// OperationID identifies a single recorded computation.
type OperationID string

// TraceID identifies a distributed trace.
type TraceID string

// SpanID identifies a single span within a trace.
type SpanID string

const (
	TracePrefix = "trc"
	SpanPrefix  = "spn"
)

// NewOperationID generates a fresh operation identity as a UUIDv4 string.
func NewOperationID() OperationID {
	return OperationID(uuid.NewString())
}

// Generator generates ULIDs with optional prefixes.
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex // Protects entropy reader
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance.
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a new ULID generator backed by crypto/rand.
func NewGenerator() *Generator {
	return &Generator{entropy: rand.Reader}
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source.
// Useful for testing with deterministic entropy.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate creates a new ULID.
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateString creates a new ULID as a string.
func (g *Generator) GenerateString() string {
	return g.Generate().String()
}

// GenerateWithPrefix creates a prefixed ULID string.
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.GenerateString())
}

// NewTraceID generates a new trace ID.
func NewTraceID() TraceID {
	return TraceID(Default().GenerateWithPrefix(TracePrefix))
}

// NewSpanID generates a new span ID.
func NewSpanID() SpanID {
	return SpanID(Default().GenerateWithPrefix(SpanPrefix))
}

func (id OperationID) String() string { return string(id) }
func (id TraceID) String() string     { return string(id) }
func (id SpanID) String() string      { return string(id) }

// IsValidOperationID checks whether a string parses as a UUID.
func IsValidOperationID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// IsValidULID checks whether a string parses as a ULID.
func IsValidULID(id string) bool {
	_, err := ulid.Parse(id)
	return err == nil
}
