package id

import (
	"strings"
	"sync"
	"testing"
)

func TestNewOperationID(t *testing.T) {
	id1 := NewOperationID()
	id2 := NewOperationID()

	if id1 == id2 {
		t.Error("Operation IDs should be unique")
	}

	if !IsValidOperationID(string(id1)) {
		t.Errorf("Operation ID should be a valid UUID: %s", id1)
	}

	// UUIDv4 canonical form: 36 characters with hyphens
	if len(id1) != 36 {
		t.Errorf("Operation ID should be 36 characters, got %d", len(id1))
	}
}

func TestOperationIDUniquenessConcurrent(t *testing.T) {
	const goroutines = 50
	const idsPerGoroutine = 100

	var wg sync.WaitGroup
	idChan := make(chan OperationID, goroutines*idsPerGoroutine)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < idsPerGoroutine; j++ {
				idChan <- NewOperationID()
			}
		}()
	}

	wg.Wait()
	close(idChan)

	seen := make(map[OperationID]bool)
	for id := range idChan {
		if seen[id] {
			t.Errorf("Duplicate operation ID: %s", id)
		}
		seen[id] = true
	}
}

func TestGenerateString(t *testing.T) {
	gen := NewGenerator()

	id := gen.GenerateString()

	if len(id) != 26 {
		t.Errorf("ULID should be 26 characters, got %d", len(id))
	}

	if !IsValidULID(id) {
		t.Errorf("Generated ULID should be valid: %s", id)
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	gen := NewGenerator()

	for _, prefix := range []string{TracePrefix, SpanPrefix} {
		id := gen.GenerateWithPrefix(prefix)

		if !strings.HasPrefix(id, prefix+"_") {
			t.Errorf("ID should start with '%s_', got: %s", prefix, id)
		}

		parts := strings.Split(id, "_")
		if len(parts) != 2 {
			t.Errorf("Prefixed ID should have format 'prefix_ulid', got: %s", id)
		}

		if !IsValidULID(parts[1]) {
			t.Errorf("ULID part should be valid: %s", parts[1])
		}
	}
}

func TestTypedTraceIDs(t *testing.T) {
	traceID := NewTraceID()
	spanID := NewSpanID()

	if !strings.HasPrefix(string(traceID), "trc_") {
		t.Errorf("TraceID should start with 'trc_', got: %s", traceID)
	}

	if !strings.HasPrefix(string(spanID), "spn_") {
		t.Errorf("SpanID should start with 'spn_', got: %s", spanID)
	}
}

func TestIsValidULID(t *testing.T) {
	invalidIDs := []string{
		"",
		"invalid",
		"1234567890",
		"zzzzzzzzzzzzzzzzzzzzzzzzzzz",
	}

	for _, id := range invalidIDs {
		if IsValidULID(id) {
			t.Errorf("ID should be invalid: %s", id)
		}
	}
}

func TestDefaultGenerator(t *testing.T) {
	gen1 := Default()
	gen2 := Default()

	if gen1 != gen2 {
		t.Error("Default() should return the same instance")
	}

	if !IsValidULID(gen1.GenerateString()) {
		t.Error("Default generator should produce valid ULIDs")
	}
}

func BenchmarkNewOperationID(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = NewOperationID()
	}
}

func BenchmarkGenerateWithPrefix(b *testing.B) {
	gen := NewGenerator()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = gen.GenerateWithPrefix(TracePrefix)
	}
}
