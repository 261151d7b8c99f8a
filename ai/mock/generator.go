package mock

import (
	"context"
	"fmt"
	"hash/fnv"
)

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// GenerateBlurbFunc is called by GenerateBlurb if set.
	// If nil, uses default deterministic behavior.
	GenerateBlurbFunc func(ctx context.Context, prompt string) (string, error)

	callCount int
}

// NewMockGenerator creates a mock generator with default deterministic behavior.
// Returns the concrete type so tests can inject behavior and assert call counts.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// GenerateBlurb returns a deterministic blurb derived from the prompt
// hash, or the injected function's result.
func (m *MockGenerator) GenerateBlurb(ctx context.Context, prompt string) (string, error) {
	m.callCount++

	if m.GenerateBlurbFunc != nil {
		return m.GenerateBlurbFunc(ctx, prompt)
	}

	h := fnv.New32a()
	h.Write([]byte(prompt))
	return fmt.Sprintf("mock blurb %08x", h.Sum32()), nil
}

// CallCount returns the number of times GenerateBlurb was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.GenerateBlurbFunc = nil
}
