package mock

import "context"

// MockGenerator is a test double for ai.Generator.
// By default it emits the configured fragments in order, mimicking the
// incremental delivery of a real generation stream.
type MockGenerator struct {
	// Fragments are emitted one onDelta call each, in order.
	Fragments []string

	// Err, if set, is returned after emitting ErrAfter fragments.
	Err      error
	ErrAfter int

	// StreamFunc overrides all default behavior if set.
	StreamFunc func(ctx context.Context, prompt string, onDelta func(delta string) error) error

	callCount int
	prompts   []string
}

// NewMockGenerator creates a mock generator that streams the given fragments.
func NewMockGenerator(fragments ...string) *MockGenerator {
	return &MockGenerator{Fragments: fragments}
}

// Stream emits the configured fragments through onDelta in order.
func (m *MockGenerator) Stream(ctx context.Context, prompt string, onDelta func(delta string) error) error {
	m.callCount++
	m.prompts = append(m.prompts, prompt)

	if m.StreamFunc != nil {
		return m.StreamFunc(ctx, prompt, onDelta)
	}

	for i, fragment := range m.Fragments {
		if m.Err != nil && i >= m.ErrAfter {
			return m.Err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := onDelta(fragment); err != nil {
			return err
		}
	}
	if m.Err != nil && len(m.Fragments) <= m.ErrAfter {
		return m.Err
	}
	return nil
}

// CallCount returns the number of Stream invocations.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// Prompts returns the prompts passed to Stream, in call order.
func (m *MockGenerator) Prompts() []string {
	return m.prompts
}

// Reset clears recorded calls and injected behavior.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.prompts = nil
	m.StreamFunc = nil
	m.Err = nil
	m.ErrAfter = 0
}
