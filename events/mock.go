package events

import (
	"context"
	"sync"
)

// Mock is a mock implementation of RankingsHook for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	PublishFunc func(ctx context.Context, event RankingsRecompute) error

	PublishCalls []RankingsRecompute
}

func NewMock() *Mock {
	return &Mock{}
}

// PublishRankingsRecompute records the call and executes the mock function if provided.
func (m *Mock) PublishRankingsRecompute(ctx context.Context, event RankingsRecompute) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishCalls = append(m.PublishCalls, event)
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, event)
	}
	return nil
}

// Calls returns a copy of the recorded events.
func (m *Mock) Calls() []RankingsRecompute {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RankingsRecompute(nil), m.PublishCalls...)
}
