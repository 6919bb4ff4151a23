package goals

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// ErrMockNotImplemented is returned when a MockClient method lacks an override.
var ErrMockNotImplemented = errors.New("goals.MockClient: method not implemented")

// MockClient is a test double for the goal Client interface.
type MockClient struct {
	CreateFn func(context.Context, *string) (*Goal, error)
	ListFn   func(context.Context) ([]Goal, error)
	GetFn    func(context.Context, string) (Goal, error)

	mu              sync.Mutex
	CreateCallCount int
	CreateCallArgs  []*string
	ListCallCount   int
	GetCallArgs     []string
	Closed          bool
}

// NewMockClient returns a MockClient with zeroed handlers.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Create invokes the configured stub or returns a mock goal.
func (m *MockClient) Create(ctx context.Context, icon *string) (*Goal, error) {
	m.mu.Lock()
	m.CreateCallCount++
	m.CreateCallArgs = append(m.CreateCallArgs, copyString(icon))
	m.mu.Unlock()

	if m.CreateFn == nil {
		now := time.Now()
		return &Goal{
			ID:            "goal-mock",
			Icon:          copyString(icon),
			TargetAmount:  decimal.Zero,
			CurrentAmount: decimal.Zero,
			Status:        StatusActive,
			CreatedAt:     now,
			UpdatedAt:     now,
		}, nil
	}
	return m.CreateFn(ctx, icon)
}

// List invokes the configured stub or returns an empty list.
func (m *MockClient) List(ctx context.Context) ([]Goal, error) {
	m.mu.Lock()
	m.ListCallCount++
	m.mu.Unlock()

	if m.ListFn == nil {
		return nil, nil
	}
	return m.ListFn(ctx)
}

// Get invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockClient) Get(ctx context.Context, id string) (Goal, error) {
	m.mu.Lock()
	m.GetCallArgs = append(m.GetCallArgs, id)
	m.mu.Unlock()

	if m.GetFn == nil {
		return Goal{}, ErrMockNotImplemented
	}
	return m.GetFn(ctx, id)
}

// Close marks the mock closed.
func (m *MockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// Calls returns the number of Create calls so far.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CreateCallCount
}
