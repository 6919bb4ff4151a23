package goals

import "context"

// Creator is the creation API consumed by the goal form. A nil goal with a
// nil error is a valid "nothing created" answer.
type Creator interface {
	Create(ctx context.Context, icon *string) (*Goal, error)
}

// Client defines the goal persistence operations used by the application.
type Client interface {
	Creator
	List(ctx context.Context) ([]Goal, error)
	Get(ctx context.Context, id string) (Goal, error)
	Close() error
}
