// internal/domain/homework/state.go
package homework

import (
	"context"
	"errors"
	"time"
)

var ErrStateNotFound = errors.New("homework state not found")

// State is what the poller carries from one cycle to the next.
type State struct {
	FromDate    int64  // from_date cursor, Unix seconds
	LastMessage string // last rendered notification, empty before the first one
	UpdatedAt   time.Time
}

// StateRepository persists the poller state between cycles (and restarts, for durable backends).
type StateRepository interface {
	// Load returns ErrStateNotFound when nothing has been saved yet.
	Load(ctx context.Context) (*State, error)
	Save(ctx context.Context, state *State) error
}
