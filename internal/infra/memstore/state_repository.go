// Package memstore keeps poller state in process memory; it is lost on restart.
package memstore

import (
	"context"
	"sync"
	"time"

	"homework_notification_bot/internal/domain/homework"
)

type StateRepository struct {
	mu    sync.Mutex
	state *homework.State
}

func NewStateRepository() *StateRepository {
	return &StateRepository{}
}

func (r *StateRepository) Load(ctx context.Context) (*homework.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == nil {
		return nil, homework.ErrStateNotFound
	}
	cp := *r.state
	return &cp, nil
}

func (r *StateRepository) Save(ctx context.Context, state *homework.State) error {
	cp := *state
	if cp.UpdatedAt.IsZero() {
		cp.UpdatedAt = time.Now()
	}
	r.mu.Lock()
	r.state = &cp
	r.mu.Unlock()
	return nil
}
