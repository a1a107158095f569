package memstore

import (
	"context"
	"sync"

	"github.com/khoahotran/profile-studio/internal/domain/activity"
)

// Publisher records published events in order.
type Publisher struct {
	mu     sync.Mutex
	events []activity.ProfileEvent
	Err    error
}

func (p *Publisher) PublishProfileEvent(_ context.Context, e activity.ProfileEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *Publisher) Events() []activity.ProfileEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]activity.ProfileEvent(nil), p.events...)
}
