package sink

import (
	"context"
	"sync"

	"github.com/osse101/RelicWatch_Go/internal/domain"
)

// Recorder remembers the latest snapshot before handing it to the wrapped sink
type Recorder struct {
	inner Sink

	mu     sync.RWMutex
	latest *domain.RewardSnapshot
}

func NewRecorder(inner Sink) *Recorder {
	return &Recorder{inner: inner}
}

func (r *Recorder) Name() string { return r.inner.Name() }

func (r *Recorder) Accept(ctx context.Context, snap domain.RewardSnapshot) error {
	r.mu.Lock()
	r.latest = &snap
	r.mu.Unlock()
	return r.inner.Accept(ctx, snap)
}

// Latest returns the most recent snapshot, if any was seen
func (r *Recorder) Latest() (domain.RewardSnapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.latest == nil {
		return domain.RewardSnapshot{}, false
	}
	return *r.latest, true
}
