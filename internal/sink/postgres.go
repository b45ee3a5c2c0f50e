package sink

import (
	"context"
	"fmt"

	"github.com/osse101/RelicWatch_Go/internal/domain"
	"github.com/osse101/RelicWatch_Go/internal/logger"
)

// SnapshotStore persists snapshots
type SnapshotStore interface {
	Save(ctx context.Context, snap domain.RewardSnapshot) (int64, error)
}

// Postgres stores every snapshot, intermediate ones included
type Postgres struct {
	store SnapshotStore
}

func NewPostgres(store SnapshotStore) *Postgres {
	return &Postgres{store: store}
}

func (p *Postgres) Name() string { return NamePostgres }

func (p *Postgres) Accept(ctx context.Context, snap domain.RewardSnapshot) error {
	id, err := p.store.Save(ctx, snap)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgPersistFailed, err)
	}
	logger.FromContext(ctx).Debug(LogMsgSnapshotStored, "id", id, "attempt", snap.Attempt)
	return nil
}
