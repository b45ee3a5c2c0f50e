package sink

import (
	"context"

	"github.com/osse101/RelicWatch_Go/internal/domain"
)

// Publisher fans a snapshot out to connected overlay clients
type Publisher interface {
	Publish(snap domain.RewardSnapshot)
}

// Overlay pushes snapshots to the status server's SSE and websocket clients
type Overlay struct {
	hub Publisher
}

func NewOverlay(hub Publisher) *Overlay {
	return &Overlay{hub: hub}
}

func (o *Overlay) Name() string { return NameOverlay }

func (o *Overlay) Accept(_ context.Context, snap domain.RewardSnapshot) error {
	o.hub.Publish(snap)
	return nil
}
