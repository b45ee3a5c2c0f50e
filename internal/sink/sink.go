// Package sink delivers reward snapshots to their consumers.
package sink

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/RelicWatch_Go/internal/domain"
)

// ErrSkipped is returned by sinks that deliberately ignore a snapshot,
// for example chat sinks that only post final results
var ErrSkipped = errors.New(ErrMsgSkipped)

// Sink consumes reward snapshots
type Sink interface {
	Name() string
	Accept(ctx context.Context, snap domain.RewardSnapshot) error
}

func priceLabel(p *domain.PricedItem) string {
	if p == nil {
		return UnresolvedLabel
	}
	return fmt.Sprintf(PriceFormat, p.Price)
}

func nameLabel(p *domain.PricedItem) string {
	if p == nil {
		return UnresolvedLabel
	}
	return p.Item.Name
}
