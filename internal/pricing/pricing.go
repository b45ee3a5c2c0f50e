// Package pricing turns live market orders into a single platinum price.
package pricing

import (
	"context"
	"log/slog"
	"slices"

	"github.com/osse101/RelicWatch_Go/internal/domain"
	"github.com/osse101/RelicWatch_Go/internal/metrics"
)

// OrderSource fetches the live orders of an item
type OrderSource interface {
	Orders(ctx context.Context, idName string) ([]domain.Order, error)
}

// Aggregator prices items from live orders. Prices are never cached.
type Aggregator struct {
	orders OrderSource
}

// NewAggregator creates an aggregator reading from orders
func NewAggregator(orders OrderSource) *Aggregator {
	return &Aggregator{orders: orders}
}

// Price returns the current price of item
func (a *Aggregator) Price(ctx context.Context, item domain.Item) (uint32, error) {
	orders, err := a.orders.Orders(ctx, item.IDName)
	if err != nil {
		metrics.PriceLookups.WithLabelValues(metrics.ResultError).Inc()
		slog.Warn(LogMsgPriceFailed, "item", item.Name, "error", err)
		return 0, err
	}

	price := Reduce(orders)
	metrics.PriceLookups.WithLabelValues(metrics.ResultOK).Inc()
	slog.Debug(LogMsgPriced, "item", item.Name, "orders", len(orders), "price", price)
	return price, nil
}

// Reduce picks the upper median platinum of the relevant orders.
//
// Only pc buy orders in the en region count. When more than OnlineThreshold of
// them belong to users who are not offline, offline orders are dropped.
// No relevant orders prices at zero.
func Reduce(orders []domain.Order) uint32 {
	var relevant, reachable []uint32
	for _, o := range orders {
		if o.Platform != Platform || o.Region != Region || o.OrderType != Side {
			continue
		}
		relevant = append(relevant, o.Platinum)
		if o.User.Status != domain.StatusOffline {
			reachable = append(reachable, o.Platinum)
		}
	}

	prices := relevant
	if len(reachable) > OnlineThreshold {
		prices = reachable
	}
	if len(prices) == 0 {
		return 0
	}

	slices.Sort(prices)
	return prices[len(prices)/2]
}
