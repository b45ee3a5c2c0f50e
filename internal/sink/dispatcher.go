package sink

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/osse101/RelicWatch_Go/internal/domain"
	"github.com/osse101/RelicWatch_Go/internal/logger"
	"github.com/osse101/RelicWatch_Go/internal/metrics"
	"github.com/osse101/RelicWatch_Go/internal/worker"
)

// Dispatcher drains the engine output into a sink through a worker pool.
// Sink failures are logged and counted; they never stop dispatching.
type Dispatcher struct {
	sink    Sink
	workers int
	queue   int
}

// NewDispatcher creates a dispatcher. One worker keeps snapshots in order.
func NewDispatcher(s Sink, workers int) *Dispatcher {
	return &Dispatcher{sink: s, workers: workers, queue: DefaultQueueSize}
}

// Run delivers snapshots from in until it is closed or ctx ends. Snapshots
// already buffered in in, or queued on the pool, are still delivered.
func (d *Dispatcher) Run(ctx context.Context, in <-chan domain.RewardSnapshot) error {
	pool := worker.NewPool(d.workers, d.queue)
	// deliveries outlive ctx so a shutdown still flushes the backlog
	pool.Start(context.WithoutCancel(ctx))
	defer pool.Stop()

	log := logger.FromContext(ctx)
	log.Info(LogMsgDispatcherStarted, "sink", d.sink.Name(), "workers", d.workers)
	defer log.Info(LogMsgDispatcherStopped, "sink", d.sink.Name())

	for {
		select {
		case snap, ok := <-in:
			if !ok {
				return nil
			}
			job := d.job(snap)
			if err := pool.Enqueue(ctx, job); err != nil {
				if errors.Is(err, worker.ErrPoolStopped) {
					return nil
				}
				_ = pool.Enqueue(context.Background(), job)
				d.drain(in, pool)
				return nil
			}
		case <-ctx.Done():
			d.drain(in, pool)
			return nil
		}
	}
}

func (d *Dispatcher) drain(in <-chan domain.RewardSnapshot, pool *worker.Pool) {
	for {
		select {
		case snap, ok := <-in:
			if !ok {
				return
			}
			if err := pool.Enqueue(context.Background(), d.job(snap)); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (d *Dispatcher) job(snap domain.RewardSnapshot) worker.Job {
	return worker.JobFunc(func(ctx context.Context) error {
		return d.Deliver(ctx, snap)
	})
}

// Deliver hands one snapshot to the sink and records the outcome.
// Failures are returned for the worker pool to log.
func (d *Dispatcher) Deliver(ctx context.Context, snap domain.RewardSnapshot) error {
	ctx, cancel := context.WithTimeout(ctx, DeliveryTimeout)
	defer cancel()

	name := d.sink.Name()
	err := d.sink.Accept(ctx, snap)
	switch {
	case err == nil:
		metrics.SinkDeliveries.WithLabelValues(name, metrics.ResultOK).Inc()
		slog.Debug(LogMsgDelivered, "sink", name, "session_id", snap.SessionID, "attempt", snap.Attempt)
		return nil
	case errors.Is(err, ErrSkipped):
		metrics.SinkDeliveries.WithLabelValues(name, metrics.ResultSkipped).Inc()
		return nil
	default:
		metrics.SinkDeliveries.WithLabelValues(name, metrics.ResultError).Inc()
		return fmt.Errorf("%s %s: %w", ErrMsgDeliveryFailed, name, err)
	}
}
