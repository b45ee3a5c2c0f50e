// Package lifecycle runs reward capture sessions: it captures the reward screen
// at a fixed interval, reads every unresolved slot and reports priced snapshots.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/osse101/RelicWatch_Go/internal/domain"
	"github.com/osse101/RelicWatch_Go/internal/logger"
	"github.com/osse101/RelicWatch_Go/internal/metrics"
	"github.com/osse101/RelicWatch_Go/internal/screen"
)

var ErrControlFull = errors.New(ErrMsgControlFull)

// FrameSource captures the current frame of the game window
type FrameSource interface {
	Capture(ctx context.Context) (image.Image, error)
}

// TextRecognizer reads the text of the reward frame starting at x
type TextRecognizer interface {
	Recognize(ctx context.Context, frame image.Image, g screen.Geometry, x int) (string, error)
}

// ItemMatcher resolves recognized text to a catalog item
type ItemMatcher interface {
	Match(text string) (domain.Item, bool)
}

// Pricer returns the current price of an item
type Pricer interface {
	Price(ctx context.Context, item domain.Item) (uint32, error)
}

// Config tunes session timing
type Config struct {
	Interval    time.Duration
	MaxAttempts int
}

type commandKind int

const (
	cmdStart commandKind = iota
	cmdCancel
)

type command struct {
	kind  commandKind
	squad int
}

// Lifecycle is idle until Start and runs at most one session at a time
type Lifecycle struct {
	frames      FrameSource
	recognizer  TextRecognizer
	matcher     ItemMatcher
	pricer      Pricer
	out         chan<- domain.RewardSnapshot
	control     chan command
	interval    time.Duration
	maxAttempts int
}

// New creates a lifecycle delivering snapshots to out. Zero config values use the defaults.
func New(frames FrameSource, recognizer TextRecognizer, matcher ItemMatcher, pricer Pricer, out chan<- domain.RewardSnapshot, cfg Config) *Lifecycle {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	return &Lifecycle{
		frames:      frames,
		recognizer:  recognizer,
		matcher:     matcher,
		pricer:      pricer,
		out:         out,
		control:     make(chan command, ControlBuffer),
		interval:    cfg.Interval,
		maxAttempts: cfg.MaxAttempts,
	}
}

// Start requests a session for squad players. A running session is ended first.
func (l *Lifecycle) Start(squad int) error {
	if !domain.ValidSquadSize(squad) {
		return fmt.Errorf("%w: %d", domain.ErrInvalidSquadSize, squad)
	}
	return l.send(command{kind: cmdStart, squad: squad})
}

// Cancel ends the running session, if any
func (l *Lifecycle) Cancel() error {
	return l.send(command{kind: cmdCancel})
}

func (l *Lifecycle) send(cmd command) error {
	select {
	case l.control <- cmd:
		return nil
	default:
		return ErrControlFull
	}
}

// Run processes commands until ctx ends
func (l *Lifecycle) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd := <-l.control:
			for cmd.kind == cmdStart {
				next, restart := l.runSession(ctx, cmd.squad)
				if !restart {
					break
				}
				cmd = next
			}
			if cmd.kind == cmdCancel {
				slog.Debug(LogMsgCancelWhileIdle)
			}
		}
	}
}

// runSession drives one session. It returns the Start command that interrupted it, if any.
func (l *Lifecycle) runSession(ctx context.Context, squad int) (command, bool) {
	s := newSession(squad)
	ctx = logger.WithSessionID(ctx, s.ID)
	log := logger.FromContext(ctx)

	metrics.SessionsStarted.Inc()
	log.Info(LogMsgSessionStarted, "squad_size", squad)

	finish := func(reason string) {
		metrics.SessionsFinished.WithLabelValues(reason).Inc()
		log.Info(LogMsgSessionFinished, "reason", reason, "attempts", s.Attempt, "resolved", len(s.Slots)-unresolved(s.Slots))
	}

	for s.Attempt < l.maxAttempts {
		timer := time.NewTimer(l.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			finish(ReasonShutdown)
			return command{}, false
		case cmd := <-l.control:
			timer.Stop()
			l.emitLast(ctx, s)
			if cmd.kind == cmdStart {
				finish(ReasonRestarted)
				return cmd, true
			}
			finish(ReasonCancelled)
			return command{}, false
		case <-timer.C:
		}

		l.attempt(ctx, s)
		if s.Complete() {
			finish(ReasonComplete)
			return command{}, false
		}
	}

	finish(ReasonExhausted)
	return command{}, false
}

// attempt captures one frame, resolves what it can and emits a snapshot
func (l *Lifecycle) attempt(ctx context.Context, s *Session) {
	log := logger.FromContext(ctx)

	frame, err := l.frames.Capture(ctx)
	s.Attempt++
	if err != nil {
		metrics.CaptureAttempts.WithLabelValues(metrics.ResultError).Inc()
		log.Warn(LogMsgCaptureFailed, "attempt", s.Attempt, "error", err)
	} else {
		metrics.CaptureAttempts.WithLabelValues(metrics.ResultOK).Inc()
		filled := s.merge(l.resolve(ctx, frame, s))
		metrics.SlotsResolved.Add(float64(filled))
	}

	s.last = l.price(ctx, s.Slots)
	final := s.Complete() || s.Attempt >= l.maxAttempts
	log.Debug(LogMsgAttemptFinished, "attempt", s.Attempt, "unresolved", unresolved(s.Slots), "final", final)
	l.emit(ctx, snapshot(s, final))
}

// resolve reads every unresolved slot of frame concurrently
func (l *Lifecycle) resolve(ctx context.Context, frame image.Image, s *Session) []*domain.Item {
	log := logger.FromContext(ctx)
	g := screen.NewGeometry(frame.Bounds())
	offsets := g.Offsets(s.SquadSize)
	found := make([]*domain.Item, len(s.Slots))

	var wg sync.WaitGroup
	for i, x := range offsets {
		if i >= len(s.Slots) || s.Slots[i] != nil {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			text, err := l.recognizer.Recognize(ctx, frame, g, x)
			if err != nil {
				log.Debug(LogMsgRecognizeFailed, "slot", i, "error", err)
				return
			}
			if item, ok := l.matcher.Match(text); ok {
				log.Debug(LogMsgSlotResolved, "slot", i, "item", item.Name)
				found[i] = &item
			}
		}()
	}
	wg.Wait()

	return found
}

// price looks up every resolved slot concurrently. Unpriced slots stay nil.
func (l *Lifecycle) price(ctx context.Context, slots []*domain.Item) []*domain.PricedItem {
	log := logger.FromContext(ctx)
	rewards := make([]*domain.PricedItem, len(slots))

	var wg sync.WaitGroup
	for i, item := range slots {
		if item == nil {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := l.pricer.Price(ctx, *item)
			if err != nil {
				log.Warn(LogMsgPriceFailed, "slot", i, "item", item.Name, "error", err)
				return
			}
			rewards[i] = &domain.PricedItem{Item: *item, Price: p}
		}()
	}
	wg.Wait()

	return rewards
}

// emitLast re-sends the latest state as final when a session is interrupted after its first attempt
func (l *Lifecycle) emitLast(ctx context.Context, s *Session) {
	if s.Attempt == 0 {
		return
	}
	l.emit(ctx, snapshot(s, true))
}

func (l *Lifecycle) emit(ctx context.Context, snap domain.RewardSnapshot) {
	select {
	case l.out <- snap:
		metrics.SnapshotsEmitted.Inc()
	default:
		metrics.SnapshotsDropped.Inc()
		logger.FromContext(ctx).Warn(LogMsgSnapshotDropped, "attempt", snap.Attempt)
	}
}

func snapshot(s *Session, final bool) domain.RewardSnapshot {
	rewards := make([]*domain.PricedItem, len(s.last))
	copy(rewards, s.last)
	return domain.RewardSnapshot{
		SessionID:    s.ID,
		Attempt:      s.Attempt,
		Final:        final,
		CapturedAt:   time.Now().UTC(),
		RelicRewards: rewards,
	}
}

func unresolved(slots []*domain.Item) int {
	n := 0
	for _, s := range slots {
		if s == nil {
			n++
		}
	}
	return n
}
