package lifecycle

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RelicWatch_Go/internal/domain"
	"github.com/osse101/RelicWatch_Go/internal/matcher"
	"github.com/osse101/RelicWatch_Go/internal/metrics"
	"github.com/osse101/RelicWatch_Go/internal/screen"
	"github.com/osse101/RelicWatch_Go/internal/testing/leaktest"
)

var hd = image.Rect(0, 0, 1920, 1080)

type fakeFrames struct {
	err error
}

func (f fakeFrames) Capture(ctx context.Context) (image.Image, error) {
	if f.err != nil {
		return nil, f.err
	}
	return imaging.New(hd.Dx(), hd.Dy(), color.NRGBA{A: 255}), nil
}

// fakeOCR answers by region and counts calls per frame column
type fakeOCR struct {
	mu    sync.Mutex
	texts map[image.Rectangle]string
	calls map[int]int
}

func newFakeOCR(texts map[image.Rectangle]string) *fakeOCR {
	return &fakeOCR{texts: texts, calls: make(map[int]int)}
}

func (f *fakeOCR) Text(ctx context.Context, img image.Image, region image.Rectangle) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[region.Min.X]++
	return f.texts[region], nil
}

func (f *fakeOCR) columns() map[int]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[int]int, len(f.calls))
	for k, v := range f.calls {
		out[k] = v
	}
	return out
}

type fakePricer map[string]uint32

func (p fakePricer) Price(ctx context.Context, item domain.Item) (uint32, error) {
	price, ok := p[item.Name]
	if !ok {
		return 0, errors.New("no orders")
	}
	return price, nil
}

func testMatcher() *matcher.Matcher {
	return matcher.New(domain.NewCatalog(domain.ItemsAndSets{
		Items: map[string]domain.Item{
			"1": {ID: "1", Name: "Shade Prime Systems", SetID: "s"},
			"2": {ID: "2", Name: "Baruuk Prime Chassis Blueprint", SetID: "b"},
			"3": {ID: "3", Name: "Okina Prime Handle", SetID: "o"},
		},
	}, nil))
}

func newTestLifecycle(frames FrameSource, ocr *fakeOCR, pricer Pricer, out chan domain.RewardSnapshot, cfg Config) *Lifecycle {
	m := testMatcher()
	return New(frames, screen.NewRecognizer(ocr, m, ""), m, pricer, out, cfg)
}

func run(t *testing.T, l *Lifecycle) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.NoError(t, l.Run(ctx))
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return cancel
}

func collect(t *testing.T, out <-chan domain.RewardSnapshot, n int) []domain.RewardSnapshot {
	t.Helper()
	var snaps []domain.RewardSnapshot
	for len(snaps) < n {
		select {
		case s := <-out:
			snaps = append(snaps, s)
		case <-time.After(3 * time.Second):
			t.Fatalf("timed out after %d of %d snapshots", len(snaps), n)
		}
	}
	return snaps
}

func assertQuiet(t *testing.T, out <-chan domain.RewardSnapshot) {
	t.Helper()
	select {
	case s := <-out:
		t.Fatalf("unexpected snapshot %+v", s)
	case <-time.After(50 * time.Millisecond):
	}
}

func names(snap domain.RewardSnapshot) []string {
	out := make([]string, len(snap.RelicRewards))
	for i, r := range snap.RelicRewards {
		if r != nil {
			out[i] = r.Item.Name
		}
	}
	return out
}

func TestFourSlotSession(t *testing.T) {
	leaktest.Verify(t)

	g := screen.NewGeometry(hd)
	ocr := newFakeOCR(map[image.Rectangle]string{
		g.Window(717, 3): "Chassis",
		g.Line(717, 1):   "ChassisBlueprint",
		g.Line(717, 2):   "BaruukPrime",
		g.Line(960, 1):   "Systems",
		g.Line(960, 2):   "ShadePrime",
		g.Window(474, 2): "Forma",
	})
	out := make(chan domain.RewardSnapshot, 10)
	l := newTestLifecycle(fakeFrames{}, ocr, fakePricer{
		"Baruuk Prime Chassis Blueprint": 30,
		"Shade Prime Systems":            12,
	}, out, Config{Interval: time.Millisecond, MaxAttempts: 3})
	run(t, l)

	require.NoError(t, l.Start(4))
	snaps := collect(t, out, 3)
	assertQuiet(t, out)

	for i, s := range snaps {
		assert.Equal(t, i+1, s.Attempt)
		assert.Equal(t, snaps[0].SessionID, s.SessionID)
		assert.Equal(t, i == 2, s.Final)
	}

	last := snaps[2]
	assert.Equal(t, []string{"", "Baruuk Prime Chassis Blueprint", "Shade Prime Systems", ""}, names(last))
	assert.Equal(t, uint32(30), last.RelicRewards[1].Price)
	assert.Equal(t, uint32(12), last.RelicRewards[2].Price)

	calls := ocr.columns()
	assert.Equal(t, 5, calls[717], "resolved slot must not be read again")
	assert.Equal(t, 5, calls[960], "resolved slot must not be read again")
	assert.Equal(t, 9, calls[474])
	assert.Equal(t, 9, calls[1203])
}

func TestSingleSlotSessionStopsAfterMaxAttempts(t *testing.T) {
	ocr := newFakeOCR(nil)
	out := make(chan domain.RewardSnapshot, 20)
	l := newTestLifecycle(fakeFrames{}, ocr, fakePricer{}, out, Config{Interval: time.Millisecond})
	run(t, l)

	require.NoError(t, l.Start(1))
	snaps := collect(t, out, DefaultMaxAttempts)
	assertQuiet(t, out)

	assert.True(t, snaps[DefaultMaxAttempts-1].Final)
	assert.Len(t, snaps[0].RelicRewards, 1)
	assert.Equal(t, map[int]int{839: DefaultMaxAttempts * 3}, ocr.columns())
}

func TestSingleSlotSessionStopsOnMatch(t *testing.T) {
	g := screen.NewGeometry(hd)
	ocr := newFakeOCR(map[image.Rectangle]string{g.Window(839, 3): "Okina Prime Handle"})
	out := make(chan domain.RewardSnapshot, 20)
	l := newTestLifecycle(fakeFrames{}, ocr, fakePricer{"Okina Prime Handle": 5}, out, Config{Interval: time.Millisecond})
	run(t, l)

	require.NoError(t, l.Start(1))
	snaps := collect(t, out, 1)
	assertQuiet(t, out)

	assert.True(t, snaps[0].Final)
	assert.Equal(t, []string{"Okina Prime Handle"}, names(snaps[0]))
}

func TestUnpricedSlotIsOmitted(t *testing.T) {
	g := screen.NewGeometry(hd)
	ocr := newFakeOCR(map[image.Rectangle]string{g.Window(839, 3): "Okina Prime Handle"})
	out := make(chan domain.RewardSnapshot, 20)
	l := newTestLifecycle(fakeFrames{}, ocr, fakePricer{}, out, Config{Interval: time.Millisecond})
	run(t, l)

	require.NoError(t, l.Start(1))
	snaps := collect(t, out, 1)

	assert.True(t, snaps[0].Final)
	assert.Nil(t, snaps[0].RelicRewards[0])
}

func TestCaptureFailureCountsAsAttempt(t *testing.T) {
	out := make(chan domain.RewardSnapshot, 10)
	l := newTestLifecycle(fakeFrames{err: errors.New("window gone")}, newFakeOCR(nil), fakePricer{}, out,
		Config{Interval: time.Millisecond, MaxAttempts: 2})
	run(t, l)

	require.NoError(t, l.Start(3))
	snaps := collect(t, out, 2)
	assertQuiet(t, out)

	assert.Equal(t, 2, snaps[1].Attempt)
	assert.True(t, snaps[1].Final)
	assert.Equal(t, []*domain.PricedItem{nil, nil, nil}, snaps[1].RelicRewards)
}

func TestCancelEndsSession(t *testing.T) {
	out := make(chan domain.RewardSnapshot, 20)
	l := newTestLifecycle(fakeFrames{}, newFakeOCR(nil), fakePricer{}, out,
		Config{Interval: 20 * time.Millisecond, MaxAttempts: 100})
	run(t, l)

	require.NoError(t, l.Start(2))
	first := collect(t, out, 1)[0]
	assert.False(t, first.Final)

	require.NoError(t, l.Cancel())
	var final domain.RewardSnapshot
	for {
		final = collect(t, out, 1)[0]
		if final.Final {
			break
		}
	}
	assert.Equal(t, first.SessionID, final.SessionID)
	assertQuiet(t, out)
}

func TestStartWhileActiveRestarts(t *testing.T) {
	out := make(chan domain.RewardSnapshot, 20)
	l := newTestLifecycle(fakeFrames{}, newFakeOCR(nil), fakePricer{}, out,
		Config{Interval: 20 * time.Millisecond, MaxAttempts: 2})

	require.NoError(t, l.Start(4))
	require.NoError(t, l.Start(2))
	run(t, l)

	snaps := collect(t, out, 2)
	assertQuiet(t, out)

	for _, s := range snaps {
		assert.Len(t, s.RelicRewards, 2)
	}
	assert.Equal(t, snaps[0].SessionID, snaps[1].SessionID)
}

func TestFullOutputDropsSnapshots(t *testing.T) {
	before := testutil.ToFloat64(metrics.SnapshotsDropped)
	out := make(chan domain.RewardSnapshot)
	l := newTestLifecycle(fakeFrames{}, newFakeOCR(nil), fakePricer{}, out,
		Config{Interval: time.Millisecond, MaxAttempts: 3})
	run(t, l)

	require.NoError(t, l.Start(1))

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(metrics.SnapshotsDropped)-before >= 3
	}, 2*time.Second, 5*time.Millisecond)
}

func TestStartRejectsInvalidSquad(t *testing.T) {
	l := New(fakeFrames{}, nil, nil, nil, nil, Config{})

	assert.ErrorIs(t, l.Start(0), domain.ErrInvalidSquadSize)
	assert.ErrorIs(t, l.Start(5), domain.ErrInvalidSquadSize)
}

func TestControlChannelIsBounded(t *testing.T) {
	l := New(fakeFrames{}, nil, nil, nil, nil, Config{})

	for i := 0; i < ControlBuffer; i++ {
		require.NoError(t, l.Cancel())
	}
	assert.ErrorIs(t, l.Start(1), ErrControlFull)
}
