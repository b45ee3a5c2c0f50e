package engine

import (
	"context"
	"errors"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RelicWatch_Go/internal/cache"
	"github.com/osse101/RelicWatch_Go/internal/capture"
	"github.com/osse101/RelicWatch_Go/internal/domain"
	"github.com/osse101/RelicWatch_Go/internal/logwatch"
	"github.com/osse101/RelicWatch_Go/internal/market"
	"github.com/osse101/RelicWatch_Go/internal/ocr"
	"github.com/osse101/RelicWatch_Go/internal/screen"
	"github.com/osse101/RelicWatch_Go/internal/testing/leaktest"
)

var routes = map[string]string{
	"/v1/items": `{"payload":{"items":[{"url_name":"okina_prime_handle"}]}}`,
	"/v1/items/okina_prime_handle": `{"payload":{"item":{"id":"set","items_in_set":[
		{"id":"set","url_name":"okina_prime_set","set_root":true,"tags":["set"],"en":{"item_name":"Okina Prime Set"}},
		{"id":"handle","url_name":"okina_prime_handle","set_root":false,"ducats":45,"tags":["prime"],"en":{"item_name":"Okina Prime Handle"}}
	]}}}`,
	"/v1/items/okina_prime_handle/orders": `{"payload":{"orders":[
		{"id":"1","platinum":4,"order_type":"buy","platform":"pc","region":"en","user":{"status":"ingame"}},
		{"id":"2","platinum":6,"order_type":"buy","platform":"pc","region":"en","user":{"status":"offline"}},
		{"id":"3","platinum":8,"order_type":"buy","platform":"pc","region":"en","user":{"status":"online"}}
	]}}`,
}

func marketServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

type regionOCR map[image.Rectangle]string

func (o regionOCR) Text(ctx context.Context, img image.Image, region image.Rectangle) (string, error) {
	return o[region], nil
}

type staticBackend struct {
	err error
}

func (b staticBackend) FindWindow(title string) (capture.Window, error) {
	if b.err != nil {
		return nil, b.err
	}
	return staticWindow{}, nil
}

type staticWindow struct{}

func (staticWindow) Capture(ctx context.Context) (image.Image, error) {
	return imaging.New(1920, 1080, color.NRGBA{A: 255}), nil
}

type chanSource chan logwatch.Entry

func (c chanSource) Entries(ctx context.Context) (<-chan logwatch.Entry, error) {
	return c, nil
}

func testConfig(t *testing.T, baseURL string) Config {
	return Config{
		CachePath:         filepath.Join(t.TempDir(), "cache"),
		MarketBaseURL:     baseURL,
		MarketConcurrency: 2,
		CaptureInterval:   time.Millisecond,
		MaxAttempts:       3,
	}
}

func TestEngineRunsSessionFromLogEvents(t *testing.T) {
	leaktest.Verify(t)

	srv := marketServer(t)
	g := screen.NewGeometry(image.Rect(0, 0, 1920, 1080))
	logs := make(chanSource, 10)

	e, err := New(context.Background(), testConfig(t, srv.URL),
		WithOCR(regionOCR{g.Window(839, 3): "Okina Prime Handle"}),
		WithCaptureBackend(staticBackend{}),
		WithLogSource(logs),
	)
	require.NoError(t, err)
	require.Len(t, e.Catalog().Items, 1)

	out := make(chan domain.RewardSnapshot, 10)
	done := make(chan error, 1)
	go func() { done <- e.Run(context.Background(), out) }()

	logs <- logwatch.Entry{Kind: logwatch.KindNetInfo, Text: "Num session players: 1"}
	logs <- logwatch.Entry{Kind: logwatch.KindScriptInfo, Script: logwatch.ScriptRewardChoice, Text: logwatch.ContentRewardsReady}

	select {
	case snap := <-out:
		assert.True(t, snap.Final)
		require.Len(t, snap.RelicRewards, 1)
		require.NotNil(t, snap.RelicRewards[0])
		assert.Equal(t, "Okina Prime Handle", snap.RelicRewards[0].Item.Name)
		assert.Equal(t, uint32(6), snap.RelicRewards[0].Price)
	case <-time.After(3 * time.Second):
		t.Fatal("no snapshot emitted")
	}

	close(logs)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after the log source closed")
	}
}

func TestEngineRunStopsOnContext(t *testing.T) {
	srv := marketServer(t)
	e, err := New(context.Background(), testConfig(t, srv.URL),
		WithOCR(regionOCR{}), WithCaptureBackend(staticBackend{}), WithLogSource(make(chanSource)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx, make(chan domain.RewardSnapshot, 1)) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestEngineRunWindowNotFound(t *testing.T) {
	srv := marketServer(t)
	e, err := New(context.Background(), testConfig(t, srv.URL),
		WithOCR(regionOCR{}),
		WithCaptureBackend(staticBackend{err: capture.ErrWindowNotFound}),
		WithLogSource(make(chanSource)))
	require.NoError(t, err)

	err = e.Run(context.Background(), make(chan domain.RewardSnapshot))
	assert.ErrorIs(t, err, ErrWindowNotFound)

	e.capture = staticBackend{err: errors.New("display server gone")}
	err = e.Run(context.Background(), make(chan domain.RewardSnapshot))
	assert.ErrorIs(t, err, ErrCaptureBackend)
}

func TestNewErrors(t *testing.T) {
	t.Run("cache path is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, nil, 0o600))

		_, err := New(context.Background(), Config{CachePath: filepath.Join(file, "cache")}, WithOCR(regionOCR{}))
		assert.ErrorIs(t, err, ErrCreateCachePath)
	})

	t.Run("tesseract missing", func(t *testing.T) {
		cfg := Config{CachePath: t.TempDir(), TesseractPath: filepath.Join(t.TempDir(), "no-tesseract")}

		_, err := New(context.Background(), cfg)
		assert.ErrorIs(t, err, ErrOCRUnavailable)
	})

	t.Run("gosseract not compiled in", func(t *testing.T) {
		if ocr.GosseractAvailable {
			t.Skip("built with the gosseract tag")
		}
		cfg := Config{CachePath: t.TempDir(), OCRBackend: ocr.BackendGosseract}

		_, err := New(context.Background(), cfg)
		assert.ErrorIs(t, err, ErrOCRUnavailable)
		assert.ErrorIs(t, err, ocr.ErrUnavailable)
	})

	t.Run("market failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := New(context.Background(), testConfig(t, srv.URL), WithOCR(regionOCR{}))

		assert.ErrorIs(t, err, ErrCatalogFetch)
		assert.ErrorIs(t, err, cache.ErrInnerFailed)
		var netErr *market.NetworkError
		require.ErrorAs(t, err, &netErr)
		assert.Equal(t, http.StatusBadGateway, netErr.Status)
	})
}
