package server

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RelicWatch_Go/internal/domain"
	"github.com/osse101/RelicWatch_Go/internal/sse"
)

type fakeSnapshots struct {
	snap *domain.RewardSnapshot
}

func (f *fakeSnapshots) Latest() (domain.RewardSnapshot, bool) {
	if f.snap == nil {
		return domain.RewardSnapshot{}, false
	}
	return *f.snap, true
}

type fixture struct {
	srv       *httptest.Server
	catalog   atomic.Pointer[domain.Catalog]
	snapshots *fakeSnapshots
	hub       *sse.Hub
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{snapshots: &fakeSnapshots{}, hub: sse.NewHub()}
	f.srv = httptest.NewServer(NewRouter(f.catalog.Load, f.snapshots, f.hub))
	t.Cleanup(func() {
		f.hub.Close()
		f.srv.Close()
	})
	return f
}

func (f *fixture) get(t *testing.T, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(f.srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func testCatalog() *domain.Catalog {
	return domain.NewCatalog(domain.ItemsAndSets{
		Items: map[string]domain.Item{
			"a": {ID: "a", Name: "Okina Prime Blade", SetID: "s"},
			"b": {ID: "b", Name: "Okina Prime Handle", SetID: "s"},
		},
		Sets: map[string]domain.ItemSet{
			"s": {ID: "s", Name: "Okina Prime Set", PartIDs: []string{"a", "b"}},
		},
	}, []domain.Relic{{ID: "r", Name: "Axi A1 Relic"}})
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)

	resp, body := f.get(t, RouteHealthz)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
	assert.Equal(t, HeaderValueNoSniff, resp.Header.Get(HeaderContentType))
	assert.Equal(t, HeaderValueSameOrigin, resp.Header.Get(HeaderFrameOptions))
}

func TestReadyzFollowsCatalog(t *testing.T) {
	f := newFixture(t)

	resp, body := f.get(t, RouteReadyz)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, string(body), MsgCatalogLoading)

	f.catalog.Store(testCatalog())
	resp, _ = f.get(t, RouteReadyz)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCatalogCounts(t *testing.T) {
	f := newFixture(t)

	resp, _ := f.get(t, RouteAPI+RouteCatalog)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	f.catalog.Store(testCatalog())
	resp, body := f.get(t, RouteAPI+RouteCatalog)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got CatalogResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, CatalogResponse{Items: 2, Sets: 1, Relics: 1}, got)
}

func TestSnapshot(t *testing.T) {
	f := newFixture(t)

	resp, body := f.get(t, RouteAPI+RouteSnapshot)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, body)

	f.snapshots.snap = &domain.RewardSnapshot{
		SessionID:    "s1",
		Attempt:      2,
		Final:        true,
		RelicRewards: []*domain.PricedItem{nil, {Item: domain.Item{Name: "Okina Prime Blade"}, Price: 6}},
	}
	resp, body = f.get(t, RouteAPI+RouteSnapshot)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var got domain.RewardSnapshot
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, 2, got.Attempt)
	require.Len(t, got.RelicRewards, 2)
	assert.Nil(t, got.RelicRewards[0])
	assert.Equal(t, uint32(6), got.RelicRewards[1].Price)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)
	f.get(t, RouteHealthz)

	resp, body := f.get(t, RouteMetrics)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "relicwatch_http_requests_total")
}

func TestUnknownRoute(t *testing.T) {
	f := newFixture(t)

	resp, _ := f.get(t, "/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOverlayEventsStream(t *testing.T) {
	f := newFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.srv.URL+RouteAPI+RouteOverlayEvents, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	scanner := bufio.NewScanner(resp.Body)
	var first string
	for scanner.Scan() {
		if v, ok := strings.CutPrefix(scanner.Text(), "event: "); ok {
			first = v
			break
		}
	}
	assert.Equal(t, sse.EventTypeConnected, first)
}
