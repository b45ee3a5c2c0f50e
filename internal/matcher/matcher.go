// Package matcher resolves recognized text to a catalog item.
package matcher

import (
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/osse101/RelicWatch_Go/internal/domain"
	"github.com/osse101/RelicWatch_Go/internal/metrics"
)

// Memo defaults
const (
	DefaultMemoSize = 512
	DefaultMemoTTL  = 10 * time.Minute
)

// result is a memoized match; ok is false for texts that matched nothing
type result struct {
	item    domain.Item
	ok      bool
	expires time.Time
}

// Matcher finds the catalog item whose name appears in a piece of text.
// It is safe for concurrent use and starts no goroutines.
type Matcher struct {
	items []domain.Item
	memo  *lru.Cache[string, result]
	ttl   time.Duration
	now   func() time.Time
}

// New creates a matcher over the items of c
func New(c *domain.Catalog) *Matcher {
	return NewWithMemo(c, DefaultMemoSize, DefaultMemoTTL)
}

// NewWithMemo creates a matcher with a custom memo size and ttl.
// Entries older than ttl are recomputed on their next lookup.
func NewWithMemo(c *domain.Catalog, size int, ttl time.Duration) *Matcher {
	items := make([]domain.Item, 0, len(c.Items))
	for _, item := range c.ItemList() {
		if item.Name != "" {
			items = append(items, item)
		}
	}
	if size <= 0 {
		size = DefaultMemoSize
	}
	// lru.New only fails for a non-positive size
	memo, _ := lru.New[string, result](size)
	return &Matcher{
		items: items,
		memo:  memo,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Match returns the single item whose name is contained in text.
// No candidates, or more than one, is no match.
func (m *Matcher) Match(text string) (domain.Item, bool) {
	now := m.now()
	if r, found := m.memo.Get(text); found && now.Before(r.expires) {
		metrics.MatchCacheLookups.WithLabelValues(metrics.ResultHit).Inc()
		return r.item, r.ok
	}
	metrics.MatchCacheLookups.WithLabelValues(metrics.ResultMiss).Inc()

	var r result
	matches := 0
	for _, item := range m.items {
		if strings.Contains(text, item.Name) {
			matches++
			r = result{item: item, ok: true}
		}
	}
	if matches != 1 {
		r = result{}
	}
	r.expires = now.Add(m.ttl)

	m.memo.Add(text, r)
	return r.item, r.ok
}

// Len returns the number of matchable items
func (m *Matcher) Len() int {
	return len(m.items)
}
