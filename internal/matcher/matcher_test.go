package matcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/RelicWatch_Go/internal/domain"
	"github.com/osse101/RelicWatch_Go/internal/testing/leaktest"
)

func testCatalog() *domain.Catalog {
	return domain.NewCatalog(domain.ItemsAndSets{
		Items: map[string]domain.Item{
			"1": {ID: "1", Name: "Shade Prime Systems", SetID: "s"},
			"2": {ID: "2", Name: "Baruuk Prime Chassis Blueprint", SetID: "b"},
			"3": {ID: "3", Name: "Baruuk Prime Blueprint", SetID: "b"},
			"4": {ID: "4", Name: "Okina Prime Handle", SetID: "o"},
			"5": {ID: "5", Name: "", SetID: "o"},
		},
	}, nil)
}

func TestMatch(t *testing.T) {
	m := New(testCatalog())

	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"exact name", "Shade Prime Systems", "Shade Prime Systems", true},
		{"name within noise", "xx Okina Prime Handle 1", "Okina Prime Handle", true},
		{"no candidate", "Forma Blueprint", "", false},
		{"empty text", "", "", false},
		{"unique longer name", "Baruuk Prime Chassis Blueprint", "Baruuk Prime Chassis Blueprint", true},
		{"ambiguous", "Baruuk Prime Blueprint Shade Prime Systems", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, ok := m.Match(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, item.Name)
		})
	}
}

func TestMatchMemoizes(t *testing.T) {
	m := New(testCatalog())

	first, ok := m.Match("Okina Prime Handle")
	assert.True(t, ok)
	assert.Equal(t, 1, m.memo.Len())

	second, ok := m.Match("Okina Prime Handle")
	assert.True(t, ok)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, m.memo.Len())

	_, ok = m.Match("nothing here")
	assert.False(t, ok)
	assert.Equal(t, 2, m.memo.Len())
}

func TestEmptyNamesAreNeverMatched(t *testing.T) {
	m := New(testCatalog())
	assert.Equal(t, 4, m.Len())
}

func TestMemoEntriesExpire(t *testing.T) {
	m := NewWithMemo(testCatalog(), 8, time.Minute)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	_, ok := m.Match("Okina Prime Handle")
	assert.True(t, ok)
	first, _ := m.memo.Peek("Okina Prime Handle")

	clock = clock.Add(30 * time.Second)
	m.Match("Okina Prime Handle")
	cached, _ := m.memo.Peek("Okina Prime Handle")
	assert.Equal(t, first.expires, cached.expires)

	clock = clock.Add(time.Minute)
	item, ok := m.Match("Okina Prime Handle")
	assert.True(t, ok)
	assert.Equal(t, "Okina Prime Handle", item.Name)
	refreshed, _ := m.memo.Peek("Okina Prime Handle")
	assert.Equal(t, clock.Add(time.Minute), refreshed.expires)
}

func TestMatchersStartNoGoroutines(t *testing.T) {
	leaktest.Verify(t)

	for i := 0; i < 5; i++ {
		m := New(&domain.Catalog{})
		_, ok := m.Match("anything")
		assert.False(t, ok)
	}
}

func TestNonPositiveMemoSizeFallsBack(t *testing.T) {
	m := NewWithMemo(testCatalog(), 0, time.Minute)
	_, ok := m.Match("Shade Prime Systems")
	assert.True(t, ok)
	assert.Equal(t, 1, m.memo.Len())
}
