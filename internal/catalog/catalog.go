// Package catalog builds the item, set and relic catalog from the market API,
// persisting each stage in the cache directory.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/RelicWatch_Go/internal/cache"
	"github.com/osse101/RelicWatch_Go/internal/domain"
	"github.com/osse101/RelicWatch_Go/internal/market"
	"github.com/osse101/RelicWatch_Go/internal/metrics"
)

// Source provides the market data the catalog is built from
type Source interface {
	ItemIdentifiers(ctx context.Context) ([]domain.ItemIdentifier, error)
	ItemDetail(ctx context.Context, idName string) (market.ItemDetail, error)
}

// Build loads the catalog from cacheDir, fetching and persisting any missing stage.
// The assembled catalog is validated once; an inconsistent catalog is an error.
func Build(ctx context.Context, cacheDir string, src Source) (*domain.Catalog, error) {
	slog.Info(LogMsgBuildingCatalog, "cache_path", cacheDir)

	identifiers, err := cache.Cached(filepath.Join(cacheDir, FileItemIdentifiers), func() ([]domain.ItemIdentifier, error) {
		return src.ItemIdentifiers(ctx)
	})
	if err != nil {
		return nil, err
	}

	relics, err := cache.Cached(filepath.Join(cacheDir, FileRelics), func() ([]domain.Relic, error) {
		return fetchRelics(ctx, src, identifiers)
	})
	if err != nil {
		return nil, err
	}

	itemsAndSets, err := cache.Cached(filepath.Join(cacheDir, FileItemsAndSets), func() (domain.ItemsAndSets, error) {
		return fetchItemsAndSets(ctx, src, identifiers)
	})
	if err != nil {
		return nil, err
	}

	c := domain.NewCatalog(itemsAndSets, relics)
	if err := c.Validate(); err != nil {
		return nil, err
	}

	metrics.CatalogEntries.WithLabelValues(KindItems).Set(float64(len(c.Items)))
	metrics.CatalogEntries.WithLabelValues(KindSets).Set(float64(len(c.Sets)))
	metrics.CatalogEntries.WithLabelValues(KindRelics).Set(float64(len(c.Relics)))
	slog.Info(LogMsgCatalogReady, "items", len(c.Items), "sets", len(c.Sets), "relics", len(c.Relics))

	return c, nil
}

// Refresh removes every cached stage so the next Build fetches from the market
func Refresh(cacheDir string) error {
	err := cache.Remove(
		filepath.Join(cacheDir, FileItemIdentifiers),
		filepath.Join(cacheDir, FileRelics),
		filepath.Join(cacheDir, FileItemsAndSets),
	)
	if err == nil {
		slog.Info(LogMsgCacheRefreshed, "cache_path", cacheDir)
	}
	return err
}

// Eligible reports whether an item identifier names a prime part or set worth fetching
func Eligible(idName string) bool {
	if !strings.Contains(idName, PrimeMarker) || strings.Contains(idName, PrimedMarker) {
		return false
	}
	_, excluded := ExcludedIdentifiers[idName]
	return !excluded
}

func fetchRelics(ctx context.Context, src Source, identifiers []domain.ItemIdentifier) ([]domain.Relic, error) {
	var names []string
	for _, id := range identifiers {
		if id.Kind == domain.IdentifierRelic {
			names = append(names, id.IDName)
		}
	}

	results := make([]*domain.Relic, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			detail, err := src.ItemDetail(gctx, name)
			if err != nil {
				return err
			}
			results[i] = relicFromDetail(detail)
			if results[i] == nil {
				slog.Debug(LogMsgRelicSkipped, "id_name", name)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	relics := make([]domain.Relic, 0, len(results))
	for _, r := range results {
		if r != nil {
			relics = append(relics, *r)
		}
	}
	return relics, nil
}

// relicFromDetail takes the last member of the set and the first non-relic tag as its era
func relicFromDetail(detail market.ItemDetail) *domain.Relic {
	if len(detail.ItemsInSet) == 0 {
		return nil
	}
	entry := detail.ItemsInSet[len(detail.ItemsInSet)-1]

	for _, tag := range entry.Tags {
		if tag == RelicTag {
			continue
		}
		return &domain.Relic{
			ID:         entry.ID,
			IDName:     entry.URLName,
			Name:       entry.En.ItemName,
			Vaulted:    entry.Vaulted,
			Era:        tag,
			TradingTax: entry.TradingTax,
		}
	}
	return nil
}

func fetchItemsAndSets(ctx context.Context, src Source, identifiers []domain.ItemIdentifier) (domain.ItemsAndSets, error) {
	out := domain.ItemsAndSets{
		Items: make(map[string]domain.Item),
		Sets:  make(map[string]domain.ItemSet),
	}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, id := range identifiers {
		if id.Kind != domain.IdentifierItem || !Eligible(id.IDName) {
			continue
		}
		name := id.IDName
		g.Go(func() error {
			detail, err := src.ItemDetail(gctx, name)
			if err != nil {
				return err
			}
			set, parts, err := partition(detail)
			if err != nil {
				return fmt.Errorf("%w: %s", err, name)
			}

			mu.Lock()
			defer mu.Unlock()
			out.Sets[set.ID] = set
			for _, p := range parts {
				out.Items[p.ID] = p
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.ItemsAndSets{}, err
	}
	return out, nil
}

// partition splits a detail into its set root and the parts that reference it
func partition(detail market.ItemDetail) (domain.ItemSet, []domain.Item, error) {
	var root *market.DetailEntry
	var members []market.DetailEntry
	for i := range detail.ItemsInSet {
		entry := detail.ItemsInSet[i]
		if entry.SetRoot {
			if root == nil {
				root = &entry
			}
			continue
		}
		members = append(members, entry)
	}
	if root == nil {
		return domain.ItemSet{}, nil, domain.ErrMissingSetRoot
	}

	set := domain.ItemSet{
		ID:      root.ID,
		IDName:  root.URLName,
		Name:    root.En.ItemName,
		PartIDs: make([]string, 0, len(members)),
	}
	parts := make([]domain.Item, 0, len(members))
	for _, m := range members {
		set.PartIDs = append(set.PartIDs, m.ID)
		parts = append(parts, domain.Item{
			ID:             m.ID,
			IDName:         m.URLName,
			Name:           m.En.ItemName,
			TradingTax:     m.TradingTax,
			SetID:          root.ID,
			Ducats:         m.Ducats,
			QuantityForSet: m.QuantityForSet,
		})
	}
	sort.Strings(set.PartIDs)

	return set, parts, nil
}
