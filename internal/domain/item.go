package domain

import (
	"fmt"
	"slices"
	"sort"
)

// Item is a tradable set part that can appear on the reward screen.
// Items are immutable once loaded and belong to exactly one ItemSet.
type Item struct {
	ID             string `json:"id"`
	IDName         string `json:"id_name"`
	Name           string `json:"name"`
	TradingTax     uint32 `json:"trading_tax"`
	SetID          string `json:"set_id"`
	Ducats         uint32 `json:"ducats"`
	QuantityForSet uint32 `json:"quantity_for_set"`
}

// ItemSet groups the parts that build one prime set.
// PartIDs is kept sorted so serialized catalogs are byte-stable.
type ItemSet struct {
	ID      string   `json:"id"`
	IDName  string   `json:"id_name"`
	Name    string   `json:"name"`
	PartIDs []string `json:"part_ids"`
}

// HasPart reports whether the item id is part of the set
func (s ItemSet) HasPart(itemID string) bool {
	_, found := slices.BinarySearch(s.PartIDs, itemID)
	return found
}

// Relic is a catalog entry for a relic. It is not linked to items or sets.
type Relic struct {
	ID         string `json:"id"`
	IDName     string `json:"id_name"`
	Name       string `json:"name"`
	Vaulted    bool   `json:"vaulted"`
	Era        string `json:"era"`
	TradingTax uint32 `json:"trading_tax"`
}

// IdentifierKind distinguishes relic identifiers from item identifiers
type IdentifierKind string

const (
	IdentifierRelic IdentifierKind = "Relic"
	IdentifierItem  IdentifierKind = "Item"
)

// ItemIdentifier is the url name of a market entry together with its kind
type ItemIdentifier struct {
	Kind   IdentifierKind `json:"kind"`
	IDName string         `json:"id_name"`
}

// ItemsAndSets is the persisted form of the item/set stage of the catalog
type ItemsAndSets struct {
	Items map[string]Item    `json:"items"`
	Sets  map[string]ItemSet `json:"sets"`
}

// Catalog is the set of recognizable items, sets and relics.
// It is built once at startup and only read afterwards.
type Catalog struct {
	Items  map[string]Item
	Sets   map[string]ItemSet
	Relics []Relic
}

// NewCatalog assembles a catalog from its persisted stages
func NewCatalog(itemsAndSets ItemsAndSets, relics []Relic) *Catalog {
	c := &Catalog{
		Items:  itemsAndSets.Items,
		Sets:   itemsAndSets.Sets,
		Relics: relics,
	}
	if c.Items == nil {
		c.Items = make(map[string]Item)
	}
	if c.Sets == nil {
		c.Sets = make(map[string]ItemSet)
	}
	return c
}

// ItemList returns the catalog items ordered by name then id
func (c *Catalog) ItemList() []Item {
	items := make([]Item, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})
	return items
}

// Validate checks that every set lists exactly the items that reference it
func (c *Catalog) Validate() error {
	members := make(map[string][]string, len(c.Sets))
	for id, item := range c.Items {
		if _, ok := c.Sets[item.SetID]; !ok {
			return fmt.Errorf("%w: item %s references unknown set %s", ErrInconsistentCatalog, id, item.SetID)
		}
		members[item.SetID] = append(members[item.SetID], id)
	}

	for id, set := range c.Sets {
		got := members[id]
		sort.Strings(got)
		if !slices.Equal(got, set.PartIDs) {
			return fmt.Errorf("%w: set %s lists %d parts, %d items reference it",
				ErrInconsistentCatalog, id, len(set.PartIDs), len(got))
		}
	}

	return nil
}
