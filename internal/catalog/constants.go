package catalog

// Cache file names under the cache directory
const (
	FileItemIdentifiers = "item_identifiers.json"
	FileRelics          = "relics.json"
	FileItemsAndSets    = "items_and_sets.json"
)

// Identifier filtering
const (
	// PrimeMarker must appear in an item identifier for it to be fetched
	PrimeMarker = "prime"
	// PrimedMarker excludes mods, which share the prime marker
	PrimedMarker = "primed"
	// RelicTag is skipped when picking a relic's era from its tags
	RelicTag = "relic"
)

// ExcludedIdentifiers are prime identifiers that have no set to fetch
var ExcludedIdentifiers = map[string]struct{}{
	"gotva_prime": {},
}

// Metric kind labels
const (
	KindItems  = "items"
	KindSets   = "sets"
	KindRelics = "relics"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgBuildingCatalog = "Building catalog"
	LogMsgCatalogReady    = "Catalog ready"
	LogMsgRelicSkipped    = "Relic has no era, skipping"
	LogMsgCacheRefreshed  = "Catalog cache cleared"
)
