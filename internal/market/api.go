package market

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/osse101/RelicWatch_Go/internal/domain"
)

// API is the typed view of the market endpoints used to build the catalog and price items
type API struct {
	client  *Client
	baseURL string
}

// NewAPI creates an API that sends every request through client
func NewAPI(client *Client, baseURL string) *API {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &API{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

type payload[T any] struct {
	Payload T `json:"payload"`
}

type identifierEntry struct {
	URLName string `json:"url_name"`
	Vaulted *bool  `json:"vaulted,omitempty"`
}

type itemsWrapper struct {
	Items []identifierEntry `json:"items"`
}

// LocalizedText is the english text of a detail entry
type LocalizedText struct {
	ItemName    string `json:"item_name"`
	Description string `json:"description"`
}

// DetailEntry is one member of an item's set as returned by the detail endpoint
type DetailEntry struct {
	ID             string        `json:"id"`
	URLName        string        `json:"url_name"`
	SetRoot        bool          `json:"set_root"`
	TradingTax     uint32        `json:"trading_tax"`
	Ducats         uint32        `json:"ducats"`
	QuantityForSet uint32        `json:"quantity_for_set"`
	Vaulted        bool          `json:"vaulted"`
	Tags           []string      `json:"tags"`
	En             LocalizedText `json:"en"`
}

// ItemDetail is the detail endpoint's item
type ItemDetail struct {
	ID         string        `json:"id"`
	ItemsInSet []DetailEntry `json:"items_in_set"`
}

type itemWrapper struct {
	Item ItemDetail `json:"item"`
}

type ordersWrapper struct {
	Orders []domain.Order `json:"orders"`
}

// ItemIdentifiers lists every tradable entry. Entries carrying a vaulted flag are relics.
func (a *API) ItemIdentifiers(ctx context.Context) ([]domain.ItemIdentifier, error) {
	var body payload[itemsWrapper]
	if err := a.get(ctx, PathItems, &body); err != nil {
		return nil, err
	}

	ids := make([]domain.ItemIdentifier, 0, len(body.Payload.Items))
	for _, entry := range body.Payload.Items {
		kind := domain.IdentifierItem
		if entry.Vaulted != nil {
			kind = domain.IdentifierRelic
		}
		ids = append(ids, domain.ItemIdentifier{Kind: kind, IDName: entry.URLName})
	}

	slog.Debug(LogMsgIdentifiersRead, "count", len(ids))
	return ids, nil
}

// ItemDetail fetches the set members of the entry named idName
func (a *API) ItemDetail(ctx context.Context, idName string) (ItemDetail, error) {
	slog.Debug(LogMsgFetchingDetail, "id_name", idName)

	var body payload[itemWrapper]
	if err := a.get(ctx, fmt.Sprintf(PathItemFormat, url.PathEscape(idName)), &body); err != nil {
		return ItemDetail{}, err
	}
	return body.Payload.Item, nil
}

// Orders fetches the live orders of the entry named idName
func (a *API) Orders(ctx context.Context, idName string) ([]domain.Order, error) {
	slog.Debug(LogMsgFetchingOrders, "id_name", idName)

	var body payload[ordersWrapper]
	if err := a.get(ctx, fmt.Sprintf(PathOrdersFmt, url.PathEscape(idName)), &body); err != nil {
		return nil, err
	}
	return body.Payload.Orders, nil
}

func (a *API) get(ctx context.Context, path string, target any) error {
	u := a.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &NetworkError{Kind: MiddlewareFailed, URL: u, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Language", "en")
	req.Header.Set("Platform", string(domain.PlatformPC))

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return &NetworkError{Kind: SerializationFailed, URL: u, Status: resp.StatusCode, Err: err}
	}
	return nil
}
