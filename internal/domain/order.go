package domain

import (
	"fmt"
	"strings"
	"time"
)

// OrderType is the side of a market order
type OrderType string

const (
	OrderBuy  OrderType = "buy"
	OrderSell OrderType = "sell"
)

// UnmarshalText accepts any casing of the order type
func (t *OrderType) UnmarshalText(text []byte) error {
	switch v := OrderType(strings.ToLower(string(text))); v {
	case OrderBuy, OrderSell:
		*t = v
		return nil
	default:
		return fmt.Errorf("unknown order type %q", text)
	}
}

// Platform is the platform an order was placed on
type Platform string

const (
	PlatformPC     Platform = "pc"
	PlatformXbox   Platform = "xbox"
	PlatformPS4    Platform = "ps4"
	PlatformSwitch Platform = "switch"
)

// UnmarshalText accepts any casing of the platform
func (p *Platform) UnmarshalText(text []byte) error {
	switch v := Platform(strings.ToLower(string(text))); v {
	case PlatformPC, PlatformXbox, PlatformPS4, PlatformSwitch:
		*p = v
		return nil
	default:
		return fmt.Errorf("unknown platform %q", text)
	}
}

// UserStatus is the presence of the order owner
type UserStatus string

const (
	StatusInGame  UserStatus = "ingame"
	StatusOnline  UserStatus = "online"
	StatusOffline UserStatus = "offline"
)

// UnmarshalText accepts any casing of the status
func (s *UserStatus) UnmarshalText(text []byte) error {
	switch v := UserStatus(strings.ToLower(string(text))); v {
	case StatusInGame, StatusOnline, StatusOffline:
		*s = v
		return nil
	default:
		return fmt.Errorf("unknown user status %q", text)
	}
}

// OrderUser is the owner of an order
type OrderUser struct {
	ID         string     `json:"id"`
	IngameName string     `json:"ingame_name"`
	Status     UserStatus `json:"status"`
	Region     string     `json:"region"`
	Reputation int        `json:"reputation"`
	Locale     string     `json:"locale"`
	Avatar     *string    `json:"avatar,omitempty"`
	LastSeen   *time.Time `json:"last_seen,omitempty"`
}

// Order is a live buy or sell order. Orders are fetched per price query and never cached.
type Order struct {
	ID           string    `json:"id"`
	Quantity     uint32    `json:"quantity"`
	Platinum     uint32    `json:"platinum"`
	OrderType    OrderType `json:"order_type"`
	Visible      bool      `json:"visible"`
	Platform     Platform  `json:"platform"`
	Region       string    `json:"region"`
	CreationDate time.Time `json:"creation_date"`
	LastUpdate   time.Time `json:"last_update"`
	User         OrderUser `json:"user"`
}
