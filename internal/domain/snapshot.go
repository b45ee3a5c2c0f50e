package domain

import "time"

// Squad size bounds for a reward screen
const (
	MinSquadSize = 1
	MaxSquadSize = 4
)

// PricedItem is a recognized reward together with its current market price
type PricedItem struct {
	Item  Item   `json:"item"`
	Price uint32 `json:"price"`
}

// RewardSnapshot is one point-in-time view of a capture session.
// RelicRewards is ordered by slot index; a nil entry is an unresolved or unpriced slot.
type RewardSnapshot struct {
	SessionID    string        `json:"session_id"`
	Attempt      int           `json:"attempt"`
	Final        bool          `json:"final"`
	CapturedAt   time.Time     `json:"captured_at"`
	RelicRewards []*PricedItem `json:"relic_rewards"`
}

// Resolved returns the number of priced slots
func (s RewardSnapshot) Resolved() int {
	n := 0
	for _, r := range s.RelicRewards {
		if r != nil {
			n++
		}
	}
	return n
}

// Best returns the highest priced reward, or nil when nothing is priced
func (s RewardSnapshot) Best() *PricedItem {
	var best *PricedItem
	for _, r := range s.RelicRewards {
		if r != nil && (best == nil || r.Price > best.Price) {
			best = r
		}
	}
	return best
}

// ValidSquadSize reports whether n players can share a reward screen
func ValidSquadSize(n int) bool {
	return n >= MinSquadSize && n <= MaxSquadSize
}
