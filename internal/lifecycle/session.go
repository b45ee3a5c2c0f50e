package lifecycle

import (
	"github.com/osse101/RelicWatch_Go/internal/domain"
	"github.com/osse101/RelicWatch_Go/internal/logger"
)

// Session is one reward screen being read. Slots are ordered left to right
// and a resolved slot is never replaced.
type Session struct {
	ID        string
	SquadSize int
	Slots     []*domain.Item
	Attempt   int

	last []*domain.PricedItem
}

func newSession(squad int) *Session {
	return &Session{
		ID:        logger.GenerateSessionID(),
		SquadSize: squad,
		Slots:     make([]*domain.Item, squad),
	}
}

// Complete reports whether every slot is resolved
func (s *Session) Complete() bool {
	for _, slot := range s.Slots {
		if slot == nil {
			return false
		}
	}
	return true
}

// merge fills unresolved slots from found and returns how many were filled
func (s *Session) merge(found []*domain.Item) int {
	filled := 0
	for i, item := range found {
		if item != nil && s.Slots[i] == nil {
			s.Slots[i] = item
			filled++
		}
	}
	return filled
}
