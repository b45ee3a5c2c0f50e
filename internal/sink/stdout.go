package sink

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/osse101/RelicWatch_Go/internal/domain"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")).Padding(0, 1)
	bestStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff66"))
	cellStyle  = lipgloss.NewStyle().Padding(0, 1)
)

// Stdout renders each snapshot as a table
type Stdout struct {
	mu sync.Mutex
	w  io.Writer
}

// NewStdout creates a sink writing to w
func NewStdout(w io.Writer) *Stdout {
	return &Stdout{w: w}
}

func (s *Stdout) Name() string { return NameStdout }

// Accept writes the rendered snapshot
func (s *Stdout) Accept(_ context.Context, snap domain.RewardSnapshot) error {
	out := Render(snap)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintln(s.w, out)
	return err
}

// Render formats a snapshot as a title line and a slot/item/price table.
// The most valuable slot is highlighted.
func Render(snap domain.RewardSnapshot) string {
	state := "scanning"
	if snap.Final {
		state = "final"
	}
	title := titleStyle.Render(fmt.Sprintf("Relic rewards | attempt %d | %s", snap.Attempt, state))

	best := snap.Best()
	bestRow := -1
	rows := make([][]string, 0, len(snap.RelicRewards))
	for i, r := range snap.RelicRewards {
		if r != nil && r == best {
			bestRow = i
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), nameLabel(r), priceLabel(r)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Slot", "Item", "Price").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == bestRow {
				return bestStyle.Inherit(cellStyle)
			}
			return cellStyle
		})

	return lipgloss.JoinVertical(lipgloss.Left, title, t.Render())
}
