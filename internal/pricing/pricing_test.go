package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RelicWatch_Go/internal/domain"
)

type MockOrderSource struct {
	mock.Mock
}

func (m *MockOrderSource) Orders(ctx context.Context, idName string) ([]domain.Order, error) {
	args := m.Called(ctx, idName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func order(platinum uint32, status domain.UserStatus) domain.Order {
	return domain.Order{
		Platinum:  platinum,
		OrderType: domain.OrderBuy,
		Platform:  domain.PlatformPC,
		Region:    "en",
		Visible:   true,
		User:      domain.OrderUser{Status: status},
	}
}

func offline(prices ...uint32) []domain.Order {
	out := make([]domain.Order, 0, len(prices))
	for _, p := range prices {
		out = append(out, order(p, domain.StatusOffline))
	}
	return out
}

func TestReduce(t *testing.T) {
	tests := []struct {
		name   string
		orders []domain.Order
		want   uint32
	}{
		{"empty", nil, 0},
		{"odd count takes middle", offline(30, 10, 20), 20},
		{"even count takes upper median", offline(40, 10, 30, 20), 30},
		{"single order", offline(7), 7},
		{
			name: "more than three reachable uses only reachable",
			orders: []domain.Order{
				order(100, domain.StatusOffline),
				order(10, domain.StatusInGame),
				order(20, domain.StatusOnline),
				order(30, domain.StatusInGame),
				order(40, domain.StatusOnline),
			},
			want: 30,
		},
		{
			name: "exactly three reachable uses all",
			orders: []domain.Order{
				order(100, domain.StatusOffline),
				order(200, domain.StatusOffline),
				order(10, domain.StatusInGame),
				order(20, domain.StatusOnline),
				order(30, domain.StatusInGame),
			},
			want: 30,
		},
		{
			name: "two of five reachable uses all",
			orders: []domain.Order{
				order(5, domain.StatusOffline),
				order(50, domain.StatusOffline),
				order(60, domain.StatusOffline),
				order(1, domain.StatusOnline),
				order(2, domain.StatusInGame),
			},
			want: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reduce(tt.orders))
		})
	}
}

func TestReduceIgnoresOtherMarkets(t *testing.T) {
	sell := order(999, domain.StatusInGame)
	sell.OrderType = domain.OrderSell
	xbox := order(999, domain.StatusInGame)
	xbox.Platform = domain.PlatformXbox
	foreign := order(999, domain.StatusInGame)
	foreign.Region = "ru"

	assert.Equal(t, uint32(0), Reduce([]domain.Order{sell, xbox, foreign}))
	assert.Equal(t, uint32(12), Reduce([]domain.Order{sell, order(12, domain.StatusOffline), foreign}))
}

func TestAggregatorPrice(t *testing.T) {
	item := domain.Item{ID: "1", IDName: "ash_prime_systems", Name: "Ash Prime Systems"}

	t.Run("reduces fetched orders", func(t *testing.T) {
		src := new(MockOrderSource)
		src.On("Orders", mock.Anything, "ash_prime_systems").Return(offline(10, 20, 30), nil)

		price, err := NewAggregator(src).Price(context.Background(), item)

		require.NoError(t, err)
		assert.Equal(t, uint32(20), price)
		src.AssertExpectations(t)
	})

	t.Run("fetch failure is returned", func(t *testing.T) {
		src := new(MockOrderSource)
		boom := errors.New("boom")
		src.On("Orders", mock.Anything, "ash_prime_systems").Return(nil, boom)

		_, err := NewAggregator(src).Price(context.Background(), item)

		assert.ErrorIs(t, err, boom)
	})

	t.Run("every call fetches again", func(t *testing.T) {
		src := new(MockOrderSource)
		src.On("Orders", mock.Anything, "ash_prime_systems").Return(offline(1), nil).Twice()

		agg := NewAggregator(src)
		_, _ = agg.Price(context.Background(), item)
		_, _ = agg.Price(context.Background(), item)

		src.AssertNumberOfCalls(t, "Orders", 2)
	})
}
