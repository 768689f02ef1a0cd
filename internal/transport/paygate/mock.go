// Package paygate платежный шлюз. Реализован только мок: заказы синтезируются локально,
// без обращения к платежному провайдеру и без сохранения.
package paygate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsdevblog/lms-backend/internal/domain"
)

const (
	OrderIDPrefix = "order_dummy_"
	ReceiptPrefix = "receipt_"

	StatusCreated = "created"
)

type OrderParams struct {
	Amount   domain.MinorUnits
	Currency domain.Currency
	Receipt  string
}

type Order struct {
	ID       string
	Amount   domain.MinorUnits
	Currency domain.Currency
	Receipt  string
	Status   string
}

// MockGateway синтезирует заказы. Идентификаторы строятся из времени в миллисекундах и строго возрастают
// в пределах процесса, поэтому два вызова никогда не получат одинаковый id.
type MockGateway struct {
	now func() time.Time

	mu   sync.Mutex
	last int64
}

type Option func(*MockGateway)

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(g *MockGateway) {
		g.now = now
	}
}

func NewMockGateway(opts ...Option) *MockGateway {
	g := &MockGateway{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CreateOrder возвращает заказ в статусе StatusCreated. Сумма, валюта и чек передаются как есть.
// Единственная ошибка - отмененный контекст.
func (g *MockGateway) CreateOrder(ctx context.Context, p OrderParams) (*Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("mock gateway: create order: %w", err)
	}

	return &Order{
		ID:       fmt.Sprintf("%s%d", OrderIDPrefix, g.tick()),
		Amount:   p.Amount,
		Currency: p.Currency,
		Receipt:  p.Receipt,
		Status:   StatusCreated,
	}, nil
}

// NewReceipt возвращает номер чека на основе того же монотонного времени.
func (g *MockGateway) NewReceipt() string {
	return fmt.Sprintf("%s%d", ReceiptPrefix, g.tick())
}

// tick возвращает текущее время в миллисекундах, но не меньше чем предыдущее значение + 1.
func (g *MockGateway) tick() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	ts := g.now().UnixMilli()
	if ts <= g.last {
		ts = g.last + 1
	}
	g.last = ts
	return ts
}
