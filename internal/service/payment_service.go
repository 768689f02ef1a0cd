package service

import (
	"context"
	"fmt"

	"github.com/fsdevblog/lms-backend/internal/domain"
	"github.com/fsdevblog/lms-backend/internal/transport/paygate"
	"github.com/shopspring/decimal"
)

// FixedOrderPrice цена единственного продукта (подписки) в основных единицах валюты.
var FixedOrderPrice = decimal.NewFromInt(500) //nolint:gochecknoglobals,mnd

// PaymentService создает платежные заказы. Все суммы приходят в основных единицах и переводятся в
// минимальные через domain.ToMinorUnits. В шлюз уходят только минимальные единицы.
type PaymentService struct {
	gateway OrderGateway
}

func NewPaymentService(gateway OrderGateway) *PaymentService {
	return &PaymentService{gateway: gateway}
}

// CreateOrder создает заказ на сумму amount в основных единицах. Для некорректной суммы
// возвращает domain.ErrInvalidAmount.
func (p *PaymentService) CreateOrder(ctx context.Context, amount decimal.Decimal) (*paygate.Order, error) {
	minor, convErr := domain.ToMinorUnits(amount)
	if convErr != nil {
		return nil, fmt.Errorf("create order: %w", convErr)
	}

	order, err := p.gateway.CreateOrder(ctx, paygate.OrderParams{
		Amount:   minor,
		Currency: domain.CurrencyINR,
		Receipt:  p.gateway.NewReceipt(),
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

// CreateFixedOrder создает заказ на FixedOrderPrice.
func (p *PaymentService) CreateFixedOrder(ctx context.Context) (*paygate.Order, error) {
	return p.CreateOrder(ctx, FixedOrderPrice)
}
