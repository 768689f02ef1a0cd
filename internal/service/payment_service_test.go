package service

import (
	"context"
	"testing"

	"github.com/fsdevblog/lms-backend/internal/domain"
	"github.com/fsdevblog/lms-backend/internal/service/mocks"
	"github.com/fsdevblog/lms-backend/internal/transport/paygate"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	mockCtrl       *gomock.Controller
	mockGateway    *mocks.MockOrderGateway
	paymentService *PaymentService
}

func TestPaymentServiceSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}

func (s *PaymentServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockGateway = mocks.NewMockOrderGateway(s.mockCtrl)
	s.paymentService = NewPaymentService(s.mockGateway)

	// шлюз возвращает параметры как есть.
	s.mockGateway.EXPECT().NewReceipt().Return("receipt_1").AnyTimes()
	s.mockGateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p paygate.OrderParams) (*paygate.Order, error) {
			return &paygate.Order{
				ID:       "order_dummy_1",
				Amount:   p.Amount,
				Currency: p.Currency,
				Receipt:  p.Receipt,
				Status:   paygate.StatusCreated,
			}, nil
		}).AnyTimes()
}

func (s *PaymentServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *PaymentServiceTestSuite) TestCreateOrder() {
	cases := []struct {
		name       string
		amount     decimal.Decimal
		wantAmount domain.MinorUnits
		wantErr    error
	}{
		{name: "five rupees", amount: decimal.NewFromInt(5), wantAmount: 500},
		{name: "five hundred rupees", amount: decimal.NewFromInt(500), wantAmount: 50000},
		{name: "with paisa", amount: decimal.RequireFromString("99.99"), wantAmount: 9999},
		{name: "zero", amount: decimal.Zero, wantErr: domain.ErrInvalidAmount},
		{name: "fraction of paisa", amount: decimal.RequireFromString("1.001"), wantErr: domain.ErrInvalidAmount},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			order, err := s.paymentService.CreateOrder(s.T().Context(), t.amount)
			s.Require().ErrorIs(err, t.wantErr)
			if t.wantErr != nil {
				s.Nil(order)
				return
			}
			s.Equal(t.wantAmount, order.Amount)
			s.Equal(domain.CurrencyINR, order.Currency)
			s.Equal("receipt_1", order.Receipt)
		})
	}
}

func (s *PaymentServiceTestSuite) TestCreateFixedOrder() {
	order, err := s.paymentService.CreateFixedOrder(s.T().Context())
	s.Require().NoError(err)
	s.Equal(domain.MinorUnits(50000), order.Amount)
	s.Equal(domain.CurrencyINR, order.Currency)
}

// Реальный мок-шлюз: два одинаковых вызова дают разные id и чеки.
func (s *PaymentServiceTestSuite) TestCreateOrder_WithMockGateway() {
	svc := NewPaymentService(paygate.NewMockGateway())

	first, err := svc.CreateOrder(s.T().Context(), decimal.NewFromInt(5))
	s.Require().NoError(err)
	second, err := svc.CreateOrder(s.T().Context(), decimal.NewFromInt(5))
	s.Require().NoError(err)

	s.NotEqual(first.ID, second.ID)
	s.NotEqual(first.Receipt, second.Receipt)
	s.Equal(domain.MinorUnits(500), first.Amount)
}
