package paygate

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fsdevblog/lms-backend/internal/domain"
	"github.com/stretchr/testify/suite"
)

type MockGatewayTestSuite struct {
	suite.Suite
	frozen  time.Time
	gateway *MockGateway
}

func TestMockGatewaySuite(t *testing.T) {
	suite.Run(t, new(MockGatewayTestSuite))
}

func (s *MockGatewayTestSuite) SetupTest() {
	s.frozen = time.UnixMilli(1_700_000_000_000)
	// время не идет, уникальность обеспечивается только монотонным счетчиком.
	s.gateway = NewMockGateway(WithClock(func() time.Time { return s.frozen }))
}

func (s *MockGatewayTestSuite) TestCreateOrder() {
	params := OrderParams{Amount: 50000, Currency: domain.CurrencyINR, Receipt: "receipt_1"}

	order, err := s.gateway.CreateOrder(s.T().Context(), params)
	s.Require().NoError(err)

	s.Equal("order_dummy_1700000000000", order.ID)
	s.Equal(domain.MinorUnits(50000), order.Amount)
	s.Equal(domain.CurrencyINR, order.Currency)
	s.Equal("receipt_1", order.Receipt)
	s.Equal(StatusCreated, order.Status)
}

func (s *MockGatewayTestSuite) TestCreateOrder_SameInputsDifferentIDs() {
	params := OrderParams{Amount: 500, Currency: domain.CurrencyINR, Receipt: s.gateway.NewReceipt()}

	first, err := s.gateway.CreateOrder(s.T().Context(), params)
	s.Require().NoError(err)
	second, err := s.gateway.CreateOrder(s.T().Context(), params)
	s.Require().NoError(err)

	s.NotEqual(first.ID, second.ID)
	s.NotEqual(s.gateway.NewReceipt(), s.gateway.NewReceipt())
}

func (s *MockGatewayTestSuite) TestCreateOrder_Concurrent() {
	const calls = 200
	ids := make(chan string, calls)

	wg := new(sync.WaitGroup)
	wg.Add(calls)
	for range calls {
		go func() {
			defer wg.Done()
			order, err := s.gateway.CreateOrder(context.Background(), OrderParams{Amount: 1})
			s.NoError(err)
			ids <- order.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]struct{}, calls)
	for id := range ids {
		s.True(strings.HasPrefix(id, OrderIDPrefix))
		seen[id] = struct{}{}
	}
	s.Len(seen, calls)
}

func (s *MockGatewayTestSuite) TestCreateOrder_CanceledContext() {
	ctx, cancel := context.WithCancel(s.T().Context())
	cancel()

	order, err := s.gateway.CreateOrder(ctx, OrderParams{Amount: 1})
	s.Require().ErrorIs(err, context.Canceled)
	s.Nil(order)
}
