package api

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/fsdevblog/lms-backend/internal/domain"
	"github.com/fsdevblog/lms-backend/internal/logger"
	"github.com/fsdevblog/lms-backend/internal/transport/api/mocks"
	"github.com/fsdevblog/lms-backend/internal/transport/api/testutils"
	"github.com/fsdevblog/lms-backend/internal/transport/paygate"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PaymentHandlerTestSuite struct {
	suite.Suite
	mockPaymentService *mocks.MockPaymentServicer
	router             *gin.Engine
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	s.mockPaymentService = mocks.NewMockPaymentServicer(mockCtrl)

	router, err := New(RouterArgs{
		Logger:         logger.New(io.Discard),
		PaymentService: s.mockPaymentService,
		JWTSecretKey:   []byte("super secret key"),
	})
	s.Require().NoError(err)
	s.router = router
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

// decimalEq сравнивает суммы по значению, а не по представлению (5 и 5.00 равны).
type decimalEq string

func (d decimalEq) Matches(x any) bool {
	v, ok := x.(decimal.Decimal)
	return ok && v.Equal(decimal.RequireFromString(string(d)))
}

func (d decimalEq) String() string {
	return "is decimal equal to " + string(d)
}

func (s *PaymentHandlerTestSuite) TestCreateOrder() {
	s.mockPaymentService.EXPECT().CreateOrder(gomock.Any(), decimalEq("5")).Return(&paygate.Order{
		ID:       "order_dummy_1700000000000",
		Amount:   500,
		Currency: domain.CurrencyINR,
	}, nil)
	s.mockPaymentService.EXPECT().CreateOrder(gomock.Any(), decimalEq("500")).Return(&paygate.Order{
		ID:       "order_dummy_1700000000001",
		Amount:   50000,
		Currency: domain.CurrencyINR,
	}, nil)
	s.mockPaymentService.EXPECT().CreateOrder(gomock.Any(), decimalEq("-1")).
		Return(nil, domain.ErrInvalidAmount)
	s.mockPaymentService.EXPECT().CreateOrder(gomock.Any(), decimalEq("7")).
		Return(nil, errors.New("gateway down"))

	var cases = []struct {
		name       string
		body       string
		wantStatus int
		want       map[string]any
	}{
		{
			name:       "five major units",
			body:       `{"amount": 5}`,
			wantStatus: http.StatusOK,
			want: map[string]any{
				"success": true, "orderId": "order_dummy_1700000000000", "amount": float64(500), "currency": "INR",
			},
		}, {
			name:       "amount as string",
			body:       `{"amount": "500"}`,
			wantStatus: http.StatusOK,
			want: map[string]any{
				"success": true, "orderId": "order_dummy_1700000000001", "amount": float64(50000), "currency": "INR",
			},
		}, {
			name:       "negative amount",
			body:       `{"amount": -1}`,
			wantStatus: http.StatusBadRequest,
			want:       map[string]any{"success": false, "message": "Invalid amount"},
		}, {
			name:       "missing amount",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			want:       map[string]any{"success": false, "message": "Invalid amount"},
		}, {
			name:       "non numeric amount",
			body:       `{"amount": "five"}`,
			wantStatus: http.StatusBadRequest,
			want:       map[string]any{"success": false, "message": "Invalid amount"},
		}, {
			name:       "gateway failure",
			body:       `{"amount": 7}`,
			wantStatus: http.StatusInternalServerError,
			want: map[string]any{
				"success": false, "message": "Failed to create order", "error": "gateway down",
			},
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			res, err := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + CreateOrderRoute,
				Body:   strings.NewReader(t.body),
			}, testutils.WithJSON())
			s.Require().NoError(err)

			s.Equal(t.wantStatus, res.StatusCode)
			s.Equal(t.want, readEnvelope(s.T(), res))
		})
	}
}

func (s *PaymentHandlerTestSuite) TestCreateFixedOrder() {
	s.Run("mocked order", func() {
		s.mockPaymentService.EXPECT().CreateFixedOrder(gomock.Any()).Return(&paygate.Order{
			ID:       "order_dummy_1700000000000",
			Amount:   50000,
			Currency: domain.CurrencyINR,
		}, nil)

		res, err := testutils.MakeRequest(testutils.RequestArgs{
			Router: s.router,
			Method: http.MethodPost,
			URL:    FixedOrderRoute,
			Body:   strings.NewReader(`{"amount": 1}`),
		})
		s.Require().NoError(err)

		s.Equal(http.StatusOK, res.StatusCode)
		s.Equal(map[string]any{
			"orderId":  "order_dummy_1700000000000",
			"amount":   float64(50000),
			"currency": "INR",
			"status":   FixedOrderStatus,
		}, readEnvelope(s.T(), res))
	})

	s.Run("gateway failure", func() {
		s.mockPaymentService.EXPECT().CreateFixedOrder(gomock.Any()).Return(nil, errors.New("gateway down"))

		res, err := testutils.MakeRequest(testutils.RequestArgs{
			Router: s.router,
			Method: http.MethodPost,
			URL:    FixedOrderRoute,
		})
		s.Require().NoError(err)
		defer res.Body.Close()

		s.Equal(http.StatusInternalServerError, res.StatusCode)
		body, readErr := io.ReadAll(res.Body)
		s.Require().NoError(readErr)
		s.Equal("Payment error", string(body))
	})
}
