package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/fsdevblog/lms-backend/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const FixedOrderStatus = "Success (Mocked)"

type PaymentHandler struct {
	paymentService PaymentServicer
}

func NewPaymentHandler(paymentService PaymentServicer) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

type CreateOrderParams struct {
	// Amount сумма в основных единицах валюты (рупиях).
	Amount *decimal.Decimal `binding:"required" json:"amount"`
}

// CreateOrder POST RouteGroup + CreateOrderRoute. Создает заказ на сумму из тела запроса.
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var params CreateOrderParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.Error(bindErr).SetType(gin.ErrorTypeBind)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid amount"})
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	order, err := h.paymentService.CreateOrder(ctx, *params.Amount)
	if err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypePrivate)
		if errors.Is(err, domain.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid amount"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to create order",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"orderId":  order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
	})
}

// CreateFixedOrder POST FixedOrderRoute. Создает заказ на фиксированную цену, тело запроса игнорируется.
func (h *PaymentHandler) CreateFixedOrder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	order, err := h.paymentService.CreateFixedOrder(ctx)
	if err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypePrivate)
		c.String(http.StatusInternalServerError, "Payment error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orderId":  order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
		"status":   FixedOrderStatus,
	})
}
