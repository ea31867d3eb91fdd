package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/course-points/internal/domain"
	"github.com/fsdevblog/course-points/internal/service"
)

type WalletHandler struct {
	svs WalletServicer
}

func NewWalletHandler(svs WalletServicer) *WalletHandler {
	return &WalletHandler{
		svs: svs,
	}
}

type BalanceResponse struct {
	FullName string `json:"full_name"`
	Points   int64  `json:"points"`
}

// Balance GET RouteGroup + BalanceRoute.
func (h *WalletHandler) Balance(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, err := h.svs.Balance(reqCtx, currentUserID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileUnavailable) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, &BalanceResponse{
		FullName: user.FullName,
		Points:   user.Points,
	})
}

type TopUpParams struct {
	PointsAmount int64 `json:"points_amount" binding:"required,gt=0"`
}

type CheckoutResponse struct {
	OrderCode        string `json:"order_code"`
	AmountMinorUnits int64  `json:"amount_minor_units"`
	Currency         string `json:"currency"`
	KeyID            string `json:"key_id"`
}

// TopUp POST RouteGroup + TopUpRoute.
func (h *WalletHandler) TopUp(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params TopUpParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	// таймаут с запасом на ретраи похода к шлюзу.
	reqCtx, cancel := context.WithTimeout(c, GatewayTimeout)
	defer cancel()

	handle, err := h.svs.TopUp(reqCtx, currentUserID, params.PointsAmount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown points package"})
		case errors.Is(err, domain.ErrProfileUnavailable):
			c.AbortWithStatus(http.StatusNotFound)
		case errors.Is(err, domain.ErrGateway):
			_ = c.AbortWithError(http.StatusBadGateway, err).SetType(gin.ErrorTypePrivate)
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		}
		return
	}

	c.JSON(http.StatusCreated, &CheckoutResponse{
		OrderCode:        handle.OrderCode,
		AmountMinorUnits: handle.AmountMinorUnits,
		Currency:         handle.Currency,
		KeyID:            handle.KeyID,
	})
}

type ConfirmParams struct {
	OrderCode string `json:"order_code" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

type ConfirmResponse struct {
	Balance int64 `json:"balance"`
}

// Confirm POST RouteGroup + ConfirmTopUpRoute.
func (h *WalletHandler) Confirm(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params ConfirmParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	balance, err := h.svs.ConfirmTopUp(reqCtx, service.ConfirmTopUpArgs{
		UserID:    currentUserID,
		OrderCode: params.OrderCode,
		PaymentID: params.PaymentID,
		Signature: params.Signature,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidSignature):
			// неверная подпись - возможная попытка подделки, след обязан остаться в логах.
			_ = c.Error(err).SetType(gin.ErrorTypePrivate)
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid payment signature"})
		case errors.Is(err, domain.ErrOrderNotPending):
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "order already processed"})
		case errors.Is(err, domain.ErrRecordNotFound),
			errors.Is(err, domain.ErrProfileUnavailable):
			c.AbortWithStatus(http.StatusNotFound)
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		}
		return
	}

	c.JSON(http.StatusOK, &ConfirmResponse{Balance: balance})
}

type PaymentOrderResponse struct {
	OrderCode        string    `json:"order_code"`
	PointsAmount     int64     `json:"points_amount"`
	AmountMinorUnits int64     `json:"amount_minor_units"`
	Currency         string    `json:"currency"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// Orders GET RouteGroup + WalletOrdersRoute.
func (h *WalletHandler) Orders(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	orders, err := h.svs.Orders(reqCtx, currentUserID)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	var response = make([]PaymentOrderResponse, len(orders))
	for i, order := range orders {
		response[i] = PaymentOrderResponse{
			OrderCode:        order.OrderCode,
			PointsAmount:     order.PointsAmount,
			AmountMinorUnits: order.AmountMinorUnits,
			Currency:         order.Currency,
			Status:           string(order.Status),
			CreatedAt:        order.CreatedAt,
		}
	}
	c.JSON(http.StatusOK, response)
}
