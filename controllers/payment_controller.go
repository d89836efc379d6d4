package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/omarbeegsi189-star/online-food-order-system/pkg/apperr"
	"github.com/omarbeegsi189-star/online-food-order-system/pkg/payments"
	"github.com/omarbeegsi189-star/online-food-order-system/pkg/resp"
	"github.com/omarbeegsi189-star/online-food-order-system/services"
	"github.com/omarbeegsi189-star/online-food-order-system/utils"
)

// PaymentController drives card checkout: open a session, then confirm it
// into an order once paid.
type PaymentController struct {
	Orders  *services.OrderService
	Gateway payments.Gateway
}

func NewPaymentController(orders *services.OrderService, gw payments.Gateway) *PaymentController {
	return &PaymentController{Orders: orders, Gateway: gw}
}

// GET /customer/stripe/publishable
func (pc *PaymentController) Publishable(c *gin.Context) {
	key := pc.Gateway.PublishableKey()
	if key == "" {
		resp.Error(c, apperr.New(apperr.KindGatewayUnavailable, "payments.Publishable", "card payments are not configured"))
		return
	}
	resp.OK(c, gin.H{"key": key})
}

type checkoutSessionReq struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// POST /customer/checkout/session
func (pc *PaymentController) CreateSession(c *gin.Context) {
	var req checkoutSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	sess, err := pc.Orders.CreateCheckoutSession(c.Request.Context(), utils.CurrentUserID(c), req.TotalAmount)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{"id": sess.ID, "url": sess.URL})
}

type confirmReq struct {
	SessionID string `json:"session_id" binding:"required"`
	orderIn
}

// POST /customer/checkout/confirm
func (pc *PaymentController) Confirm(c *gin.Context) {
	var req confirmReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	in, ok := req.toNewOrder(c)
	if !ok {
		return
	}
	id, err := pc.Orders.ConfirmCheckout(c.Request.Context(), services.ConfirmRequest{SessionID: req.SessionID, Order: in})
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{"order_id": id})
}
