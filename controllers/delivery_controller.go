package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/omarbeegsi189-star/online-food-order-system/entity"
	"github.com/omarbeegsi189-star/online-food-order-system/pkg/resp"
	"github.com/omarbeegsi189-star/online-food-order-system/services"
	"github.com/omarbeegsi189-star/online-food-order-system/utils"
)

// DeliveryController serves the delivery agent's screens.
type DeliveryController struct {
	Orders    *services.OrderService
	Lifecycle *services.OrderLifecycle
	Staff     *services.DeliveryUserService
}

func NewDeliveryController(orders *services.OrderService, lifecycle *services.OrderLifecycle, staff *services.DeliveryUserService) *DeliveryController {
	return &DeliveryController{Orders: orders, Lifecycle: lifecycle, Staff: staff}
}

// GET /delivery/orders?status=  (default: Out for Delivery)
func (dc *DeliveryController) ListOrders(c *gin.Context) {
	page, limit := paging(c)
	out, err := dc.Orders.ListForAgent(c.Request.Context(), utils.CurrentUserID(c), c.Query("status"), page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

type deliveryStatusReq struct {
	Status string `json:"status" binding:"required"`
}

// PUT /delivery/orders/:id/status
func (dc *DeliveryController) UpdateStatus(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req deliveryStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if st, _ := entity.ParseOrderStatus(req.Status); st != entity.StatusDelivered {
		resp.BadRequest(c, `only "Delivered" can be set by a delivery agent`)
		return
	}
	o, err := dc.Lifecycle.Transition(c.Request.Context(), actorOf(c), id, services.TransitionRequest{Status: req.Status})
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"order_id": o.ID, "status": o.Status})
}

// GET /delivery/history
func (dc *DeliveryController) History(c *gin.Context) {
	page, limit := paging(c)
	out, err := dc.Staff.History(c.Request.Context(), utils.CurrentUserID(c), page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}
