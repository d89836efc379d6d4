package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/omarbeegsi189-star/online-food-order-system/pkg/resp"
	"github.com/omarbeegsi189-star/online-food-order-system/services"
	"github.com/omarbeegsi189-star/online-food-order-system/utils"
)

// OrderController serves the customer's own orders.
type OrderController struct{ Svc *services.OrderService }

func NewOrderController(s *services.OrderService) *OrderController { return &OrderController{Svc: s} }

// POST /customer/orders (cash on delivery)
func (oc *OrderController) Place(c *gin.Context) {
	var req orderIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	in, ok := req.toNewOrder(c)
	if !ok {
		return
	}
	id, err := oc.Svc.PlaceOrder(c.Request.Context(), in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{"order_id": id})
}

// GET /customer/orders
func (oc *OrderController) ListMine(c *gin.Context) {
	page, limit := paging(c)
	out, err := oc.Svc.ListForCustomer(c.Request.Context(), utils.CurrentUserID(c), page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /customer/orders/:id/status
func (oc *OrderController) Status(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	st, err := oc.Svc.StatusForCustomer(c.Request.Context(), utils.CurrentUserID(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"order_id": id, "status": st})
}
