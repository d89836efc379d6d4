package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/omarbeegsi189-star/online-food-order-system/entity"
	"github.com/omarbeegsi189-star/online-food-order-system/pkg/resp"
	"github.com/omarbeegsi189-star/online-food-order-system/repository"
	"github.com/omarbeegsi189-star/online-food-order-system/services"
	"github.com/omarbeegsi189-star/online-food-order-system/utils"
)

// uintParam writes a 400 and returns false when the path value is not a positive id.
func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		resp.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(v), true
}

func paging(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	return page, limit
}

func actorOf(c *gin.Context) services.Actor {
	return services.Actor{Role: utils.CurrentRole(c), ID: utils.CurrentUserID(c)}
}

// ===== Order payload =====

type orderItemIn struct {
	MenuID   uint            `json:"menu_id" binding:"required"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type contactIn struct {
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type orderIn struct {
	CustomerID  uint            `json:"customer_id" binding:"required"`
	Items       []orderItemIn   `json:"items" binding:"required,min=1,dive"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Contact     *contactIn      `json:"contact"`
}

// toNewOrder rejects bodies that speak for another customer.
func (in orderIn) toNewOrder(c *gin.Context) (repository.NewOrder, bool) {
	if utils.CurrentRole(c) != entity.RoleCustomer || in.CustomerID != utils.CurrentUserID(c) {
		resp.Forbidden(c, "customer_id does not match the signed-in customer")
		return repository.NewOrder{}, false
	}
	out := repository.NewOrder{
		CustomerID:  in.CustomerID,
		TotalAmount: in.TotalAmount,
		Items:       make([]repository.NewOrderItem, 0, len(in.Items)),
	}
	for _, it := range in.Items {
		out.Items = append(out.Items, repository.NewOrderItem{MenuID: it.MenuID, Quantity: it.Quantity, UnitPrice: it.Price})
	}
	if in.Contact != nil {
		out.Contact = &repository.Contact{Phone: in.Contact.Phone, Address: in.Contact.Address}
	}
	return out, true
}
