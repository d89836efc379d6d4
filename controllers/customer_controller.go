package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/omarbeegsi189-star/online-food-order-system/pkg/resp"
	"github.com/omarbeegsi189-star/online-food-order-system/repository"
	"github.com/omarbeegsi189-star/online-food-order-system/services"
	"github.com/omarbeegsi189-star/online-food-order-system/utils"
)

// CustomerController serves the signed-in customer's profile.
type CustomerController struct{ Svc *services.CustomerService }

func NewCustomerController(s *services.CustomerService) *CustomerController {
	return &CustomerController{Svc: s}
}

// GET /customer/profile
func (cc *CustomerController) Profile(c *gin.Context) {
	out, err := cc.Svc.Profile(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

type profileReq struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// PUT /customer/profile
func (cc *CustomerController) UpdateProfile(c *gin.Context) {
	var req profileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := cc.Svc.UpdateProfile(c.Request.Context(), utils.CurrentUserID(c), repository.Profile{
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}
