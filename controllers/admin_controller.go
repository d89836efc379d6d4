package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/omarbeegsi189-star/online-food-order-system/pkg/resp"
	"github.com/omarbeegsi189-star/online-food-order-system/services"
)

type AdminController struct {
	Orders     *services.OrderService
	Lifecycle  *services.OrderLifecycle
	Assignment *services.AssignmentService
	Staff      *services.DeliveryUserService
	Admins     *services.AdminService
	Stats      *services.StatsService
}

func NewAdminController(
	orders *services.OrderService,
	lifecycle *services.OrderLifecycle,
	assignment *services.AssignmentService,
	staff *services.DeliveryUserService,
	admins *services.AdminService,
	stats *services.StatsService,
) *AdminController {
	return &AdminController{Orders: orders, Lifecycle: lifecycle, Assignment: assignment, Staff: staff, Admins: admins, Stats: stats}
}

// ===== Orders =====

// GET /admin/orders?status=&page=&limit=
func (ac *AdminController) ListOrders(c *gin.Context) {
	page, limit := paging(c)
	out, err := ac.Orders.ListAll(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

type updateStatusReq struct {
	Status         string `json:"status" binding:"required"`
	DeliveryUserID *uint  `json:"delivery_user_id"`
}

// PUT /admin/orders/:id/status
func (ac *AdminController) UpdateStatus(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	o, err := ac.Lifecycle.Transition(c.Request.Context(), actorOf(c), id, services.TransitionRequest{
		Status:         req.Status,
		DeliveryUserID: req.DeliveryUserID,
	})
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, o)
}

type assignReq struct {
	DeliveryUserID uint `json:"delivery_user_id" binding:"required"`
}

// PUT /admin/orders/:id/assign
func (ac *AdminController) Assign(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req assignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ac.Assignment.Assign(c.Request.Context(), id, req.DeliveryUserID); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"order_id": id, "delivery_user_id": req.DeliveryUserID})
}

// ===== Dashboard =====

// GET /admin/stats
func (ac *AdminController) Dashboard(c *gin.Context) {
	out, err := ac.Stats.Dashboard(c.Request.Context())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /admin/reports
func (ac *AdminController) Reports(c *gin.Context) {
	out, err := ac.Stats.Report(c.Request.Context())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// ===== Delivery staff =====

// GET /admin/delivery-users
func (ac *AdminController) DeliveryUsers(c *gin.Context) {
	out, err := ac.Staff.List(c.Request.Context())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

type createDeliveryUserReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Vehicle  string `json:"vehicle"`
	Area     string `json:"area"`
}

// POST /admin/delivery-users (super-admin)
func (ac *AdminController) CreateDeliveryUser(c *gin.Context) {
	var req createDeliveryUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	u, err := ac.Staff.Create(c.Request.Context(), actorOf(c), services.CreateDeliveryUserInput{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		Vehicle:  req.Vehicle,
		Area:     req.Area,
	})
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, u)
}

// DELETE /admin/delivery-users/:id
func (ac *AdminController) DeleteDeliveryUser(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := ac.Staff.Delete(c.Request.Context(), actorOf(c), id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}

// ===== Admin staff =====

// GET /admin/admins
func (ac *AdminController) ListAdmins(c *gin.Context) {
	out, err := ac.Admins.List(c.Request.Context())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

type createAdminReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

// POST /admin/admins (super-admin)
func (ac *AdminController) CreateAdmin(c *gin.Context) {
	var req createAdminReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	a, err := ac.Admins.Create(c.Request.Context(), actorOf(c), services.CreateAdminInput{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		Role:     req.Role,
	})
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, a)
}

// DELETE /admin/admins/:id
func (ac *AdminController) DeleteAdmin(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := ac.Admins.Delete(c.Request.Context(), actorOf(c), id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}
