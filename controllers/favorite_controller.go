package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/omarbeegsi189-star/online-food-order-system/pkg/resp"
	"github.com/omarbeegsi189-star/online-food-order-system/services"
	"github.com/omarbeegsi189-star/online-food-order-system/utils"
)

type FavoriteController struct{ Svc *services.FavoriteService }

func NewFavoriteController(s *services.FavoriteService) *FavoriteController {
	return &FavoriteController{Svc: s}
}

// GET /customer/favorites
func (fc *FavoriteController) List(c *gin.Context) {
	out, err := fc.Svc.List(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

type favoriteReq struct {
	MenuID uint `json:"menu_id" binding:"required"`
}

// POST /customer/favorites
func (fc *FavoriteController) Add(c *gin.Context) {
	var req favoriteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := fc.Svc.Add(c.Request.Context(), utils.CurrentUserID(c), req.MenuID); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"menu_id": req.MenuID, "favorite": true})
}

// DELETE /customer/favorites/:menuId
func (fc *FavoriteController) Remove(c *gin.Context) {
	menuID, ok := uintParam(c, "menuId")
	if !ok {
		return
	}
	if err := fc.Svc.Remove(c.Request.Context(), utils.CurrentUserID(c), menuID); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"menu_id": menuID, "favorite": false})
}

// POST /customer/favorites/:menuId/toggle
func (fc *FavoriteController) Toggle(c *gin.Context) {
	menuID, ok := uintParam(c, "menuId")
	if !ok {
		return
	}
	on, err := fc.Svc.Toggle(c.Request.Context(), utils.CurrentUserID(c), menuID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"menu_id": menuID, "favorite": on})
}
