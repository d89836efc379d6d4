package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/omarbeegsi189-star/online-food-order-system/configs"
	"github.com/omarbeegsi189-star/online-food-order-system/controllers"
	"github.com/omarbeegsi189-star/online-food-order-system/entity"
	"github.com/omarbeegsi189-star/online-food-order-system/middlewares"
	"github.com/omarbeegsi189-star/online-food-order-system/pkg/payments"
	"github.com/omarbeegsi189-star/online-food-order-system/repository"
	"github.com/omarbeegsi189-star/online-food-order-system/services"
)

func init() {
	// reject unknown JSON fields on every bound body
	binding.EnableDecoderDisallowUnknownFields = true
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, gw payments.Gateway, log *zap.Logger) {
	r.Use(middlewares.RequestLogger(log), middlewares.Recovery(log), middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	orderRepo := repository.NewOrderRepository(db)
	agentRepo := repository.NewDeliveryUserRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	ledgerRepo := repository.NewDeliveryHistoryRepository(db)
	favRepo := repository.NewFavoriteRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Services
	orderSvc := services.NewOrderService(orderRepo, gw, log)
	lifecycle := services.NewOrderLifecycle(db, orderRepo, agentRepo, ledgerRepo, log)
	assignSvc := services.NewAssignmentService(db, orderRepo, agentRepo, log)
	staffSvc := services.NewDeliveryUserService(agentRepo, ledgerRepo, log)
	adminSvc := services.NewAdminService(adminRepo, log)
	customerSvc := services.NewCustomerService(customerRepo)
	favSvc := services.NewFavoriteService(favRepo, menuRepo)
	statsSvc := services.NewStatsService(reportRepo)

	// Controllers
	orderCtrl := controllers.NewOrderController(orderSvc)
	customerCtrl := controllers.NewCustomerController(customerSvc)
	payCtrl := controllers.NewPaymentController(orderSvc, gw)
	favCtrl := controllers.NewFavoriteController(favSvc)
	adminCtrl := controllers.NewAdminController(orderSvc, lifecycle, assignSvc, staffSvc, adminSvc, statsSvc)
	deliveryCtrl := controllers.NewDeliveryController(orderSvc, lifecycle, staffSvc)

	auth := func(roles ...entity.Role) gin.HandlerFunc {
		return middlewares.AuthMiddleware(cfg.JWTSecret, roles...)
	}

	// Customer
	customer := r.Group("/customer", auth(entity.RoleCustomer))
	{
		customer.GET("/profile", customerCtrl.Profile)
		customer.PUT("/profile", customerCtrl.UpdateProfile)

		customer.GET("/stripe/publishable", payCtrl.Publishable)
		customer.POST("/checkout/session", payCtrl.CreateSession)
		customer.POST("/checkout/confirm", payCtrl.Confirm)

		customer.POST("/orders", orderCtrl.Place)
		customer.GET("/orders", orderCtrl.ListMine)
		customer.GET("/orders/:id/status", orderCtrl.Status)

		customer.GET("/favorites", favCtrl.List)
		customer.POST("/favorites", favCtrl.Add)
		customer.DELETE("/favorites/:menuId", favCtrl.Remove)
		customer.POST("/favorites/:menuId/toggle", favCtrl.Toggle)
	}

	// Admin (admin, super-admin)
	admin := r.Group("/admin", auth(entity.RoleAdmin, entity.RoleSuperAdmin))
	{
		admin.GET("/orders", adminCtrl.ListOrders)
		admin.PUT("/orders/:id/status", adminCtrl.UpdateStatus)
		admin.PUT("/orders/:id/assign", adminCtrl.Assign)

		admin.GET("/stats", adminCtrl.Dashboard)
		admin.GET("/reports", adminCtrl.Reports)

		admin.GET("/delivery-users", adminCtrl.DeliveryUsers)
		admin.POST("/delivery-users", auth(entity.RoleSuperAdmin), adminCtrl.CreateDeliveryUser)
		admin.DELETE("/delivery-users/:id", adminCtrl.DeleteDeliveryUser)

		admin.GET("/admins", adminCtrl.ListAdmins)
		admin.POST("/admins", auth(entity.RoleSuperAdmin), adminCtrl.CreateAdmin)
		admin.DELETE("/admins/:id", adminCtrl.DeleteAdmin)
	}

	// Delivery agent
	delivery := r.Group("/delivery", auth(entity.RoleDelivery))
	{
		delivery.GET("/orders", deliveryCtrl.ListOrders)
		delivery.PUT("/orders/:id/status", deliveryCtrl.UpdateStatus)
		delivery.GET("/history", deliveryCtrl.History)
	}
}
