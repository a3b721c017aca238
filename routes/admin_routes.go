package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kiran-703/ShopNest/controllers"
	"github.com/kiran-703/ShopNest/middleware"
)

// initAdminRoutes initializes all admin-related routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.POST("/login", controllers.AdminLogin)

	protected := admin.Group("")
	protected.Use(middleware.AdminAuthMiddleware())
	{
		// Product management
		protected.POST("/products", controllers.AdminCreateProduct)
		protected.PUT("/products/:id", controllers.AdminUpdateProduct)
		protected.POST("/products/:id/flash-sale", controllers.AdminSetFlashSale)
		protected.DELETE("/products/:id/flash-sale", controllers.AdminClearFlashSale)

		// Category management
		protected.POST("/categories", controllers.AdminCreateCategory)
		protected.PUT("/categories/:id", controllers.AdminUpdateCategory)

		// Category offers
		protected.GET("/offers", controllers.AdminListOffers)
		protected.POST("/offers", controllers.AdminCreateOffer)
		protected.PUT("/offers/:id", controllers.AdminUpdateOffer)

		// Vouchers
		protected.GET("/vouchers", controllers.AdminListVouchers)
		protected.POST("/vouchers", controllers.AdminCreateVoucher)
		protected.PUT("/vouchers/:id", controllers.AdminUpdateVoucher)

		// Orders
		protected.GET("/orders", controllers.AdminListOrders)
		protected.GET("/orders/:id", controllers.AdminGetOrderDetails)
		protected.PUT("/orders/:id/status", controllers.AdminUpdateOrderStatus)

		// Returns
		protected.GET("/returns", controllers.AdminListReturnRequests)
		protected.POST("/orders/:id/return/review", controllers.AdminReviewReturn)
		protected.POST("/orders/:id/return/finalize", controllers.AdminFinalizeReturn)

		// Sales reports
		protected.GET("/reports/sales", controllers.AdminSalesReport)
		protected.GET("/reports/sales/excel", controllers.AdminSalesReportExcel)

		// Referrals
		protected.GET("/referrals", controllers.AdminListReferrals)
	}
}
