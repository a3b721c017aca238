package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kiran-703/ShopNest/controllers"
	"github.com/kiran-703/ShopNest/middleware"
)

// initUserRoutes initializes all user-related routes
func initUserRoutes(router *gin.RouterGroup) {
	// Public routes (no authentication required)
	router.POST("/register", controllers.Register)
	router.POST("/login", controllers.Login)

	// Catalog routes
	router.GET("/products", controllers.ListProducts)
	router.GET("/products/:id", controllers.GetProductDetails)
	router.GET("/categories", controllers.ListCategories)

	// Protected routes (require authentication)
	protected := router.Group("/user")
	protected.Use(middleware.AuthMiddleware())
	{
		// Cart operations
		protected.POST("/cart/add", controllers.AddToCart)
		protected.GET("/cart", controllers.GetCart)
		protected.PUT("/cart/update", controllers.UpdateCartItem)
		protected.DELETE("/cart/clear", controllers.ClearCart)

		// Wishlist operations
		protected.POST("/wishlist/add", controllers.AddToWishlist)
		protected.GET("/wishlist", controllers.GetWishlist)
		protected.DELETE("/wishlist/remove", controllers.RemoveFromWishlist)

		// Addresses
		protected.GET("/addresses", controllers.ListAddresses)
		protected.POST("/addresses", controllers.AddAddress)
		protected.PUT("/addresses/:id", controllers.UpdateAddress)
		protected.DELETE("/addresses/:id", controllers.DeleteAddress)

		// Vouchers
		protected.GET("/vouchers", controllers.ListMyVouchers)
		protected.POST("/vouchers/preview", controllers.PreviewVoucher)

		// Checkout
		protected.GET("/checkout", controllers.GetCheckoutSummary)
		protected.POST("/checkout", controllers.PlaceOrder)

		// Payments
		protected.POST("/payment/initiate", controllers.InitiatePayment)
		protected.POST("/payment/verify", controllers.VerifyPayment)
		protected.GET("/payments", controllers.ListMyPayments)

		// Orders
		protected.GET("/orders", controllers.ListOrders)
		protected.GET("/orders/:id", controllers.GetOrderDetails)
		protected.POST("/orders/:id/cancel", controllers.CancelOrder)
		protected.POST("/orders/:id/return", controllers.RequestReturn)
		protected.POST("/orders/:id/return/ship", controllers.ConfirmReturnShipment)
		protected.GET("/orders/:id/invoice", controllers.DownloadInvoice)

		// Reviews
		protected.POST("/products/:id/review", controllers.SubmitReview)
		protected.DELETE("/products/:id/review", controllers.DeleteReview)

		// Notifications
		protected.GET("/notifications", controllers.ListNotifications)
		protected.PUT("/notifications/:id/read", controllers.MarkNotificationRead)
		protected.PUT("/notifications/read-all", controllers.MarkAllNotificationsRead)

		// Referrals
		protected.GET("/referrals", controllers.GetReferralDashboard)
	}
}
