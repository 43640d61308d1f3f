package routes

import (
	"restaurant-api/handlers"
	"restaurant-api/middleware"
	"restaurant-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Catalog reads need no account
		public.GET("/categories", middleware.AuthOptional(), handlers.ListCategories)
		public.GET("/menu-items", middleware.AuthOptional(), handlers.ListMenuItems)
		public.GET("/menu-items/:id", middleware.AuthOptional(), handlers.GetMenuItem)

		// Table reservations
		public.GET("/bookings", handlers.ListBookings)
		public.POST("/bookings", handlers.CreateBooking)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)

		// Catalog writes (manager-gated inside the handlers)
		auth.POST("/categories", handlers.CreateCategory)
		auth.POST("/menu-items", handlers.CreateMenuItem)
		auth.PUT("/menu-items/:id", handlers.ReplaceMenuItem)
		auth.PATCH("/menu-items/:id", handlers.UpdateMenuItem)
		auth.DELETE("/menu-items/:id", handlers.DeleteMenuItem)

		// Cart
		auth.GET("/cart/menu-items", handlers.GetCart)
		auth.POST("/cart/menu-items", handlers.AddCartItem)
		auth.DELETE("/cart/menu-items", handlers.ClearCart)

		// Orders
		auth.GET("/orders", handlers.ListOrders)
		auth.POST("/orders", handlers.CreateOrder)
		auth.GET("/orders/:id", handlers.GetOrder)
		auth.PUT("/orders/:id", handlers.ReplaceOrder)
		auth.PATCH("/orders/:id", handlers.UpdateOrder)
		auth.DELETE("/orders/:id", handlers.DeleteOrder)

		// Role administration
		auth.GET("/groups/manager/users", handlers.ListGroupUsers(models.GroupManager))
		auth.POST("/groups/manager/users", handlers.AddGroupUser(models.GroupManager))
		auth.DELETE("/groups/manager/users/:id", handlers.RemoveGroupUser(models.GroupManager))
		auth.GET("/groups/delivery-crew/users", handlers.ListGroupUsers(models.GroupDeliveryCrew))
		auth.POST("/groups/delivery-crew/users", handlers.AddGroupUser(models.GroupDeliveryCrew))
		auth.DELETE("/groups/delivery-crew/users/:id", handlers.RemoveGroupUser(models.GroupDeliveryCrew))
	}
}
