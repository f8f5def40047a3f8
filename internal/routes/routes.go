package routes

import (
	"net/http"

	"velora_back_end/internal/handlers/admin"
	"velora_back_end/internal/handlers/payement"
	"velora_back_end/internal/handlers/product"
	"velora_back_end/internal/handlers/user"
	"velora_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ================== AUTH ==================
	auth := api.Group("/auth")
	{
		auth.POST("/register", middleware.RegisterRateLimit(), user.Register)
		auth.POST("/login", middleware.LoginRateLimit(), user.Login)
		auth.GET("/profile", middleware.AuthRequired(), user.GetProfile)
		auth.PUT("/profile", middleware.AuthRequired(), user.UpdateProfile)
		auth.GET("/:provider", user.BeginAuth)
		auth.GET("/:provider/callback", user.CallbackAuth)
	}

	// ================== PRODUITS (public) ==================
	products := api.Group("/products")
	{
		products.GET("", product.GetAllProducts)
		products.GET("/search", middleware.SearchRateLimit(), product.SearchProducts)
		products.GET("/:id", product.GetProductByID)
	}

	// ================== PANIER ==================
	cart := api.Group("/cart", middleware.AuthRequired())
	{
		cart.GET("", user.GetCart)
		cart.POST("/add", user.AddToCart)
		cart.POST("/remove", user.RemoveFromCart)
		cart.POST("/update", user.UpdateCartItem)
		cart.POST("/clear", user.ClearCart)
		cart.GET("/ws", user.CartWebSocket)
	}

	// ================== COMMANDES & PAIEMENT ==================
	orders := api.Group("/orders", middleware.AuthRequired())
	{
		orders.POST("", user.CreateOrder)
		orders.GET("", user.GetMyOrders)
		orders.POST("/payment-intent", payement.CreatePaymentIntent)
		orders.POST("/confirm-payment", payement.ConfirmPayment)
		// "/all" doit précéder "/:id"
		orders.GET("/all", middleware.RequireAdmin, admin.GetAllOrders)
		orders.GET("/:id", user.GetOrderByID)
		orders.PUT("/:id", middleware.RequireAdmin, admin.UpdateOrderStatus)
	}

	// ================== ADMINISTRATION ==================
	adminUsers := api.Group("/users", middleware.AuthRequired(), middleware.RequireAdmin)
	{
		adminUsers.GET("", admin.GetAllUsers)
		adminUsers.GET("/count", admin.GetUserCount)
		adminUsers.GET("/:id/orders", admin.GetOrdersByUser)
		adminUsers.PUT("/:id/role", admin.UpdateUserRole)
		adminUsers.DELETE("/:id", admin.DeleteUser)
	}

	adminProducts := api.Group("/admin/products", middleware.AuthRequired(), middleware.RequireAdmin)
	{
		adminProducts.POST("", product.CreateProduct)
		adminProducts.PUT("/:id", product.UpdateProduct)
		adminProducts.DELETE("/:id", product.DeleteProduct)
		adminProducts.POST("/upload", product.UploadProductImage)
	}
}
