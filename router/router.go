package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/aryasaputra/food-order-app/controllers"
	"github.com/aryasaputra/food-order-app/middlewares"
)

func SetupRouter(db *gorm.DB, rdb *redis.Client) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Rate limiter global per IP
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(db)
	adminUserCtrl := controllers.NewAdminUserController(db)
	catalogCtrl := controllers.NewCatalogController(db, rdb)
	cartCtrl := controllers.NewCartController(db)
	orderCtrl := controllers.NewOrderController(db)
	paymentCtrl := controllers.NewPaymentController(db, rdb)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Katalog bisa dilihat tanpa login
	r.GET("/areas", catalogCtrl.GetAllAreas)
	r.GET("/restaurants", catalogCtrl.GetAllRestaurants)
	r.GET("/restaurants/:restaurant_id/menus", catalogCtrl.GetRestaurantMenus)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware(db))
	{
		auth.GET("/profile", userCtrl.GetProfile)

		// CART
		auth.GET("/carts", cartCtrl.ListCarts)
		auth.POST("/carts/items", cartCtrl.AddItem)
		auth.PATCH("/carts/items/:item_id", cartCtrl.UpdateItem)
		auth.DELETE("/carts/items/:item_id", cartCtrl.RemoveItem)
		auth.DELETE("/carts", cartCtrl.Clear)

		// CHECKOUT & ORDERS
		auth.POST("/checkout", orderCtrl.Checkout)
		auth.GET("/orders", orderCtrl.ListMyOrders)
		auth.GET("/orders/:order_id", orderCtrl.ShowOrder)
		auth.PATCH("/orders/:order_id/notes", orderCtrl.UpdateNotes)
		auth.PATCH("/orders/:order_id/items/:item_id/notes", orderCtrl.UpdateItemNotes)
		auth.DELETE("/orders/:order_id", orderCtrl.CancelOrder)

		// PAYMENTS
		auth.POST("/payments", paymentCtrl.ProcessPayment)
		auth.GET("/orders/:order_id/payment", paymentCtrl.ShowPayment)
		auth.GET("/orders/:order_id/payment-instructions", paymentCtrl.GetPaymentInstructions)
		auth.PUT("/orders/:order_id/payment/proof", paymentCtrl.AttachProof)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(db), middlewares.RequireStaff())
	{
		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.PATCH("/orders/:order_id/fulfillment", orderCtrl.UpdateFulfillment)
		admin.PATCH("/order-items/:item_id/check", orderCtrl.CheckItem)
		admin.GET("/payments", paymentCtrl.GetAllPayments)
		admin.GET("/payment-settings", paymentCtrl.GetPaymentSettings)
	}

	// ----------------------------------------------------------------
	//                      SUPERADMIN ROUTES
	// ----------------------------------------------------------------
	superadmin := r.Group("/superadmin")
	superadmin.Use(middlewares.AuthMiddleware(db), middlewares.RequireSuperadmin())
	{
		superadmin.GET("/users", adminUserCtrl.GetAllUsers)
		superadmin.PATCH("/users/:user_id", adminUserCtrl.UpdateUser)
		superadmin.DELETE("/users/:user_id", adminUserCtrl.DeleteUser)
		superadmin.PATCH("/payment-settings", paymentCtrl.UpdatePaymentSettings)
	}

	return r
}
