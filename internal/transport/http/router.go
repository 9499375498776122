package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/NAIFEKHAN/FGS-BOPIN/internal/handlers"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/handlers/seller"
)

type Deps struct {
	DB              *gorm.DB
	JWTSecret       []byte
	UploadDir       string
	ProductHandler  *handlers.ProductHandler
	BannerHandler   *handlers.BannerHandler
	SlotHandler     *handlers.SlotHandler
	CartHandler     *handlers.CartHandler
	CheckoutHandler *handlers.CheckoutHandler
	OrderHandler    *handlers.OrderHandler
	SearchHandler   *handlers.SearchHandler

	SellerAuth     *seller.AuthHandler
	SellerProducts *seller.ProductHandler
	SellerBanners  *seller.BannerHandler
	SellerOrders   *seller.OrderHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.Static("/uploads", d.UploadDir)

	v1 := e.Group("/api/v1")

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)

	v1.GET("/banners", d.BannerHandler.GetBanners)
	v1.GET("/pickup-slots", d.SlotHandler.GetSlots)
	v1.GET("/search", d.SearchHandler.Search)

	cart := v1.Group("/cart")
	cart.GET("", d.CartHandler.GetCart)
	cart.GET("/count", d.CartHandler.CartCount)
	cart.POST("", d.CartHandler.AddToCart)
	cart.PUT("/:id", d.CartHandler.UpdateCart)
	cart.DELETE("/:id", d.CartHandler.RemoveFromCart)

	v1.POST("/checkout", d.CheckoutHandler.Checkout)

	orders := v1.Group("/orders")
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.GET("/:id/invoice", d.OrderHandler.DownloadInvoice)

	sl := v1.Group("/seller")
	sl.POST("/login", d.SellerAuth.Login)
	sl.POST("/logout", d.SellerAuth.Logout)

	back := sl.Group("", seller.RequireSeller(d.JWTSecret))
	back.GET("/dashboard", d.SellerOrders.Dashboard)

	back.GET("/products", d.SellerProducts.ListProducts)
	back.POST("/products", d.SellerProducts.CreateProduct)
	back.PUT("/products/:id", d.SellerProducts.UpdateProduct)
	back.DELETE("/products/:id", d.SellerProducts.DeleteProduct)
	back.POST("/products/:id/out-of-stock", d.SellerProducts.MarkOutOfStock)

	back.GET("/banners", d.SellerBanners.ListBanners)
	back.POST("/banners", d.SellerBanners.CreateBanner)
	back.PUT("/banners/:id", d.SellerBanners.UpdateBanner)
	back.DELETE("/banners/:id", d.SellerBanners.DeleteBanner)

	back.GET("/orders", d.SellerOrders.ListOrders)
	back.PUT("/orders/:id/status", d.SellerOrders.UpdateStatus)
	back.DELETE("/orders/:id", d.SellerOrders.DeleteOrder)
}
