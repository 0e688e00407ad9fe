package routes

import (
	cartControllers "github.com/cookiesandbiscadm-arch/yumyum/controllers/cart"
	catalogControllers "github.com/cookiesandbiscadm-arch/yumyum/controllers/catalog"
	orderControllers "github.com/cookiesandbiscadm-arch/yumyum/controllers/order"
	promoControllers "github.com/cookiesandbiscadm-arch/yumyum/controllers/promo"
	"github.com/cookiesandbiscadm-arch/yumyum/middleware"
	"github.com/gin-gonic/gin"
)

// SetupStorefrontRoutes registers everything a shopping session touches.
// Catalog reads are public; cart, promo and checkout need a guest token.
func SetupStorefrontRoutes(r *gin.Engine, d Deps) {
	// ─────────── Catalog (public, cached reads) ───────────
	catalogGroup := r.Group("/catalog")
	{
		catalogGroup.GET("/products", catalogControllers.GetProducts(d.Gateway))
		catalogGroup.GET("/products/:id", catalogControllers.GetProductByID(d.Gateway))
		catalogGroup.GET("/categories", catalogControllers.GetCategories(d.Gateway))
	}

	// ─────────── Cart ───────────
	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.ValidateGuestToken)
	{
		cartGroup.GET("", cartControllers.GetCart(d.Carts))
		cartGroup.POST("", cartControllers.AddCartItem(d.Carts, d.Gateway))
		cartGroup.POST("/quantity", cartControllers.SetCartQuantity(d.Carts))
		cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(d.Carts))
		cartGroup.DELETE("", cartControllers.ClearCart(d.Carts))
	}

	// ─────────── Promo ───────────
	promoGroup := r.Group("/promo")
	promoGroup.Use(middleware.ValidateGuestToken)
	{
		promoGroup.POST("/apply", promoControllers.ApplyPromo(d.Promos, d.Carts))
		promoGroup.DELETE("", promoControllers.RemovePromo(d.Promos))
	}

	// ─────────── Checkout ───────────
	checkoutGroup := r.Group("/checkout")
	checkoutGroup.Use(middleware.ValidateGuestToken)
	{
		checkoutGroup.POST("", orderControllers.CheckoutHandler(d.Checkouts, d.DB))
	}
}
