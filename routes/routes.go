package routes

import (
	"github.com/cookiesandbiscadm-arch/yumyum/cart"
	"github.com/cookiesandbiscadm-arch/yumyum/checkout"
	"github.com/cookiesandbiscadm-arch/yumyum/gateway"
	"github.com/cookiesandbiscadm-arch/yumyum/promo"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps carries everything the route groups need. Built once in main.
type Deps struct {
	DB        *gorm.DB
	Gateway   *gateway.Gateway
	Carts     *cart.Manager
	Promos    *promo.Manager
	Checkouts *checkout.Manager
}

// SetupRoutes is the single entry-point that wires up Auth, Storefront and
// Admin route groups.
func SetupRoutes(r *gin.Engine, d Deps) {
	// 1️⃣ Public Auth routes (no middleware)
	SetupAuthRoutes(r, d.DB)

	// 2️⃣ Storefront routes (guest JWT-protected)
	SetupStorefrontRoutes(r, d)

	// 3️⃣ Admin routes (API-Key-protected)
	SetupAdminRoutes(r, d.DB)
}
