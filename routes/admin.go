package routes

import (
	orderControllers "github.com/cookiesandbiscadm-arch/yumyum/controllers/order"
	promoControllers "github.com/cookiesandbiscadm-arch/yumyum/controllers/promo"
	"github.com/cookiesandbiscadm-arch/yumyum/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-Key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.GET("/export-excel", orderControllers.ExportOrdersToExcel(db))
			orderAdmin.GET("/ws", orderControllers.OrderWebSocketHandler)
			orderAdmin.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
		}

		// ─────────── Promo Management ───────────
		promoAdmin := adminGroup.Group("/promos")
		{
			promoAdmin.POST("", promoControllers.CreatePromoCode(db))
			promoAdmin.GET("", promoControllers.GetAllPromoCodes(db))
		}
	}
}
