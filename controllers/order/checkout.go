package orderControllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/cookiesandbiscadm-arch/yumyum/checkout"
	"github.com/cookiesandbiscadm-arch/yumyum/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// POST /checkout
// Runs the session's checkout sequence. A second trigger while an attempt
// is in flight gets a 409; on failure the cart is untouched so the same
// request can simply be retried.
func CheckoutHandler(checkouts *checkout.Manager, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var customer checkout.CustomerInfo
		if err := c.ShouldBindJSON(&customer); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name, phone and address are required"})
			return
		}

		orchestrator := checkouts.ForSession(c.GetString("session_id"))
		res, err := orchestrator.Submit(c.Request.Context(), customer)
		if err != nil {
			switch {
			case errors.Is(err, checkout.ErrSubmitInProgress):
				c.JSON(http.StatusConflict, gin.H{"error": "Your order is already being placed"})
			case errors.Is(err, checkout.ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
			case errors.Is(err, checkout.ErrMissingFields):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Name, phone and address are required"})
			default:
				c.JSON(http.StatusBadGateway, gin.H{"error": "Order failed: " + err.Error()})
			}
			return
		}

		// Notify any connected admin dashboards. Lookup failure only costs
		// the live notification, never the confirmation.
		var order models.Order
		if err := db.
			Preload("Customer").
			Preload("Items").
			Where("order_number = ?", res.OrderNumber).
			First(&order).Error; err != nil {
			log.Printf("⚠️ checkout: could not load order %s for broadcast: %v", res.OrderNumber, err)
		} else {
			broadcastNewOrder(order)
		}

		c.JSON(http.StatusOK, gin.H{
			"message":      "Order placed successfully",
			"order_number": res.OrderNumber,
			"customer":     res.Customer,
		})
	}
}
