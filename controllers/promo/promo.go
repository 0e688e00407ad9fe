package promoControllers

import (
	"errors"
	"net/http"

	"github.com/cookiesandbiscadm-arch/yumyum/cart"
	"github.com/cookiesandbiscadm-arch/yumyum/format"
	"github.com/cookiesandbiscadm-arch/yumyum/promo"
	"github.com/gin-gonic/gin"
)

type ApplyPromoInput struct {
	Code string `json:"code" binding:"required"`
}

// POST /promo/apply
// Validates against the live cart subtotal; rejection reasons render
// inline next to the promo input.
func ApplyPromo(promos *promo.Manager, carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ApplyPromoInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		sessionID := c.GetString("session_id")
		subtotal := carts.ForSession(sessionID).Subtotal()
		engine := promos.ForSession(sessionID)

		applied, err := engine.Apply(c.Request.Context(), input.Code, subtotal)
		if err != nil {
			var rejection *promo.RejectionError
			switch {
			case errors.As(err, &rejection):
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": rejection.Message})
			case errors.Is(err, promo.ErrEmptyCode):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a promo code"})
			default:
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not validate promo code, please try again"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"promo":    applied,
			"discount": format.INR(engine.Discount(subtotal)),
		})
	}
}

// DELETE /promo
func RemovePromo(promos *promo.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		promos.ForSession(c.GetString("session_id")).Remove()
		c.JSON(http.StatusOK, gin.H{"message": "Promo code removed"})
	}
}
