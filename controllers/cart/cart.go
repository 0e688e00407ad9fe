package cartControllers

import (
	"net/http"

	"github.com/cookiesandbiscadm-arch/yumyum/cart"
	"github.com/cookiesandbiscadm-arch/yumyum/gateway"
	"github.com/gin-gonic/gin"
)

type AddItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"` // optional, defaults to 1
}

type SetQuantityInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// GET /cart
func GetCart(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := carts.ForSession(c.GetString("session_id"))
		c.JSON(http.StatusOK, store.State())
	}
}

// POST /cart
// Looks the product up so display fields are copied from a live snapshot,
// then merges it into the session cart.
func AddCartItem(carts *cart.Manager, gw *gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product, err := gw.FetchProductByID(c.Request.Context(), input.ProductID)
		if err != nil {
			if gateway.KindOf(err) == gateway.KindNotFound {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
				return
			}
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to validate product"})
			return
		}

		store := carts.ForSession(c.GetString("session_id"))
		store.AddItem(*product, input.Quantity)
		c.JSON(http.StatusOK, store.State())
	}
}

// POST /cart/quantity
func SetCartQuantity(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SetQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		store := carts.ForSession(c.GetString("session_id"))
		store.UpdateQuantity(input.ProductID, input.Quantity)
		c.JSON(http.StatusOK, store.State())
	}
}

// DELETE /cart/:product_id
func DeleteCartItem(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("product_id")
		if productID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
			return
		}

		store := carts.ForSession(c.GetString("session_id"))
		store.RemoveItem(productID)
		c.JSON(http.StatusOK, store.State())
	}
}

// DELETE /cart
func ClearCart(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := carts.ForSession(c.GetString("session_id"))
		store.Clear()
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
