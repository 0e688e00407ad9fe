package catalogControllers

import (
	"net/http"

	"github.com/cookiesandbiscadm-arch/yumyum/gateway"
	"github.com/gin-gonic/gin"
)

// statusFor maps gateway error kinds to HTTP statuses.
func statusFor(err error) int {
	switch gateway.KindOf(err) {
	case gateway.KindNotFound:
		return http.StatusNotFound
	case gateway.KindValidation:
		return http.StatusBadRequest
	case gateway.KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// GET /catalog/products
func GetProducts(gw *gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := gw.FetchProducts(c.Request.Context())
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /catalog/products/:id
func GetProductByID(gw *gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product id is required"})
			return
		}
		product, err := gw.FetchProductByID(c.Request.Context(), id)
		if err != nil {
			if gateway.KindOf(err) == gateway.KindNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product does not exist"})
				return
			}
			c.JSON(statusFor(err), gin.H{"error": "Failed to fetch product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// GET /catalog/categories
func GetCategories(gw *gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := gw.FetchCategories(c.Request.Context())
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}
