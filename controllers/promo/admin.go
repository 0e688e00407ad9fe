package promoControllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/cookiesandbiscadm-arch/yumyum/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreatePromoInput struct {
	Code               string     `json:"code" binding:"required"`
	DiscountPercentage string     `json:"discount_percentage" binding:"required"`
	MinOrderValue      string     `json:"min_order_value"`
	ExpiresAt          *time.Time `json:"expires_at"`
	UsageLimit         int        `json:"usage_limit"`
}

// POST /admin/promos
func CreatePromoCode(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreatePromoInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		pct, err := decimal.NewFromString(input.DiscountPercentage)
		if err != nil || pct.LessThanOrEqual(decimal.Zero) || pct.GreaterThan(decimal.NewFromInt(100)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "discount_percentage must be between 0 and 100"})
			return
		}

		minOrder := decimal.Zero
		if input.MinOrderValue != "" {
			minOrder, err = decimal.NewFromString(input.MinOrderValue)
			if err != nil || minOrder.IsNegative() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "min_order_value must be a non-negative amount"})
				return
			}
		}

		promoCode := models.PromoCode{
			ID:                 uuid.NewString(),
			Code:               strings.ToUpper(strings.TrimSpace(input.Code)),
			DiscountPercentage: pct,
			MinOrderValue:      minOrder,
			ExpiresAt:          input.ExpiresAt,
			UsageLimit:         input.UsageLimit,
			IsActive:           true,
		}

		if err := db.Create(&promoCode).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create promo code"})
			return
		}

		c.JSON(http.StatusOK, promoCode)
	}
}

// GET /admin/promos
func GetAllPromoCodes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var codes []models.PromoCode
		if err := db.Order("created_at DESC").Find(&codes).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch promo codes"})
			return
		}
		c.JSON(http.StatusOK, codes)
	}
}
