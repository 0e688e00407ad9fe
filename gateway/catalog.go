package gateway

import (
	"context"
	"encoding/json"

	"github.com/cookiesandbiscadm-arch/yumyum/models"
	"gorm.io/gorm"
)

const (
	cacheKeyProducts   = "catalog:products"
	cacheKeyCategories = "catalog:categories"
	cacheKeyProduct    = "catalog:product:" // + id
)

// activeOrdered scopes catalog listings to active rows in display order.
func activeOrdered(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true).Order("display_order ASC")
}

// FetchProducts returns the active catalog ordered for display.
func (g *Gateway) FetchProducts(ctx context.Context) ([]models.Product, error) {
	payload, err := g.cache.fetch(ctx, cacheKeyProducts, func(ctx context.Context) ([]byte, error) {
		var products []models.Product
		err := retryTransient(ctx, g.sleep, func(ctx context.Context) error {
			return classify("fetch products",
				activeOrdered(g.db.WithContext(ctx)).Find(&products).Error)
		})
		if err != nil {
			return nil, err
		}
		return json.Marshal(products)
	})
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := json.Unmarshal(payload, &products); err != nil {
		return nil, classify("decode cached products", err)
	}
	return products, nil
}

// FetchCategories returns active categories ordered for display.
func (g *Gateway) FetchCategories(ctx context.Context) ([]models.Category, error) {
	payload, err := g.cache.fetch(ctx, cacheKeyCategories, func(ctx context.Context) ([]byte, error) {
		var categories []models.Category
		err := retryTransient(ctx, g.sleep, func(ctx context.Context) error {
			return classify("fetch categories",
				activeOrdered(g.db.WithContext(ctx)).Find(&categories).Error)
		})
		if err != nil {
			return nil, err
		}
		return json.Marshal(categories)
	})
	if err != nil {
		return nil, err
	}
	var categories []models.Category
	if err := json.Unmarshal(payload, &categories); err != nil {
		return nil, classify("decode cached categories", err)
	}
	return categories, nil
}

// FetchProductByID returns one product with full detail. A missing id is a
// NotFound error and is never retried or cached.
func (g *Gateway) FetchProductByID(ctx context.Context, id string) (*models.Product, error) {
	payload, err := g.cache.fetch(ctx, cacheKeyProduct+id, func(ctx context.Context) ([]byte, error) {
		var product models.Product
		err := retryTransient(ctx, g.sleep, func(ctx context.Context) error {
			return classify("fetch product",
				g.db.WithContext(ctx).First(&product, "id = ?", id).Error)
		})
		if err != nil {
			return nil, err
		}
		return json.Marshal(product)
	})
	if err != nil {
		return nil, err
	}
	var product models.Product
	if err := json.Unmarshal(payload, &product); err != nil {
		return nil, classify("decode cached product", err)
	}
	return &product, nil
}
