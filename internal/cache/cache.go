package cache

import (
	"context"
	"encoding/json"
	"time"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
)

const (
	ProductListCacheKey = "products:all"
	ProductCacheTTL     = 10 * time.Minute
)

// GetProductList récupère la liste complète des produits depuis Redis.
// Retourne (nil, false) en cas de cache miss.
func GetProductList(ctx context.Context) ([]models.Product, bool) {
	data, err := database.Redis.Get(ctx, ProductListCacheKey).Result()
	if err != nil || data == "" {
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(data), &products); err != nil {
		return nil, false
	}
	return products, true
}

// SetProductList met la liste complète des produits en cache
func SetProductList(ctx context.Context, products []models.Product) {
	if data, err := json.Marshal(products); err == nil {
		database.Redis.Set(ctx, ProductListCacheKey, data, ProductCacheTTL)
	}
}

// InvalidateProducts invalide le cache catalogue après une écriture admin
func InvalidateProducts(ctx context.Context) {
	database.Redis.Del(ctx, ProductListCacheKey)
}
