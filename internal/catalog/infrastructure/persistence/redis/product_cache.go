package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/pkg/cache"
)

const (
	productKeyPrefix = "storefront:product:"
	productTTL       = 10 * time.Minute
)

// ProductCache 商品读缓存
type ProductCache struct {
	cache *cache.RedisCache
}

// NewProductCache 创建商品缓存
func NewProductCache(c *cache.RedisCache) *ProductCache {
	return &ProductCache{cache: c}
}

func productKey(id uint) string {
	return fmt.Sprintf("%s%d", productKeyPrefix, id)
}

// Get 读取缓存，未命中返回 (nil, nil)
func (c *ProductCache) Get(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	found, err := c.cache.GetJSON(ctx, productKey(id), &product)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &product, nil
}

// Set 写入缓存
func (c *ProductCache) Set(ctx context.Context, product *domain.Product) error {
	return c.cache.SetJSON(ctx, productKey(product.ID), product, productTTL)
}

// Delete 失效缓存
func (c *ProductCache) Delete(ctx context.Context, id uint) error {
	return c.cache.Delete(ctx, productKey(id))
}
