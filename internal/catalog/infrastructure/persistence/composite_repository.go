package persistence

import (
	"context"

	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/internal/catalog/infrastructure/persistence/mysql"
	"github.com/wyfcoding/storefront/internal/catalog/infrastructure/persistence/redis"
	"github.com/wyfcoding/storefront/pkg/logger"
)

// CompositeProductRepository 组合 MySQL 与 Redis，按键读取走缓存旁路，
// 写路径先落库再失效缓存。缓存故障降级为直读数据库。
type CompositeProductRepository struct {
	mysql *mysql.ProductRepository
	cache *redis.ProductCache
}

// NewCompositeProductRepository 创建组合仓储，cache 可为 nil 表示不启用缓存
func NewCompositeProductRepository(m *mysql.ProductRepository, c *redis.ProductCache) *CompositeProductRepository {
	return &CompositeProductRepository{mysql: m, cache: c}
}

// GetByID 优先读缓存，未命中回源并回填
func (r *CompositeProductRepository) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	if r.cache != nil {
		product, err := r.cache.Get(ctx, id)
		if err != nil {
			logger.Warn(ctx, "Product cache read failed", "product_id", id, "error", err)
		} else if product != nil {
			return product, nil
		}
	}

	product, err := r.mysql.GetByID(ctx, id)
	if err != nil || product == nil {
		return product, err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, product); err != nil {
			logger.Warn(ctx, "Product cache write failed", "product_id", id, "error", err)
		}
	}
	return product, nil
}

// GetBySKU SKU 查询不走缓存，直读数据库
func (r *CompositeProductRepository) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return r.mysql.GetBySKU(ctx, sku)
}

// GetAll 列表查询直读数据库
func (r *CompositeProductRepository) GetAll(ctx context.Context, category domain.Category, offset, limit int) ([]*domain.Product, int64, error) {
	return r.mysql.GetAll(ctx, category, offset, limit)
}

// Save 插入商品
func (r *CompositeProductRepository) Save(ctx context.Context, product *domain.Product) error {
	return r.mysql.Save(ctx, product)
}

// Update 落库后失效缓存
func (r *CompositeProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if err := r.mysql.Update(ctx, product); err != nil {
		return err
	}
	r.invalidate(ctx, product.ID)
	return nil
}

// SoftDelete 落库后失效缓存
func (r *CompositeProductRepository) SoftDelete(ctx context.Context, product *domain.Product) error {
	if err := r.mysql.SoftDelete(ctx, product); err != nil {
		return err
	}
	r.invalidate(ctx, product.ID)
	return nil
}

func (r *CompositeProductRepository) invalidate(ctx context.Context, id uint) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, id); err != nil {
		logger.Warn(ctx, "Product cache invalidation failed", "product_id", id, "error", err)
	}
}
