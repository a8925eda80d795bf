package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/pkg/contextx"
)

// ProductRepository 商品仓储的 MySQL 实现
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// session 优先取上下文中的事务句柄
func (r *ProductRepository) session(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

// GetByID 按主键读取，软删除行不可见
func (r *ProductRepository) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	if err := r.session(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetBySKU 按 SKU 读取，软删除行不可见
func (r *ProductRepository) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	var product domain.Product
	if err := r.session(ctx).Where("sku = ?", sku).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetAll 分页列表，category 为 0 表示全部
func (r *ProductRepository) GetAll(ctx context.Context, category domain.Category, offset, limit int) ([]*domain.Product, int64, error) {
	query := r.session(ctx).Model(&domain.Product{})
	if category != 0 {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []*domain.Product
	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Save 插入商品
func (r *ProductRepository) Save(ctx context.Context, product *domain.Product) error {
	return r.session(ctx).Create(product).Error
}

// Update 全量保存商品
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	return r.session(ctx).Save(product).Error
}

// SoftDelete 打软删除标记，gorm 只更新 deleted_at
func (r *ProductRepository) SoftDelete(ctx context.Context, product *domain.Product) error {
	return r.session(ctx).Delete(product).Error
}
