package domain

import "context"

// ProductRepository 商品仓储契约。所有读取默认排除软删除行；
// 未命中返回 (nil, nil)，由调用方翻译为未找到错误。
type ProductRepository interface {
	GetByID(ctx context.Context, id uint) (*Product, error)
	GetBySKU(ctx context.Context, sku string) (*Product, error)
	GetAll(ctx context.Context, category Category, offset, limit int) ([]*Product, int64, error)
	Save(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	// SoftDelete 打软删除标记，行不做物理删除
	SoftDelete(ctx context.Context, product *Product) error
}
