package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wyfcoding/storefront/internal/cart/domain"
	"github.com/wyfcoding/storefront/pkg/contextx"
)

// CartRepository 购物车仓储的 MySQL 实现
type CartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// session 优先取上下文中的事务句柄
func (r *CartRepository) session(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

// GetBySessionID 按会话标识读取购物车及全部明细行
func (r *CartRepository) GetBySessionID(ctx context.Context, sessionID string) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.session(ctx).Preload("Items").Where("session_id = ?", sessionID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// Save 插入购物车
func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	return r.session(ctx).Create(cart).Error
}

// Update 全量保存购物车及明细行
func (r *CartRepository) Update(ctx context.Context, cart *domain.Cart) error {
	return r.session(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(cart).Error
}

// RemoveItem 物理删除单条明细行
func (r *CartRepository) RemoveItem(ctx context.Context, itemID uint) error {
	return r.session(ctx).Unscoped().Delete(&domain.CartItem{}, itemID).Error
}

// ClearItems 物理删除购物车的全部明细行
func (r *CartRepository) ClearItems(ctx context.Context, cartID uint) error {
	return r.session(ctx).Unscoped().Where("cart_id = ?", cartID).Delete(&domain.CartItem{}).Error
}

// WithTx 在单个数据库事务内执行 fn，事务句柄通过上下文传递给仓储方法
func (r *CartRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := fn(contextx.WithTx(ctx, tx)); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}
