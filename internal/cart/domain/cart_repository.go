package domain

import "context"

// CartRepository 购物车仓储契约。读取始终携带明细行；
// 未命中返回 (nil, nil)，由调用方翻译为未找到错误。
type CartRepository interface {
	GetBySessionID(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Update(ctx context.Context, cart *Cart) error
	// RemoveItem 物理删除单条明细行
	RemoveItem(ctx context.Context, itemID uint) error
	// ClearItems 物理删除购物车的全部明细行
	ClearItems(ctx context.Context, cartID uint) error
	// WithTx 在单个数据库事务内执行 fn，事务句柄随 ctx 传递
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
