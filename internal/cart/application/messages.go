package application

// 消息名称常量，注册与分发共用
const (
	MsgAddToCart      = "cart.item.add"
	MsgUpdateCartItem = "cart.item.update"
	MsgRemoveFromCart = "cart.item.remove"
	MsgClearCart      = "cart.clear"
	MsgGetCart        = "cart.get"
)

// AddToCartCommand 加入购物车命令
type AddToCartCommand struct {
	SessionID string
	ProductID uint
	Quantity  int
}

// MessageName 实现 dispatch.Message
func (AddToCartCommand) MessageName() string { return MsgAddToCart }

// UpdateCartItemCommand 修改明细行数量命令
type UpdateCartItemCommand struct {
	SessionID string
	ItemID    uint
	Quantity  int
}

// MessageName 实现 dispatch.Message
func (UpdateCartItemCommand) MessageName() string { return MsgUpdateCartItem }

// RemoveFromCartCommand 移除明细行命令
type RemoveFromCartCommand struct {
	SessionID string
	ItemID    uint
}

// MessageName 实现 dispatch.Message
func (RemoveFromCartCommand) MessageName() string { return MsgRemoveFromCart }

// ClearCartCommand 清空购物车命令
type ClearCartCommand struct {
	SessionID string
}

// MessageName 实现 dispatch.Message
func (ClearCartCommand) MessageName() string { return MsgClearCart }

// GetCartQuery 查询购物车，购物车不存在时返回 nil 视图而非错误
type GetCartQuery struct {
	SessionID string
}

// MessageName 实现 dispatch.Message
func (GetCartQuery) MessageName() string { return MsgGetCart }
