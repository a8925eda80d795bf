package application

import (
	"github.com/wyfcoding/storefront/internal/dispatch"
)

// Register 将购物车模块的处理器与校验规则挂载到分发器
func Register(d *dispatch.Dispatcher, rules *dispatch.RuleRegistry, svc *CartService) {
	d.MustRegister(MsgAddToCart, addToCartHandler{svc: svc})
	d.MustRegister(MsgUpdateCartItem, updateCartItemHandler{svc: svc})
	d.MustRegister(MsgRemoveFromCart, removeFromCartHandler{svc: svc})
	d.MustRegister(MsgClearCart, clearCartHandler{svc: svc})
	d.MustRegister(MsgGetCart, getCartHandler{svc: svc})

	RegisterRules(rules)
}
