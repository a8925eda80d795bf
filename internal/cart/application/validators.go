package application

import (
	"github.com/wyfcoding/storefront/internal/dispatch"
)

// RegisterRules 注册购物车命令的校验规则
func RegisterRules(registry *dispatch.RuleRegistry) {
	registry.MustRegister(MsgAddToCart,
		dispatch.Rule{
			Field:   "SessionID",
			Check:   func(m dispatch.Message) bool { return m.(AddToCartCommand).SessionID != "" },
			Message: "Session ID is required",
		},
		dispatch.Rule{
			Field:   "ProductID",
			Check:   func(m dispatch.Message) bool { return m.(AddToCartCommand).ProductID > 0 },
			Message: "Product ID must be greater than zero",
		},
		dispatch.Rule{
			Field:   "Quantity",
			Check:   func(m dispatch.Message) bool { return m.(AddToCartCommand).Quantity >= 1 },
			Message: "Quantity must be at least 1",
		},
		dispatch.Rule{
			Field:   "Quantity",
			Check:   func(m dispatch.Message) bool { return m.(AddToCartCommand).Quantity <= 100 },
			Message: "Quantity cannot exceed 100",
		},
	)

	registry.MustRegister(MsgUpdateCartItem,
		dispatch.Rule{
			Field:   "SessionID",
			Check:   func(m dispatch.Message) bool { return m.(UpdateCartItemCommand).SessionID != "" },
			Message: "Session ID is required",
		},
		dispatch.Rule{
			Field:   "ItemID",
			Check:   func(m dispatch.Message) bool { return m.(UpdateCartItemCommand).ItemID > 0 },
			Message: "Item ID must be greater than zero",
		},
		dispatch.Rule{
			Field:   "Quantity",
			Check:   func(m dispatch.Message) bool { return m.(UpdateCartItemCommand).Quantity >= 1 },
			Message: "Quantity must be at least 1",
		},
		dispatch.Rule{
			Field:   "Quantity",
			Check:   func(m dispatch.Message) bool { return m.(UpdateCartItemCommand).Quantity <= 100 },
			Message: "Quantity cannot exceed 100",
		},
	)

	registry.MustRegister(MsgRemoveFromCart,
		dispatch.Rule{
			Field:   "SessionID",
			Check:   func(m dispatch.Message) bool { return m.(RemoveFromCartCommand).SessionID != "" },
			Message: "Session ID is required",
		},
		dispatch.Rule{
			Field:   "ItemID",
			Check:   func(m dispatch.Message) bool { return m.(RemoveFromCartCommand).ItemID > 0 },
			Message: "Item ID must be greater than zero",
		},
	)

	registry.MustRegister(MsgClearCart,
		dispatch.Rule{
			Field:   "SessionID",
			Check:   func(m dispatch.Message) bool { return m.(ClearCartCommand).SessionID != "" },
			Message: "Session ID is required",
		},
	)

	registry.MustRegister(MsgGetCart,
		dispatch.Rule{
			Field:   "SessionID",
			Check:   func(m dispatch.Message) bool { return m.(GetCartQuery).SessionID != "" },
			Message: "Session ID is required",
		},
	)
}
