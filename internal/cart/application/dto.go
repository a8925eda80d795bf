package application

import (
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/storefront/internal/cart/domain"
)

// CartItemDTO 购物车明细行视图
type CartItemDTO struct {
	ID          uint            `json:"id"`
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	ImageURL    string          `json:"image_url"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// CartDTO 购物车视图，金额与件数为派生值
type CartDTO struct {
	ID          uint            `json:"id"`
	SessionID   string          `json:"session_id"`
	Items       []CartItemDTO   `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalItems  int             `json:"total_items"`
}

func toCartDTO(cart *domain.Cart) *CartDTO {
	items := make([]CartItemDTO, 0, len(cart.Items))
	for i := range cart.Items {
		item := &cart.Items[i]
		items = append(items, CartItemDTO{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ImageURL:    item.ImageURL,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal(),
		})
	}
	return &CartDTO{
		ID:          cart.ID,
		SessionID:   cart.SessionID,
		Items:       items,
		TotalAmount: cart.TotalAmount(),
		TotalItems:  cart.TotalItems(),
	}
}
