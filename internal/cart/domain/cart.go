package domain

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cart 购物车聚合根，按会话标识唯一。金额与件数均为派生值，
// 不落库，始终由明细行即时计算。
type Cart struct {
	gorm.Model
	SessionID string     `gorm:"column:session_id;type:varchar(100);uniqueIndex;not null" json:"session_id"`
	Items     []CartItem `gorm:"foreignKey:CartID" json:"items"`
}

// TableName 指定表名
func (Cart) TableName() string { return "carts" }

// CartItem 购物车明细行。ProductName、ImageURL 与 UnitPrice 为加入时的商品快照，
// 商品后续改价不影响已在车中的行。
type CartItem struct {
	gorm.Model
	CartID      uint            `gorm:"column:cart_id;index;not null" json:"cart_id"`
	ProductID   uint            `gorm:"column:product_id;index;not null" json:"product_id"`
	ProductName string          `gorm:"column:product_name;type:varchar(200);not null" json:"product_name"`
	ImageURL    string          `gorm:"column:image_url;type:varchar(500)" json:"image_url"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:decimal(12,2);not null" json:"unit_price"`
	Quantity    int             `gorm:"column:quantity;not null" json:"quantity"`
}

// TableName 指定表名
func (CartItem) TableName() string { return "cart_items" }

// Subtotal 行小计
func (i *CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewCart 创建空购物车
func NewCart(sessionID string) *Cart {
	return &Cart{SessionID: sessionID}
}

// FindItem 按商品查找明细行，未找到返回 nil
func (c *Cart) FindItem(productID uint) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// FindItemByID 按明细行主键查找，未找到返回 nil
func (c *Cart) FindItemByID(itemID uint) *CartItem {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i]
		}
	}
	return nil
}

// AddItem 加入商品：同商品行累加数量，否则以当前商品快照新建行。
// 返回受影响的明细行。
func (c *Cart) AddItem(productID uint, productName, imageURL string, unitPrice decimal.Decimal, quantity int) *CartItem {
	if item := c.FindItem(productID); item != nil {
		item.Quantity += quantity
		return item
	}
	c.Items = append(c.Items, CartItem{
		CartID:      c.ID,
		ProductID:   productID,
		ProductName: productName,
		ImageURL:    imageURL,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
	})
	return &c.Items[len(c.Items)-1]
}

// RemoveItem 按明细行主键移除，返回被移除的行，未找到返回 nil
func (c *Cart) RemoveItem(itemID uint) *CartItem {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			removed := c.Items[i]
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return &removed
		}
	}
	return nil
}

// Clear 清空全部明细行
func (c *Cart) Clear() {
	c.Items = nil
}

// TotalAmount 车内总金额
func (c *Cart) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].Subtotal())
	}
	return total
}

// TotalItems 车内总件数
func (c *Cart) TotalItems() int {
	total := 0
	for i := range c.Items {
		total += c.Items[i].Quantity
	}
	return total
}
