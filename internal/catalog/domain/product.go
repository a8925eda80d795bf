package domain

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Category 商品分类，线上表示为整数编码，输入同时接受名称
type Category int

const (
	CategoryElectronics Category = 1
	CategoryClothing    Category = 2
	CategoryBooks       Category = 3
	CategoryHome        Category = 4
	CategorySports      Category = 5
	CategoryToys        Category = 6
	CategoryFood        Category = 7
	CategoryBeauty      Category = 8
	CategoryOther       Category = 99
)

var categoryNames = map[Category]string{
	CategoryElectronics: "Electronics",
	CategoryClothing:    "Clothing",
	CategoryBooks:       "Books",
	CategoryHome:        "Home",
	CategorySports:      "Sports",
	CategoryToys:        "Toys",
	CategoryFood:        "Food",
	CategoryBeauty:      "Beauty",
	CategoryOther:       "Other",
}

// String 返回分类名称
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Valid 判断是否为已知分类
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// ParseCategory 按名称解析分类
func ParseCategory(name string) (Category, bool) {
	for c, n := range categoryNames {
		if n == name {
			return c, true
		}
	}
	return 0, false
}

// MarshalJSON 输出整数编码
func (c Category) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(c))), nil
}

// UnmarshalJSON 接受整数编码或分类名称
func (c *Category) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		cat := Category(n)
		if !cat.Valid() {
			return fmt.Errorf("unknown category code %d", n)
		}
		*c = cat
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("category must be an integer code or a name")
	}
	cat, ok := ParseCategory(s)
	if !ok {
		return fmt.Errorf("unknown category %q", s)
	}
	*c = cat
	return nil
}

// Product 商品实体。DeletedAt 由 GORM 维护软删除语义，所有默认读取自动排除已删除行。
type Product struct {
	gorm.Model
	Name        string          `gorm:"column:name;type:varchar(200);not null" json:"name"`
	Description string          `gorm:"column:description;type:text" json:"description"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(12,2);not null" json:"price"`
	ImageURL    string          `gorm:"column:image_url;type:varchar(500)" json:"image_url"`
	Category    Category        `gorm:"column:category;index" json:"category"`
	Stock       int             `gorm:"column:stock;not null;default:0" json:"stock"`
	SKU         string          `gorm:"column:sku;type:varchar(50);index;not null" json:"sku"`
	CreatedBy   string          `gorm:"column:created_by;type:varchar(100);default:'system'" json:"created_by"`
	UpdatedBy   string          `gorm:"column:updated_by;type:varchar(100)" json:"updated_by"`
}

// TableName 指定表名
func (Product) TableName() string { return "products" }
