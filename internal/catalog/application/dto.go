package application

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/storefront/internal/catalog/domain"
)

// ProductDTO 商品视图
type ProductDTO struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Category    domain.Category `json:"category"`
	Stock       int             `json:"stock"`
	SKU         string          `json:"sku"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListDTO 商品列表视图
type ProductListDTO struct {
	Items []ProductDTO `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Size  int          `json:"size"`
}

func toProductDTO(p *domain.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		Stock:       p.Stock,
		SKU:         p.SKU,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
