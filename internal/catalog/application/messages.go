package application

import (
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/storefront/internal/catalog/domain"
)

// 消息名称常量，注册与分发共用
const (
	MsgCreateProduct  = "catalog.product.create"
	MsgUpdateProduct  = "catalog.product.update"
	MsgDeleteProduct  = "catalog.product.delete"
	MsgGetProductByID = "catalog.product.get"
	MsgGetAllProducts = "catalog.product.list"
)

// CreateProductCommand 创建商品命令
type CreateProductCommand struct {
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Category    domain.Category
	Stock       int
	SKU         string
	Actor       string
}

// MessageName 实现 dispatch.Message
func (CreateProductCommand) MessageName() string { return MsgCreateProduct }

// UpdateProductCommand 部分更新商品命令，nil 字段保持原值
type UpdateProductCommand struct {
	ID          uint
	Name        *string
	Description *string
	Price       *decimal.Decimal
	ImageURL    *string
	Category    *domain.Category
	Stock       *int
	Actor       string
}

// MessageName 实现 dispatch.Message
func (UpdateProductCommand) MessageName() string { return MsgUpdateProduct }

// DeleteProductCommand 软删除商品命令
type DeleteProductCommand struct {
	ID    uint
	Actor string
}

// MessageName 实现 dispatch.Message
func (DeleteProductCommand) MessageName() string { return MsgDeleteProduct }

// GetProductByIDQuery 按 ID 查询商品
type GetProductByIDQuery struct {
	ID uint
}

// MessageName 实现 dispatch.Message
func (GetProductByIDQuery) MessageName() string { return MsgGetProductByID }

// GetAllProductsQuery 商品列表查询，Category 为 0 表示不过滤
type GetAllProductsQuery struct {
	Category domain.Category
	Page     int
	Size     int
}

// MessageName 实现 dispatch.Message
func (GetAllProductsQuery) MessageName() string { return MsgGetAllProducts }
