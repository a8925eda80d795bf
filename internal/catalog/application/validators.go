package application

import (
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/storefront/internal/dispatch"
)

// RegisterRules 注册商品命令的校验规则
func RegisterRules(registry *dispatch.RuleRegistry) {
	registry.MustRegister(MsgCreateProduct,
		dispatch.Rule{
			Field:   "Name",
			Check:   func(m dispatch.Message) bool { return m.(CreateProductCommand).Name != "" },
			Message: "Name is required",
		},
		dispatch.Rule{
			Field:   "Name",
			Check:   func(m dispatch.Message) bool { return len(m.(CreateProductCommand).Name) <= 200 },
			Message: "Name must not exceed 200 characters",
		},
		dispatch.Rule{
			Field:   "Price",
			Check:   func(m dispatch.Message) bool { return m.(CreateProductCommand).Price.GreaterThan(decimal.Zero) },
			Message: "Price must be greater than zero",
		},
		dispatch.Rule{
			Field:   "SKU",
			Check:   func(m dispatch.Message) bool { return m.(CreateProductCommand).SKU != "" },
			Message: "SKU is required",
		},
		dispatch.Rule{
			Field:   "SKU",
			Check:   func(m dispatch.Message) bool { return len(m.(CreateProductCommand).SKU) <= 50 },
			Message: "SKU must not exceed 50 characters",
		},
		dispatch.Rule{
			Field:   "Stock",
			Check:   func(m dispatch.Message) bool { return m.(CreateProductCommand).Stock >= 0 },
			Message: "Stock cannot be negative",
		},
		dispatch.Rule{
			Field:   "Category",
			Check:   func(m dispatch.Message) bool { return m.(CreateProductCommand).Category.Valid() },
			Message: "Category is invalid",
		},
	)

	registry.MustRegister(MsgUpdateProduct,
		dispatch.Rule{
			Field:   "ID",
			Check:   func(m dispatch.Message) bool { return m.(UpdateProductCommand).ID > 0 },
			Message: "Product ID must be greater than zero",
		},
		dispatch.Rule{
			Field:   "Name",
			When:    func(m dispatch.Message) bool { return m.(UpdateProductCommand).Name != nil },
			Check:   func(m dispatch.Message) bool { return *m.(UpdateProductCommand).Name != "" },
			Message: "Name cannot be empty",
		},
		dispatch.Rule{
			Field:   "Name",
			When:    func(m dispatch.Message) bool { return m.(UpdateProductCommand).Name != nil },
			Check:   func(m dispatch.Message) bool { return len(*m.(UpdateProductCommand).Name) <= 200 },
			Message: "Name must not exceed 200 characters",
		},
		dispatch.Rule{
			Field:   "Price",
			When:    func(m dispatch.Message) bool { return m.(UpdateProductCommand).Price != nil },
			Check:   func(m dispatch.Message) bool { return m.(UpdateProductCommand).Price.GreaterThan(decimal.Zero) },
			Message: "Price must be greater than zero",
		},
		dispatch.Rule{
			Field:   "Stock",
			When:    func(m dispatch.Message) bool { return m.(UpdateProductCommand).Stock != nil },
			Check:   func(m dispatch.Message) bool { return *m.(UpdateProductCommand).Stock >= 0 },
			Message: "Stock cannot be negative",
		},
		dispatch.Rule{
			Field:   "Category",
			When:    func(m dispatch.Message) bool { return m.(UpdateProductCommand).Category != nil },
			Check:   func(m dispatch.Message) bool { return m.(UpdateProductCommand).Category.Valid() },
			Message: "Category is invalid",
		},
	)

	registry.MustRegister(MsgDeleteProduct,
		dispatch.Rule{
			Field:   "ID",
			Check:   func(m dispatch.Message) bool { return m.(DeleteProductCommand).ID > 0 },
			Message: "Product ID must be greater than zero",
		},
	)

	registry.MustRegister(MsgGetProductByID,
		dispatch.Rule{
			Field:   "ID",
			Check:   func(m dispatch.Message) bool { return m.(GetProductByIDQuery).ID > 0 },
			Message: "Product ID must be greater than zero",
		},
	)
}
