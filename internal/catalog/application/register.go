package application

import (
	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/internal/dispatch"
)

// Deps 商品模块装配依赖
type Deps struct {
	Repo   domain.ProductRepository
	Events domain.EventPublisher
}

// Register 将商品模块的处理器与校验规则挂载到分发器
func Register(d *dispatch.Dispatcher, rules *dispatch.RuleRegistry, deps Deps) {
	d.MustRegister(MsgCreateProduct, NewCreateProductHandler(deps.Repo, deps.Events))
	d.MustRegister(MsgUpdateProduct, NewUpdateProductHandler(deps.Repo, deps.Events))
	d.MustRegister(MsgDeleteProduct, NewDeleteProductHandler(deps.Repo, deps.Events))
	d.MustRegister(MsgGetProductByID, NewGetProductByIDHandler(deps.Repo))
	d.MustRegister(MsgGetAllProducts, NewGetAllProductsHandler(deps.Repo))

	RegisterRules(rules)
}
