package application

import (
	"context"
	"fmt"
	"time"

	"github.com/wyfcoding/storefront/internal/apperr"
	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/internal/dispatch"
	"github.com/wyfcoding/storefront/pkg/logger"
)

// CreateProductHandler 处理商品创建
type CreateProductHandler struct {
	repo   domain.ProductRepository
	events domain.EventPublisher
}

// NewCreateProductHandler 创建商品创建处理器
func NewCreateProductHandler(repo domain.ProductRepository, events domain.EventPublisher) *CreateProductHandler {
	return &CreateProductHandler{repo: repo, events: events}
}

// Handle 实现 dispatch.Handler
func (h *CreateProductHandler) Handle(ctx context.Context, msg dispatch.Message) (any, error) {
	cmd, ok := msg.(CreateProductCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected message %T", msg)
	}

	// SKU 在未删除商品间全局唯一
	existing, err := h.repo.GetBySKU(ctx, cmd.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.NewValidation([]string{"SKU already exists"})
	}

	product := &domain.Product{
		Name:        cmd.Name,
		Description: cmd.Description,
		Price:       cmd.Price,
		ImageURL:    cmd.ImageURL,
		Category:    cmd.Category,
		Stock:       cmd.Stock,
		SKU:         cmd.SKU,
		CreatedBy:   actorOrSystem(cmd.Actor),
	}

	if err := h.repo.Save(ctx, product); err != nil {
		return nil, err
	}

	publishProductEvent(ctx, h.events, "catalog.product.created", product.ID, domain.ProductCreatedEvent{
		ProductID: product.ID,
		Name:      product.Name,
		SKU:       product.SKU,
		Price:     product.Price.String(),
		Timestamp: time.Now(),
	})

	logger.Info(ctx, "Product created", "product_id", product.ID, "sku", product.SKU)
	return toProductDTO(product), nil
}

// UpdateProductHandler 处理商品部分更新，仅覆盖提供的字段
type UpdateProductHandler struct {
	repo   domain.ProductRepository
	events domain.EventPublisher
}

// NewUpdateProductHandler 创建商品更新处理器
func NewUpdateProductHandler(repo domain.ProductRepository, events domain.EventPublisher) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo, events: events}
}

// Handle 实现 dispatch.Handler
func (h *UpdateProductHandler) Handle(ctx context.Context, msg dispatch.Message) (any, error) {
	cmd, ok := msg.(UpdateProductCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected message %T", msg)
	}

	product, err := h.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		logger.Warn(ctx, "Product not found", "product_id", cmd.ID)
		return nil, apperr.NewNotFound("Product", cmd.ID)
	}

	if cmd.Name != nil {
		product.Name = *cmd.Name
	}
	if cmd.Description != nil {
		product.Description = *cmd.Description
	}
	if cmd.Price != nil {
		product.Price = *cmd.Price
	}
	if cmd.ImageURL != nil {
		product.ImageURL = *cmd.ImageURL
	}
	if cmd.Category != nil {
		product.Category = *cmd.Category
	}
	if cmd.Stock != nil {
		product.Stock = *cmd.Stock
	}
	product.UpdatedBy = actorOrSystem(cmd.Actor)

	if err := h.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	publishProductEvent(ctx, h.events, "catalog.product.updated", product.ID, domain.ProductUpdatedEvent{
		ProductID: product.ID,
		Timestamp: time.Now(),
	})

	logger.Info(ctx, "Product updated", "product_id", product.ID)
	return toProductDTO(product), nil
}

// DeleteProductHandler 处理商品软删除
type DeleteProductHandler struct {
	repo   domain.ProductRepository
	events domain.EventPublisher
}

// NewDeleteProductHandler 创建商品删除处理器
func NewDeleteProductHandler(repo domain.ProductRepository, events domain.EventPublisher) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo, events: events}
}

// Handle 实现 dispatch.Handler
func (h *DeleteProductHandler) Handle(ctx context.Context, msg dispatch.Message) (any, error) {
	cmd, ok := msg.(DeleteProductCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected message %T", msg)
	}

	product, err := h.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		logger.Warn(ctx, "Product not found", "product_id", cmd.ID)
		return nil, apperr.NewNotFound("Product", cmd.ID)
	}

	product.UpdatedBy = actorOrSystem(cmd.Actor)
	if err := h.repo.SoftDelete(ctx, product); err != nil {
		return nil, err
	}

	publishProductEvent(ctx, h.events, "catalog.product.deleted", product.ID, domain.ProductDeletedEvent{
		ProductID: product.ID,
		Timestamp: time.Now(),
	})

	logger.Info(ctx, "Product deleted", "product_id", product.ID)
	return true, nil
}

// GetProductByIDHandler 按 ID 查询商品
type GetProductByIDHandler struct {
	repo domain.ProductRepository
}

// NewGetProductByIDHandler 创建查询处理器
func NewGetProductByIDHandler(repo domain.ProductRepository) *GetProductByIDHandler {
	return &GetProductByIDHandler{repo: repo}
}

// Handle 实现 dispatch.Handler
func (h *GetProductByIDHandler) Handle(ctx context.Context, msg dispatch.Message) (any, error) {
	q, ok := msg.(GetProductByIDQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected message %T", msg)
	}

	product, err := h.repo.GetByID(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperr.NewNotFound("Product", q.ID)
	}
	return toProductDTO(product), nil
}

// GetAllProductsHandler 商品列表查询
type GetAllProductsHandler struct {
	repo domain.ProductRepository
}

// NewGetAllProductsHandler 创建列表查询处理器
func NewGetAllProductsHandler(repo domain.ProductRepository) *GetAllProductsHandler {
	return &GetAllProductsHandler{repo: repo}
}

// Handle 实现 dispatch.Handler
func (h *GetAllProductsHandler) Handle(ctx context.Context, msg dispatch.Message) (any, error) {
	q, ok := msg.(GetAllProductsQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected message %T", msg)
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.Size
	if size < 1 || size > 100 {
		size = 20
	}

	products, total, err := h.repo.GetAll(ctx, q.Category, (page-1)*size, size)
	if err != nil {
		return nil, err
	}

	items := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		items = append(items, toProductDTO(p))
	}
	return ProductListDTO{Items: items, Total: total, Page: page, Size: size}, nil
}

func actorOrSystem(actor string) string {
	if actor == "" {
		return "system"
	}
	return actor
}

func publishProductEvent(ctx context.Context, events domain.EventPublisher, topic string, productID uint, event any) {
	if events == nil {
		return
	}
	if err := events.Publish(ctx, topic, fmt.Sprintf("%d", productID), event); err != nil {
		// 事件发布失败不影响请求结果
		logger.Warn(ctx, "Failed to publish product event", "topic", topic, "product_id", productID, "error", err)
	}
}
