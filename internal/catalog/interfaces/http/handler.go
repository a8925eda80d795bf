// Package http 提供商品模块的 HTTP 接口
package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/wyfcoding/storefront/internal/apperr"
	"github.com/wyfcoding/storefront/internal/catalog/application"
	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/internal/dispatch"
	"github.com/wyfcoding/storefront/pkg/response"
)

// ProductHandler 商品 HTTP 处理器
type ProductHandler struct {
	dispatcher *dispatch.Dispatcher
}

// NewProductHandler 创建商品 HTTP 处理器
func NewProductHandler(d *dispatch.Dispatcher) *ProductHandler {
	return &ProductHandler{dispatcher: d}
}

// RegisterRoutes 注册商品路由
func (h *ProductHandler) RegisterRoutes(r *gin.Engine) {
	products := r.Group("/api/products")
	{
		products.POST("", h.CreateProduct)
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
}

type createProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Category    domain.Category `json:"category"`
	Stock       int             `json:"stock"`
	SKU         string          `json:"sku"`
}

// CreateProduct POST /api/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "Invalid request body", []string{err.Error()})
		return
	}

	cmd := application.CreateProductCommand{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Stock:       req.Stock,
		SKU:         req.SKU,
		Actor:       actorFrom(c),
	}

	dto, err := dispatch.Send[application.ProductDTO](c.Request.Context(), h.dispatcher, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, dto)
}

type updateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"image_url"`
	Category    *domain.Category `json:"category"`
	Stock       *int             `json:"stock"`
}

// UpdateProduct PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "Invalid request body", []string{err.Error()})
		return
	}

	cmd := application.UpdateProductCommand{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Stock:       req.Stock,
		Actor:       actorFrom(c),
	}

	dto, err := dispatch.Send[application.ProductDTO](c.Request.Context(), h.dispatcher, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, dto)
}

// DeleteProduct DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	cmd := application.DeleteProductCommand{ID: id, Actor: actorFrom(c)}
	if _, err := h.dispatcher.Dispatch(c.Request.Context(), cmd); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetProduct GET /api/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	dto, err := dispatch.Send[application.ProductDTO](c.Request.Context(), h.dispatcher, application.GetProductByIDQuery{ID: id})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, dto)
}

// ListProducts GET /api/products?category=&page=&size=
func (h *ProductHandler) ListProducts(c *gin.Context) {
	query := application.GetAllProductsQuery{
		Page: intQuery(c, "page", 1),
		Size: intQuery(c, "size", 20),
	}

	if raw := c.Query("category"); raw != "" {
		category, ok := parseCategoryParam(raw)
		if !ok {
			response.ErrorWithStatus(c, http.StatusBadRequest, "Invalid category", []string{"unknown category " + raw})
			return
		}
		query.Category = category
	}

	list, err := dispatch.Send[application.ProductListDTO](c.Request.Context(), h.dispatcher, query)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, list)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.ErrorWithStatus(c, http.StatusBadRequest, "Invalid product ID", nil)
		return 0, false
	}
	return uint(id), true
}

func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// parseCategoryParam 接受整数编码或分类名称
func parseCategoryParam(raw string) (domain.Category, bool) {
	if n, err := strconv.Atoi(raw); err == nil {
		category := domain.Category(n)
		return category, category.Valid()
	}
	return domain.ParseCategory(raw)
}

func actorFrom(c *gin.Context) string {
	return c.GetHeader("X-User")
}

// writeError 按错误分类映射 HTTP 状态码
func writeError(c *gin.Context, err error) {
	switch {
	case apperr.IsValidation(err):
		response.ErrorWithStatus(c, http.StatusBadRequest, "Validation failed", apperr.FailureMessages(err))
	case apperr.IsNotFound(err):
		response.ErrorWithStatus(c, http.StatusNotFound, err.Error(), nil)
	case apperr.IsConflict(err):
		response.ErrorWithStatus(c, http.StatusConflict, "Conflict detected", nil)
	default:
		response.ErrorWithStatus(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
