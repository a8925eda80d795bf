// Package http 提供购物车模块的 HTTP 接口
package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/storefront/internal/apperr"
	"github.com/wyfcoding/storefront/internal/cart/application"
	"github.com/wyfcoding/storefront/internal/dispatch"
	"github.com/wyfcoding/storefront/pkg/response"
)

// CartHandler 购物车 HTTP 处理器
type CartHandler struct {
	dispatcher *dispatch.Dispatcher
}

// NewCartHandler 创建购物车 HTTP 处理器
func NewCartHandler(d *dispatch.Dispatcher) *CartHandler {
	return &CartHandler{dispatcher: d}
}

// RegisterRoutes 注册购物车路由
func (h *CartHandler) RegisterRoutes(r *gin.Engine) {
	carts := r.Group("/api/carts/:sessionId")
	{
		carts.GET("", h.GetCart)
		carts.POST("/items", h.AddToCart)
		carts.PUT("/items/:itemId", h.UpdateCartItem)
		carts.DELETE("/items/:itemId", h.RemoveFromCart)
		carts.DELETE("", h.ClearCart)
	}
}

type addToCartRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// AddToCart POST /api/carts/:sessionId/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "Invalid request body", []string{err.Error()})
		return
	}

	cmd := application.AddToCartCommand{
		SessionID: c.Param("sessionId"),
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}

	dto, err := dispatch.Send[*application.CartDTO](c.Request.Context(), h.dispatcher, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, dto)
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartItem PUT /api/carts/:sessionId/items/:itemId
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}

	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "Invalid request body", []string{err.Error()})
		return
	}

	cmd := application.UpdateCartItemCommand{
		SessionID: c.Param("sessionId"),
		ItemID:    itemID,
		Quantity:  req.Quantity,
	}

	dto, err := dispatch.Send[*application.CartDTO](c.Request.Context(), h.dispatcher, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, dto)
}

// RemoveFromCart DELETE /api/carts/:sessionId/items/:itemId
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}

	cmd := application.RemoveFromCartCommand{
		SessionID: c.Param("sessionId"),
		ItemID:    itemID,
	}

	dto, err := dispatch.Send[*application.CartDTO](c.Request.Context(), h.dispatcher, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, dto)
}

// ClearCart DELETE /api/carts/:sessionId
func (h *CartHandler) ClearCart(c *gin.Context) {
	cmd := application.ClearCartCommand{SessionID: c.Param("sessionId")}

	dto, err := dispatch.Send[*application.CartDTO](c.Request.Context(), h.dispatcher, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, dto)
}

// GetCart GET /api/carts/:sessionId
func (h *CartHandler) GetCart(c *gin.Context) {
	q := application.GetCartQuery{SessionID: c.Param("sessionId")}

	dto, err := dispatch.Send[*application.CartDTO](c.Request.Context(), h.dispatcher, q)
	if err != nil {
		writeError(c, err)
		return
	}
	if dto == nil {
		response.ErrorWithStatus(c, http.StatusNotFound, "Cart not found", nil)
		return
	}
	response.Success(c, dto)
}

func parseItemID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil || id == 0 {
		response.ErrorWithStatus(c, http.StatusBadRequest, "Invalid item ID", nil)
		return 0, false
	}
	return uint(id), true
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
