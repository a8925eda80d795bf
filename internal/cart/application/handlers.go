package application

import (
	"context"
	"fmt"
	"time"

	"github.com/wyfcoding/storefront/internal/apperr"
	cartdomain "github.com/wyfcoding/storefront/internal/cart/domain"
	catalogdomain "github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/internal/dispatch"
	"github.com/wyfcoding/storefront/pkg/logger"
	"github.com/wyfcoding/storefront/pkg/metrics"
)

// CartService 购物车应用服务。所有写操作先持有会话锁再开事务，
// 保证同一会话的变更严格串行，不同会话互不阻塞。
type CartService struct {
	carts    cartdomain.CartRepository
	products catalogdomain.ProductRepository
	events   cartdomain.EventPublisher
	locks    *sessionLock
	metrics  *metrics.Metrics
}

// NewCartService 创建购物车应用服务
func NewCartService(carts cartdomain.CartRepository, products catalogdomain.ProductRepository, events cartdomain.EventPublisher, m *metrics.Metrics) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		events:   events,
		locks:    newSessionLock(),
		metrics:  m,
	}
}

// AddToCart 加入购物车：商品必须存在且未删除；会话无购物车时先创建；
// 同商品行累加数量，单价在首次加入时快照。
func (s *CartService) AddToCart(ctx context.Context, cmd AddToCartCommand) (*CartDTO, error) {
	s.locks.Lock(cmd.SessionID)
	defer s.locks.Unlock(cmd.SessionID)

	var dto *CartDTO
	var created bool

	err := s.carts.WithTx(ctx, func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		product, err := s.products.GetByID(ctx, cmd.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return apperr.NewNotFound("Product", cmd.ProductID)
		}

		cart, err := s.carts.GetBySessionID(ctx, cmd.SessionID)
		if err != nil {
			return err
		}
		if cart == nil {
			cart = cartdomain.NewCart(cmd.SessionID)
			if err := s.carts.Save(ctx, cart); err != nil {
				return err
			}
			created = true
		}

		cart.AddItem(product.ID, product.Name, product.ImageURL, product.Price, cmd.Quantity)
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.carts.Update(ctx, cart); err != nil {
			return err
		}

		dto = toCartDTO(cart)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if created {
		s.countCartOp("create")
		if s.metrics != nil {
			s.metrics.CartsCreated.Inc()
		}
		s.publishCartEvent(ctx, "cart.created", cmd.SessionID, cartdomain.CartCreatedEvent{
			CartID:    dto.ID,
			SessionID: cmd.SessionID,
			Timestamp: time.Now(),
		})
	}
	s.countCartOp("add")
	s.publishCartEvent(ctx, "cart.item.added", cmd.SessionID, cartdomain.ItemAddedEvent{
		CartID:    dto.ID,
		SessionID: cmd.SessionID,
		ProductID: cmd.ProductID,
		Quantity:  cmd.Quantity,
		Timestamp: time.Now(),
	})

	logger.Info(ctx, "Item added to cart", "session_id", cmd.SessionID, "product_id", cmd.ProductID, "quantity", cmd.Quantity)
	return dto, nil
}

// UpdateCartItem 修改明细行数量。明细行不属于该会话的购物车时视为未找到。
func (s *CartService) UpdateCartItem(ctx context.Context, cmd UpdateCartItemCommand) (*CartDTO, error) {
	s.locks.Lock(cmd.SessionID)
	defer s.locks.Unlock(cmd.SessionID)

	var dto *CartDTO

	err := s.carts.WithTx(ctx, func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		cart, err := s.carts.GetBySessionID(ctx, cmd.SessionID)
		if err != nil {
			return err
		}
		if cart == nil {
			return apperr.NewNotFound("Cart", cmd.SessionID)
		}

		item := cart.FindItemByID(cmd.ItemID)
		if item == nil {
			return apperr.NewNotFound("CartItem", cmd.ItemID)
		}

		item.Quantity = cmd.Quantity
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.carts.Update(ctx, cart); err != nil {
			return err
		}

		dto = toCartDTO(cart)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.countCartOp("update")
	logger.Info(ctx, "Cart item updated", "session_id", cmd.SessionID, "item_id", cmd.ItemID, "quantity", cmd.Quantity)
	return dto, nil
}

// RemoveFromCart 移除明细行。明细行不属于该会话的购物车时视为未找到。
func (s *CartService) RemoveFromCart(ctx context.Context, cmd RemoveFromCartCommand) (*CartDTO, error) {
	s.locks.Lock(cmd.SessionID)
	defer s.locks.Unlock(cmd.SessionID)

	var dto *CartDTO
	var productID uint

	err := s.carts.WithTx(ctx, func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		cart, err := s.carts.GetBySessionID(ctx, cmd.SessionID)
		if err != nil {
			return err
		}
		if cart == nil {
			return apperr.NewNotFound("Cart", cmd.SessionID)
		}

		removed := cart.RemoveItem(cmd.ItemID)
		if removed == nil {
			return apperr.NewNotFound("CartItem", cmd.ItemID)
		}
		productID = removed.ProductID

		if err := s.carts.RemoveItem(ctx, cmd.ItemID); err != nil {
			return err
		}

		dto = toCartDTO(cart)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.countCartOp("remove")
	s.publishCartEvent(ctx, "cart.item.removed", cmd.SessionID, cartdomain.ItemRemovedEvent{
		CartID:    dto.ID,
		SessionID: cmd.SessionID,
		ProductID: productID,
		Timestamp: time.Now(),
	})

	logger.Info(ctx, "Item removed from cart", "session_id", cmd.SessionID, "item_id", cmd.ItemID)
	return dto, nil
}

// ClearCart 清空购物车。会话没有购物车时视为未找到。
func (s *CartService) ClearCart(ctx context.Context, cmd ClearCartCommand) (*CartDTO, error) {
	s.locks.Lock(cmd.SessionID)
	defer s.locks.Unlock(cmd.SessionID)

	var dto *CartDTO

	err := s.carts.WithTx(ctx, func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		cart, err := s.carts.GetBySessionID(ctx, cmd.SessionID)
		if err != nil {
			return err
		}
		if cart == nil {
			return apperr.NewNotFound("Cart", cmd.SessionID)
		}

		if err := s.carts.ClearItems(ctx, cart.ID); err != nil {
			return err
		}
		cart.Clear()

		dto = toCartDTO(cart)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.countCartOp("clear")
	s.publishCartEvent(ctx, "cart.cleared", cmd.SessionID, cartdomain.CartClearedEvent{
		CartID:    dto.ID,
		SessionID: cmd.SessionID,
		Timestamp: time.Now(),
	})

	logger.Info(ctx, "Cart cleared", "session_id", cmd.SessionID)
	return dto, nil
}

// GetCart 查询购物车，不存在时返回 nil 视图而非错误
func (s *CartService) GetCart(ctx context.Context, q GetCartQuery) (*CartDTO, error) {
	cart, err := s.carts.GetBySessionID(ctx, q.SessionID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, nil
	}
	return toCartDTO(cart), nil
}

func (s *CartService) countCartOp(op string) {
	if s.metrics != nil {
		s.metrics.CartOpsTotal.WithLabelValues(op).Inc()
	}
}

func (s *CartService) publishCartEvent(ctx context.Context, topic, sessionID string, event any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, topic, sessionID, event); err != nil {
		// 事件发布失败不影响请求结果
		logger.Warn(ctx, "Failed to publish cart event", "topic", topic, "session_id", sessionID, "error", err)
	}
}

// 以下是将应用服务挂载到消息分发器的桥接 handler

type addToCartHandler struct{ svc *CartService }

func (h addToCartHandler) Handle(ctx context.Context, msg dispatch.Message) (any, error) {
	cmd, ok := msg.(AddToCartCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected message %T", msg)
	}
	return h.svc.AddToCart(ctx, cmd)
}

type updateCartItemHandler struct{ svc *CartService }

func (h updateCartItemHandler) Handle(ctx context.Context, msg dispatch.Message) (any, error) {
	cmd, ok := msg.(UpdateCartItemCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected message %T", msg)
	}
	return h.svc.UpdateCartItem(ctx, cmd)
}

type removeFromCartHandler struct{ svc *CartService }

func (h removeFromCartHandler) Handle(ctx context.Context, msg dispatch.Message) (any, error) {
	cmd, ok := msg.(RemoveFromCartCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected message %T", msg)
	}
	return h.svc.RemoveFromCart(ctx, cmd)
}

type clearCartHandler struct{ svc *CartService }

func (h clearCartHandler) Handle(ctx context.Context, msg dispatch.Message) (any, error) {
	cmd, ok := msg.(ClearCartCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected message %T", msg)
	}
	return h.svc.ClearCart(ctx, cmd)
}

type getCartHandler struct{ svc *CartService }

func (h getCartHandler) Handle(ctx context.Context, msg dispatch.Message) (any, error) {
	q, ok := msg.(GetCartQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected message %T", msg)
	}
	return h.svc.GetCart(ctx, q)
}
