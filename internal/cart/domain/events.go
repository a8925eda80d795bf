package domain

import (
	"context"
	"time"
)

// EventPublisher 领域事件发布端口，发布失败不应阻断业务流程
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}

// CartCreatedEvent 购物车创建事件
type CartCreatedEvent struct {
	CartID    uint      `json:"cart_id"`
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
}

// ItemAddedEvent 商品加入购物车事件
type ItemAddedEvent struct {
	CartID    uint      `json:"cart_id"`
	SessionID string    `json:"session_id"`
	ProductID uint      `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

// ItemRemovedEvent 商品移出购物车事件
type ItemRemovedEvent struct {
	CartID    uint      `json:"cart_id"`
	SessionID string    `json:"session_id"`
	ProductID uint      `json:"product_id"`
	Timestamp time.Time `json:"timestamp"`
}

// CartClearedEvent 购物车清空事件
type CartClearedEvent struct {
	CartID    uint      `json:"cart_id"`
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
}
