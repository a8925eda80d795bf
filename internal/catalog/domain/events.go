package domain

import (
	"context"
	"time"
)

// EventPublisher 领域事件发布端口，发布失败不应阻断业务流程
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}

// ProductCreatedEvent 商品创建事件
type ProductCreatedEvent struct {
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	SKU       string    `json:"sku"`
	Price     string    `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductUpdatedEvent 商品更新事件
type ProductUpdatedEvent struct {
	ProductID uint      `json:"product_id"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductDeletedEvent 商品软删除事件
type ProductDeletedEvent struct {
	ProductID uint      `json:"product_id"`
	Timestamp time.Time `json:"timestamp"`
}
