// Package dispatch 实现消息分发管线：消息按类型路由到唯一 handler，
// 途经有序的 behavior 链（日志、校验等横切关注点）
package dispatch

import "context"

// Message 一次意图（命令或查询）的不可变描述，按 MessageName 路由
type Message interface {
	MessageName() string
}

// Handler 绑定到某一消息类型的业务处理器
type Handler interface {
	Handle(ctx context.Context, msg Message) (any, error)
}

// HandlerFunc 函数式 Handler 适配器
type HandlerFunc func(ctx context.Context, msg Message) (any, error)

// Handle 实现 Handler 接口
func (f HandlerFunc) Handle(ctx context.Context, msg Message) (any, error) {
	return f(ctx, msg)
}
