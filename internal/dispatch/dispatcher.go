package dispatch

import (
	"context"
	"fmt"
)

// Dispatcher 将消息路由到注册的 handler，并依次套用 behavior 链。
// 注册阶段完成后即视为只读，Dispatch 可被任意并发调用。
type Dispatcher struct {
	handlers  map[string]Handler
	behaviors []Behavior
}

// NewDispatcher 创建空的分发器
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]Handler),
	}
}

// Use 追加一个 behavior，按追加顺序从外向内包裹 handler
func (d *Dispatcher) Use(b Behavior) {
	d.behaviors = append(d.behaviors, b)
}

// Register 注册消息类型到 handler 的映射，重复注册视为配置错误
func (d *Dispatcher) Register(name string, h Handler) error {
	if name == "" {
		return fmt.Errorf("dispatch: message name is empty")
	}
	if h == nil {
		return fmt.Errorf("dispatch: nil handler for message %q", name)
	}
	if _, exists := d.handlers[name]; exists {
		return fmt.Errorf("dispatch: handler already registered for message %q", name)
	}
	d.handlers[name] = h
	return nil
}

// MustRegister 注册失败直接 panic，用于启动期装配
func (d *Dispatcher) MustRegister(name string, h Handler) {
	if err := d.Register(name, h); err != nil {
		panic(err)
	}
}

// Dispatch 分发消息：构造 behavior 链并执行，最终调用注册的 handler
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) (any, error) {
	if msg == nil {
		return nil, fmt.Errorf("dispatch: nil message")
	}

	h, ok := d.handlers[msg.MessageName()]
	if !ok {
		return nil, fmt.Errorf("dispatch: no handler registered for message %q", msg.MessageName())
	}

	next := func(ctx context.Context) (any, error) {
		return h.Handle(ctx, msg)
	}

	// 反向包裹，保证 behaviors[0] 最先执行
	for i := len(d.behaviors) - 1; i >= 0; i-- {
		b := d.behaviors[i]
		inner := next
		next = func(ctx context.Context) (any, error) {
			return b.Handle(ctx, msg, inner)
		}
	}

	return next(ctx)
}

// Send 类型安全的分发入口，结果断言为 T
func Send[T any](ctx context.Context, d *Dispatcher, msg Message) (T, error) {
	var zero T
	res, err := d.Dispatch(ctx, msg)
	if err != nil {
		return zero, err
	}
	if res == nil {
		return zero, nil
	}
	typed, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("dispatch: message %q returned %T, want %T", msg.MessageName(), res, zero)
	}
	return typed, nil
}
