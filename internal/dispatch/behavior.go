package dispatch

import (
	"context"
	"time"

	"github.com/wyfcoding/storefront/pkg/logger"
	"github.com/wyfcoding/storefront/pkg/metrics"
)

// Next 调用链中的下一环
type Next func(ctx context.Context) (any, error)

// Behavior 包裹消息处理的横切关注点，可以短路后续链路
type Behavior interface {
	Handle(ctx context.Context, msg Message, next Next) (any, error)
}

// LoggingBehavior 记录消息类型与处理耗时，从不改变控制流
type LoggingBehavior struct {
	metrics *metrics.Metrics
}

// NewLoggingBehavior 创建日志 behavior，metrics 可为 nil
func NewLoggingBehavior(m *metrics.Metrics) *LoggingBehavior {
	return &LoggingBehavior{metrics: m}
}

// Handle 实现 Behavior
func (b *LoggingBehavior) Handle(ctx context.Context, msg Message, next Next) (any, error) {
	name := msg.MessageName()
	logger.Info(ctx, "Handling message", "message", name)

	start := time.Now()
	res, err := next(ctx)
	elapsed := time.Since(start)

	if b.metrics != nil {
		b.metrics.MessagesDispatched.WithLabelValues(name).Inc()
		b.metrics.MessageDuration.Observe(elapsed.Seconds())
	}

	if err != nil {
		logger.Warn(ctx, "Message failed", "message", name, "duration", elapsed, "error", err)
	} else {
		logger.Info(ctx, "Message handled", "message", name, "duration", elapsed)
	}

	return res, err
}
