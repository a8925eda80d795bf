package dispatch

import (
	"context"
	"fmt"

	"github.com/wyfcoding/storefront/internal/apperr"
	"github.com/wyfcoding/storefront/pkg/logger"
	"github.com/wyfcoding/storefront/pkg/metrics"
)

// Rule 单条校验规则：消息上的谓词加一条失败原因。
// When 为可选守卫，返回 false 时跳过该规则（用于部分更新消息）。
type Rule struct {
	Field   string
	When    func(msg Message) bool
	Check   func(msg Message) bool
	Message string
}

// RuleRegistry 按消息类型保存规则集，启动期装配后只读
type RuleRegistry struct {
	rules map[string][]Rule
}

// NewRuleRegistry 创建空的规则注册表
func NewRuleRegistry() *RuleRegistry {
	return &RuleRegistry{rules: make(map[string][]Rule)}
}

// Register 注册某消息类型的规则集，重复注册视为配置错误
func (r *RuleRegistry) Register(name string, rules ...Rule) error {
	if _, exists := r.rules[name]; exists {
		return fmt.Errorf("dispatch: rules already registered for message %q", name)
	}
	r.rules[name] = rules
	return nil
}

// MustRegister 注册失败直接 panic，用于启动期装配
func (r *RuleRegistry) MustRegister(name string, rules ...Rule) {
	if err := r.Register(name, rules...); err != nil {
		panic(err)
	}
}

// RulesFor 返回某消息类型的规则集，未注册时返回 nil
func (r *RuleRegistry) RulesFor(name string) []Rule {
	return r.rules[name]
}

// ValidationBehavior 在 handler 之前执行消息校验。
// 全部规则都会被评估，失败原因汇总后一次性返回。
type ValidationBehavior struct {
	registry *RuleRegistry
	metrics  *metrics.Metrics
}

// NewValidationBehavior 创建校验 behavior，metrics 可为 nil
func NewValidationBehavior(registry *RuleRegistry, m *metrics.Metrics) *ValidationBehavior {
	return &ValidationBehavior{registry: registry, metrics: m}
}

// Handle 实现 Behavior：任一规则失败即短路，不再进入 handler
func (b *ValidationBehavior) Handle(ctx context.Context, msg Message, next Next) (any, error) {
	rules := b.registry.RulesFor(msg.MessageName())
	if len(rules) == 0 {
		return next(ctx)
	}

	var failures []string
	for _, rule := range rules {
		if rule.When != nil && !rule.When(msg) {
			continue
		}
		if !rule.Check(msg) {
			failures = append(failures, rule.Message)
		}
	}

	if len(failures) > 0 {
		if b.metrics != nil {
			b.metrics.ValidationFailures.Inc()
		}
		logger.Warn(ctx, "Message validation failed",
			"message", msg.MessageName(),
			"failures", failures,
		)
		return nil, apperr.NewValidation(failures)
	}

	return next(ctx)
}
