package dispatch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/wyfcoding/storefront/internal/apperr"
)

type testMessage struct {
	name  string
	value int
}

func (m testMessage) MessageName() string { return m.name }

func echoHandler(t *testing.T) Handler {
	t.Helper()
	return HandlerFunc(func(ctx context.Context, msg Message) (any, error) {
		return msg.(testMessage).value, nil
	})
}

func TestRegisterDuplicate(t *testing.T) {
	d := NewDispatcher()
	if err := d.Register("test.echo", echoHandler(t)); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if err := d.Register("test.echo", echoHandler(t)); err == nil {
		t.Fatal("expected error on duplicate registration")
	}
}

func TestRegisterInvalid(t *testing.T) {
	d := NewDispatcher()
	if err := d.Register("", echoHandler(t)); err == nil {
		t.Fatal("expected error on empty message name")
	}
	if err := d.Register("test.echo", nil); err == nil {
		t.Fatal("expected error on nil handler")
	}
}

func TestDispatchUnknownMessage(t *testing.T) {
	d := NewDispatcher()
	_, err := d.Dispatch(context.Background(), testMessage{name: "test.unknown"})
	if err == nil {
		t.Fatal("expected error for unregistered message")
	}
	if !strings.Contains(err.Error(), "test.unknown") {
		t.Errorf("error should name the message, got: %v", err)
	}
}

func TestDispatchInvokesHandler(t *testing.T) {
	d := NewDispatcher()
	d.MustRegister("test.echo", echoHandler(t))

	res, err := d.Dispatch(context.Background(), testMessage{name: "test.echo", value: 42})
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	if res.(int) != 42 {
		t.Errorf("got %v, want 42", res)
	}
}

type orderBehavior struct {
	label string
	trace *[]string
}

func (b orderBehavior) Handle(ctx context.Context, msg Message, next Next) (any, error) {
	*b.trace = append(*b.trace, b.label+":before")
	res, err := next(ctx)
	*b.trace = append(*b.trace, b.label+":after")
	return res, err
}

func TestBehaviorOrder(t *testing.T) {
	var trace []string
	d := NewDispatcher()
	d.Use(orderBehavior{label: "outer", trace: &trace})
	d.Use(orderBehavior{label: "inner", trace: &trace})
	d.MustRegister("test.echo", HandlerFunc(func(ctx context.Context, msg Message) (any, error) {
		trace = append(trace, "handler")
		return nil, nil
	}))

	if _, err := d.Dispatch(context.Background(), testMessage{name: "test.echo"}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	want := []string{"outer:before", "inner:before", "handler", "inner:after", "outer:after"}
	if len(trace) != len(want) {
		t.Fatalf("trace length %d, want %d: %v", len(trace), len(want), trace)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Errorf("trace[%d] = %q, want %q", i, trace[i], want[i])
		}
	}
}

func TestSendTypeMismatch(t *testing.T) {
	d := NewDispatcher()
	d.MustRegister("test.echo", echoHandler(t))

	_, err := Send[string](context.Background(), d, testMessage{name: "test.echo", value: 1})
	if err == nil {
		t.Fatal("expected type assertion error")
	}
}

func TestValidationCollectsAllFailures(t *testing.T) {
	registry := NewRuleRegistry()
	registry.MustRegister("test.cmd",
		Rule{
			Field:   "Value",
			Check:   func(m Message) bool { return m.(testMessage).value >= 1 },
			Message: "value too small",
		},
		Rule{
			Field:   "Name",
			Check:   func(m Message) bool { return false },
			Message: "always fails",
		},
	)

	d := NewDispatcher()
	d.Use(NewValidationBehavior(registry, nil))

	handlerCalled := false
	d.MustRegister("test.cmd", HandlerFunc(func(ctx context.Context, msg Message) (any, error) {
		handlerCalled = true
		return nil, nil
	}))

	_, err := d.Dispatch(context.Background(), testMessage{name: "test.cmd", value: 0})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if handlerCalled {
		t.Error("handler must not run when validation fails")
	}

	failures := apperr.FailureMessages(err)
	if len(failures) != 2 {
		t.Fatalf("got %d failures, want 2: %v", len(failures), failures)
	}
}

func TestValidationWhenGuard(t *testing.T) {
	registry := NewRuleRegistry()
	registry.MustRegister("test.cmd",
		Rule{
			Field:   "Value",
			When:    func(m Message) bool { return m.(testMessage).value != 0 },
			Check:   func(m Message) bool { return m.(testMessage).value > 10 },
			Message: "value must be greater than 10",
		},
	)

	d := NewDispatcher()
	d.Use(NewValidationBehavior(registry, nil))
	d.MustRegister("test.cmd", HandlerFunc(func(ctx context.Context, msg Message) (any, error) {
		return "ok", nil
	}))

	// 守卫未触发，规则被跳过
	if _, err := d.Dispatch(context.Background(), testMessage{name: "test.cmd", value: 0}); err != nil {
		t.Errorf("guarded rule should be skipped: %v", err)
	}
	// 守卫触发，规则生效
	if _, err := d.Dispatch(context.Background(), testMessage{name: "test.cmd", value: 5}); err == nil {
		t.Error("expected validation failure when guard triggers")
	}
}

func TestValidationNoRulesPassThrough(t *testing.T) {
	d := NewDispatcher()
	d.Use(NewValidationBehavior(NewRuleRegistry(), nil))
	d.MustRegister("test.echo", echoHandler(t))

	if _, err := d.Dispatch(context.Background(), testMessage{name: "test.echo", value: 1}); err != nil {
		t.Errorf("message without rules should pass: %v", err)
	}
}

func TestLoggingBehaviorPassesThroughErrors(t *testing.T) {
	sentinel := errors.New("handler failed")
	d := NewDispatcher()
	d.Use(NewLoggingBehavior(nil))
	d.MustRegister("test.fail", HandlerFunc(func(ctx context.Context, msg Message) (any, error) {
		return nil, sentinel
	}))

	_, err := d.Dispatch(context.Background(), testMessage{name: "test.fail"})
	if !errors.Is(err, sentinel) {
		t.Errorf("logging behavior must not swallow errors, got: %v", err)
	}
}
