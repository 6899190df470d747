package queue

import (
	"encoding/json"
	"testing"

	"github.com/pixelcraft-pc/storefront/internal/config"
)

func TestDisabledClientSkipsEnqueue(t *testing.T) {
	c := NewClient(&config.QueueConfig{Enabled: false})
	if c.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := c.EnqueueOrderConfirmation(OrderConfirmationPayload{OrderID: 1}); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
	var nilClient *Client
	if err := nilClient.EnqueueNewsletterWelcome(NewsletterWelcomePayload{Email: "a@b.com"}); err != nil {
		t.Fatalf("nil client enqueue should be noop: %v", err)
	}
}

func TestOrderStatusTaskPayload(t *testing.T) {
	task, err := NewOrderStatusTask(OrderStatusPayload{OrderID: 3, OrderStatus: "shipped", PaymentStatus: "completed"})
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if task.Type() != TaskOrderStatusEmail {
		t.Fatalf("unexpected type %s", task.Type())
	}
	var decoded OrderStatusPayload
	if err := json.Unmarshal(task.Payload(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.OrderID != 3 || decoded.OrderStatus != "shipped" {
		t.Fatalf("unexpected payload %+v", decoded)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("unexpected addr %s", opt.Addr)
	}
	if cfg.Concurrency != 5 || cfg.Queues["mail"] != 3 {
		t.Fatalf("unexpected server config %+v", cfg)
	}
}
