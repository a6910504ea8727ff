package storage

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/stockroom/internal/core/domain"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestSetStock_GetStock(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	// Setup
	client.Del(ctx, "stock:test-item")

	if err := adapter.SetStock(ctx, "test-item", 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stock, ok, err := adapter.GetStock(ctx, "test-item")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || stock != 7 {
		t.Errorf("expected stock 7, got %d (present=%v)", stock, ok)
	}
}

func TestGetStock_KeyNotExists(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	client.Del(ctx, "stock:nonexistent")

	_, ok, err := adapter.GetStock(ctx, "nonexistent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected no entry for nonexistent key")
	}
}

func TestDeleteStock(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	adapter.SetStock(ctx, "delete-item", 3)
	if err := adapter.DeleteStock(ctx, "delete-item"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n, _ := client.Exists(ctx, "stock:delete-item").Result(); n != 0 {
		t.Error("expected key to be removed")
	}
}

func TestPublishAlert(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	sub := client.Subscribe(ctx, AlertChannel)
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	alert := domain.Alert{ItemID: "milk-1", ItemName: "Milk", Quantity: 5, Threshold: 10, At: time.Now()}
	if err := adapter.PublishAlert(ctx, alert); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case msg := <-sub.Channel():
		var got alertMessage
		if err := json.Unmarshal([]byte(msg.Payload), &got); err != nil {
			t.Fatalf("bad payload %q: %v", msg.Payload, err)
		}
		if got.Item != "Milk" || got.Quantity != 5 {
			t.Errorf("unexpected alert %+v", got)
		}
		if got.Message != alert.Message() {
			t.Errorf("expected message %q, got %q", alert.Message(), got.Message)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("alert not received")
	}
}
