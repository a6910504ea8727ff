package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/stockroom/internal/core/domain"
)

const (
	stockKeyPrefix = "stock:"
	AlertChannel   = "inventory:alerts"
)

// RedisAdapter keeps a per-item quantity mirror for external readers and
// publishes low-stock alerts.
type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func (r *RedisAdapter) SetStock(ctx context.Context, itemID string, quantity int) error {
	key := stockKeyPrefix + itemID
	return r.client.Set(ctx, key, quantity, 0).Err()
}

// GetStock returns the mirrored quantity and false when the item has no entry.
func (r *RedisAdapter) GetStock(ctx context.Context, itemID string) (int, bool, error) {
	key := stockKeyPrefix + itemID
	n, err := r.client.Get(ctx, key).Int()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

func (r *RedisAdapter) DeleteStock(ctx context.Context, itemID string) error {
	key := stockKeyPrefix + itemID
	return r.client.Del(ctx, key).Err()
}

func (r *RedisAdapter) PublishAlert(ctx context.Context, alert domain.Alert) error {
	body, err := json.Marshal(alertMessage{
		ItemID:    alert.ItemID,
		Item:      alert.ItemName,
		Quantity:  alert.Quantity,
		Threshold: alert.Threshold,
		Message:   alert.Message(),
		At:        alert.At.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("encode alert: %w", err)
	}
	return r.client.Publish(ctx, AlertChannel, body).Err()
}

type alertMessage struct {
	ItemID    string `json:"item_id"`
	Item      string `json:"item"`
	Quantity  int    `json:"quantity"`
	Threshold int    `json:"threshold"`
	Message   string `json:"message"`
	At        string `json:"at"`
}
