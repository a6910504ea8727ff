package port

import (
	"context"

	"github.com/rl1809/stockroom/internal/core/domain"
)

type CacheRepository interface {
	// SetStock overwrites the mirrored quantity of an item
	SetStock(ctx context.Context, itemID string, quantity int) error

	// DeleteStock drops the mirror entry of a removed item
	DeleteStock(ctx context.Context, itemID string) error

	// PublishAlert fans a low-stock alert out to subscribers
	PublishAlert(ctx context.Context, alert domain.Alert) error
}
