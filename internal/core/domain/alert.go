package domain

import (
	"fmt"
	"time"
)

// LowStockThreshold is exclusive: an item holding exactly this many units is not low.
const LowStockThreshold = 10

type Alert struct {
	ItemID    string
	ItemName  string
	Quantity  int
	Threshold int
	At        time.Time
}

func (a Alert) Message() string {
	return fmt.Sprintf("Item %s is below %d units! Current quantity: %d", a.ItemName, a.Threshold, a.Quantity)
}

// EvaluateLowStock returns an alert when the item is under the threshold, nil otherwise.
func EvaluateLowStock(item Item, at time.Time) *Alert {
	if item.Quantity >= LowStockThreshold {
		return nil
	}
	return &Alert{
		ItemID:    item.ID,
		ItemName:  item.Name,
		Quantity:  item.Quantity,
		Threshold: LowStockThreshold,
		At:        at,
	}
}
