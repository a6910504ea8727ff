package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Item struct {
	ID           string
	Name         string
	Category     string
	Quantity     int
	Price        decimal.Decimal
	Unit         string
	AddedAt      time.Time
	CustomFields map[string]any
}

// ItemFields is the caller-supplied part of an item, used by add and edit.
type ItemFields struct {
	Name         string
	Category     string
	Quantity     int
	Price        decimal.Decimal
	Unit         string
	CustomFields map[string]any
}

// ImportRecord is one row of a batch import. It cannot carry custom fields.
type ImportRecord struct {
	Name     string
	Category string
	Quantity int
	Price    decimal.Decimal
	Unit     string
}

func (r ImportRecord) Fields() ItemFields {
	return ItemFields{
		Name:     r.Name,
		Category: r.Category,
		Quantity: r.Quantity,
		Price:    r.Price,
		Unit:     r.Unit,
	}
}

func NewItem(id string, fields ItemFields, addedAt time.Time) *Item {
	return &Item{
		ID:           id,
		Name:         fields.Name,
		Category:     fields.Category,
		Quantity:     fields.Quantity,
		Price:        fields.Price,
		Unit:         fields.Unit,
		AddedAt:      addedAt,
		CustomFields: copyFields(fields.CustomFields),
	}
}

// Value is quantity times unit price.
func (i Item) Value() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Clone copies the item including its custom-field map, so snapshots
// never share state with the live record.
func (i Item) Clone() Item {
	i.CustomFields = copyFields(i.CustomFields)
	return i
}

func (f ItemFields) Clone() ItemFields {
	f.CustomFields = copyFields(f.CustomFields)
	return f
}

func copyFields(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
