package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/rl1809/stockroom/internal/core/domain"
	"github.com/rl1809/stockroom/internal/port"
)

var (
	ErrItemNotFound      = errors.New("item not found")
	ErrIndexOutOfRange   = errors.New("item index out of range")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// MutationResult describes one applied change: the transaction appended to
// the log, the affected item after the change (the removed item for deletes)
// and the low-stock alert raised by it, if any.
type MutationResult struct {
	Transaction domain.Transaction
	Item        domain.Item
	Alert       *domain.Alert
}

// InventoryService owns the item collection, the transaction log, the
// category set and the custom-field registry. One mutex serialises every
// operation, so each call either applies completely or not at all.
type InventoryService struct {
	mu         sync.Mutex
	clock      port.Clock
	logger     *slog.Logger
	items      []*domain.Item
	log        *domain.TransactionLog
	categories *domain.CategorySet
	fields     *domain.FieldRegistry
	events     chan domain.Event
	closed     bool
}

// NewInventoryService creates an empty store. With queueSize > 0 every
// successful mutation is also offered to Events() for background workers.
func NewInventoryService(clock port.Clock, queueSize int, logger *slog.Logger) *InventoryService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &InventoryService{
		clock:      clock,
		logger:     logger,
		log:        domain.NewTransactionLog(),
		categories: domain.NewCategorySet(),
		fields:     domain.NewFieldRegistry(),
	}
	if queueSize > 0 {
		s.events = make(chan domain.Event, queueSize)
	}
	return s
}

func (s *InventoryService) Add(ctx context.Context, fields domain.ItemFields) (*MutationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	item := domain.NewItem(uuid.NewString(), fields, now)
	s.items = append(s.items, item)
	s.categories.Ensure(item.Category)

	return s.commit(domain.Transaction{
		Type:   domain.TransactionAdd,
		ItemID: item.ID,
		Item:   item.Clone(),
		At:     now,
	}), nil
}

// Edit replaces every caller-supplied field of the item. The identifier and
// AddedAt survive; custom fields are replaced, not merged.
func (s *InventoryService) Edit(ctx context.Context, id string, fields domain.ItemFields) (*MutationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("edit %s: %w", id, ErrItemNotFound)
	}
	return s.replace(idx, fields), nil
}

// EditAt is Edit addressed by position in the collection.
func (s *InventoryService) EditAt(ctx context.Context, index int, fields domain.ItemFields) (*MutationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.items) {
		return nil, fmt.Errorf("edit at %d of %d: %w", index, len(s.items), ErrIndexOutOfRange)
	}
	return s.replace(index, fields), nil
}

// Remove deletes the item. Its alert is evaluated on the state it had
// just before removal; its category stays listed.
func (s *InventoryService) Remove(ctx context.Context, id string) (*MutationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("remove %s: %w", id, ErrItemNotFound)
	}

	removed := s.items[idx].Clone()
	s.items = slices.Delete(s.items, idx, idx+1)

	return s.commit(domain.Transaction{
		Type:   domain.TransactionDelete,
		ItemID: removed.ID,
		Item:   removed,
		At:     s.clock.Now(),
	}), nil
}

func (s *InventoryService) Sell(ctx context.Context, id string, quantity int) (*MutationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("sell %s: %w", id, ErrItemNotFound)
	}

	item := s.items[idx]
	if item.Quantity < quantity {
		return nil, fmt.Errorf("sell %d of %s (have %d): %w", quantity, item.Name, item.Quantity, ErrInsufficientStock)
	}
	item.Quantity -= quantity

	return s.commit(domain.Transaction{
		Type:     domain.TransactionSale,
		ItemID:   item.ID,
		Item:     item.Clone(),
		Quantity: quantity,
		At:       s.clock.Now(),
	}), nil
}

func (s *InventoryService) Restock(ctx context.Context, id string, quantity int) (*MutationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("restock %s: %w", id, ErrItemNotFound)
	}

	item := s.items[idx]
	item.Quantity += quantity

	return s.commit(domain.Transaction{
		Type:     domain.TransactionRestock,
		ItemID:   item.ID,
		Item:     item.Clone(),
		Quantity: quantity,
		At:       s.clock.Now(),
	}), nil
}

// ImportBatch adds each record in order. Imported items never carry custom fields.
func (s *InventoryService) ImportBatch(ctx context.Context, records []domain.ImportRecord) ([]*MutationResult, error) {
	results := make([]*MutationResult, 0, len(records))
	for _, rec := range records {
		res, err := s.Add(ctx, rec.Fields())
		if err != nil {
			return results, fmt.Errorf("import %q: %w", rec.Name, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// RegisterCustomField declares a field in the registry. It reports false
// when the field was already declared.
func (s *InventoryService) RegisterCustomField(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.fields.Register(name)
}

func (s *InventoryService) CustomFields() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.fields.Names()
}

// SetItemCustomField stores a per-item value. The field does not have to be
// registered. No transaction is recorded and quantity is untouched.
func (s *InventoryService) SetItemCustomField(ctx context.Context, id, field string, value any) (domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return domain.Item{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Item{}, fmt.Errorf("set field %s on %s: %w", field, id, ErrItemNotFound)
	}

	item := s.items[idx]
	if item.CustomFields == nil {
		item.CustomFields = make(map[string]any)
	}
	item.CustomFields[field] = value
	return item.Clone(), nil
}

// FindByName returns the identifier of the first item with this exact name.
func (s *InventoryService) FindByName(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.Name == name {
			return item.ID, nil
		}
	}
	return "", fmt.Errorf("lookup %q: %w", name, ErrItemNotFound)
}

func (s *InventoryService) Get(id string) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Item{}, fmt.Errorf("get %s: %w", id, ErrItemNotFound)
	}
	return s.items[idx].Clone(), nil
}

// Events delivers applied mutations to background workers. It is nil when
// the service was built without a queue.
func (s *InventoryService) Events() <-chan domain.Event {
	return s.events
}

func (s *InventoryService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	if s.events != nil {
		close(s.events)
	}
}

func (s *InventoryService) replace(idx int, fields domain.ItemFields) *MutationResult {
	old := s.items[idx]
	previous := old.Clone()
	changes := fields.Clone()

	updated := domain.NewItem(old.ID, fields, old.AddedAt)
	s.items[idx] = updated

	return s.commit(domain.Transaction{
		Type:     domain.TransactionEdit,
		ItemID:   updated.ID,
		Item:     updated.Clone(),
		Previous: &previous,
		Changes:  &changes,
		At:       s.clock.Now(),
	})
}

// commit appends tx and runs the single low-stock evaluation for it.
// Callers hold s.mu.
func (s *InventoryService) commit(tx domain.Transaction) *MutationResult {
	tx.ID = uuid.NewString()
	s.log.Append(tx)

	alert := domain.EvaluateLowStock(tx.Item, tx.At)
	if alert != nil {
		s.logger.Warn("low stock",
			"item_id", alert.ItemID,
			"item", alert.ItemName,
			"quantity", alert.Quantity,
			"transaction", string(tx.Type),
		)
	}

	s.publish(domain.Event{Transaction: tx.Clone(), Alert: alert})

	return &MutationResult{
		Transaction: tx.Clone(),
		Item:        tx.Item.Clone(),
		Alert:       alert,
	}
}

func (s *InventoryService) publish(ev domain.Event) {
	if s.events == nil || s.closed {
		return
	}
	select {
	case s.events <- ev:
	default:
		s.logger.Warn("event queue full, dropping event",
			"transaction_id", ev.Transaction.ID,
			"type", string(ev.Transaction.Type),
		)
	}
}

func (s *InventoryService) indexOf(id string) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
