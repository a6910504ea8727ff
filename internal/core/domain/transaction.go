package domain

import "time"

type TransactionType string

const (
	TransactionAdd     TransactionType = "add"
	TransactionEdit    TransactionType = "edit"
	TransactionDelete  TransactionType = "delete"
	TransactionSale    TransactionType = "sale"
	TransactionRestock TransactionType = "restock"
)

// Transaction records one state change. Item holds the state after the
// change; for deletes it is the removed item. Previous and Changes are
// only set for edits, Quantity only for sales and restocks.
type Transaction struct {
	ID       string
	Type     TransactionType
	ItemID   string
	Item     Item
	Previous *Item
	Changes  *ItemFields
	Quantity int
	At       time.Time
}

// Clone returns a copy that shares no maps or pointers with tx.
func (tx Transaction) Clone() Transaction {
	out := tx
	out.Item = tx.Item.Clone()
	if tx.Previous != nil {
		prev := tx.Previous.Clone()
		out.Previous = &prev
	}
	if tx.Changes != nil {
		changes := tx.Changes.Clone()
		out.Changes = &changes
	}
	return out
}

// TransactionLog is append-only. Entries are never reordered or removed.
type TransactionLog struct {
	entries []Transaction
}

func NewTransactionLog() *TransactionLog {
	return &TransactionLog{}
}

func (l *TransactionLog) Append(tx Transaction) {
	l.entries = append(l.entries, tx.Clone())
}

// All returns deep copies, so callers cannot rewrite logged entries.
func (l *TransactionLog) All() []Transaction {
	out := make([]Transaction, len(l.entries))
	for i, tx := range l.entries {
		out[i] = tx.Clone()
	}
	return out
}

func (l *TransactionLog) Len() int {
	return len(l.entries)
}
