package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rl1809/stockroom/internal/core/domain"
)

const createJournalTable = `
CREATE TABLE IF NOT EXISTS inventory_transactions (
	id          CHAR(36)       NOT NULL PRIMARY KEY,
	type        VARCHAR(16)    NOT NULL,
	item_id     CHAR(36)       NOT NULL,
	item_name   VARCHAR(255)   NOT NULL,
	category    VARCHAR(255)   NOT NULL,
	quantity    INT            NOT NULL,
	stock_after INT            NOT NULL,
	unit_price  DECIMAL(18, 4) NOT NULL,
	unit        VARCHAR(32)    NOT NULL,
	payload     JSON           NOT NULL,
	occurred_at DATETIME(6)    NOT NULL,
	INDEX idx_item (item_id, occurred_at)
)`

// MySQLAdapter mirrors the transaction log into an audit table. It is
// write-only: the inventory is never rebuilt from it.
type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) EnsureSchema(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, createJournalTable); err != nil {
		return fmt.Errorf("create journal table: %w", err)
	}
	return nil
}

// AppendTransaction inserts tx. Re-delivering the same transaction is a no-op.
func (m *MySQLAdapter) AppendTransaction(ctx context.Context, tx domain.Transaction) error {
	payload, err := json.Marshal(journalPayload{
		Item:     tx.Item,
		Previous: tx.Previous,
		Changes:  tx.Changes,
	})
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	_, err = m.db.ExecContext(ctx, `
		INSERT INTO inventory_transactions
			(id, type, item_id, item_name, category, quantity, stock_after, unit_price, unit, payload, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE id = id`,
		tx.ID, string(tx.Type), tx.ItemID, tx.Item.Name, tx.Item.Category,
		tx.Quantity, tx.Item.Quantity, tx.Item.Price.String(), tx.Item.Unit,
		payload, tx.At.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert transaction %s: %w", tx.ID, err)
	}
	return nil
}

// CountTransactions returns how many journal rows exist for an item.
func (m *MySQLAdapter) CountTransactions(ctx context.Context, itemID string) (int, error) {
	var n int
	err := m.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM inventory_transactions WHERE item_id = ?`, itemID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

type journalPayload struct {
	Item     domain.Item        `json:"item"`
	Previous *domain.Item       `json:"previous,omitempty"`
	Changes  *domain.ItemFields `json:"changes,omitempty"`
}
