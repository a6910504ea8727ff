package storage

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rl1809/stockroom/internal/core/domain"
)

func getMySQLDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/stockroom?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	return db
}

func testTransaction(itemID string, typ domain.TransactionType, quantity int) domain.Transaction {
	now := time.Now()
	return domain.Transaction{
		ID:     uuid.NewString(),
		Type:   typ,
		ItemID: itemID,
		Item: domain.Item{
			ID:           itemID,
			Name:         "Apple",
			Category:     "Fruit",
			Quantity:     8,
			Price:        decimal.RequireFromString("1.5"),
			Unit:         "kg",
			AddedAt:      now,
			CustomFields: map[string]any{},
		},
		Quantity: quantity,
		At:       now,
	}
}

func TestAppendTransaction_Success(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)
	if err := adapter.EnsureSchema(ctx); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	itemID := uuid.NewString()
	tx := testTransaction(itemID, domain.TransactionSale, 2)

	if err := adapter.AppendTransaction(ctx, tx); err != nil {
		t.Fatalf("AppendTransaction failed: %v", err)
	}

	var stockAfter int
	var price string
	db.QueryRowContext(ctx,
		`SELECT stock_after, unit_price FROM inventory_transactions WHERE id = ?`, tx.ID,
	).Scan(&stockAfter, &price)
	if stockAfter != 8 {
		t.Errorf("expected stock_after 8, got %d", stockAfter)
	}
	if !decimal.RequireFromString(price).Equal(decimal.RequireFromString("1.5")) {
		t.Errorf("expected unit_price 1.5, got %s", price)
	}

	// Cleanup
	db.ExecContext(ctx, `DELETE FROM inventory_transactions WHERE item_id = ?`, itemID)
}

func TestAppendTransaction_Redelivery(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)
	if err := adapter.EnsureSchema(ctx); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	itemID := uuid.NewString()
	tx := testTransaction(itemID, domain.TransactionAdd, 0)

	for i := 0; i < 3; i++ {
		if err := adapter.AppendTransaction(ctx, tx); err != nil {
			t.Fatalf("AppendTransaction #%d failed: %v", i, err)
		}
	}

	n, err := adapter.CountTransactions(ctx, itemID)
	if err != nil {
		t.Fatalf("CountTransactions failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 row, got %d", n)
	}

	db.ExecContext(ctx, `DELETE FROM inventory_transactions WHERE item_id = ?`, itemID)
}

func TestCountTransactions_Unknown(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)
	if err := adapter.EnsureSchema(ctx); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	n, err := adapter.CountTransactions(ctx, "nonexistent-item")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0, got %d", n)
	}
}
