package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rl1809/stockroom/internal/core/domain"
)

func TestDashboard(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextReporter(&buf)

	r.Dashboard(domain.DashboardSummary{
		ItemCount:  4,
		TotalValue: decimal.RequireFromString("47"),
		Categories: []string{"Fruit", "Dairy"},
	})

	want := "=== Dashboard ===\nItems: 4\nTotal: $47.00\nCats: Fruit, Dairy\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestConfirmationsAndAlert(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextReporter(&buf)

	apple := domain.Item{Name: "Apple", Unit: "kg", Quantity: 8}
	r.Sold(apple, 2)
	r.Restocked(domain.Item{Name: "Milk", Unit: "litre"}, 2)
	r.Alert(*domain.EvaluateLowStock(apple, time.Now()))

	want := "Sold 2 kg of Apple\n" +
		"Restocked 2 litre of Milk\n" +
		"**ALERT: Item Apple is below 10 units! Current quantity: 8**\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestCSV_QuotesFields(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextReporter(&buf)

	rows := [][]string{
		domain.ExportHeader,
		{"Cheese, aged", "Dairy", "3", "7.5", "kg", "2024-03-01T09:00:00Z"},
	}
	if err := r.CSV(rows); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[1] != "Name,Category,Quantity,Price,Unit,AddedAt" {
		t.Errorf("unexpected header %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], `"Cheese, aged",Dairy,3,7.5,kg,`) {
		t.Errorf("unexpected row %q", lines[2])
	}
}

func TestAges(t *testing.T) {
	var buf bytes.Buffer
	NewTextReporter(&buf).Ages([]domain.ItemAge{{Name: "Apple", Days: 3}, {Name: "Milk", Days: 0}})

	if buf.String() != "Apple: 3d\nMilk: 0d\n" {
		t.Errorf("unexpected ages %q", buf.String())
	}
}

func TestInventory_ShowsCustomFieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	NewTextReporter(&buf).Inventory([]domain.Item{{
		Name:         "Apple",
		Category:     "Fruit",
		Quantity:     8,
		Price:        decimal.RequireFromString("1.5"),
		Unit:         "kg",
		CustomFields: map[string]any{"Origin": "India", "Grade": "A"},
	}})

	out := buf.String()
	if !strings.Contains(out, "Grade=A Origin=India") {
		t.Errorf("expected sorted custom fields, got %q", out)
	}
	if !strings.Contains(out, "1.50") {
		t.Errorf("expected fixed price, got %q", out)
	}
}

func TestTransactions_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewTextReporter(&buf).Transactions(nil)

	if !strings.Contains(buf.String(), "No transactions.") {
		t.Errorf("unexpected output %q", buf.String())
	}
}
