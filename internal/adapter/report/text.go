// Package report renders inventory results as plain text. All currency,
// date and CSV formatting lives here; the core only hands over values.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rl1809/stockroom/internal/core/domain"
	"github.com/rl1809/stockroom/internal/port"
)

const dateLayout = "2006-01-02"

var _ port.Reporter = (*TextReporter)(nil)

type TextReporter struct {
	w io.Writer
}

func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{w: w}
}

func (r *TextReporter) Dashboard(s domain.DashboardSummary) {
	fmt.Fprintln(r.w, "=== Dashboard ===")
	fmt.Fprintf(r.w, "Items: %d\n", s.ItemCount)
	fmt.Fprintf(r.w, "Total: $%s\n", s.TotalValue.StringFixed(2))
	fmt.Fprintf(r.w, "Cats: %s\n", strings.Join(s.Categories, ", "))
}

func (r *TextReporter) Alert(a domain.Alert) {
	fmt.Fprintf(r.w, "**ALERT: %s**\n", a.Message())
}

func (r *TextReporter) Sold(item domain.Item, quantity int) {
	fmt.Fprintf(r.w, "Sold %d %s of %s\n", quantity, item.Unit, item.Name)
}

func (r *TextReporter) Restocked(item domain.Item, quantity int) {
	fmt.Fprintf(r.w, "Restocked %d %s of %s\n", quantity, item.Unit, item.Name)
}

func (r *TextReporter) SearchResults(query string, items []domain.Item) {
	fmt.Fprintf(r.w, "=== Search: %q (%d) ===\n", query, len(items))
	r.table(items)
}

func (r *TextReporter) Inventory(items []domain.Item) {
	fmt.Fprintln(r.w, "=== Inventory ===")
	r.table(items)
}

// CSV writes rows as RFC 4180 text, quoting fields that need it.
func (r *TextReporter) CSV(rows [][]string) error {
	fmt.Fprintln(r.w, "CSV:")
	cw := csv.NewWriter(r.w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func (r *TextReporter) Transactions(txs []domain.Transaction) {
	fmt.Fprintln(r.w, "Transactions:")
	if len(txs) == 0 {
		fmt.Fprintln(r.w, "  No transactions.")
		return
	}
	fmt.Fprintf(r.w, "  %-4s %-8s %-16s %6s %6s  %s\n", "#", "TYPE", "ITEM", "QTY", "STOCK", "AT")
	fmt.Fprintln(r.w, "  "+strings.Repeat("-", 60))
	for i, tx := range txs {
		qty := "-"
		if tx.Type == domain.TransactionSale || tx.Type == domain.TransactionRestock {
			qty = fmt.Sprintf("%d", tx.Quantity)
		}
		name := tx.Item.Name
		if tx.Type == domain.TransactionEdit && tx.Previous != nil && tx.Previous.Name != name {
			name = tx.Previous.Name + "->" + name
		}
		fmt.Fprintf(r.w, "  %-4d %-8s %-16s %6s %6d  %s\n",
			i+1, tx.Type, name, qty, tx.Item.Quantity, tx.At.Format("2006-01-02 15:04:05"))
	}
}

func (r *TextReporter) Ages(ages []domain.ItemAge) {
	for _, a := range ages {
		fmt.Fprintf(r.w, "%s: %dd\n", a.Name, a.Days)
	}
}

func (r *TextReporter) table(items []domain.Item) {
	if len(items) == 0 {
		fmt.Fprintln(r.w, "  No items found.")
		return
	}
	fmt.Fprintf(r.w, "  %-16s %-10s %6s %10s %-6s %-10s  %s\n", "NAME", "CATEGORY", "QTY", "PRICE", "UNIT", "ADDED", "FIELDS")
	fmt.Fprintln(r.w, "  "+strings.Repeat("-", 72))
	for _, it := range items {
		fmt.Fprintf(r.w, "  %-16s %-10s %6d %10s %-6s %-10s  %s\n",
			it.Name, it.Category, it.Quantity, it.Price.StringFixed(2), it.Unit,
			it.AddedAt.Format(dateLayout), formatFields(it.CustomFields))
	}
}

// formatFields prints custom fields sorted by name so output is stable.
func formatFields(fields map[string]any) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return strings.Join(parts, " ")
}
