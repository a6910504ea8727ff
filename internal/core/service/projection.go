package service

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rl1809/stockroom/internal/core/domain"
)

// Dashboard sums quantity × price over the active items and lists every
// category seen so far.
func (s *InventoryService) Dashboard() domain.DashboardSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Value())
	}
	return domain.DashboardSummary{
		ItemCount:  len(s.items),
		TotalValue: total,
		Categories: s.categories.List(),
	}
}

// Search matches query case-insensitively as a substring of name, category
// or the price's string form.
func (s *InventoryService) Search(query string) []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(query)
	var matches []domain.Item
	for _, item := range s.items {
		for _, v := range []string{item.Name, item.Category, item.Price.String()} {
			if strings.Contains(strings.ToLower(v), q) {
				matches = append(matches, item.Clone())
				break
			}
		}
	}
	return matches
}

func (s *InventoryService) ListInventory() []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item.Clone())
	}
	return items
}

func (s *InventoryService) ListTransactions() []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.log.All()
}

// ExportRows returns domain.ExportHeader followed by one row per item.
func (s *InventoryService) ExportRows() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([][]string, 0, len(s.items)+1)
	rows = append(rows, append([]string(nil), domain.ExportHeader...))
	for _, item := range s.items {
		rows = append(rows, []string{
			item.Name,
			item.Category,
			strconv.Itoa(item.Quantity),
			item.Price.String(),
			item.Unit,
			item.AddedAt.UTC().Format(time.RFC3339),
		})
	}
	return rows
}

// ItemAges floors the elapsed time since each item was added to whole days.
func (s *InventoryService) ItemAges() []domain.ItemAge {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	ages := make([]domain.ItemAge, 0, len(s.items))
	for _, item := range s.items {
		days := math.Floor(now.Sub(item.AddedAt).Hours() / 24)
		ages = append(ages, domain.ItemAge{
			ItemID: item.ID,
			Name:   item.Name,
			Days:   int(days),
		})
	}
	return ages
}
