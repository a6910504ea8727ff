package port

import "github.com/rl1809/stockroom/internal/core/domain"

// Reporter receives structured results and owns all formatting.
type Reporter interface {
	Dashboard(summary domain.DashboardSummary)
	Alert(alert domain.Alert)
	Sold(item domain.Item, quantity int)
	Restocked(item domain.Item, quantity int)
	SearchResults(query string, items []domain.Item)
	Inventory(items []domain.Item)
	CSV(rows [][]string) error
	Transactions(txs []domain.Transaction)
	Ages(ages []domain.ItemAge)
}
