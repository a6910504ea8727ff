// Command stockctl runs the reference inventory session against an in-memory
// store and prints every report to stdout.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"github.com/rl1809/stockroom/internal/adapter/clock"
	"github.com/rl1809/stockroom/internal/adapter/importer"
	"github.com/rl1809/stockroom/internal/adapter/report"
	"github.com/rl1809/stockroom/internal/config"
	"github.com/rl1809/stockroom/internal/core/domain"
	"github.com/rl1809/stockroom/internal/core/service"
)

func main() {
	var (
		importPath string
		logLevel   string
	)
	flags := pflag.NewFlagSet("stockctl", pflag.ExitOnError)
	flags.StringVar(&importPath, "import", "", "YAML or JSON file of items to load before the session")
	flags.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.Parse(os.Args[1:])

	level, err := config.ParseLevel(logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stockctl: %v\n", err)
		os.Exit(2)
	}

	if err := run(context.Background(), os.Stdout, importPath, config.NewLogger(level)); err != nil {
		fmt.Fprintf(os.Stderr, "stockctl: %v\n", err)
		os.Exit(1)
	}
}

type session struct {
	ctx       context.Context
	inventory *service.InventoryService
	out       *report.TextReporter
}

func run(ctx context.Context, w io.Writer, importPath string, logger *slog.Logger) error {
	s := &session{
		ctx:       ctx,
		inventory: service.NewInventoryService(clock.Real{}, 0, logger),
		out:       report.NewTextReporter(w),
	}

	if importPath != "" {
		records, err := importer.LoadFile(importPath)
		if err != nil {
			return err
		}
		results, err := s.inventory.ImportBatch(ctx, records)
		if err != nil {
			return fmt.Errorf("import %s: %w", importPath, err)
		}
		for _, res := range results {
			s.show(res)
		}
	}

	for _, f := range []domain.ItemFields{
		item("Apple", "Fruit", 10, "1.5", "kg"),
		item("Banana", "Fruit", 5, "1", "kg"),
		item("Orange", "Fruit", 3, "2", "kg"),
		item("Milk", "Dairy", 5, "3", "litre"),
	} {
		res, err := s.inventory.Add(ctx, f)
		if err != nil {
			return err
		}
		s.show(res)
	}

	if err := s.sell("Apple", 2); err != nil {
		return err
	}
	if err := s.restock("Milk", 2); err != nil {
		return err
	}

	s.out.SearchResults("mil", s.inventory.Search("mil"))
	if err := s.out.CSV(s.inventory.ExportRows()); err != nil {
		return err
	}

	s.inventory.RegisterCustomField("Origin")
	appleID, err := s.inventory.FindByName("Apple")
	if err != nil {
		return err
	}
	if _, err := s.inventory.SetItemCustomField(ctx, appleID, "Origin", "India"); err != nil {
		return err
	}

	s.out.Inventory(s.inventory.ListInventory())
	s.out.Transactions(s.inventory.ListTransactions())
	s.out.Ages(s.inventory.ItemAges())
	return nil
}

func (s *session) sell(name string, quantity int) error {
	id, err := s.inventory.FindByName(name)
	if err != nil {
		return err
	}
	res, err := s.inventory.Sell(s.ctx, id, quantity)
	if err != nil {
		return err
	}
	s.out.Sold(res.Item, quantity)
	s.show(res)
	return nil
}

func (s *session) restock(name string, quantity int) error {
	id, err := s.inventory.FindByName(name)
	if err != nil {
		return err
	}
	res, err := s.inventory.Restock(s.ctx, id, quantity)
	if err != nil {
		return err
	}
	s.out.Restocked(res.Item, quantity)
	s.show(res)
	return nil
}

// show prints the alert raised by res, if any, and refreshes the dashboard.
func (s *session) show(res *service.MutationResult) {
	if res.Alert != nil {
		s.out.Alert(*res.Alert)
	}
	s.out.Dashboard(s.inventory.Dashboard())
}

func item(name, category string, quantity int, price, unit string) domain.ItemFields {
	return domain.ItemFields{
		Name:     name,
		Category: category,
		Quantity: quantity,
		Price:    decimal.RequireFromString(price),
		Unit:     unit,
	}
}
