package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"github.com/rl1809/stockroom/internal/adapter/clock"
	"github.com/rl1809/stockroom/internal/core/domain"
	"github.com/rl1809/stockroom/internal/core/service"
)

func main() {
	var (
		initialStock  int
		totalRequests int
		queueSize     int
	)
	flags := pflag.NewFlagSet("stress_test", pflag.ExitOnError)
	flags.IntVar(&initialStock, "stock", 20, "initial quantity of the item")
	flags.IntVar(&totalRequests, "requests", 50, "number of concurrent single-unit sales")
	flags.IntVar(&queueSize, "queue-size", 100, "event queue capacity")
	flags.Parse(os.Args[1:])

	os.Exit(run(initialStock, totalRequests, queueSize))
}

// run returns the process exit code after the service has been closed.
func run(initialStock, totalRequests, queueSize int) int {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	inventory := service.NewInventoryService(clock.Real{}, queueSize, logger)
	defer inventory.Close()

	// Drain the event queue in background
	go func() {
		for range inventory.Events() {
		}
	}()

	res, err := inventory.Add(ctx, domain.ItemFields{
		Name:     "stress-item",
		Category: "Stress",
		Quantity: initialStock,
		Price:    decimal.NewFromInt(1),
		Unit:     "pcs",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to add item: %v\n", err)
		return 1
	}
	itemID := res.Item.ID

	var successCount atomic.Int32
	var soldOutCount atomic.Int32
	var otherCount atomic.Int32

	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := inventory.Sell(ctx, itemID, 1)
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, service.ErrInsufficientStock):
				soldOutCount.Add(1)
			default:
				otherCount.Add(1)
			}
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	success := int(successCount.Load())
	soldOut := int(soldOutCount.Load())
	expectedSuccess := min(initialStock, totalRequests)

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Initial Stock:    %d\n", initialStock)
	fmt.Printf("Total Requests:   %d\n", totalRequests)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Sold Out:         %d\n", soldOut)
	fmt.Printf("Other Errors:     %d\n", otherCount.Load())
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("==========================================")

	failed := false
	if success == expectedSuccess && soldOut == totalRequests-expectedSuccess {
		fmt.Printf("PASS: Exactly %d sales succeeded, %d sold out\n", success, soldOut)
	} else {
		fmt.Printf("FAIL: Expected %d success/%d sold out, got %d/%d\n",
			expectedSuccess, totalRequests-expectedSuccess, success, soldOut)
		failed = true
	}

	item, err := inventory.Get(itemID)
	if err != nil {
		fmt.Printf("FAIL: item lookup: %v\n", err)
		return 1
	}
	fmt.Printf("Final Stock:      %d\n", item.Quantity)
	if item.Quantity == initialStock-expectedSuccess {
		fmt.Printf("PASS: Stock is %d, no overselling\n", item.Quantity)
	} else {
		fmt.Printf("FAIL: Expected stock %d, got %d\n", initialStock-expectedSuccess, item.Quantity)
		failed = true
	}

	// One add plus one sale entry per success.
	if n := len(inventory.ListTransactions()); n == success+1 {
		fmt.Printf("PASS: %d transactions recorded\n", n)
	} else {
		fmt.Printf("FAIL: Expected %d transactions, got %d\n", success+1, n)
		failed = true
	}

	if failed {
		return 1
	}
	return 0
}
