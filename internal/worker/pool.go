// Package worker drains inventory events into the outbound sinks: the
// MySQL journal, the Redis stock mirror and the Redis alert channel.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/rl1809/stockroom/internal/core/domain"
	"github.com/rl1809/stockroom/internal/port"
)

const handleTimeout = 5 * time.Second

// Pool fans events out to a fixed set of workers. Events of one item always
// land on the same worker, so the mirror sees them in log order.
type Pool struct {
	workers int
	journal port.JournalRepository
	cache   port.CacheRepository
	logger  *slog.Logger
}

// NewPool builds a pool. journal and cache may be nil to disable that sink.
func NewPool(workers int, journal port.JournalRepository, cache port.CacheRepository, logger *slog.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{workers: workers, journal: journal, cache: cache, logger: logger}
}

// Run blocks until events is closed and every queued event is handled.
func (p *Pool) Run(events <-chan domain.Event) {
	queues := make([]chan domain.Event, p.workers)
	var wg sync.WaitGroup
	for i := range queues {
		queues[i] = make(chan domain.Event, 64)
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			p.loop(id, queues[id])
		}(i)
	}
	p.logger.Info("started workers", "count", p.workers)

	for ev := range events {
		queues[p.route(ev.Transaction.ItemID)] <- ev
	}
	for _, q := range queues {
		close(q)
	}
	wg.Wait()
	p.logger.Info("workers stopped")
}

func (p *Pool) route(itemID string) int {
	return int(xxhash.Sum64String(itemID) % uint64(p.workers))
}

func (p *Pool) loop(id int, queue <-chan domain.Event) {
	for ev := range queue {
		ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
		p.handle(ctx, id, ev)
		cancel()
	}
}

func (p *Pool) handle(ctx context.Context, id int, ev domain.Event) {
	tx := ev.Transaction
	log := p.logger.With("worker", id, "transaction_id", tx.ID, "type", string(tx.Type), "item_id", tx.ItemID)

	if p.journal != nil {
		if err := p.journal.AppendTransaction(ctx, tx); err != nil {
			log.Error("journal append failed", "error", err)
		}
	}

	if p.cache == nil {
		return
	}

	var err error
	if tx.Type == domain.TransactionDelete {
		err = p.cache.DeleteStock(ctx, tx.ItemID)
	} else {
		err = p.cache.SetStock(ctx, tx.ItemID, tx.Item.Quantity)
	}
	if err != nil {
		log.Error("stock mirror sync failed", "error", err)
	}

	if ev.Alert != nil {
		if err := p.cache.PublishAlert(ctx, *ev.Alert); err != nil {
			log.Error("alert publish failed", "error", err)
		}
	}
}
