package port

import (
	"context"

	"github.com/rl1809/stockroom/internal/core/domain"
)

type JournalRepository interface {
	// AppendTransaction mirrors one transaction into the audit journal
	AppendTransaction(ctx context.Context, tx domain.Transaction) error
}
