package persistence

import (
	"context"
	"log"

	"github.com/orbitalworks/stellarsim/internal/domain/trading"
)

// LedgerRecorder adapts the repository to the synchronous TradeRecorder
// contract behaviors use mid-trade. Writes are best-effort: a failed insert
// is logged and dropped, because the trade itself already happened.
type LedgerRecorder struct {
	repo trading.TradeLogRepository
}

var _ trading.TradeRecorder = (*LedgerRecorder)(nil)

// NewLedgerRecorder creates a recorder over the repository
func NewLedgerRecorder(repo trading.TradeLogRepository) *LedgerRecorder {
	return &LedgerRecorder{repo: repo}
}

// Record persists one execution entry
func (r *LedgerRecorder) Record(entry *trading.TradeExecutionLog) {
	if err := r.repo.Save(context.Background(), entry); err != nil {
		log.Printf("trade ledger write failed: %v", err)
	}
}
