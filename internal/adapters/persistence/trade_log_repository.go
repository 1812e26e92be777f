// Package persistence implements the trade ledger storage over GORM.
package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/orbitalworks/stellarsim/internal/domain/shared"
	"github.com/orbitalworks/stellarsim/internal/domain/trading"
)

// GormTradeLogRepository implements TradeLogRepository using GORM
type GormTradeLogRepository struct {
	db *gorm.DB
}

// Compile-time check against the domain contract.
var _ trading.TradeLogRepository = (*GormTradeLogRepository)(nil)

// NewGormTradeLogRepository creates a new GORM trade log repository
func NewGormTradeLogRepository(db *gorm.DB) *GormTradeLogRepository {
	return &GormTradeLogRepository{db: db}
}

// Save persists a new execution log entry
func (r *GormTradeLogRepository) Save(ctx context.Context, entry *trading.TradeExecutionLog) error {
	model := r.entryToModel(entry)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save trade execution log: %w", result.Error)
	}
	return nil
}

// FindByAgent retrieves one agent's executions, newest first. A limit of
// zero returns everything.
func (r *GormTradeLogRepository) FindByAgent(
	ctx context.Context,
	agent shared.EntityID,
	limit, offset int,
) ([]*trading.TradeExecutionLog, error) {
	query := r.db.WithContext(ctx).
		Where("agent_id = ?", string(agent)).
		Order("executed_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var models []TradeExecutionLogModel
	if result := query.Find(&models); result.Error != nil {
		return nil, fmt.Errorf("failed to find trade execution logs: %w", result.Error)
	}

	entries := make([]*trading.TradeExecutionLog, len(models))
	for i, model := range models {
		entries[i] = r.modelToEntry(&model)
	}
	return entries, nil
}

// Summarize aggregates executions, units, and gross value per resource kind
func (r *GormTradeLogRepository) Summarize(ctx context.Context) ([]*trading.TradeSummary, error) {
	type row struct {
		Resource   string
		Executions int
		TotalUnits int
		GrossValue float64
	}

	var rows []row
	result := r.db.WithContext(ctx).
		Model(&TradeExecutionLogModel{}).
		Select("resource, COUNT(*) AS executions, SUM(actual_units) AS total_units, SUM(total_value) AS gross_value").
		Group("resource").
		Order("resource").
		Scan(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to summarize trade execution logs: %w", result.Error)
	}

	summaries := make([]*trading.TradeSummary, len(rows))
	for i, r := range rows {
		summaries[i] = &trading.TradeSummary{
			Resource:   shared.Resource(r.Resource),
			Executions: r.Executions,
			TotalUnits: r.TotalUnits,
			GrossValue: r.GrossValue,
		}
	}
	return summaries, nil
}

func (r *GormTradeLogRepository) entryToModel(entry *trading.TradeExecutionLog) *TradeExecutionLogModel {
	return &TradeExecutionLogModel{
		AgentID:      string(entry.Agent()),
		StationID:    string(entry.Station()),
		Side:         string(entry.Side()),
		Resource:     string(entry.Resource()),
		PlannedUnits: entry.PlannedUnits(),
		ActualUnits:  entry.ActualUnits(),
		PricePerUnit: entry.PricePerUnit(),
		TotalValue:   entry.TotalValue(),
		ExecutedAt:   entry.ExecutedAt(),
	}
}

func (r *GormTradeLogRepository) modelToEntry(model *TradeExecutionLogModel) *trading.TradeExecutionLog {
	return trading.ReconstructTradeExecutionLog(
		model.ID,
		shared.EntityID(model.AgentID),
		shared.EntityID(model.StationID),
		trading.TradeSide(model.Side),
		shared.Resource(model.Resource),
		model.PlannedUnits,
		model.ActualUnits,
		model.PricePerUnit,
		model.ExecutedAt,
	)
}
