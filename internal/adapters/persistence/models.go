package persistence

import (
	"time"
)

// TradeExecutionLogModel represents the trade_execution_logs table
type TradeExecutionLogModel struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement"`
	AgentID      string    `gorm:"column:agent_id;not null;index"`
	StationID    string    `gorm:"column:station_id;not null;index"`
	Side         string    `gorm:"column:side;not null"`
	Resource     string    `gorm:"column:resource;not null;index"`
	PlannedUnits int       `gorm:"column:planned_units;not null"`
	ActualUnits  int       `gorm:"column:actual_units;not null"`
	PricePerUnit float64   `gorm:"column:price_per_unit;not null"`
	TotalValue   float64   `gorm:"column:total_value;not null"`
	ExecutedAt   time.Time `gorm:"column:executed_at;not null;index"`
}

func (TradeExecutionLogModel) TableName() string {
	return "trade_execution_logs"
}
