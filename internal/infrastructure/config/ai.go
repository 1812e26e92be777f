package config

import "time"

// AIConfig holds behavior and route-finding tunables. Zero values defer to
// the per-behavior defaults in the domain layer.
type AIConfig struct {
	Routing  RoutingConfig  `mapstructure:"routing"`
	Trading  TradingConfig  `mapstructure:"trading"`
	Drone    DroneConfig    `mapstructure:"drone"`
	Patrol   PatrolConfig   `mapstructure:"patrol"`
	Waypoint WaypointConfig `mapstructure:"waypoint"`
}

// RoutingConfig tunes the shared route finder
type RoutingConfig struct {
	// CellSize is the proximity index cell edge, in AU
	CellSize float64 `mapstructure:"cell_size" validate:"omitempty,gt=0"`

	// RefreshInterval throttles station index refreshes
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`

	// RouteTTL is how long cached routes stay valid
	RouteTTL time.Duration `mapstructure:"route_ttl"`

	// MaxCachedRoutes caps per-agent cached results
	MaxCachedRoutes int `mapstructure:"max_cached_routes" validate:"min=0"`
}

// TradingConfig tunes the trading behavior
type TradingConfig struct {
	Priority          float64 `mapstructure:"priority"`
	MaxRouteDistance  float64 `mapstructure:"max_route_distance" validate:"omitempty,gt=0"`
	MinProfitPerUnit  float64 `mapstructure:"min_profit_per_unit" validate:"min=0"`
	NoRouteCooldown   float64 `mapstructure:"no_route_cooldown" validate:"omitempty,gt=0"`
	FailedBuyCooldown float64 `mapstructure:"failed_buy_cooldown" validate:"omitempty,gt=0"`
}

// DroneConfig tunes the drone behavior
type DroneConfig struct {
	Priority         float64 `mapstructure:"priority"`
	SearchRadius     float64 `mapstructure:"search_radius" validate:"omitempty,gt=0"`
	RestockThreshold int     `mapstructure:"restock_threshold" validate:"min=0"`
	SpareMinimum     int     `mapstructure:"spare_minimum" validate:"min=0"`
	PickupCap        int     `mapstructure:"pickup_cap" validate:"min=0"`
	PatrolRadius     float64 `mapstructure:"patrol_radius" validate:"omitempty,gt=0"`
	PatrolSpeed      float64 `mapstructure:"patrol_speed" validate:"omitempty,gt=0,lte=1"`
}

// PatrolConfig tunes the patrol behavior
type PatrolConfig struct {
	Priority          float64 `mapstructure:"priority"`
	MaxPatrolDistance float64 `mapstructure:"max_patrol_distance" validate:"omitempty,gt=0"`
	Speed             float64 `mapstructure:"speed" validate:"omitempty,gt=0,lte=1"`
	MinWait           float64 `mapstructure:"min_wait" validate:"min=0"`
	MaxWait           float64 `mapstructure:"max_wait" validate:"omitempty,gtefield=MinWait"`
}

// WaypointConfig tunes the waypoint behavior
type WaypointConfig struct {
	Priority          float64 `mapstructure:"priority"`
	MinLoad           int     `mapstructure:"min_load" validate:"min=0"`
	AutoTradeHoldback int     `mapstructure:"auto_trade_holdback" validate:"min=0"`
	StopPause         float64 `mapstructure:"stop_pause" validate:"min=0"`
}
