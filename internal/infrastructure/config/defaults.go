package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults: an ephemeral ledger unless configured otherwise.
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = ":memory:"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 2
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 30 * time.Minute
	}

	// Simulation defaults
	if cfg.Simulation.Seed == 0 {
		cfg.Simulation.Seed = 42
	}
	if cfg.Simulation.TickRate == 0 {
		cfg.Simulation.TickRate = 10
	}
	if cfg.Simulation.Stations == 0 {
		cfg.Simulation.Stations = 6
	}
	if cfg.Simulation.Traders == 0 {
		cfg.Simulation.Traders = 3
	}
	if cfg.Simulation.Drones == 0 {
		cfg.Simulation.Drones = 2
	}
	if cfg.Simulation.Patrols == 0 {
		cfg.Simulation.Patrols = 1
	}
	if cfg.Simulation.FieldRadius == 0 {
		cfg.Simulation.FieldRadius = 12
	}
	if cfg.Simulation.Systems == 0 {
		cfg.Simulation.Systems = 2
	}

	// AI routing defaults; behavior tunables default in the domain layer.
	if cfg.AI.Routing.CellSize == 0 {
		cfg.AI.Routing.CellSize = 0.5
	}
	if cfg.AI.Routing.RefreshInterval == 0 {
		cfg.AI.Routing.RefreshInterval = time.Second
	}
	if cfg.AI.Routing.RouteTTL == 0 {
		cfg.AI.Routing.RouteTTL = 10 * time.Second
	}
	if cfg.AI.Routing.MaxCachedRoutes == 0 {
		cfg.AI.Routing.MaxCachedRoutes = 10
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}
