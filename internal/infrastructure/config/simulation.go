package config

import "time"

// SimulationConfig holds world generation and tick loop configuration
type SimulationConfig struct {
	// Seed drives procedural world generation; the same seed replays the
	// same world
	Seed int64 `mapstructure:"seed"`

	// TickRate is how many scheduler ticks run per second
	TickRate float64 `mapstructure:"tick_rate" validate:"required,gt=0"`

	// Duration bounds a run; zero means run until interrupted
	Duration time.Duration `mapstructure:"duration"`

	// World population
	Stations int `mapstructure:"stations" validate:"min=1"`
	Traders  int `mapstructure:"traders" validate:"min=0"`
	Drones   int `mapstructure:"drones" validate:"min=0"`
	Patrols  int `mapstructure:"patrols" validate:"min=0"`

	// FieldRadius is the station scatter radius around the origin, in AU
	FieldRadius float64 `mapstructure:"field_radius" validate:"omitempty,gt=0"`

	// Systems is how many planetary groupings stations are split across
	Systems int `mapstructure:"systems" validate:"min=1"`
}
