package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"

	"github.com/quizhaus/clueboard/internal/clueboard"
	"github.com/quizhaus/clueboard/internal/events"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/clueboard.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	// Credentials for the seeded quizmaster account. Only used when the
	// hosts table is empty.
	HostEmail    string `env:"HOST_EMAIL" envDefault:"host@quizhaus.dev"`
	HostPassword string `env:"HOST_PASSWORD" envDefault:"changeme"`

	// Event cadence tuning. A weight of zero disables that event; all
	// zeros disables the cadence entirely.
	EventTriggerInterval  int `env:"EVENT_TRIGGER_INTERVAL" envDefault:"4"`
	WeightDoublePoints    int `env:"EVENT_WEIGHT_DOUBLE_POINTS" envDefault:"1"`
	WeightHardReset       int `env:"EVENT_WEIGHT_HARD_RESET" envDefault:"1"`
	WeightReverseQuestion int `env:"EVENT_WEIGHT_REVERSE_QUESTION" envDefault:"1"`
	WeightScoreSteal      int `env:"EVENT_WEIGHT_SCORE_STEAL" envDefault:"1"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}

// Events assembles the event subsystem configuration from the tuning knobs.
func (c *Config) Events() events.Config {
	return events.Config{
		TriggerInterval: c.EventTriggerInterval,
		Weights: map[clueboard.EventKind]int{
			clueboard.EventDoublePoints:    c.WeightDoublePoints,
			clueboard.EventHardReset:       c.WeightHardReset,
			clueboard.EventReverseQuestion: c.WeightReverseQuestion,
			clueboard.EventScoreSteal:      c.WeightScoreSteal,
		},
	}
}
