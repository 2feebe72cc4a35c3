package api

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.temporal.io/sdk/client"
)

// Config carries environment-driven settings for the API and worker processes.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"local"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	PostgresDSN string `env:"POSTGRES_DSN"`

	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`

	TemporalAddress   string `env:"TEMPORAL_ADDRESS"`
	TemporalNamespace string `env:"TEMPORAL_NAMESPACE"`
	TemporalDisabled  bool   `env:"TEMPORAL_DISABLED"`

	// JWTSecret signs actor tokens. When empty, all requests are anonymous
	// and status changes are not attributed in the audit trail.
	JWTSecret string `env:"JWT_SECRET"`

	// Simulated provider tunables.
	MpesaInitiateSuccessRate float64 `env:"MPESA_INITIATE_SUCCESS_RATE" envDefault:"0.90"`
	MpesaCompletionRate      float64 `env:"MPESA_COMPLETION_RATE" envDefault:"0.80"`
	CardIntentSuccessRate    float64 `env:"CARD_INTENT_SUCCESS_RATE" envDefault:"0.95"`
	CardConfirmSuccessRate   float64 `env:"CARD_CONFIRM_SUCCESS_RATE" envDefault:"0.90"`
	NotificationDeliveryRate float64 `env:"NOTIFICATION_DELIVERY_RATE" envDefault:"0.90"`
}

// LoadConfig parses environment variables, applies defaults, and validates
// basic constraints.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.TemporalAddress == "" {
		cfg.TemporalAddress = client.DefaultHostPort
	}
	if cfg.TemporalNamespace == "" {
		cfg.TemporalNamespace = client.DefaultNamespace
	}
	for name, rate := range map[string]float64{
		"MPESA_INITIATE_SUCCESS_RATE": cfg.MpesaInitiateSuccessRate,
		"MPESA_COMPLETION_RATE":       cfg.MpesaCompletionRate,
		"CARD_INTENT_SUCCESS_RATE":    cfg.CardIntentSuccessRate,
		"CARD_CONFIRM_SUCCESS_RATE":   cfg.CardConfirmSuccessRate,
		"NOTIFICATION_DELIVERY_RATE":  cfg.NotificationDeliveryRate,
	} {
		if rate < 0 || rate > 1 {
			return Config{}, fmt.Errorf("%s must be within [0, 1]", name)
		}
	}
	return cfg, nil
}

// SlogLevel maps the configured level name to a slog level.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
