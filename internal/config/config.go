package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App         App
	Postgres    Postgres
	Redis       Redis
	HTTP        HTTP
	Probe       Probe
	Metrics     Metrics
	Ledger      Ledger
	Idempotency Idempotency
}

type App struct {
	Name      string `env:"APP_NAME" envDefault:"inn-ledger"`
	Version   string `env:"APP_VERSION" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

type Probe struct {
	ListenAddress string `env:"PROBE_LISTEN_ADDRESS" envDefault:":8081"`
}

type Metrics struct {
	ListenAddress string `env:"METRICS_LISTEN_ADDRESS" envDefault:":9090"`
}

type Ledger struct {
	// ReconcileTimeout bounds every transaction workflow call.
	ReconcileTimeout time.Duration `env:"RECONCILE_TIMEOUT" envDefault:"5s"`
}

type Idempotency struct {
	TTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}
