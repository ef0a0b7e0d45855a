package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config centraliza variáveis de ambiente e parâmetros de execução do jogo
type Config struct {
	Env          string `env:"ENV" envDefault:"local"`                  // "local", "dev", "prod"
	ServiceName  string `env:"SERVICE_NAME" envDefault:"envelope-game"` // campo padrão nos logs
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`             // debug | info | warn | error
	MetricsPort  string `env:"METRICS_PORT"`                            // vazio desliga /metrics e /healthz
	MaxEnvelopes int    `env:"MAX_ENVELOPES" envDefault:"100"`          // limite de envelopes por rodada
	Seed         int64  `env:"ENVELOPE_SEED" envDefault:"0"`            // 0 = semente aleatória por rodada
}

// Load carrega variáveis de ambiente aplicando os defaults das tags
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MaxEnvelopes < 0 {
		return Config{}, fmt.Errorf("MAX_ENVELOPES must be non-negative, got %d", cfg.MaxEnvelopes)
	}
	return cfg, nil
}
