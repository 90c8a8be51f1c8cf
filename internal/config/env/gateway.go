package envconfig

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type gatewayEnv struct {
	BaseURL  string        `env:"PAYMENT_GATEWAY_BASE_URL,required"`
	APIKey   string        `env:"PAYMENT_GATEWAY_API_KEY,required"`
	Timeout  time.Duration `env:"PAYMENT_GATEWAY_TIMEOUT,required"`
	Currency string        `env:"PAYMENT_CURRENCY" envDefault:"BDT"`
}

type gateway struct {
	raw gatewayEnv
}

func NewGatewayConfig() (*gateway, error) {
	var raw gatewayEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &gateway{raw: raw}, nil
}

func (cfg *gateway) BaseURL() string        { return cfg.raw.BaseURL }
func (cfg *gateway) APIKey() string         { return cfg.raw.APIKey }
func (cfg *gateway) Timeout() time.Duration { return cfg.raw.Timeout }
func (cfg *gateway) Currency() string       { return cfg.raw.Currency }
