package config

import (
	"github.com/caarlos0/env/v11"
)

// envConfig is a DTO for environment overrides. Zero values mean "not set"
// and leave the current Config value alone.
type envConfig struct {
	APIBaseURL        string `env:"GLIDEPATH_API_URL"`
	IdentityBaseURL   string `env:"GLIDEPATH_IDENTITY_URL"`
	CallbackAddr      string `env:"GLIDEPATH_CALLBACK_ADDR"`
	DatabasePath      string `env:"GLIDEPATH_DB_PATH"`
	RequestTimeout    string `env:"GLIDEPATH_REQUEST_TIMEOUT"`
	MembershipTimeout string `env:"GLIDEPATH_MEMBERSHIP_TIMEOUT"`
}

// parseEnv overlays Config with values from GLIDEPATH_* environment
// variables. Timeouts use Go duration syntax ("12s", "3m"); unparsable
// values are ignored rather than fatal.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	if ec.APIBaseURL != "" {
		cfg.APIBaseURL = ec.APIBaseURL
	}
	if ec.IdentityBaseURL != "" {
		cfg.IdentityBaseURL = ec.IdentityBaseURL
	}
	if ec.CallbackAddr != "" {
		cfg.CallbackAddr = ec.CallbackAddr
	}
	if ec.DatabasePath != "" {
		cfg.DatabasePath = ec.DatabasePath
	}
	if d, err := parseDuration(ec.RequestTimeout); err == nil {
		cfg.RequestTimeout = d
	}
	if d, err := parseDuration(ec.MembershipTimeout); err == nil {
		cfg.MembershipTimeout = d
	}
}
