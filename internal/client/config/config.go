package config

import "time"

// Config holds runtime settings for the GlidePath CLI.
//
// Fields:
//   - APIBaseURL: base URL of the computation/profile API.
//   - IdentityBaseURL: base URL of the identity provider.
//   - CallbackAddr: loopback host:port the membership handshake redirect
//     lands on.
//   - DatabasePath: path of the client-local SQLite database.
//   - RequestTimeout: per-request bound for remote calls.
//   - MembershipTimeout: how long a handshake waits for the callback before
//     it is failed and torn down.
type Config struct {
	APIBaseURL        string
	IdentityBaseURL   string
	CallbackAddr      string
	DatabasePath      string
	RequestTimeout    time.Duration
	MembershipTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:5000"
	c.IdentityBaseURL = "http://127.0.0.1:9099"
	c.CallbackAddr = "127.0.0.1:53682"
	c.DatabasePath = "glidepath.db"
	c.RequestTimeout = 12 * time.Second
	c.MembershipTimeout = 3 * time.Minute
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables, and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
