package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/glidepath/internal/flagx"
	"github.com/dmitrijs2005/glidepath/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "3s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config.
type JsonConfig struct {
	APIBaseURL        string         `json:"api_base_url"`
	IdentityBaseURL   string         `json:"identity_base_url"`
	CallbackAddr      string         `json:"callback_addr"`
	DatabasePath      string         `json:"database_path"`
	RequestTimeout    timex.Duration `json:"request_timeout"`
	MembershipTimeout timex.Duration `json:"membership_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file located via
// the -c/-config flags. An absent file means no overlay; read or unmarshal
// errors panic (caller may recover). Only fields present in the JSON
// override the current values.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.IdentityBaseURL != "" {
		cfg.IdentityBaseURL = jc.IdentityBaseURL
	}
	if jc.CallbackAddr != "" {
		cfg.CallbackAddr = jc.CallbackAddr
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.MembershipTimeout.Duration > 0 {
		cfg.MembershipTimeout = jc.MembershipTimeout.Duration
	}
}
