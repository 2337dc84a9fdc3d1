package config

import (
	"errors"
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/glidepath/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the computation API (default from Config)
//	-d string   path of the client-local database file
//	-m string   membership handshake timeout, Go duration syntax
//
// Note: the function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other
// components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the computation API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the client-local database")
	membershipTimeout := fs.String("m", "", "membership handshake timeout (e.g. 3m)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if d, err := parseDuration(*membershipTimeout); err == nil {
		cfg.MembershipTimeout = d
	}
}

// parseDuration is a strict wrapper over time.ParseDuration that treats the
// empty string and nonpositive values as "not set".
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, errors.New("empty duration")
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, errors.New("nonpositive duration")
	}
	return d, nil
}
