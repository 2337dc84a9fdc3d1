// Package config loads the GlidePath CLI configuration from defaults, an
// optional JSON file, GLIDEPATH_* environment variables, and command-line
// flags, in that order of precedence.
package config
