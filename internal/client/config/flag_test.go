package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name     string
		args     []string
		expected Config
	}{
		{
			name: "api url and database path",
			args: []string{"cmd", "-a", "http://api.example.com", "-d", "/tmp/glide.db"},
			expected: Config{
				APIBaseURL:   "http://api.example.com",
				DatabasePath: "/tmp/glide.db",
			},
		},
		{
			name: "membership timeout",
			args: []string{"cmd", "-m", "45s"},
			expected: Config{
				MembershipTimeout: 45 * time.Second,
			},
		},
		{
			name:     "invalid timeout ignored",
			args:     []string{"cmd", "-m", "abc"},
			expected: Config{},
		},
		{
			name:     "unknown flags filtered out",
			args:     []string{"cmd", "-unknown", "value", "-test.v"},
			expected: Config{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			cfg := &Config{}
			parseFlags(cfg)

			assert.Equal(t, tt.expected, *cfg)
		})
	}
}
