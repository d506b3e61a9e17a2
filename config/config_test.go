package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseArgs() []string {
	return []string{
		"-token-secret", "sssh",
		"-webhook-url", "https://hooks.example.com/intake",
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := parseArgs(baseArgs())
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:80", cfg.Addr)
	assert.Equal(t, 300*time.Second, cfg.WebhookTimeout)
	assert.False(t, cfg.FireAndForget)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, "users.conf", cfg.UsersFile)
	assert.Equal(t, time.Hour, cfg.DraftTTL)
	assert.False(t, cfg.Debug)
}

func TestParseRejectsBadParameters(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "missing token secret",
			args: []string{"-token-secret", "", "-webhook-url", "https://hooks.example.com/intake"},
			want: "-token-secret",
		},
		{
			name: "missing webhook url",
			args: []string{"-token-secret", "sssh", "-webhook-url", ""},
			want: "-webhook-url",
		},
		{
			name: "malformed webhook url",
			args: []string{"-token-secret", "sssh", "-webhook-url", "hooks example com"},
			want: "invalid parameter -webhook-url",
		},
		{
			name: "zero draft ttl",
			args: append(baseArgs(), "-draft-ttl", "0"),
			want: "-draft-ttl",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(tt.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLocalUrl(t *testing.T) {
	cfg, err := parseArgs(append(baseArgs(), "-port", "8080"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.Url())
}
