package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SWEETSHOP_API_URL", "")
	t.Setenv("SWEETSHOP_SESSION_FILE", "")

	cfg := Load()
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.NotEmpty(t, cfg.SessionFile)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SWEETSHOP_API_URL", "https://shop.example.com/api/")
	t.Setenv("SWEETSHOP_SESSION_FILE", "/tmp/s.json")

	cfg := Load()
	assert.Equal(t, "https://shop.example.com/api", cfg.BaseURL, "trailing slash is trimmed")
	assert.Equal(t, "/tmp/s.json", cfg.SessionFile)
}

func TestLoadStub_Defaults(t *testing.T) {
	t.Setenv("STUB_PORT", "")

	cfg := LoadStub()
	assert.Equal(t, "8081", cfg.Port)
	assert.NotEmpty(t, cfg.JWTSecret)
}
