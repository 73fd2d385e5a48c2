package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/carambole")
	t.Setenv("JWT_SECRET_KEY", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 4, cfg.Progression.BracketSize)
	assert.Equal(t, 5, cfg.Progression.SinglePouleThreshold)
	assert.False(t, cfg.Progression.AllowPouleOfTwo)
	assert.False(t, cfg.Progression.EnableClassificationRound2)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DATABASE_DRIVER", "sqlite3")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("DEFAULT_BRACKET_SIZE", "2")
	t.Setenv("DEFAULT_SINGLE_POULE_THRESHOLD", "0")
	t.Setenv("DEFAULT_ALLOW_POULE_OF_TWO", "true")
	t.Setenv("DEFAULT_ENABLE_CLASSIFICATION_ROUND2", "1")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("RANKINGS_TOPIC", "rankings")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite3", cfg.DatabaseDriver)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 2, cfg.Progression.BracketSize)
	assert.Zero(t, cfg.Progression.SinglePouleThreshold)
	assert.True(t, cfg.Progression.AllowPouleOfTwo)
	assert.True(t, cfg.Progression.EnableClassificationRound2)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "rankings", cfg.RankingsTopic)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing database url", map[string]string{"DATABASE_URL": ""}},
		{"missing jwt secret", map[string]string{"JWT_SECRET_KEY": ""}},
		{"bad port", map[string]string{"SERVER_PORT": "http"}},
		{"port out of range", map[string]string{"SERVER_PORT": "70000"}},
		{"bad log format", map[string]string{"LOG_FORMAT": "xml"}},
		{"bracket size", map[string]string{"DEFAULT_BRACKET_SIZE": "8"}},
		{"negative threshold", map[string]string{"DEFAULT_SINGLE_POULE_THRESHOLD": "-1"}},
		{"bad bool", map[string]string{"DEFAULT_ALLOW_POULE_OF_TWO": "maybe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
