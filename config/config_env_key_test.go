package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"stripe": map[string]any{
			"webhookSecret": "",
		},
		"rateLimit": map[string]any{
			"perMinute": 60,
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "STRIPE_WEBHOOKSECRET", want: "stripe.webhookSecret"},
		{envKey: "RATELIMIT_PERMINUTE", want: "rateLimit.perMinute"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.envKey, existing))
		})
	}
}

func TestResolveEnvKey_LegacyAliases(t *testing.T) {
	existing := map[string]any{"jwt": map[string]any{"secret": ""}}

	assert.Equal(t, "jwt.secret", resolveEnvKey("JWT_SECRET_KEY", existing))
	assert.Equal(t, "stripe.apiKey", resolveEnvKey("STRIPE_API_KEY", existing))
	assert.Equal(t, "http.cors.allowedOrigins", resolveEnvKey("CORS_ORIGINS", existing))
	assert.Equal(t, "jwt.secret", resolveEnvKey("JWT_SECRET", existing))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t,
		[]string{"http://localhost:3000", "http://localhost:8000"},
		splitList("http://localhost:3000, http://localhost:8000,"),
	)
	assert.Empty(t, splitList(""))
}

func validConfig() *Config {
	cfg := &Config{}
	cfg.JWT.Secret = "secret"
	cfg.Stripe.APIKey = "sk_test"
	cfg.Stripe.WebhookSecret = "whsec_test"
	cfg.applyDefaults()

	return cfg
}

func TestValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		cfg := validConfig()
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "HS256", cfg.JWT.Algorithm)
		assert.Equal(t, 24, cfg.JWT.AccessExpiryHours)
		assert.Equal(t, 30, cfg.JWT.RefreshExpiryDays)
		assert.Equal(t, 60, cfg.RateLimit.PerMinute)
		assert.Equal(t, "/api", cfg.HTTP.APIPrefix)
	})

	t.Run("missing secrets are reported together", func(t *testing.T) {
		cfg := &Config{}
		cfg.applyDefaults()

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
		assert.Contains(t, err.Error(), "stripe.apiKey")
		assert.Contains(t, err.Error(), "stripe.webhookSecret")
	})

	t.Run("production requires admin email", func(t *testing.T) {
		cfg := validConfig()
		cfg.Env.Env = "production"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "admin.email")
	})

	t.Run("unsupported algorithm", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWT.Algorithm = "RS256"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported jwt algorithm")
	})
}
