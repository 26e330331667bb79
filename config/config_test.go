package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("APP_ENV", "")

	cfg := Load()
	assert.Equal(t, "foodshare", cfg.AppName)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "redis", cfg.CodeStore)
	assert.Empty(t, cfg.JWTSecret)
}

func TestValidate_MissingSecretFailsFast(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	cfg := Load()
	assert.ErrorIs(t, cfg.Validate(), ErrMissingJWTSecret)
}

func TestValidate_RecaptchaRequiredOutsideDevelopment(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("RECAPTCHA_SECRET", "")
	assert.ErrorIs(t, Load().Validate(), ErrMissingRecaptchaSecret)

	t.Setenv("RECAPTCHA_SECRET", "captcha")
	require.NoError(t, Load().Validate())
}

func TestValidate_CodeStore(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CODE_STORE", "memcached")
	assert.ErrorIs(t, Load().Validate(), ErrUnknownCodeStore)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_TTL", "forever")
	t.Setenv("DB_MAX_CONNS", "many")
	t.Setenv("DEBUG_METRICS_ENABLED", "perhaps")

	cfg := Load()
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.False(t, cfg.DebugMetricsEnabled)
}

func TestSplitLists(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " http://a.test, ,http://b.test", ElasticsearchAddrs: ""}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
	assert.Empty(t, cfg.ESAddrs())
}
