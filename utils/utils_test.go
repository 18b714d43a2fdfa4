package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_RoundTrip(t *testing.T) {
	token, err := GenerateJWT("admin", "s3cret")
	require.NoError(t, err)

	sub, err := ValidateJWT(token, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "admin", sub)

	_, err = ValidateJWT(token, "other")
	assert.Error(t, err)
}

func TestJWT_MissingSecret(t *testing.T) {
	_, err := GenerateJWT("admin", "")
	assert.Error(t, err)

	_, err = ValidateJWT("anything", "")
	assert.Error(t, err)
}

func TestValidateJWT_Rejects(t *testing.T) {
	sign := func(claims jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
		require.NoError(t, err)
		return s
	}

	t.Run("expired", func(t *testing.T) {
		tok := sign(jwt.MapClaims{"sub": "admin", "type": "access", "exp": time.Now().Add(-time.Minute).Unix()})
		_, err := ValidateJWT(tok, "k")
		assert.Error(t, err)
	})

	t.Run("refresh token", func(t *testing.T) {
		tok := sign(jwt.MapClaims{"sub": "admin", "type": "refresh", "exp": time.Now().Add(time.Minute).Unix()})
		_, err := ValidateJWT(tok, "k")
		assert.ErrorContains(t, err, "not an access token")
	})

	t.Run("no subject", func(t *testing.T) {
		tok := sign(jwt.MapClaims{"type": "access", "exp": time.Now().Add(time.Minute).Unix()})
		_, err := ValidateJWT(tok, "k")
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ValidateJWT("not.a.token", "k")
		assert.Error(t, err)
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.True(t, ValidatePassword(hash, "correct horse"))
	assert.False(t, ValidatePassword(hash, "battery staple"))
	assert.False(t, ValidatePassword("not-a-hash", "correct horse"))
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("RULES_SOURCE", "")
		t.Setenv("PORT", "")
		t.Setenv("DB_HOST", "")
		t.Setenv("HISTORY_RETENTION_DAYS", "")

		cfg, err := LoadConfig("testdata/does-not-exist.env")
		require.NoError(t, err)
		assert.Equal(t, "9000", cfg.Port)
		assert.Equal(t, RulesFromDefault, cfg.RulesSource)
		assert.Equal(t, 30, cfg.HistoryRetentionDays)
		assert.Equal(t, "30 2 * * *", cfg.HistoryPurgeCron)
		assert.False(t, cfg.DatabaseEnabled())
	})

	t.Run("rule files", func(t *testing.T) {
		t.Setenv("RULES_SOURCE", "File")
		t.Setenv("RULES_FILE", " rules/2024.yaml, ,rules/2025.xlsx ")

		cfg, err := LoadConfig("testdata/does-not-exist.env")
		require.NoError(t, err)
		assert.Equal(t, RulesFromFile, cfg.RulesSource)
		assert.Equal(t, []string{"rules/2024.yaml", "rules/2025.xlsx"}, cfg.RulesFiles)
	})

	t.Run("file source without files", func(t *testing.T) {
		t.Setenv("RULES_SOURCE", "file")
		t.Setenv("RULES_FILE", "")
		_, err := LoadConfig("testdata/does-not-exist.env")
		assert.Error(t, err)
	})

	t.Run("postgres source without host", func(t *testing.T) {
		t.Setenv("RULES_SOURCE", "postgres")
		t.Setenv("DB_HOST", "")
		_, err := LoadConfig("testdata/does-not-exist.env")
		assert.Error(t, err)
	})

	t.Run("bad port", func(t *testing.T) {
		t.Setenv("RULES_SOURCE", "")
		t.Setenv("PORT", "99999")
		_, err := LoadConfig("testdata/does-not-exist.env")
		assert.Error(t, err)
	})

	t.Run("bad retention", func(t *testing.T) {
		t.Setenv("RULES_SOURCE", "")
		t.Setenv("PORT", "")
		t.Setenv("HISTORY_RETENTION_DAYS", "0")
		_, err := LoadConfig("testdata/does-not-exist.env")
		assert.Error(t, err)
	})

	t.Run("unknown source", func(t *testing.T) {
		t.Setenv("RULES_SOURCE", "redis")
		_, err := LoadConfig("testdata/does-not-exist.env")
		assert.Error(t, err)
	})
}

func TestConfig_DSN(t *testing.T) {
	cfg := Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "zoning"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=zoning sslmode=disable", cfg.DSN())
	assert.True(t, cfg.DatabaseEnabled())
}

func TestGetQueryContext(t *testing.T) {
	ctx, cancel := GetQueryContext(nil, time.Second)
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 500*time.Millisecond)
}
