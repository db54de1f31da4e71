package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("JT_TEST_VALUE", "value")
	assert.Equal(t, "value", getEnv("JT_TEST_VALUE", "fallback"))

	t.Setenv("JT_TEST_VALUE", "")
	assert.Equal(t, "fallback", getEnv("JT_TEST_VALUE", "fallback"))
}

func TestGetBool(t *testing.T) {
	t.Setenv("JT_TEST_FLAG", "true")
	assert.True(t, getBool("JT_TEST_FLAG", false))

	t.Setenv("JT_TEST_FLAG", "0")
	assert.False(t, getBool("JT_TEST_FLAG", true))

	t.Setenv("JT_TEST_FLAG", "maybe")
	assert.True(t, getBool("JT_TEST_FLAG", true))

	t.Setenv("JT_TEST_FLAG", "")
	assert.False(t, getBool("JT_TEST_FLAG", false))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, splitList(" http://a.local, ,http://b.local "))
	assert.Nil(t, splitList(""))
}

func TestLoad(t *testing.T) {
	t.Setenv("DB_DSN", "host=localhost user=jobs dbname=jobs")
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000")
	t.Setenv("API_REQUIRE_AUTH", "1")

	cfg := Load()
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "jt_session", cfg.SessionName)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.True(t, cfg.APIRequireAuth)
}
