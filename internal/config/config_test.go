package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("FINCH_TEST_STR", "hello")
	assert.Equal(t, "hello", GetEnv("FINCH_TEST_STR", "fallback"))
	assert.Equal(t, "fallback", GetEnv("FINCH_TEST_MISSING", "fallback"))

	// Empty counts as unset.
	t.Setenv("FINCH_TEST_EMPTY", "")
	assert.Equal(t, "fallback", GetEnv("FINCH_TEST_EMPTY", "fallback"))
}

func TestGetIntEnv(t *testing.T) {
	t.Setenv("FINCH_TEST_INT", "42")
	assert.Equal(t, 42, GetIntEnv("FINCH_TEST_INT", 7))
	assert.Equal(t, 7, GetIntEnv("FINCH_TEST_MISSING", 7))

	t.Setenv("FINCH_TEST_BAD_INT", "forty-two")
	assert.Equal(t, 7, GetIntEnv("FINCH_TEST_BAD_INT", 7))
}

func TestGetFloatEnv(t *testing.T) {
	t.Setenv("FINCH_TEST_FLOAT", "99.5")
	assert.Equal(t, 99.5, GetFloatEnv("FINCH_TEST_FLOAT", 1.5))
	assert.Equal(t, 1.5, GetFloatEnv("FINCH_TEST_MISSING", 1.5))
}

func TestGetDurationEnv(t *testing.T) {
	t.Setenv("FINCH_TEST_DUR", "90s")
	assert.Equal(t, 90*time.Second, GetDurationEnv("FINCH_TEST_DUR", time.Hour))
	assert.Equal(t, time.Hour, GetDurationEnv("FINCH_TEST_MISSING", time.Hour))

	t.Setenv("FINCH_TEST_BAD_DUR", "soon")
	assert.Equal(t, time.Hour, GetDurationEnv("FINCH_TEST_BAD_DUR", time.Hour))
}

func TestIsProduction(t *testing.T) {
	t.Setenv("ENV", "development")
	assert.False(t, IsProduction())

	t.Setenv("ENV", "production")
	assert.True(t, IsProduction())
}
