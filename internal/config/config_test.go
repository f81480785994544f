package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("ORDENS_TEST_KEY", "value")
	assert.Equal(t, "value", getEnv("ORDENS_TEST_KEY", "def"))
	assert.Equal(t, "def", getEnv("ORDENS_TEST_MISSING", "def"))
}

func TestGetDuration(t *testing.T) {
	t.Setenv("ORDENS_TEST_TTL", "30m")
	assert.Equal(t, 30*time.Minute, getDuration("ORDENS_TEST_TTL", 2*time.Hour))

	t.Setenv("ORDENS_TEST_TTL", "nonsense")
	assert.Equal(t, 2*time.Hour, getDuration("ORDENS_TEST_TTL", 2*time.Hour))

	t.Setenv("ORDENS_TEST_TTL", "-5m")
	assert.Equal(t, 2*time.Hour, getDuration("ORDENS_TEST_TTL", 2*time.Hour))

	assert.Equal(t, 2*time.Hour, getDuration("ORDENS_TEST_TTL_MISSING", 2*time.Hour))
}

func TestAddr(t *testing.T) {
	c := &Config{ServerPort: "9090"}
	assert.Equal(t, ":9090", c.Addr())
}
