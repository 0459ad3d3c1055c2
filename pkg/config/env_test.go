package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("VF_ENV_STRING", "value")
	assert.Equal(t, "value", GetEnvString("VF_ENV_STRING", "def"))
	assert.Equal(t, "def", GetEnvString("VF_ENV_STRING_UNSET", "def"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("VF_ENV_INT", " 42 ")
	assert.Equal(t, 42, GetEnvInt("VF_ENV_INT", 1))

	t.Setenv("VF_ENV_INT", "forty")
	assert.Equal(t, 1, GetEnvInt("VF_ENV_INT", 1))
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("VF_ENV_BOOL", "true")
	assert.True(t, GetEnvBool("VF_ENV_BOOL", false))

	t.Setenv("VF_ENV_BOOL", "nope")
	assert.True(t, GetEnvBool("VF_ENV_BOOL", true))
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("VF_ENV_DURATION", "1h30m")
	assert.Equal(t, 90*time.Minute, GetEnvDuration("VF_ENV_DURATION", time.Second))

	// 単位なしは不正
	t.Setenv("VF_ENV_DURATION", "90")
	assert.Equal(t, time.Second, GetEnvDuration("VF_ENV_DURATION", time.Second))
}
