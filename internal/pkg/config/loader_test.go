package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

/* ───────── 文字列 ───────── */

func TestLoadEnvString(t *testing.T) {
	t.Setenv("VF_TEST_STRING", "  custom ")
	assert.Equal(t, "custom", LoadEnvString("VF_TEST_STRING", "def"))

	t.Setenv("VF_TEST_STRING", "")
	assert.Equal(t, "def", LoadEnvString("VF_TEST_STRING", "def"))
}

func TestLoadEnvWithFallback(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		want         string
		wantFallback bool
	}{
		{"unset", "", "0 */6 * * *", false},
		{"valid", "15 4 * * *", "15 4 * * *", false},
		{"invalid cron", "every day", "0 */6 * * *", true},
		{"six fields", "0 0 4 * * *", "0 */6 * * *", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("VF_TEST_CRON", tt.raw)
			got := LoadEnvWithFallback("VF_TEST_CRON", "0 */6 * * *", ValidateCronSchedule)
			assert.Equal(t, tt.want, got.Value)
			assert.Equal(t, tt.wantFallback, got.FallbackApplied)
			if tt.wantFallback {
				assert.Contains(t, got.Warning, "VF_TEST_CRON")
			} else {
				assert.Empty(t, got.Warning)
			}
		})
	}
}

func TestLoadEnvWithFallback_NilValidator(t *testing.T) {
	t.Setenv("VF_TEST_ANY", "whatever")
	got := LoadEnvWithFallback("VF_TEST_ANY", "def", nil)
	assert.Equal(t, "whatever", got.Value)
	assert.False(t, got.FallbackApplied)
}

/* ───────── 数値・期間 ───────── */

func TestLoadEnvDuration(t *testing.T) {
	inRange := func(d time.Duration) error { return ValidateDuration(d, time.Minute, 4*time.Hour) }

	tests := []struct {
		raw          string
		want         time.Duration
		wantFallback bool
	}{
		{"", 30 * time.Minute, false},
		{"45m", 45 * time.Minute, false},
		{"1h30m", 90 * time.Minute, false},
		{"30", 30 * time.Minute, true},
		{"10s", 30 * time.Minute, true},
		{"5h", 30 * time.Minute, true},
		{"-1m", 30 * time.Minute, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Setenv("VF_TEST_DURATION", tt.raw)
			got := LoadEnvDuration("VF_TEST_DURATION", 30*time.Minute, inRange)
			assert.Equal(t, tt.want, got.Value)
			assert.Equal(t, tt.wantFallback, got.FallbackApplied)
		})
	}
}

func TestLoadEnvInt(t *testing.T) {
	inRange := func(v int) error { return ValidateIntRange(v, 1, 50) }

	tests := []struct {
		raw          string
		want         int
		wantFallback bool
	}{
		{"", 10, false},
		{"25", 25, false},
		{" 7 ", 7, false},
		{"0", 10, true},
		{"51", 10, true},
		{"2.5", 10, true},
		{"ten", 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Setenv("VF_TEST_INT", tt.raw)
			got := LoadEnvInt("VF_TEST_INT", 10, inRange)
			assert.Equal(t, tt.want, got.Value)
			assert.Equal(t, tt.wantFallback, got.FallbackApplied)
		})
	}
}

func TestLoadEnvBool(t *testing.T) {
	for _, raw := range []string{"true", "TRUE", "1", "t"} {
		t.Setenv("VF_TEST_BOOL", raw)
		assert.True(t, LoadEnvBool("VF_TEST_BOOL", false).Value, raw)
	}
	for _, raw := range []string{"false", "0", "F"} {
		t.Setenv("VF_TEST_BOOL", raw)
		assert.False(t, LoadEnvBool("VF_TEST_BOOL", true).Value, raw)
	}

	t.Setenv("VF_TEST_BOOL", "yes")
	got := LoadEnvBool("VF_TEST_BOOL", true)
	assert.True(t, got.Value)
	assert.True(t, got.FallbackApplied)
}

/* ───────── リスト ───────── */

func TestLoadEnvList(t *testing.T) {
	allowed := func(s string) error {
		switch s {
		case "news", "research", "events":
			return nil
		}
		return ErrEmpty
	}
	def := []string{"news"}

	tests := []struct {
		name         string
		raw          string
		want         []string
		wantFallback bool
	}{
		{"unset", "", def, false},
		{"trimmed", " research , events ,", []string{"research", "events"}, false},
		{"one bad element", "news,podcasts", def, true},
		{"only commas", ",,", def, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("VF_TEST_LIST", tt.raw)
			got := LoadEnvList("VF_TEST_LIST", def, allowed)
			assert.Equal(t, tt.want, got.Value)
			assert.Equal(t, tt.wantFallback, got.FallbackApplied)
		})
	}
}
