package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvAsString(t *testing.T) {
	t.Setenv("TEST_STRING", "hello")
	assert.Equal(t, "hello", getEnvAsString("TEST_STRING", "fallback"))
	assert.Equal(t, "fallback", getEnvAsString("TEST_STRING_MISSING", "fallback"))
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("TEST_INT", "8080")
	t.Setenv("TEST_INT_BAD", "not-a-number")

	assert.Equal(t, 8080, getEnvAsInt("TEST_INT", 3000))
	assert.Equal(t, 3000, getEnvAsInt("TEST_INT_BAD", 3000))
	assert.Equal(t, 3000, getEnvAsInt("TEST_INT_MISSING", 3000))
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("TEST_BOOL_TRUE", "true")
	t.Setenv("TEST_BOOL_ONE", "1")
	t.Setenv("TEST_BOOL_BAD", "yes please")

	assert.True(t, getEnvAsBool("TEST_BOOL_TRUE", false))
	assert.True(t, getEnvAsBool("TEST_BOOL_ONE", false))
	assert.False(t, getEnvAsBool("TEST_BOOL_BAD", false))
	assert.True(t, getEnvAsBool("TEST_BOOL_MISSING", true))
}

func TestGetEnvAsTimeDuration(t *testing.T) {
	t.Setenv("TEST_DUR", "15m")
	t.Setenv("TEST_DUR_SECONDS", "90")
	t.Setenv("TEST_DUR_BAD", "soon")

	assert.Equal(t, 15*time.Minute, getEnvAsTimeDuration("TEST_DUR", time.Second))
	assert.Equal(t, 90*time.Second, getEnvAsTimeDuration("TEST_DUR_SECONDS", time.Second))
	assert.Equal(t, time.Second, getEnvAsTimeDuration("TEST_DUR_BAD", time.Second))
	assert.Equal(t, time.Second, getEnvAsTimeDuration("TEST_DUR_MISSING", time.Second))
}

func TestGetEnvAsSlice(t *testing.T) {
	t.Setenv("TEST_SLICE", "http://localhost:3000, https://example.com ,")
	t.Setenv("TEST_SLICE_ONE", "single")

	assert.Equal(t,
		[]string{"http://localhost:3000", "https://example.com"},
		getEnvAsSlice("TEST_SLICE", nil))
	assert.Equal(t, []string{"single"}, getEnvAsSlice("TEST_SLICE_ONE", nil))
	assert.Equal(t, []string{"default"}, getEnvAsSlice("TEST_SLICE_MISSING", []string{"default"}))
}
