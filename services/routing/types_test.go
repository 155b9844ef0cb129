package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProviderConfig_CopiesInputs(t *testing.T) {
	models := []string{"m2"}
	urls := []string{"u2"}
	headers := map[string]string{"X-Title": "advisor"}

	cfg := NewProviderConfig("m1", "u1",
		WithFallbackModels(models...),
		WithFallbackBaseURLs(urls...),
		WithHeaders(headers))

	models[0] = "changed"
	urls[0] = "changed"
	headers["X-Title"] = "changed"

	assert.Equal(t, "m1", cfg.Model())
	assert.Equal(t, "u1", cfg.BaseURL())
	assert.Equal(t, []string{"m2"}, cfg.FallbackModels())
	assert.Equal(t, []string{"u2"}, cfg.FallbackBaseURLs())
	assert.Equal(t, map[string]string{"X-Title": "advisor"}, cfg.Headers())
}

func TestProviderConfig_AccessorsReturnCopies(t *testing.T) {
	cfg := NewProviderConfig("m1", "u1",
		WithFallbackModels("m2"),
		WithHeaders(map[string]string{"X-Title": "advisor"}))

	cfg.FallbackModels()[0] = "changed"
	cfg.Headers()["X-Title"] = "changed"

	assert.Equal(t, []string{"m2"}, cfg.FallbackModels())
	assert.Equal(t, "advisor", cfg.Headers()["X-Title"])
}

func TestProviderConfig_ZeroValue(t *testing.T) {
	var cfg ProviderConfig

	assert.Empty(t, cfg.Model())
	assert.Empty(t, cfg.FallbackModels())
	assert.Nil(t, cfg.Headers())
}

func TestOverrides_IsEmpty(t *testing.T) {
	assert.True(t, Overrides{}.IsEmpty())
	assert.False(t, Overrides{Model: "m2"}.IsEmpty())
	assert.False(t, Overrides{ExtraHeaders: map[string]string{"a": "b"}}.IsEmpty())
}
