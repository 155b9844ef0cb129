package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanAttempts_PrimaryFirst(t *testing.T) {
	tests := []struct {
		name string
		cfg  ProviderConfig
	}{
		{
			name: "no fallbacks",
			cfg:  NewProviderConfig("m1", "u1"),
		},
		{
			name: "fallbacks repeating primary values",
			cfg: NewProviderConfig("m1", "u1",
				WithFallbackModels("m1", "m2"),
				WithFallbackBaseURLs("u1", "u2")),
		},
		{
			name: "with headers",
			cfg: NewProviderConfig("m1", "u1",
				WithHeaders(map[string]string{"X-Title": "advisor"})),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := PlanAttempts(tt.cfg)
			require.NotEmpty(t, attempts)

			first := attempts[0]
			assert.Equal(t, ProviderRouted, first.Provider)
			assert.Equal(t, "m1", first.Model)
			assert.Equal(t, "u1", first.BaseURL)
			assert.True(t, first.Overrides.IsEmpty())
		})
	}
}

func TestPlanAttempts_Example(t *testing.T) {
	cfg := NewProviderConfig("m1", "u1",
		WithFallbackModels("m2", "m1"),
		WithFallbackBaseURLs("u2"))

	attempts := PlanAttempts(cfg)
	require.Len(t, attempts, 8)

	expected := []struct {
		provider ProviderTag
		model    string
		baseURL  string
	}{
		{ProviderRouted, "m1", "u1"},
		{ProviderRouted, "m1", "u2"},
		{ProviderRouted, "m2", "u1"},
		{ProviderRouted, "m2", "u2"},
		{ProviderDirect, "m1", "u1"},
		{ProviderDirect, "m1", "u2"},
		{ProviderDirect, "m2", "u1"},
		{ProviderDirect, "m2", "u2"},
	}
	for i, want := range expected {
		assert.Equal(t, want.provider, attempts[i].Provider, "attempt %d provider", i+1)
		assert.Equal(t, want.model, attempts[i].Model, "attempt %d model", i+1)
		assert.Equal(t, want.baseURL, attempts[i].BaseURL, "attempt %d base url", i+1)
	}

	assert.Equal(t, Overrides{}, attempts[0].Overrides)
	assert.Equal(t, Overrides{BaseURL: "u2"}, attempts[1].Overrides)
	assert.Equal(t, Overrides{Model: "m2"}, attempts[2].Overrides)
	assert.Equal(t, Overrides{BaseURL: "u2", Model: "m2"}, attempts[3].Overrides)

	assert.Equal(t, Overrides{Provider: ProviderDirect, Model: "m1"}, attempts[4].Overrides)
	assert.Equal(t, Overrides{Provider: ProviderDirect, Model: "m1", BaseURL: "u2"}, attempts[5].Overrides)
	assert.Equal(t, Overrides{Provider: ProviderDirect, Model: "m2"}, attempts[6].Overrides)
	assert.Equal(t, Overrides{Provider: ProviderDirect, Model: "m2", BaseURL: "u2"}, attempts[7].Overrides)
}

func TestPlanAttempts_HeadersOnlyOnDirect(t *testing.T) {
	headers := map[string]string{"HTTP-Referer": "https://example.com", "X-Title": "advisor"}
	cfg := NewProviderConfig("m1", "u1", WithHeaders(headers))

	attempts := PlanAttempts(cfg)
	require.Len(t, attempts, 2)

	assert.True(t, attempts[0].Overrides.IsEmpty())

	direct := attempts[1]
	assert.Equal(t, ProviderDirect, direct.Provider)
	assert.Equal(t, ProviderDirect, direct.Overrides.Provider)
	assert.Equal(t, "m1", direct.Overrides.Model)
	assert.Empty(t, direct.Overrides.BaseURL)
	assert.Equal(t, headers, direct.Overrides.DefaultHeaders)
	assert.Equal(t, headers, direct.Overrides.ExtraHeaders)
}

func TestPlanAttempts_NoDuplicateTriples(t *testing.T) {
	cfg := NewProviderConfig("m1", "u1",
		WithFallbackModels("m2", "m2", "m1", "m3", "m2"),
		WithFallbackBaseURLs("u1", "u2", "u2", "u1"))

	attempts := PlanAttempts(cfg)

	seen := make(map[attemptKey]bool)
	for _, a := range attempts {
		assert.False(t, seen[a.key()], "duplicate attempt %+v", a.key())
		seen[a.key()] = true
	}
	// 3 models x 2 base urls x 2 providers
	assert.Len(t, attempts, 12)
}

func TestPlanAttempts_RoutedBeforeDirect(t *testing.T) {
	cfg := NewProviderConfig("m1", "u1",
		WithFallbackModels("m2", "m3"),
		WithFallbackBaseURLs("u2", "u3"))

	attempts := PlanAttempts(cfg)

	sawDirect := false
	for _, a := range attempts {
		if a.Provider == ProviderDirect {
			sawDirect = true
			continue
		}
		assert.False(t, sawDirect, "routed attempt %+v planned after a direct attempt", a.key())
	}
	assert.True(t, sawDirect)
}

func TestPlanAttempts_RoutedBaseURLOnlyKeepsDefaultModel(t *testing.T) {
	cfg := NewProviderConfig("m1", "u1", WithFallbackBaseURLs("u2"))

	attempts := PlanAttempts(cfg)
	require.Len(t, attempts, 4)

	assert.Equal(t, Overrides{BaseURL: "u2"}, attempts[1].Overrides)
	assert.Empty(t, attempts[1].Overrides.Model)
}

func TestPlanAttempts_IgnoresEmptyEntries(t *testing.T) {
	cfg := NewProviderConfig("m1", "u1",
		WithFallbackModels("", "m2"),
		WithFallbackBaseURLs(""))

	attempts := PlanAttempts(cfg)
	assert.Len(t, attempts, 4)
}

func TestPlanAttempts_DegenerateConfig(t *testing.T) {
	attempts := PlanAttempts(ProviderConfig{})
	require.Len(t, attempts, 1)
	assert.True(t, attempts[0].Overrides.IsEmpty())
	assert.Equal(t, ProviderRouted, attempts[0].Provider)
}

func TestPlanAttempts_Deterministic(t *testing.T) {
	cfg := NewProviderConfig("m1", "u1",
		WithFallbackModels("m2"),
		WithFallbackBaseURLs("u2"),
		WithHeaders(map[string]string{"X-Title": "advisor"}))

	assert.Equal(t, PlanAttempts(cfg), PlanAttempts(cfg))
}

func TestPlanAttempts_HeaderCopiesAreIndependent(t *testing.T) {
	headers := map[string]string{"X-Title": "advisor"}
	cfg := NewProviderConfig("m1", "u1", WithHeaders(headers))
	headers["X-Title"] = "mutated"

	attempts := PlanAttempts(cfg)
	direct := attempts[1].Overrides

	assert.Equal(t, "advisor", direct.DefaultHeaders["X-Title"])
	direct.DefaultHeaders["X-Title"] = "changed"
	assert.Equal(t, "advisor", direct.ExtraHeaders["X-Title"])
	assert.Equal(t, "advisor", cfg.Headers()["X-Title"])
}

func TestProviderConfig_FallbackAccessorsReturnCopies(t *testing.T) {
	cfg := NewProviderConfig("m1", "u1",
		WithFallbackModels("m2"),
		WithFallbackBaseURLs("u2"))

	models := cfg.FallbackModels()
	models[0] = "changed"
	urls := cfg.FallbackBaseURLs()
	urls[0] = "changed"

	assert.Equal(t, []string{"m2"}, cfg.FallbackModels())
	assert.Equal(t, []string{"u2"}, cfg.FallbackBaseURLs())
	assert.Nil(t, cfg.Headers())
}
