package routing

// ProviderTag identifies the LLM access path an attempt goes through.
type ProviderTag string

const (
	// ProviderRouted sends requests through OpenRouter. Always tried first.
	ProviderRouted ProviderTag = "openrouter"

	// ProviderDirect calls an OpenAI-compatible endpoint without the routing layer.
	ProviderDirect ProviderTag = "openai"
)

// providerOrder is the order in which provider tags are planned.
var providerOrder = []ProviderTag{ProviderRouted, ProviderDirect}

// Override keys as they appear in sanitized attempt records.
const (
	KeyBaseURL        = "base_url"
	KeyModel          = "model"
	KeyProvider       = "provider"
	KeyDefaultHeaders = "default_headers"
	KeyExtraHeaders   = "extra_headers"
	KeyAPIKey         = "api_key"
)

// ProviderConfig describes the primary LLM endpoint and its fallbacks.
// The zero value is a degenerate config that plans a single default attempt.
// Fields are unexported so a config cannot change after construction.
type ProviderConfig struct {
	model            string
	baseURL          string
	fallbackModels   []string
	fallbackBaseURLs []string
	headers          map[string]string
}

// ProviderOption configures optional ProviderConfig fields.
type ProviderOption func(*ProviderConfig)

// WithFallbackModels sets the alternative models, in preference order.
func WithFallbackModels(models ...string) ProviderOption {
	return func(c *ProviderConfig) {
		c.fallbackModels = append([]string(nil), models...)
	}
}

// WithFallbackBaseURLs sets the alternative endpoints, in preference order.
func WithFallbackBaseURLs(urls ...string) ProviderOption {
	return func(c *ProviderConfig) {
		c.fallbackBaseURLs = append([]string(nil), urls...)
	}
}

// WithHeaders sets the headers sent on the direct provider path.
func WithHeaders(headers map[string]string) ProviderOption {
	return func(c *ProviderConfig) {
		c.headers = copyHeaders(headers)
	}
}

// NewProviderConfig creates a ProviderConfig. Every slice and map passed in is copied.
func NewProviderConfig(model, baseURL string, opts ...ProviderOption) ProviderConfig {
	cfg := ProviderConfig{
		model:   model,
		baseURL: baseURL,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Model returns the primary model identifier.
func (c ProviderConfig) Model() string { return c.model }

// BaseURL returns the primary endpoint URL.
func (c ProviderConfig) BaseURL() string { return c.baseURL }

// FallbackModels returns a copy of the fallback model list.
func (c ProviderConfig) FallbackModels() []string {
	return append([]string(nil), c.fallbackModels...)
}

// FallbackBaseURLs returns a copy of the fallback endpoint list.
func (c ProviderConfig) FallbackBaseURLs() []string {
	return append([]string(nil), c.fallbackBaseURLs...)
}

// Headers returns a copy of the configured headers, or nil when none are set.
func (c ProviderConfig) Headers() map[string]string {
	return copyHeaders(c.headers)
}

// Overrides are the settings an attempt changes relative to the defaults.
// Zero-valued fields mean "use the default".
type Overrides struct {
	BaseURL  string
	Model    string
	Provider ProviderTag

	// DefaultHeaders and ExtraHeaders carry the same data. Client-level
	// headers read the former, per-request headers read the latter.
	DefaultHeaders map[string]string
	ExtraHeaders   map[string]string

	// APIKey is never set by the planner but is redacted if a caller sets it.
	APIKey string
}

// IsEmpty reports whether the overrides change nothing.
func (o Overrides) IsEmpty() bool {
	return o.BaseURL == "" &&
		o.Model == "" &&
		o.Provider == "" &&
		len(o.DefaultHeaders) == 0 &&
		len(o.ExtraHeaders) == 0 &&
		o.APIKey == ""
}

// Fields returns the set overrides keyed by their override key.
// Header maps are copied.
func (o Overrides) Fields() map[string]any {
	fields := make(map[string]any)
	if o.BaseURL != "" {
		fields[KeyBaseURL] = o.BaseURL
	}
	if o.Model != "" {
		fields[KeyModel] = o.Model
	}
	if o.Provider != "" {
		fields[KeyProvider] = string(o.Provider)
	}
	if len(o.DefaultHeaders) > 0 {
		fields[KeyDefaultHeaders] = copyHeaders(o.DefaultHeaders)
	}
	if len(o.ExtraHeaders) > 0 {
		fields[KeyExtraHeaders] = copyHeaders(o.ExtraHeaders)
	}
	if o.APIKey != "" {
		fields[KeyAPIKey] = o.APIKey
	}
	return fields
}

// AttemptSpec is one planned configuration. Provider, Model and BaseURL are
// the resolved values and form the deduplication key.
type AttemptSpec struct {
	Provider  ProviderTag
	Model     string
	BaseURL   string
	Overrides Overrides
}

type attemptKey struct {
	provider ProviderTag
	model    string
	baseURL  string
}

func (a AttemptSpec) key() attemptKey {
	return attemptKey{provider: a.Provider, model: a.Model, baseURL: a.BaseURL}
}

func copyHeaders(headers map[string]string) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		out[k] = v
	}
	return out
}
