package routing

// PlanAttempts expands cfg into the ordered list of distinct attempts to try.
//
// The routed provider is exhausted across every model and base URL before the
// direct provider is planned at all. Within a provider, models vary slowest and
// base URLs fastest. Duplicate (provider, model, base URL) triples are dropped,
// keeping the first occurrence. The first attempt is always the primary model
// on the primary base URL with empty overrides.
//
// The result is never empty: a degenerate config yields one default attempt.
func PlanAttempts(cfg ProviderConfig) []AttemptSpec {
	baseURLs := dedupe(append([]string{cfg.baseURL}, cfg.fallbackBaseURLs...))
	models := dedupe(append([]string{cfg.model}, cfg.fallbackModels...))

	attempts := make([]AttemptSpec, 0, len(providerOrder)*len(models)*len(baseURLs))
	seen := make(map[attemptKey]struct{})

	for _, provider := range providerOrder {
		for _, model := range models {
			for _, baseURL := range baseURLs {
				attempt := AttemptSpec{
					Provider:  provider,
					Model:     model,
					BaseURL:   baseURL,
					Overrides: buildOverrides(cfg, provider, model, baseURL),
				}
				if _, ok := seen[attempt.key()]; ok {
					continue
				}
				seen[attempt.key()] = struct{}{}
				attempts = append(attempts, attempt)
			}
		}
	}

	if len(attempts) == 0 {
		attempts = append(attempts, AttemptSpec{
			Provider: ProviderRouted,
			Model:    cfg.model,
			BaseURL:  cfg.baseURL,
		})
	}

	return attempts
}

func buildOverrides(cfg ProviderConfig, provider ProviderTag, model, baseURL string) Overrides {
	var o Overrides

	if baseURL != cfg.baseURL {
		o.BaseURL = baseURL
	}

	switch provider {
	case ProviderRouted:
		// A base URL change alone does not force a model override.
		if model != cfg.model {
			o.Model = model
		}
	case ProviderDirect:
		// The direct path has no default model binding, so the model is always explicit.
		o.Provider = ProviderDirect
		o.Model = model
		if len(cfg.headers) > 0 {
			o.DefaultHeaders = copyHeaders(cfg.headers)
			o.ExtraHeaders = copyHeaders(cfg.headers)
		}
	}

	return o
}

// dedupe drops empty and repeated values, preserving first-occurrence order.
func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
