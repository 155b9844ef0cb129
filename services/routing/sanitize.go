package routing

// RedactedValue replaces sensitive override values in sanitized records.
const RedactedValue = "[set]"

// sensitiveKeys are redacted by Sanitize. Header payloads are verbose and may
// carry credentials.
var sensitiveKeys = []string{KeyExtraHeaders, KeyDefaultHeaders, KeyAPIKey}

// Sanitize returns a shallow copy of fields with every sensitive key's value
// replaced by RedactedValue. The input is never modified.
func Sanitize(fields map[string]any) map[string]any {
	sanitized := make(map[string]any, len(fields))
	for k, v := range fields {
		sanitized[k] = v
	}
	for _, key := range sensitiveKeys {
		if _, ok := sanitized[key]; ok {
			sanitized[key] = RedactedValue
		}
	}
	return sanitized
}

// SanitizeOverrides is Sanitize applied to the set fields of o.
func SanitizeOverrides(o Overrides) map[string]any {
	return Sanitize(o.Fields())
}
