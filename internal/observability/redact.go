package observability

import "regexp"

// piiRule replaces one kind of personal data. Rules run in order, so
// broader patterns come after the ones they would otherwise swallow.
type piiRule struct {
	pattern     *regexp.Regexp
	replacement string
}

var piiRules = []piiRule{
	{regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`), "[EMAIL_REDACTED]"},
	{regexp.MustCompile(`\bhttps?://(?:www\.)?linkedin\.com/in/[A-Za-z0-9_\-]+/?`), "[PROFILE_URL_REDACTED]"},
	{regexp.MustCompile(`\b[0-9]{3}-[0-9]{2}-[0-9]{4}\b`), "[SSN_REDACTED]"},
	{regexp.MustCompile(`\+[0-9]{1,3}[-.\s]?(?:\([0-9]{1,4}\)|[0-9]{1,4})(?:[-.\s]?[0-9]{2,4}){2,3}\b`), "[PHONE_REDACTED]"},
	{regexp.MustCompile(`\(?\b[0-9]{3}\)?[-.\s][0-9]{3}[-.\s][0-9]{4}\b`), "[PHONE_REDACTED]"},
}

// RedactPII masks emails, LinkedIn profile URLs, SSNs and phone numbers so
// user profiles can be logged.
func RedactPII(text string) string {
	for _, rule := range piiRules {
		text = rule.pattern.ReplaceAllString(text, rule.replacement)
	}
	return text
}
