package logger

import (
	"regexp"
)

// sensitiveDataPatterns match credential material that must never reach
// a log file, even inside free-form values like user agents or error
// strings.
var sensitiveDataPatterns = []*regexp.Regexp{
	// Bearer tokens and raw JWTs
	regexp.MustCompile(`(?i)(bearer\s+)([A-Za-z0-9\-._~+/]+=*)`),
	regexp.MustCompile(`(eyJ[A-Za-z0-9_-]{5,}\.eyJ[A-Za-z0-9_-]{5,})\.[A-Za-z0-9_-]{5,}`),

	// key=value style secrets (password=..., api_key: ..., token=...)
	regexp.MustCompile(`(?i)((?:passw(?:or)?d|secret|token|api[_-]?key|auth)[\s:=]+)([^;,\s]{4,})`),

	// session-style cookies
	regexp.MustCompile(`(?i)((?:session|sid|csrf)=)([^;,\s]{4,})`),
}

// RedactSensitiveData replaces credential material in the input with
// "[REDACTED]". The security logger applies it to every free-form
// value before emission.
func RedactSensitiveData(input string) string {
	if input == "" {
		return input
	}
	for _, pattern := range sensitiveDataPatterns {
		input = pattern.ReplaceAllString(input, "$1[REDACTED]")
	}
	return input
}
