// Package redact scrubs sensitive information from strings before they
// are logged. It prevents accidental leakage of credentials, connection
// strings and tokens that might be embedded in error messages.
package redact

import "regexp"

// RedactionPlaceholder replaces any matched sensitive fragment.
const RedactionPlaceholder = "[REDACTED]"

var (
	// Database connection strings with inline credentials.
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`)

	// Secrets and API keys in key=value or key: value form.
	secretRegex = regexp.MustCompile(
		`(?i)(secret|token|password|api[_-]?key)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	// The standard three-part base64url-encoded JWT format.
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)
)

// String returns s with any recognized sensitive fragments replaced by
// the redaction placeholder.
func String(s string) string {
	s = dbConnRegex.ReplaceAllString(s, "${1}://"+RedactionPlaceholder+"@")
	s = secretRegex.ReplaceAllString(s, "${1}${2}"+RedactionPlaceholder)
	s = jwtTokenRegex.ReplaceAllString(s, RedactionPlaceholder)
	return s
}

// Error returns the redacted message of err, or an empty string for a
// nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
