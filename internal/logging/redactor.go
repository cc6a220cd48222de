package logging

import (
	"math/big"
	"strings"
)

const redactedValue = "[REDACTED]"

// Redactor handles secret redaction in log fields.
// Raw byte slices and big integers are treated as key material and always redacted,
// whatever key they are logged under. String and error values are scanned for embedded
// key=value secrets, such as a wrapped error quoting a password.
type Redactor struct {
	sensitiveKeys map[string]bool
}

// NewRedactor creates a new Redactor with default sensitive keys.
func NewRedactor() *Redactor {
	return &Redactor{
		sensitiveKeys: map[string]bool{
			// Credentials
			"password":      true,
			"secret":        true,
			"token":         true,
			"authorization": true,

			// SRP protocol values
			"verifier":    true,
			"salt":        true, // Salt can be logged in some contexts, but redact by default
			"a":           true, // Client private value (keys are case-insensitive, so A too)
			"b":           true, // Server private value
			"s":           true, // Raw shared secret
			"k":           true, // Session key
			"x":           true, // Private key derived from the password
			"m1":          true,
			"m2":          true,
			"proof":       true,
			"session_key": true,
			"export_key":  true,
		},
	}
}

// AddSensitiveKey adds a custom key to the redaction list.
func (r *Redactor) AddSensitiveKey(key string) {
	r.sensitiveKeys[strings.ToLower(key)] = true
}

// RemoveSensitiveKey removes a key from the redaction list.
func (r *Redactor) RemoveSensitiveKey(key string) {
	delete(r.sensitiveKeys, strings.ToLower(key))
}

// RedactFields redacts sensitive values from a map of fields.
func (r *Redactor) RedactFields(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}

	redacted := make(map[string]any, len(fields))

	for k, v := range fields {
		switch val := v.(type) {
		case []byte, *big.Int, []*big.Int:
			redacted[k] = redactedValue
		case string:
			if r.isSensitiveKey(k) {
				redacted[k] = redactedValue
			} else {
				redacted[k] = r.RedactString(val)
			}
		case error:
			if r.isSensitiveKey(k) {
				redacted[k] = redactedValue
			} else {
				redacted[k] = r.RedactString(val.Error())
			}
		case map[string]any:
			if r.isSensitiveKey(k) {
				redacted[k] = redactedValue
			} else {
				// Recursively redact nested maps
				redacted[k] = r.RedactFields(val)
			}
		default:
			if r.isSensitiveKey(k) {
				redacted[k] = redactedValue
			} else {
				redacted[k] = v
			}
		}
	}

	return redacted
}

// RedactString redacts sensitive values from a string by checking for key patterns.
func (r *Redactor) RedactString(s string) string {
	lower := strings.ToLower(s)

	for key := range r.sensitiveKeys {
		// Single-letter SRP keys only match in their key=value form
		patterns := []string{
			key + "=",
			"\"" + key + "\":",
		}
		if len(key) > 1 {
			patterns = append(patterns, key+": ")
		}

		for _, pattern := range patterns {
			if containsKeyPattern(lower, pattern) {
				// Found a potential secret - redact the whole line for safety
				return redactedValue
			}
		}
	}

	return s
}

// containsKeyPattern reports whether pattern occurs at a word boundary in s,
// so that "b=" does not match "verb=".
func containsKeyPattern(s, pattern string) bool {
	for i := 0; ; {
		idx := strings.Index(s[i:], pattern)
		if idx < 0 {
			return false
		}
		pos := i + idx
		if pos == 0 || !isWordChar(s[pos-1]) || pattern[0] == '"' {
			return true
		}
		i = pos + 1
	}
}

func isWordChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}

// isSensitiveKey checks if a field key is marked as sensitive.
func (r *Redactor) isSensitiveKey(key string) bool {
	// Only check exact match (case-insensitive)
	// Substring matching was too aggressive and caught legitimate fields
	return r.sensitiveKeys[strings.ToLower(key)]
}
