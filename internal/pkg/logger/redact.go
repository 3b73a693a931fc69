package logger

import "strings"

// RedactEmail masks an email address for safe logging.
// "john.doe@example.com" → "jo***@example.com"
// Short local parts (≤2 chars) are fully masked: "ab@example.com" → "***@example.com"
func RedactEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return "***@***"
	}
	name := parts[0]
	if len(name) > 2 {
		return name[:2] + "***@" + parts[1]
	}
	return "***@" + parts[1]
}

// RedactToken masks an opaque secret, keeping only a short prefix so log
// lines from the same token can still be correlated.
// "cnon:card-nonce-ok" → "cnon***"
func RedactToken(tok string) string {
	if len(tok) <= 4 {
		return "***"
	}
	return tok[:4] + "***"
}
