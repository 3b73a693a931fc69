package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedactEmail(t *testing.T) {
	assert.Equal(t, "jo***@example.com", RedactEmail("john.doe@example.com"))
	assert.Equal(t, "***@example.com", RedactEmail("ab@example.com"))
	assert.Equal(t, "***@***", RedactEmail("not-an-email"))
}

func TestRedactToken(t *testing.T) {
	assert.Equal(t, "cnon***", RedactToken("cnon:card-nonce-ok"))
	assert.Equal(t, "***", RedactToken("ab"))
}

func TestLogRedactsSensitiveFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	Info("contact received",
		"email", "jane.roe@example.com",
		"recaptcha_token", "tok-abcdef123456",
		"message", "reach me at jane.roe@example.com please",
	)

	var entry map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ja***@example.com", entry["email"])
	assert.Equal(t, "tok-***", entry["recaptcha_token"])
	assert.NotContains(t, entry["message"], "jane.roe@example.com")
}
