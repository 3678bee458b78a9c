package logger

import (
	"encoding/json"
	"net/http"
	"strings"
)

const filtered = "[FILTERED]"

// sensitiveFields are field names that should be filtered from logs
var sensitiveFields = []string{
	"password",
	"password_hash",
	"token",
	"access_token",
	"refresh_token",
	"authorization",
	"secret",
	"api_key",
	"session",
	"credential",
	"cookie",
}

func isSensitive(name string) bool {
	lower := strings.ToLower(name)
	for _, field := range sensitiveFields {
		if strings.Contains(lower, field) {
			return true
		}
	}
	return false
}

// RedactHeaders flattens headers for logging with sensitive values masked.
func RedactHeaders(headers http.Header) map[string]string {
	out := make(map[string]string, len(headers))
	for name, values := range headers {
		if isSensitive(name) {
			out[name] = filtered
			continue
		}
		out[name] = strings.Join(values, ", ")
	}
	return out
}

// RedactBody renders a request or response body for logging. JSON bodies have
// sensitive keys masked at any depth; form bodies are masked per key; anything
// else mentioning a sensitive field is dropped entirely.
func RedactBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return redactText(string(body))
	}

	out, err := json.Marshal(redactJSON(data))
	if err != nil {
		return "[ERROR - Failed to marshal filtered JSON]"
	}
	return string(out)
}

func redactText(body string) string {
	if strings.Contains(body, "=") && !strings.ContainsAny(body, " \n") {
		pairs := strings.Split(body, "&")
		for i, pair := range pairs {
			key, _, found := strings.Cut(pair, "=")
			if found && isSensitive(key) {
				pairs[i] = key + "=" + filtered
			}
		}
		return strings.Join(pairs, "&")
	}
	for _, field := range sensitiveFields {
		if strings.Contains(strings.ToLower(body), field) {
			return "[FILTERED - Contains sensitive data]"
		}
	}
	return body
}

func redactJSON(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, value := range v {
			if isSensitive(key) {
				out[key] = filtered
			} else {
				out[key] = redactJSON(value)
			}
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = redactJSON(item)
		}
		return out
	default:
		return v
	}
}
