package apiclient

import (
	"encoding/json"
	"strings"
)

var messageKeys = []string{"error", "detail", "message"}

// ExtractMessage pulls the human readable message out of an error body.
// Understood shapes:
//
//	{"error": "..."}                      plain services
//	{"detail": "..."}                     FastAPI HTTPException
//	{"detail": [{"msg": "...", ...}]}     FastAPI request validation
//	{"error": {"message": "..."}}         wrapped error envelopes
//	{"message": "..."}
//
// It returns "" when nothing usable is present.
func ExtractMessage(body []byte) string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	for _, key := range messageKeys {
		raw, ok := payload[key]
		if !ok {
			continue
		}
		if msg := decodeMessage(raw); msg != "" {
			return msg
		}
	}
	return ""
}

func decodeMessage(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var items []struct {
		Msg     string `json:"msg"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &items); err == nil {
		var msgs []string
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			} else if item.Message != "" {
				msgs = append(msgs, item.Message)
			}
		}
		return strings.Join(msgs, "; ")
	}

	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return strings.TrimSpace(obj.Message)
	}
	return ""
}
