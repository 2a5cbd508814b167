package webhook

import "encoding/json"

// backgroundAckMessage is what the backend replies when the workflow was
// started asynchronously instead of responding synchronously.
const backgroundAckMessage = "Workflow was started"

// wrapperKeys are the known payload wrapper fields, in precedence order.
var wrapperKeys = []string{"output", "text", "response"}

// normalizePayload extracts the raw generated text from a backend
// response body. The backend is not guaranteed to emit a single schema:
// the body may be a bare JSON string, an object exposing one of several
// known wrapper fields, or an array whose first element does. Extraction
// order is fixed and first-match wins; if nothing matches, the whole
// payload is returned stringified so no content is lost.
//
// isBackgroundAck reports the `{"message": "Workflow was started"}`
// acknowledgement, which carries no payload at all.
func normalizePayload(body []byte) (raw string, isBackgroundAck bool) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		// Not JSON; treat the body itself as the generated text.
		return string(body), false
	}

	switch v := payload.(type) {
	case string:
		return v, false

	case map[string]any:
		if msg, ok := v["message"].(string); ok && msg == backgroundAckMessage {
			return "", true
		}
		if s, ok := wrapperField(v); ok {
			return s, false
		}

	case []any:
		if len(v) > 0 {
			if m, ok := v[0].(map[string]any); ok {
				if s, ok := wrapperField(m); ok {
					return s, false
				}
			}
			return stringify(v[0]), false
		}
	}

	return stringify(payload), false
}

// wrapperField returns the first known wrapper field holding a string.
func wrapperField(m map[string]any) (string, bool) {
	for _, key := range wrapperKeys {
		if s, ok := m[key].(string); ok {
			return s, true
		}
	}
	return "", false
}

func stringify(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
