package webhook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePayload(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantAck bool
	}{
		{"bare json string", `"**Title:** Hello"`, "**Title:** Hello", false},
		{"output wrapper", `{"output":"generated text"}`, "generated text", false},
		{"text wrapper", `{"text":"generated text"}`, "generated text", false},
		{"response wrapper", `{"response":"generated text"}`, "generated text", false},
		{"output wins over text", `{"text":"second","output":"first"}`, "first", false},
		{"text wins over response", `{"response":"second","text":"first"}`, "first", false},
		{"array first element wrapper", `[{"output":"from array"}]`, "from array", false},
		{"array first element string", `["plain entry"]`, `"plain entry"`, false},
		{"array first element object without wrapper", `[{"other":1}]`, `{"other":1}`, false},
		{"unrecognized object stringified", `{"something":"else"}`, `{"something":"else"}`, false},
		{"not json at all", "raw body text", "raw body text", false},
		{"background ack", `{"message":"Workflow was started"}`, "", true},
		{"other message is not an ack", `{"message":"done","output":"payload"}`, "payload", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, ack := normalizePayload([]byte(tt.body))
			assert.Equal(t, tt.wantAck, ack)
			assert.Equal(t, tt.want, raw)
		})
	}
}
