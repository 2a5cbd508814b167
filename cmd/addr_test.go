package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAddr(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		wantErr bool
	}{
		{"loopback with port", "127.0.0.1:3400", false},
		{"localhost with port", "localhost:8080", false},
		{"port only", ":8080", false},
		{"auto-assign port", ":0", false},
		{"missing port", "127.0.0.1", true},
		{"non-numeric port", "127.0.0.1:abc", true},
		{"port out of range", "127.0.0.1:70000", true},
		{"whitespace host", "bad host:8080", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAddr(tt.addr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
