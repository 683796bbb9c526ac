package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		header string
		want   string
	}{
		{"no candidate", "", "", ""},
		{"cookie with bearer prefix", "Bearer abc123", "", "abc123"},
		{"cookie quoted", `"Bearer abc123"`, "", "abc123"},
		{"cookie raw token", "abc123", "", "abc123"},
		{"header fallback", "", "Bearer abc123", "abc123"},
		{"header quoted token", "", `Bearer "abc123"`, "abc123"},
		{"cookie wins over header", "Bearer from-cookie", "Bearer from-header", "from-cookie"},
		{"header without bearer prefix ignored", "", "Basic abc123", ""},
		{"empty cookie falls through to header", `""`, "Bearer abc123", "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractToken(tt.cookie, tt.header))
		})
	}
}
