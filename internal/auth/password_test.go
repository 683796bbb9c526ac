package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"valid", "Sufficient1", nil},
		{"too short", "short1A", ErrPasswordTooShort},
		{"no uppercase", "alllowercase1", ErrPasswordNoUpper},
		{"no digit", "NoDigitsHere", ErrPasswordNoDigit},
		{"too long", strings.Repeat("Aa1", 25), ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Sufficient1", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "Sufficient1", hash)

	assert.NoError(t, CheckPassword("Sufficient1", hash))
	assert.ErrorIs(t, CheckPassword("WrongPassword1", hash), ErrInvalidPassword)
}

func TestHashPassword_RejectsPolicyViolations(t *testing.T) {
	_, err := HashPassword("short1A", 4)
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}
