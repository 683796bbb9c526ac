package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/segmentor/internal/config"
)

func testTokenService(secret string) *TokenService {
	return NewTokenService(config.Auth{
		SecretKey: secret,
		TokenTTL:  15 * time.Minute,
	})
}

func TestTokenService_RoundTrip(t *testing.T) {
	ts := testTokenService("test-secret")

	token, err := ts.Issue("alice", 5*time.Minute)
	require.NoError(t, err)

	claims, err := ts.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
}

func TestTokenService_DefaultTTL(t *testing.T) {
	ts := testTokenService("test-secret")

	token, err := ts.Issue("alice", UseDefaultTTL)
	require.NoError(t, err)

	claims, err := ts.Validate(token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenService_ZeroTTLIsExpiredAtBirth(t *testing.T) {
	ts := testTokenService("test-secret")

	// ttl == 0 is a literal zero lifetime, not a request for the default:
	// exp lands on the issuance instant and the very next tick rejects it.
	issuedAt := time.Now()
	ts.now = func() time.Time { return issuedAt }

	token, err := ts.Issue("alice", 0)
	require.NoError(t, err)

	ts.now = func() time.Time { return issuedAt.Add(time.Second) }
	_, err = ts.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_MissingExpiry(t *testing.T) {
	ts := testTokenService("test-secret")

	// A signed token carrying only a subject must not validate: without
	// exp it would be accepted forever.
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "alice"})
	token, err := raw.SignedString(ts.secretKey)
	require.NoError(t, err)

	_, err = ts.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Expired(t *testing.T) {
	ts := testTokenService("test-secret")

	issuedAt := time.Now().Add(-time.Hour)
	ts.now = func() time.Time { return issuedAt }

	token, err := ts.Issue("alice", 5*time.Minute)
	require.NoError(t, err)

	ts.now = time.Now
	_, err = ts.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_WrongKey(t *testing.T) {
	issuer := testTokenService("issuer-key")
	validator := testTokenService("validator-key")

	token, err := issuer.Issue("alice", 5*time.Minute)
	require.NoError(t, err)

	_, err = validator.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Malformed(t *testing.T) {
	ts := testTokenService("test-secret")

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := ts.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestTokenService_EmptySubject(t *testing.T) {
	ts := testTokenService("test-secret")

	token, err := ts.Issue("", 5*time.Minute)
	require.NoError(t, err)

	_, err = ts.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
