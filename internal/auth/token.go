package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mrlokans/segmentor/internal/config"
)

// DefaultTokenTTL applies when a caller issues a token without a TTL.
const DefaultTokenTTL = 15 * time.Minute

// UseDefaultTTL asks Issue to apply the service's configured lifetime.
const UseDefaultTTL time.Duration = -1

// ErrInvalidToken covers every validation failure: malformed token, bad
// signature, expired, missing subject. Callers must not be able to tell
// the sub-reasons apart.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the assertions embedded in an access token.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService issues and validates signed access tokens. The secret key
// is injected once at construction; rotating it invalidates all
// outstanding tokens.
type TokenService struct {
	secretKey  []byte
	defaultTTL time.Duration
	now        func() time.Time
}

// NewTokenService creates a token service from the auth configuration.
func NewTokenService(cfg config.Auth) *TokenService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		secretKey:  []byte(cfg.SecretKey),
		defaultTTL: ttl,
		now:        time.Now,
	}
}

// Issue produces a signed token asserting the subject with an absolute
// expiry of now + ttl. A negative ttl means the caller did not pick one
// and the default applies; ttl == 0 is honored literally and yields a
// token that is expired the moment it is minted.
func (ts *TokenService) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl < 0 {
		ttl = ts.defaultTTL
	}
	now := ts.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ts.secretKey)
}

// Validate verifies the signature and expiry of a token and returns its
// claims. A token without an exp claim is rejected, it would otherwise
// never expire. Every failure surfaces as ErrInvalidToken.
func (ts *TokenService) Validate(tokenString string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return ts.secretKey, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(ts.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
