// Package auth provides authentication for the application.
//
// Sessions are stateless: a successful login mints a signed, time-limited
// access token carried in the "access_token" cookie (browser) or in an
// "Authorization: Bearer" header (API clients). No session state is stored
// server-side; any replica holding the secret key can validate a token.
//
// # Configuration
//
//	AUTH_SECRET_KEY=<random-string>  # Required; signs access tokens
//	AUTH_TOKEN_TTL=15m               # Lifetime embedded in issued tokens
//	AUTH_COOKIE_MAX_AGE=3600         # Cookie lifetime in seconds
//	AUTH_BCRYPT_COST=12              # bcrypt cost factor
//	AUTH_SECURE_COOKIES=true         # HTTPS-only cookies
//
// The token TTL and the cookie max-age are independent; whichever is
// shorter effectively bounds the session.
//
// # Usage
//
// Initialize authentication in entrypoint:
//
//	tokens := auth.NewTokenService(cfg.Auth)
//	service := auth.NewService(userRepo, cfg.Auth)
//	gate := auth.NewMiddleware(tokens, service, cfg.Auth)
//	router.Use(gate.Handler())
//
// Extract the authenticated user in handlers:
//
//	user := auth.CurrentUser(c) // never nil past the gate on protected paths
package auth
