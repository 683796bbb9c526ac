package auth

import "strings"

// AccessTokenCookie is the cookie carrying the access token. Its value is
// stored as `Bearer <token>` to mirror the Authorization header shape.
const AccessTokenCookie = "access_token"

// bearerPrefix as written by the login handler and API clients.
const bearerPrefix = "Bearer "

// ExtractToken picks the candidate access token from a request's cookie
// value and Authorization header. The cookie takes precedence; a literal
// quote wrapper and a "Bearer " prefix are stripped from either source.
// Returns "" when neither carries a candidate.
func ExtractToken(cookieValue, authorizationHeader string) string {
	if cookieValue != "" {
		token := strings.Trim(cookieValue, `"`)
		token = strings.TrimPrefix(token, bearerPrefix)
		if token != "" {
			return token
		}
	}

	if strings.HasPrefix(authorizationHeader, bearerPrefix) {
		return strings.Trim(strings.TrimPrefix(authorizationHeader, bearerPrefix), `"`)
	}

	return ""
}
