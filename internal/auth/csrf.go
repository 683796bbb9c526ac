package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

// CSRFMiddleware creates a Gin middleware for CSRF protection on browser
// form posts. API calls carrying a valid access token skip the check: the
// cookie is SameSite=Lax so cross-site POSTs never present it, and bearer
// clients do not ride ambient cookies at all.
func CSRFMiddleware(secret []byte, secure bool, tokens *TokenService) gin.HandlerFunc {
	csrfProtect := csrf.Protect(
		secret,
		csrf.Secure(secure),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.Path("/"),
		csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler)),
	)

	return func(c *gin.Context) {
		if isAPIWithValidToken(c, tokens) {
			c.Next()
			return
		}

		forwarded := false
		handler := csrfProtect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			forwarded = true
			// Store the CSRF token in the context for templates.
			c.Set("csrf_token", csrf.Token(r))
			c.Request = r
			c.Next()
		}))

		handler.ServeHTTP(c.Writer, c.Request)

		// On rejection csrfProtect writes the error response itself and
		// never calls the inner handler; the chain must stop here or the
		// route handler would still run.
		if !forwarded {
			c.Abort()
		}
	}
}

// csrfErrorHandler handles CSRF validation failures.
func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"detail":"CSRF token invalid or missing"}`))
		return
	}

	referer := r.Referer()
	if referer != "" {
		separator := "?"
		if strings.Contains(referer, "?") {
			separator = "&"
		}
		http.Redirect(w, r, referer+separator+"error=Session+expired.+Please+try+again.", http.StatusSeeOther)
		return
	}

	http.Error(w, "Forbidden - CSRF token invalid", http.StatusForbidden)
}

// isAPIWithValidToken checks if this is an API request with a valid
// access token in the cookie or Authorization header.
func isAPIWithValidToken(c *gin.Context, tokens *TokenService) bool {
	if tokens == nil || !strings.HasPrefix(c.Request.URL.Path, "/api/") {
		return false
	}

	cookieValue, _ := c.Cookie(AccessTokenCookie)
	token := ExtractToken(cookieValue, c.GetHeader("Authorization"))
	if token == "" {
		return false
	}

	_, err := tokens.Validate(token)
	return err == nil
}

// GetCSRFToken retrieves the CSRF token from the Gin context for templates.
func GetCSRFToken(c *gin.Context) string {
	if token, exists := c.Get("csrf_token"); exists {
		if t, ok := token.(string); ok {
			return t
		}
	}
	return ""
}
