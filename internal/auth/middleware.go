package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/segmentor/internal/config"
	"github.com/mrlokans/segmentor/internal/entities"
)

// ContextKeyUser is the Gin context key the gate stores the resolved user
// under. Written once by the gate, read by downstream handlers.
const ContextKeyUser = "auth_user"

// LoginPath is where unauthenticated browser requests are redirected.
const LoginPath = "/login"

// publicPrefixes bypass the gate entirely. The home page is deliberately
// not public; only assets and the login/registration flows are.
var publicPrefixes = []string{"/static", "/login", "/register", "/health"}

// UserResolver resolves a validated token subject to an account.
type UserResolver interface {
	ResolveSubject(username string) (*entities.User, error)
}

// Middleware is the single choke point in front of every route: a request
// either targets a public path or must carry a valid token resolving to an
// existing user.
type Middleware struct {
	tokens   *TokenService
	resolver UserResolver
	config   config.Auth
}

// NewMiddleware creates the authentication gate.
func NewMiddleware(tokens *TokenService, resolver UserResolver, cfg config.Auth) *Middleware {
	return &Middleware{
		tokens:   tokens,
		resolver: resolver,
		config:   cfg,
	}
}

// decision is the gate's terminal verdict for one request. Exactly one of
// forward / redirect / status applies; the mapping from failure to response
// lives in apply so every path ends in a definite response.
type decision struct {
	forward     bool
	user        *entities.User
	redirect    string
	status      int
	body        gin.H
	clearCookie bool
}

func forward(user *entities.User) decision {
	return decision{forward: true, user: user}
}

// Handler returns the Gin middleware enforcing the gate. It never lets a
// fault escape to the transport layer: unexpected failures deny access.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		d := m.decide(c)
		m.apply(c, d)
	}
}

func (m *Middleware) decide(c *gin.Context) (d decision) {
	path := c.Request.URL.Path
	isAPI := strings.HasPrefix(path, "/api/")

	// Fail closed on any unexpected fault below.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("auth gate panic on %s: %v", path, r)
			if isAPI {
				d = decision{status: http.StatusInternalServerError, body: gin.H{"detail": "Internal server error"}}
			} else {
				d = decision{redirect: LoginPath}
			}
		}
	}()

	if c.Request.Method == http.MethodOptions || m.isPublicPath(path) {
		return forward(nil)
	}

	cookieValue, _ := c.Cookie(AccessTokenCookie)
	token := ExtractToken(cookieValue, c.GetHeader("Authorization"))

	if token == "" {
		if isAPI {
			return decision{status: http.StatusUnauthorized, body: gin.H{"detail": "Not authenticated"}}
		}
		return decision{redirect: LoginPath}
	}

	claims, err := m.tokens.Validate(token)
	if err != nil {
		// A bad or stale cookie is cleaned up so the browser stops
		// presenting it.
		if isAPI {
			return decision{status: http.StatusUnauthorized, body: gin.H{"detail": "Invalid token"}, clearCookie: true}
		}
		return decision{redirect: LoginPath, clearCookie: true}
	}

	user, err := m.resolver.ResolveSubject(claims.Subject)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Valid token whose subject vanished, e.g. a deleted
			// account. Never forward with null identity.
			if isAPI {
				return decision{status: http.StatusUnauthorized, body: gin.H{"detail": "Invalid token"}, clearCookie: true}
			}
			return decision{redirect: LoginPath, clearCookie: true}
		}
		log.Printf("auth gate: resolving subject %q: %v", claims.Subject, err)
		if isAPI {
			return decision{status: http.StatusInternalServerError, body: gin.H{"detail": "Internal server error"}}
		}
		return decision{redirect: LoginPath}
	}

	return forward(user)
}

func (m *Middleware) apply(c *gin.Context, d decision) {
	if d.clearCookie {
		ClearAccessCookie(c, m.config)
	}

	switch {
	case d.forward:
		if d.user != nil {
			c.Set(ContextKeyUser, d.user)
		}
		c.Next()
	case d.redirect != "":
		c.Redirect(http.StatusFound, d.redirect)
		c.Abort()
	default:
		c.AbortWithStatusJSON(d.status, d.body)
	}
}

func (m *Middleware) isPublicPath(path string) bool {
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// SetAccessCookie writes the access token cookie the way the login flow
// produces it: a "Bearer "-prefixed value, HttpOnly, SameSite=Lax, path /.
func SetAccessCookie(c *gin.Context, cfg config.Auth, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessTokenCookie, bearerPrefix+token, cfg.CookieMaxAge, "/", "", cfg.SecureCookies, true)
}

// ClearAccessCookie removes the access token cookie from the client.
func ClearAccessCookie(c *gin.Context, cfg config.Auth) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessTokenCookie, "", -1, "/", "", cfg.SecureCookies, true)
}

// CurrentUser retrieves the user the gate attached to the request. Past
// the gate on a protected path this never returns nil; handlers must not
// re-validate.
func CurrentUser(c *gin.Context) *entities.User {
	if v, exists := c.Get(ContextKeyUser); exists {
		if user, ok := v.(*entities.User); ok {
			return user
		}
	}
	return nil
}
