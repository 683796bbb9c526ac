package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/segmentor/internal/config"
)

func csrfRouter(tokens *TokenService, executed *bool) *gin.Engine {
	router := gin.New()
	router.Use(CSRFMiddleware([]byte("32-byte-long-auth-key-for-tests!"), false, tokens))
	router.POST("/register", func(c *gin.Context) {
		*executed = true
		c.Status(http.StatusCreated)
	})
	router.POST("/api/feedback/1", func(c *gin.Context) {
		*executed = true
		c.Status(http.StatusOK)
	})
	router.GET("/login", func(c *gin.Context) {
		c.String(http.StatusOK, GetCSRFToken(c))
	})
	return router
}

func TestCSRF_RejectionStopsHandler(t *testing.T) {
	executed := false
	router := csrfRouter(nil, &executed)

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader("username=alice"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for missing CSRF token, got %d", rr.Code)
	}
	if executed {
		t.Error("Route handler ran despite CSRF rejection")
	}
}

func TestCSRF_SafeMethodForwardsWithToken(t *testing.T) {
	executed := false
	router := csrfRouter(nil, &executed)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200 for GET, got %d", rr.Code)
	}
	if rr.Body.String() == "" {
		t.Error("Expected a CSRF token to be available to the handler")
	}
}

func TestCSRF_TokenAuthenticatedAPISkipsCheck(t *testing.T) {
	tokens := NewTokenService(config.Auth{SecretKey: "test-secret", TokenTTL: 15 * time.Minute})

	executed := false
	router := csrfRouter(tokens, &executed)

	token, err := tokens.Issue("alice", 5*time.Minute)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/feedback/1", strings.NewReader(`{"is_good":true}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200 for token-authenticated API call, got %d", rr.Code)
	}
	if !executed {
		t.Error("Expected the route handler to run")
	}
}
