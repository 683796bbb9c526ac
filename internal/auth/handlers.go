package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/segmentor/internal/config"
)

// AuthController handles the login, registration and logout endpoints.
type AuthController struct {
	service *Service
	tokens  *TokenService
	config  config.Auth
}

// NewAuthController creates a new authentication controller.
func NewAuthController(service *Service, tokens *TokenService, cfg config.Auth) *AuthController {
	return &AuthController{
		service: service,
		tokens:  tokens,
		config:  cfg,
	}
}

// RegisterRoutes registers authentication routes on the router.
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	router.GET("/login", ac.LoginPage)
	router.POST("/login", ac.Login)
	router.GET("/register", ac.RegisterPage)
	router.POST("/register", ac.Register)
	router.POST("/logout", ac.Logout)
}

// LoginPage renders the login form.
func (ac *AuthController) LoginPage(c *gin.Context) {
	var errMsg string
	if c.Query("error") != "" {
		errMsg = "Invalid username or password"
	}
	c.HTML(http.StatusOK, "login", gin.H{
		"Title":     "Login",
		"Error":     errMsg,
		"CSRFToken": GetCSRFToken(c),
	})
}

// Login handles the login form submission. On success it mints an access
// token and returns it in the access_token cookie; the cookie max-age and
// the token's own expiry are independent limits.
func (ac *AuthController) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := ac.service.Authenticate(username, password)
	if err != nil {
		// The redirect carries no detail on purpose: unknown username
		// and wrong password look identical to the client.
		c.Redirect(http.StatusFound, "/login?error=1")
		return
	}

	token, err := ac.tokens.Issue(user.Username, UseDefaultTTL)
	if err != nil {
		c.Redirect(http.StatusFound, "/login?error=1")
		return
	}

	SetAccessCookie(c, ac.config, token)
	c.Redirect(http.StatusFound, "/profile")
}

// RegisterPage renders the registration form.
func (ac *AuthController) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register", gin.H{
		"Title":     "Register",
		"CSRFToken": GetCSRFToken(c),
	})
}

// Register handles the registration form submission. Validation and
// duplicate errors re-render the form with a message and the submitted
// username/email kept; success redirects to the login page.
func (ac *AuthController) Register(c *gin.Context) {
	input := RegisterInput{
		Username:        c.PostForm("username"),
		Email:           c.PostForm("email"),
		Password:        c.PostForm("password"),
		PasswordConfirm: c.PostForm("password_confirm"),
	}

	if _, err := ac.service.Register(input); err != nil {
		c.HTML(http.StatusOK, "register", gin.H{
			"Title":     "Register",
			"Error":     registrationMessage(err),
			"Username":  input.Username,
			"Email":     input.Email,
			"CSRFToken": GetCSRFToken(c),
		})
		return
	}

	c.Redirect(http.StatusSeeOther, "/login")
}

// Logout clears the access token cookie.
func (ac *AuthController) Logout(c *gin.Context) {
	ClearAccessCookie(c, ac.config)
	c.Redirect(http.StatusSeeOther, "/")
}

// registrationMessage maps registration failures to user-facing text.
// Registration is not security-sensitive the way login is, so validation
// detail is echoed back to the form.
func registrationMessage(err error) string {
	switch {
	case errors.Is(err, ErrDuplicateCredential):
		return "A user with these details already exists"
	case errors.Is(err, ErrUsernameInvalid),
		errors.Is(err, ErrEmailInvalid),
		errors.Is(err, ErrPasswordTooShort),
		errors.Is(err, ErrPasswordTooLong),
		errors.Is(err, ErrPasswordNoUpper),
		errors.Is(err, ErrPasswordNoDigit),
		errors.Is(err, ErrPasswordMismatch):
		return err.Error()
	default:
		return "Registration failed"
	}
}
