package http

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/segmentor/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF protection for browser form posts; token-authenticated API
	// calls pass through.
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.AuthConfig.SecureCookies, cfg.TokenService))
	}

	// Every other route sits behind the gate.
	router.Use(cfg.AuthMiddleware.Handler())

	// Load HTML templates
	tmpl := template.Must(template.New("").ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)

	// Serve static files
	router.Static("/static", cfg.StaticPath)

	// Authentication routes
	authController := auth.NewAuthController(cfg.AuthService, cfg.TokenService, cfg.AuthConfig)
	authController.RegisterRoutes(router)

	// Browser pages
	uiController := NewUIController(cfg.Segmentations)
	router.GET("/", uiController.HomePage)
	router.GET("/profile", uiController.ProfilePage)

	// Health check
	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)

	// Image API
	imagesController := NewImagesController(cfg.Segmentations, cfg.MaxUploadBytes)
	router.POST("/api/upload", imagesController.Upload)
	router.GET("/api/original/:id", imagesController.GetOriginal)
	router.GET("/api/segmented/:id", imagesController.GetSegmented)
	router.POST("/api/feedback/:id", imagesController.Feedback)

	// Account management
	usersController := NewUsersController(cfg.AuthService, cfg.AuthConfig)
	router.DELETE("/api/user/by-username/:username", usersController.DeleteByUsername)

	return router
}
