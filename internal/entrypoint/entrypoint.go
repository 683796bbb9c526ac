package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/segmentor/internal/auth"
	"github.com/mrlokans/segmentor/internal/config"
	"github.com/mrlokans/segmentor/internal/database"
	"github.com/mrlokans/segmentor/internal/database/segmentations"
	"github.com/mrlokans/segmentor/internal/database/users"
	http_controllers "github.com/mrlokans/segmentor/internal/http"
)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the application together and serves it.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Segmentor v%s", version)

	if cfg.Auth.SecretKey == "" {
		log.Fatalf("AUTH_SECRET_KEY is not set; refusing to start without a token signing key")
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	userRepo := users.NewRepository(db.DB)
	segmentationRepo := segmentations.NewRepository(db.DB)

	authService := auth.NewService(userRepo, cfg.Auth)
	tokenService := auth.NewTokenService(cfg.Auth)
	gate := auth.NewMiddleware(tokenService, authService, cfg.Auth)

	csrfSecret := []byte(cfg.Auth.CSRFSecret)
	if len(csrfSecret) == 0 {
		// Fall back to the signing key so forms work out of the box;
		// set AUTH_CSRF_SECRET to rotate them independently.
		csrfSecret = []byte(cfg.Auth.SecretKey)
	}

	routerCfg := http_controllers.RouterConfig{
		Database:       db,
		Segmentations:  segmentationRepo,
		AuthService:    authService,
		TokenService:   tokenService,
		AuthMiddleware: gate,
		AuthConfig:     cfg.Auth,
		CSRFSecret:     csrfSecret,
		TemplatesPath:  cfg.UI.TemplatesPath,
		StaticPath:     cfg.UI.StaticPath,
		MaxUploadBytes: cfg.Upload.MaxBytes,
		Version:        version,
	}

	router := http_controllers.NewRouter(routerCfg)

	Serve(router, cfg)
}
