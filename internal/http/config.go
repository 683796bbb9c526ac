package http

import (
	"github.com/mrlokans/segmentor/internal/auth"
	"github.com/mrlokans/segmentor/internal/config"
	"github.com/mrlokans/segmentor/internal/database"
	"github.com/mrlokans/segmentor/internal/database/segmentations"
)

// RouterConfig holds all dependencies needed to construct the router.
type RouterConfig struct {
	Database      *database.Database
	Segmentations *segmentations.Repository

	AuthService    *auth.Service
	TokenService   *auth.TokenService
	AuthMiddleware *auth.Middleware
	AuthConfig     config.Auth
	CSRFSecret     []byte

	TemplatesPath  string
	StaticPath     string
	MaxUploadBytes int64
	Version        string
}
