package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/segmentor/internal/auth"
	"github.com/mrlokans/segmentor/internal/config"
)

// UsersController handles account management endpoints.
type UsersController struct {
	authService *auth.Service
	authConfig  config.Auth
}

// NewUsersController creates a new UsersController.
func NewUsersController(authService *auth.Service, cfg config.Auth) *UsersController {
	return &UsersController{
		authService: authService,
		authConfig:  cfg,
	}
}

// DeleteByUsername removes an account and everything it owns. Users may
// delete themselves; admins may delete anyone. Self-deletion invalidates
// the session by clearing the cookie.
// DELETE /api/user/by-username/:username
func (uc *UsersController) DeleteByUsername(c *gin.Context) {
	actor := auth.CurrentUser(c)
	if actor == nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	username := c.Param("username")

	deleted, err := uc.authService.DeleteByUsername(actor, username)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrNotPermitted):
			respondError(c, http.StatusForbidden, "No permission to delete")
		case errors.Is(err, auth.ErrUserNotFound):
			respondNotFound(c, "User")
		default:
			respondInternalError(c, err, "deleting user")
		}
		return
	}

	if actor.Username == username {
		auth.ClearAccessCookie(c, uc.authConfig)
		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
		return
	}

	c.JSON(http.StatusOK, deleted)
}
