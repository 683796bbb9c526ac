package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/segmentor/internal/auth"
	"github.com/mrlokans/segmentor/internal/database/segmentations"
)

// UIController renders the browser-facing pages. Every page sits behind
// the gate, so the current user is always present.
type UIController struct {
	repo *segmentations.Repository
}

func NewUIController(repo *segmentations.Repository) *UIController {
	return &UIController{repo: repo}
}

// HomePage renders the upload page.
func (controller *UIController) HomePage(c *gin.Context) {
	c.HTML(http.StatusOK, "index", gin.H{
		"Title":     "Segmentor",
		"User":      auth.CurrentUser(c),
		"CSRFToken": auth.GetCSRFToken(c),
	})
}

// ProfilePage renders the current user's page with their segmentations.
func (controller *UIController) ProfilePage(c *gin.Context) {
	user := auth.CurrentUser(c)

	records, err := controller.repo.ListByUser(user.ID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading segmentations")
		return
	}

	c.HTML(http.StatusOK, "profile", gin.H{
		"Title":         "Profile",
		"User":          user,
		"Segmentations": records,
		"CSRFToken":     auth.GetCSRFToken(c),
	})
}
