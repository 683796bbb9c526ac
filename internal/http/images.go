package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/segmentor/internal/auth"
	"github.com/mrlokans/segmentor/internal/database/segmentations"
	"github.com/mrlokans/segmentor/internal/entities"
	"github.com/mrlokans/segmentor/internal/segmentation"
)

// UploadResponse is returned after a successful upload.
type UploadResponse struct {
	ID          uint   `json:"id"`
	OriginalID  uint   `json:"original_id"`
	SegmentedID uint   `json:"segmented_id"`
	Message     string `json:"message"`
}

// FeedbackRequest is the body of a feedback submission.
type FeedbackRequest struct {
	IsGood *bool `json:"is_good" binding:"required"`
}

// ImagesController handles image upload, retrieval and feedback.
type ImagesController struct {
	repo     *segmentations.Repository
	maxBytes int64
}

// NewImagesController creates a new ImagesController.
func NewImagesController(repo *segmentations.Repository, maxBytes int64) *ImagesController {
	return &ImagesController{
		repo:     repo,
		maxBytes: maxBytes,
	}
}

// Upload processes an uploaded image and stores the original together
// with its segmented version.
// POST /api/upload
func (ic *ImagesController) Upload(c *gin.Context) {
	user := auth.CurrentUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondBadRequest(c, "file is required")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respondBadRequest(c, "Only images are allowed")
		return
	}

	if fileHeader.Size > ic.maxBytes {
		respondError(c, http.StatusRequestEntityTooLarge, "File too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondInternalError(c, err, "opening upload")
		return
	}
	defer file.Close()

	contents, err := io.ReadAll(io.LimitReader(file, ic.maxBytes+1))
	if err != nil {
		respondInternalError(c, err, "reading upload")
		return
	}
	if int64(len(contents)) > ic.maxBytes {
		respondError(c, http.StatusRequestEntityTooLarge, "File too large")
		return
	}

	segmented, err := segmentation.Segment(contents)
	if err != nil {
		respondInternalError(c, err, "segmenting image")
		return
	}

	record, err := ic.repo.Create(user.ID, contents, segmented)
	if err != nil {
		respondInternalError(c, err, "storing segmentation")
		return
	}

	c.JSON(http.StatusOK, UploadResponse{
		ID:          record.ID,
		OriginalID:  record.ID,
		SegmentedID: record.ID,
		Message:     "File uploaded successfully",
	})
}

// GetOriginal serves the originally uploaded image.
// GET /api/original/:id
func (ic *ImagesController) GetOriginal(c *gin.Context) {
	record, ok := ic.lookup(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "image/jpeg", record.OriginalImage)
}

// GetSegmented serves the processed image.
// GET /api/segmented/:id
func (ic *ImagesController) GetSegmented(c *gin.Context) {
	record, ok := ic.lookup(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "image/jpeg", record.SegmentedImage)
}

// Feedback records the user's quality rating for a segmentation.
// POST /api/feedback/:id
func (ic *ImagesController) Feedback(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "is_good is required")
		return
	}

	if err := ic.repo.SetFeedback(id, *req.IsGood); err != nil {
		if errors.Is(err, segmentations.ErrNotFound) {
			respondNotFound(c, "Image")
			return
		}
		respondInternalError(c, err, "saving feedback")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "image_id": id})
}

func (ic *ImagesController) lookup(c *gin.Context) (*entities.Segmentation, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}

	record, err := ic.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, segmentations.ErrNotFound) {
			respondNotFound(c, "Image")
			return nil, false
		}
		respondInternalError(c, err, "loading image")
		return nil, false
	}
	return record, true
}
