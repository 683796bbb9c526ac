// Package segmentations provides database operations for stored
// original/processed image pairs.
package segmentations

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/segmentor/internal/entities"
)

// ErrNotFound is returned when no segmentation matches the lookup.
var ErrNotFound = errors.New("segmentation not found")

// Repository handles all segmentation database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new segmentations repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create stores an original/segmented image pair owned by a user.
func (r *Repository) Create(userID uint, original, segmented []byte) (*entities.Segmentation, error) {
	record := &entities.Segmentation{
		UserID:         userID,
		OriginalImage:  original,
		SegmentedImage: segmented,
	}

	if err := r.db.Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to store segmentation: %w", err)
	}

	return record, nil
}

// GetByID retrieves a segmentation record including its image blobs.
func (r *Repository) GetByID(id uint) (*entities.Segmentation, error) {
	var record entities.Segmentation
	err := r.db.First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// SetFeedback records the user's quality rating for a segmentation.
func (r *Repository) SetFeedback(id uint, isGood bool) error {
	result := r.db.Model(&entities.Segmentation{}).Where("id = ?", id).Update("is_good", isGood)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByUser returns a user's segmentations, newest first, without blobs.
func (r *Repository) ListByUser(userID uint) ([]entities.Segmentation, error) {
	var records []entities.Segmentation
	err := r.db.
		Select("id", "user_id", "is_good", "created_at").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}
