package entities

import "time"

// User is an account that can log in and own segmentations.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:100" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string    `gorm:"size:100" json:"-"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	IsAdmin      bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// Segmentation pairs an uploaded image with its processed result.
// IsGood is nil until the user rates the segmentation quality.
type Segmentation struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"index" json:"user_id"`
	OriginalImage  []byte    `gorm:"type:blob" json:"-"`
	SegmentedImage []byte    `gorm:"type:blob" json:"-"`
	IsGood         *bool     `json:"is_good"`
	CreatedAt      time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// Rated reports whether the user has rated this segmentation.
func (s Segmentation) Rated() bool {
	return s.IsGood != nil
}

// Good reports whether the segmentation was rated as good.
func (s Segmentation) Good() bool {
	return s.IsGood != nil && *s.IsGood
}
