package repository

import (
	"github.com/cannaconnect/cannaconnect-api/internal/database"
	"github.com/cannaconnect/cannaconnect-api/internal/models"
	"gorm.io/gorm"
)

// GormMediaRepository is a GORM implementation of MediaRepository
type GormMediaRepository struct {
	db *gorm.DB
}

// NewMediaRepository creates a new MediaRepository
func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &GormMediaRepository{db: db}
}

func (r *GormMediaRepository) CreateMedia(media *models.UserMedia) error {
	return r.db.Create(media).Error
}

func (r *GormMediaRepository) FindMedia(id uint64) (*models.UserMedia, error) {
	var media models.UserMedia
	if err := r.db.First(&media, id).Error; err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *GormMediaRepository) DeleteMedia(id uint64) error {
	return r.db.Delete(&models.UserMedia{}, id).Error
}

func (r *GormMediaRepository) CreateImage(image *models.UserImage) error {
	return r.db.Create(image).Error
}

func (r *GormMediaRepository) FindImage(id uint64) (*models.UserImage, error) {
	var image models.UserImage
	if err := r.db.First(&image, id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

// ListImages lists a user's images, newest first
func (r *GormMediaRepository) ListImages(userID uint64) ([]models.UserImage, error) {
	var images []models.UserImage
	err := r.db.
		Where("user_id = ?", userID).
		Scopes(database.NewestFirst("uploaded_at")).
		Find(&images).Error
	return images, err
}

func (r *GormMediaRepository) DeleteImage(id uint64) error {
	return r.db.Delete(&models.UserImage{}, id).Error
}
