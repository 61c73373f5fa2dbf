package repository

import (
	"github.com/cannaconnect/cannaconnect-api/internal/database"
	"github.com/cannaconnect/cannaconnect-api/internal/models"
	"gorm.io/gorm"
)

// GormAdRepository is a GORM implementation of AdRepository
type GormAdRepository struct {
	db *gorm.DB
}

// NewAdRepository creates a new AdRepository
func NewAdRepository(db *gorm.DB) AdRepository {
	return &GormAdRepository{db: db}
}

func (r *GormAdRepository) Create(ad *models.Advertisement) error {
	return r.db.Create(ad).Error
}

// FindByID finds an ad by ID with its company
func (r *GormAdRepository) FindByID(id uint64) (*models.Advertisement, error) {
	var ad models.Advertisement
	if err := r.db.Preload("Company").First(&ad, id).Error; err != nil {
		return nil, err
	}
	return &ad, nil
}

// ListActive lists active ads newest first
func (r *GormAdRepository) ListActive() ([]models.Advertisement, error) {
	var ads []models.Advertisement
	err := r.db.
		Where("active = ?", true).
		Preload("Company").
		Scopes(database.NewestFirst("created_at")).
		Find(&ads).Error
	return ads, err
}

func (r *GormAdRepository) SetActive(id uint64, active bool) error {
	return r.db.Model(&models.Advertisement{ID: id}).Update("active", active).Error
}
