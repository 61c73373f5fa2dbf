package repository

import (
	"github.com/cannaconnect/cannaconnect-api/internal/database"
	"github.com/cannaconnect/cannaconnect-api/internal/models"
	"github.com/cannaconnect/cannaconnect-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID with optional preloading
func (r *GormUserRepository) FindByID(id uint64, preload ...string) (*models.User, error) {
	var user models.User
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email address
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves users ordered by ID
func (r *GormUserRepository) List(params utils.PaginationParams) ([]models.User, int64, error) {
	var total int64
	if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := r.db.Order("id ASC").Scopes(database.Paginate(params)).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Update saves all fields of a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Omit(clause.Associations).Save(user).Error
}

// UpdateFields updates the given columns of a user
func (r *GormUserRepository) UpdateFields(id uint64, fields map[string]interface{}) error {
	return r.db.Model(&models.User{ID: id}).Updates(fields).Error
}

// FindOrCreateInterests returns the interests with the given names, creating missing ones
func (r *GormUserRepository) FindOrCreateInterests(names []string) ([]models.Interest, error) {
	interests := make([]models.Interest, 0, len(names))
	for _, name := range names {
		interest := models.Interest{Name: name}
		if err := r.db.Where(models.Interest{Name: name}).FirstOrCreate(&interest).Error; err != nil {
			return nil, err
		}
		interests = append(interests, interest)
	}
	return interests, nil
}

// ReplaceInterests replaces the interest set of a user
func (r *GormUserRepository) ReplaceInterests(user *models.User, interests []models.Interest) error {
	return r.db.Model(user).Association("Interests").Replace(interests)
}
