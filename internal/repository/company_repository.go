package repository

import (
	"github.com/cannaconnect/cannaconnect-api/internal/models"
	"gorm.io/gorm"
)

// GormCompanyRepository is a GORM implementation of CompanyRepository
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &GormCompanyRepository{db: db}
}

// Create creates a new company
func (r *GormCompanyRepository) Create(company *models.Company) error {
	return r.db.Create(company).Error
}

// FindByID finds a company by ID
func (r *GormCompanyRepository) FindByID(id uint64) (*models.Company, error) {
	var company models.Company
	if err := r.db.First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// AttachEmployee makes the user an employee of the company
func (r *GormCompanyRepository) AttachEmployee(companyID, userID uint64) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Update("company_id", companyID).Error
}

// EmployeeIDs lists the IDs of the company's employees
func (r *GormCompanyRepository) EmployeeIDs(companyID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&models.User{}).
		Where("company_id = ?", companyID).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}
