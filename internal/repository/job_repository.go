package repository

import (
	"github.com/cannaconnect/cannaconnect-api/internal/database"
	"github.com/cannaconnect/cannaconnect-api/internal/models"
	"github.com/cannaconnect/cannaconnect-api/internal/utils"
	"gorm.io/gorm"
)

// GormJobRepository is a GORM implementation of JobRepository
type GormJobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &GormJobRepository{db: db}
}

// Create creates a new job posting
func (r *GormJobRepository) Create(job *models.JobPosting) error {
	return r.db.Create(job).Error
}

// FindByID finds a job posting by ID
func (r *GormJobRepository) FindByID(id uint64) (*models.JobPosting, error) {
	var job models.JobPosting
	if err := r.db.First(&job, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// List retrieves jobs newest first
func (r *GormJobRepository) List(params utils.PaginationParams) ([]models.JobPosting, int64, error) {
	var total int64
	if err := r.db.Model(&models.JobPosting{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []models.JobPosting
	err := r.db.
		Scopes(database.NewestFirst("created_at"), database.Paginate(params)).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// ListByCompany lists the jobs posted under a company, newest first
func (r *GormJobRepository) ListByCompany(companyID uint64) ([]models.JobPosting, error) {
	var jobs []models.JobPosting
	err := r.db.
		Where("company_id = ?", companyID).
		Scopes(database.NewestFirst("created_at")).
		Find(&jobs).Error
	return jobs, err
}

// Delete removes a job together with its comments and applications
func (r *GormJobRepository) Delete(id uint64) error {
	if err := r.db.Where("job_id = ?", id).Delete(&models.JobApplication{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("job_id = ?", id).Delete(&models.JobComment{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.JobPosting{}, id).Error
}

func (r *GormJobRepository) CreateComment(comment *models.JobComment) error {
	return r.db.Create(comment).Error
}

func (r *GormJobRepository) FindComment(id uint64) (*models.JobComment, error) {
	var comment models.JobComment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListComments lists every comment of a job ordered by creation time
func (r *GormJobRepository) ListComments(jobID uint64) ([]models.JobComment, error) {
	var comments []models.JobComment
	err := r.db.
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&comments).Error
	return comments, err
}

func (r *GormJobRepository) CreateApplication(app *models.JobApplication) error {
	return r.db.Create(app).Error
}

func (r *GormJobRepository) FindApplication(id uint64) (*models.JobApplication, error) {
	var app models.JobApplication
	if err := r.db.First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// ListApplications lists a job's applications oldest first, applicant preloaded
func (r *GormJobRepository) ListApplications(jobID uint64) ([]models.JobApplication, error) {
	var apps []models.JobApplication
	err := r.db.
		Where("job_id = ?", jobID).
		Preload("User").
		Order("applied_at ASC").
		Order("id ASC").
		Find(&apps).Error
	return apps, err
}

func (r *GormJobRepository) UpdateApplication(app *models.JobApplication) error {
	return r.db.Model(app).Updates(map[string]interface{}{
		"status":         app.Status,
		"decision_notes": app.DecisionNotes,
	}).Error
}

func (r *GormJobRepository) DeleteApplication(id uint64) error {
	return r.db.Delete(&models.JobApplication{}, id).Error
}

// ResumePaths lists the stored resume references of a job's applications
func (r *GormJobRepository) ResumePaths(jobID uint64) ([]string, error) {
	var paths []string
	err := r.db.Model(&models.JobApplication{}).
		Where("job_id = ? AND resume_file_path <> ''", jobID).
		Pluck("resume_file_path", &paths).Error
	return paths, err
}
