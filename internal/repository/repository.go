package repository

import (
	"time"

	"github.com/cannaconnect/cannaconnect-api/internal/models"
	"github.com/cannaconnect/cannaconnect-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.User, error)

	// FindByEmail finds a user by email address
	FindByEmail(email string) (*models.User, error)

	// List retrieves users ordered by ID
	List(params utils.PaginationParams) ([]models.User, int64, error)

	// Update saves all fields of a user
	Update(user *models.User) error

	// UpdateFields updates the given columns of a user
	UpdateFields(id uint64, fields map[string]interface{}) error

	// FindOrCreateInterests returns the interests with the given names, creating missing ones
	FindOrCreateInterests(names []string) ([]models.Interest, error)

	// ReplaceInterests replaces the interest set of a user
	ReplaceInterests(user *models.User, interests []models.Interest) error
}

// CompanyRepository defines the interface for company data access
type CompanyRepository interface {
	Create(company *models.Company) error
	FindByID(id uint64) (*models.Company, error)

	// AttachEmployee makes the user an employee of the company
	AttachEmployee(companyID, userID uint64) error

	EmployeeIDs(companyID uint64) ([]uint64, error)
}

// ConnectionRepository defines the interface for the social graph: connections and favorites
type ConnectionRepository interface {
	Create(conn *models.Connection) error
	FindByID(id uint64) (*models.Connection, error)

	// FindPair finds the connection from requester to target
	FindPair(requesterID, targetID uint64) (*models.Connection, error)

	UpdateStatus(id uint64, status models.ConnectionStatus) error
	Delete(id uint64) error

	// ListConnected lists connected rows on either side of the user, with both users preloaded
	ListConnected(userID uint64) ([]models.Connection, error)

	// ListPending lists pending requests addressed to the user, newest first, requester preloaded
	ListPending(targetID uint64) ([]models.Connection, error)

	CreateFavorite(fav *models.FavoriteConnect) error
	FindFavorite(id uint64) (*models.FavoriteConnect, error)
	ListFavorites(userID uint64) ([]models.FavoriteConnect, error)
	DeleteFavorite(id uint64) error
}

// JobRepository defines the interface for jobs, their comments and applications
type JobRepository interface {
	Create(job *models.JobPosting) error
	FindByID(id uint64) (*models.JobPosting, error)

	// List retrieves jobs newest first
	List(params utils.PaginationParams) ([]models.JobPosting, int64, error)

	ListByCompany(companyID uint64) ([]models.JobPosting, error)

	// Delete removes a job together with its comments and applications
	Delete(id uint64) error

	CreateComment(comment *models.JobComment) error
	FindComment(id uint64) (*models.JobComment, error)

	// ListComments lists every comment of a job ordered by creation time
	ListComments(jobID uint64) ([]models.JobComment, error)

	CreateApplication(app *models.JobApplication) error
	FindApplication(id uint64) (*models.JobApplication, error)
	ListApplications(jobID uint64) ([]models.JobApplication, error)
	UpdateApplication(app *models.JobApplication) error
	DeleteApplication(id uint64) error

	// ResumePaths lists the stored resume references of a job's applications
	ResumePaths(jobID uint64) ([]string, error)
}

// MediaRepository defines the interface for uploaded videos and images
type MediaRepository interface {
	CreateMedia(media *models.UserMedia) error
	FindMedia(id uint64) (*models.UserMedia, error)
	DeleteMedia(id uint64) error

	CreateImage(image *models.UserImage) error
	FindImage(id uint64) (*models.UserImage, error)
	ListImages(userID uint64) ([]models.UserImage, error)
	DeleteImage(id uint64) error
}

// AdRepository defines the interface for advertisement data access
type AdRepository interface {
	Create(ad *models.Advertisement) error
	FindByID(id uint64) (*models.Advertisement, error)

	// ListActive lists active ads newest first, company preloaded
	ListActive() ([]models.Advertisement, error)

	SetActive(id uint64, active bool) error
}

// TokenRepository defines the interface for the token revocation list
type TokenRepository interface {
	// Revoke records the token identifier. Revoking twice is not an error.
	Revoke(jti string, expiresAt time.Time) error

	IsRevoked(jti string) (bool, error)
}
