package services

import (
	"context"
	"fmt"
	"strings"

	apierrors "github.com/cannaconnect/cannaconnect-api/internal/errors"
	"github.com/cannaconnect/cannaconnect-api/internal/models"
	"github.com/cannaconnect/cannaconnect-api/internal/repository"
	"github.com/cannaconnect/cannaconnect-api/internal/security"
)

var (
	ErrCompanyNameRequired = apierrors.New(apierrors.ErrInvalidInput, "company name is required")
	ErrCompanyNameTaken    = apierrors.New(apierrors.ErrConflict, "company name already registered")
	ErrAlreadyEmployed     = apierrors.New(apierrors.ErrConflict, "user already belongs to a company")
	ErrCompanyNotFound     = apierrors.New(apierrors.ErrNotFound, "company not found")
)

// CompanyService handles company business logic
type CompanyService struct {
	uow       repository.UnitOfWork
	sanitizer security.TextSanitizer
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(uow repository.UnitOfWork, sanitizer security.TextSanitizer) *CompanyService {
	return &CompanyService{uow: uow, sanitizer: sanitizer}
}

// CreateCompanyInput represents input for creating a company
type CreateCompanyInput struct {
	Name        string
	Industry    string
	CompanySize string
	Location    string
	Website     string
	Phone       string
	Email       string
	SocialLinks string
	FoundedYear *int
	Logo        string
	Description string
}

// CompanyDetails is a company with the IDs of its employees and jobs.
type CompanyDetails struct {
	Company     *models.Company
	EmployeeIDs []uint64
	JobIDs      []uint64
}

// CreateCompany creates a company and makes the creator its first employee.
func (s *CompanyService) CreateCompany(ctx context.Context, creatorID uint64, input CreateCompanyInput) (*models.Company, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCompanyNameRequired
	}

	company := &models.Company{
		Name:        name,
		Industry:    strings.TrimSpace(input.Industry),
		CompanySize: strings.TrimSpace(input.CompanySize),
		Location:    strings.TrimSpace(input.Location),
		Website:     strings.TrimSpace(input.Website),
		Phone:       strings.TrimSpace(input.Phone),
		Email:       normalizeEmail(input.Email),
		SocialLinks: strings.TrimSpace(input.SocialLinks),
		FoundedYear: input.FoundedYear,
		Logo:        strings.TrimSpace(input.Logo),
		Description: s.sanitizer.Sanitize(input.Description),
	}

	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		creator, err := repos.Users.FindByID(creatorID)
		if err != nil {
			return lookup(err, ErrUserNotFound, "user")
		}
		if creator.CompanyID != nil {
			return ErrAlreadyEmployed
		}

		if err := repos.Companies.Create(company); err != nil {
			return insert(err, ErrCompanyNameTaken, "company")
		}
		if err := repos.Companies.AttachEmployee(company.ID, creator.ID); err != nil {
			return fmt.Errorf("failed to attach employee: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return company, nil
}

// GetCompany returns a company with its employee and job IDs.
func (s *CompanyService) GetCompany(ctx context.Context, companyID uint64) (*CompanyDetails, error) {
	details := &CompanyDetails{}
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		company, err := repos.Companies.FindByID(companyID)
		if err != nil {
			return lookup(err, ErrCompanyNotFound, "company")
		}
		details.Company = company

		details.EmployeeIDs, err = repos.Companies.EmployeeIDs(companyID)
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}

		jobs, err := repos.Jobs.ListByCompany(companyID)
		if err != nil {
			return fmt.Errorf("failed to list jobs: %w", err)
		}
		details.JobIDs = make([]uint64, len(jobs))
		for i, job := range jobs {
			details.JobIDs[i] = job.ID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return details, nil
}

// ListCompanyJobs lists the jobs posted under a company, newest first.
func (s *CompanyService) ListCompanyJobs(ctx context.Context, companyID uint64) ([]models.JobPosting, error) {
	var jobs []models.JobPosting
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Companies.FindByID(companyID); err != nil {
			return lookup(err, ErrCompanyNotFound, "company")
		}
		var err error
		jobs, err = repos.Jobs.ListByCompany(companyID)
		if err != nil {
			return fmt.Errorf("failed to list jobs: %w", err)
		}
		return nil
	})
	return jobs, err
}
