package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/cannaconnect/cannaconnect-api/internal/constants"
	apierrors "github.com/cannaconnect/cannaconnect-api/internal/errors"
	"github.com/cannaconnect/cannaconnect-api/internal/logger"
	"github.com/cannaconnect/cannaconnect-api/internal/metrics"
	"github.com/cannaconnect/cannaconnect-api/internal/models"
	"github.com/cannaconnect/cannaconnect-api/internal/repository"
	"github.com/cannaconnect/cannaconnect-api/internal/security"
	"github.com/cannaconnect/cannaconnect-api/internal/storage"
	"github.com/cannaconnect/cannaconnect-api/internal/utils"
)

var (
	ErrJobFieldsRequired       = apierrors.New(apierrors.ErrInvalidInput, "title, description and location are required")
	ErrJobTitleTooLong         = apierrors.New(apierrors.ErrInvalidInput, "title must be at most 100 characters")
	ErrJobNotFound             = apierrors.New(apierrors.ErrNotFound, "job not found")
	ErrNotJobPoster            = apierrors.New(apierrors.ErrForbidden, "only the poster can delete this job")
	ErrCannotPostForCompany    = apierrors.New(apierrors.ErrForbidden, "not allowed to post jobs for this company")
	ErrCommentEmpty            = apierrors.New(apierrors.ErrInvalidInput, "content cannot be empty")
	ErrInvalidParentComment    = apierrors.New(apierrors.ErrInvalidInput, "parent comment does not belong to this job")
	ErrResumeRequired          = apierrors.New(apierrors.ErrInvalidInput, "resume file is required")
	ErrResumeType              = apierrors.New(apierrors.ErrInvalidInput, "resume must be one of: "+strings.Join(constants.AllowedResumeExtensions, ", "))
	ErrAlreadyApplied          = apierrors.New(apierrors.ErrConflict, "already applied to this job")
	ErrApplicationNotFound     = apierrors.New(apierrors.ErrNotFound, "application not found")
	ErrCannotManageApplication = apierrors.New(apierrors.ErrForbidden, "only the hiring company can manage applications")
	ErrInvalidApplicationState = apierrors.New(apierrors.ErrInvalidInput, "status must be pending, accepted or rejected")
)

const maxJobTitleLength = 100

// JobService handles job postings, their comment trees and applications.
type JobService struct {
	uow       repository.UnitOfWork
	store     *storage.FileStore
	sanitizer security.TextSanitizer
	metrics   metrics.Recorder
}

// NewJobService creates a new JobService
func NewJobService(uow repository.UnitOfWork, store *storage.FileStore, sanitizer security.TextSanitizer, recorder metrics.Recorder) *JobService {
	return &JobService{
		uow:       uow,
		store:     store,
		sanitizer: sanitizer,
		metrics:   recorder,
	}
}

// CreateJobInput represents input for posting a job. CompanyID is set for
// company-scoped postings.
type CreateJobInput struct {
	PosterID    uint64
	CompanyID   *uint64
	Title       string
	Category    string
	Description string
	Location    string
	Salary      string
}

// CommentInput represents input for commenting on a job
type CommentInput struct {
	JobID    uint64
	AuthorID uint64
	Content  string
	ParentID *uint64
}

// ApplyInput represents a job application with its resume upload
type ApplyInput struct {
	JobID       uint64
	ApplicantID uint64
	ResumeName  string
	Resume      io.Reader
}

// UpdateApplicationStatusInput represents a hiring decision
type UpdateApplicationStatusInput struct {
	JobID         uint64
	ApplicationID uint64
	ActorID       uint64
	Status        string
	Notes         string
}

// CreateJob posts a job. Company postings require an employee with a hiring role.
func (s *JobService) CreateJob(ctx context.Context, input CreateJobInput) (*models.JobPosting, error) {
	job := &models.JobPosting{
		Title:       strings.TrimSpace(input.Title),
		Category:    strings.TrimSpace(input.Category),
		Description: s.sanitizer.Sanitize(input.Description),
		Location:    strings.TrimSpace(input.Location),
		Salary:      strings.TrimSpace(input.Salary),
		PostedBy:    input.PosterID,
		CompanyID:   input.CompanyID,
	}
	if job.Title == "" || job.Description == "" || job.Location == "" {
		return nil, ErrJobFieldsRequired
	}
	if utf8.RuneCountInString(job.Title) > maxJobTitleLength {
		return nil, ErrJobTitleTooLong
	}

	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		poster, err := repos.Users.FindByID(input.PosterID)
		if err != nil {
			return lookup(err, ErrUserNotFound, "user")
		}

		if input.CompanyID != nil {
			if _, err := repos.Companies.FindByID(*input.CompanyID); err != nil {
				return lookup(err, ErrCompanyNotFound, "company")
			}
			if !poster.BelongsTo(*input.CompanyID) || !poster.Role.Can(models.CapPostCompanyJobs) {
				return ErrCannotPostForCompany
			}
		}

		if err := repos.Jobs.Create(job); err != nil {
			return fmt.Errorf("failed to create job: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}

// ListJobs returns a page of jobs, newest first, and the total count.
func (s *JobService) ListJobs(ctx context.Context, params utils.PaginationParams) ([]models.JobPosting, int64, error) {
	var (
		jobs  []models.JobPosting
		total int64
	)
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		jobs, total, err = repos.Jobs.List(params)
		if err != nil {
			return fmt.Errorf("failed to list jobs: %w", err)
		}
		return nil
	})
	return jobs, total, err
}

// GetJob returns a single job.
func (s *JobService) GetJob(ctx context.Context, jobID uint64) (*models.JobPosting, error) {
	var job *models.JobPosting
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		found, err := repos.Jobs.FindByID(jobID)
		if err != nil {
			return lookup(err, ErrJobNotFound, "job")
		}
		job = found
		return nil
	})
	return job, err
}

// DeleteJob removes a job with its comments and applications. Resume files are
// removed after the commit; a file that cannot be removed is only logged.
func (s *JobService) DeleteJob(ctx context.Context, actorID, jobID uint64) error {
	var resumes []string
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		job, err := repos.Jobs.FindByID(jobID)
		if err != nil {
			return lookup(err, ErrJobNotFound, "job")
		}
		if job.PostedBy != actorID {
			return ErrNotJobPoster
		}

		resumes, err = repos.Jobs.ResumePaths(job.ID)
		if err != nil {
			return fmt.Errorf("failed to list resumes: %w", err)
		}
		if err := repos.Jobs.Delete(job.ID); err != nil {
			return fmt.Errorf("failed to delete job: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, path := range resumes {
		if err := s.store.Remove(path); err != nil {
			logger.FromContext(ctx).Warn("Failed to remove resume", zap.String("path", path), zap.Error(err))
		}
	}
	return nil
}

// AddComment adds a comment or a reply to a job.
func (s *JobService) AddComment(ctx context.Context, input CommentInput) (*models.JobComment, error) {
	content := s.sanitizer.Sanitize(input.Content)
	if content == "" {
		return nil, ErrCommentEmpty
	}

	comment := &models.JobComment{
		JobID:    input.JobID,
		UserID:   input.AuthorID,
		Content:  content,
		ParentID: input.ParentID,
	}

	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Jobs.FindByID(input.JobID); err != nil {
			return lookup(err, ErrJobNotFound, "job")
		}

		author, err := repos.Users.FindByID(input.AuthorID)
		if err != nil {
			return lookup(err, ErrUserNotFound, "user")
		}
		comment.CompanyID = author.CompanyID

		if input.ParentID != nil {
			parent, err := repos.Jobs.FindComment(*input.ParentID)
			if err != nil {
				return lookup(err, ErrInvalidParentComment, "comment")
			}
			if parent.JobID != input.JobID {
				return ErrInvalidParentComment
			}
		}

		if err := repos.Jobs.CreateComment(comment); err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns every comment of a job ordered by creation time.
func (s *JobService) ListComments(ctx context.Context, jobID uint64) ([]models.JobComment, error) {
	var comments []models.JobComment
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Jobs.FindByID(jobID); err != nil {
			return lookup(err, ErrJobNotFound, "job")
		}
		var err error
		comments, err = repos.Jobs.ListComments(jobID)
		if err != nil {
			return fmt.Errorf("failed to list comments: %w", err)
		}
		return nil
	})
	return comments, err
}

// Apply stores the resume and records a pending application.
func (s *JobService) Apply(ctx context.Context, input ApplyInput) (*models.JobApplication, error) {
	if input.Resume == nil || strings.TrimSpace(input.ResumeName) == "" {
		return nil, ErrResumeRequired
	}
	if !storage.HasExtension(input.ResumeName, constants.AllowedResumeExtensions) {
		return nil, ErrResumeType
	}
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Jobs.FindByID(input.JobID); err != nil {
			return lookup(err, ErrJobNotFound, "job")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	staged, err := s.store.Stage(constants.ResumeDir, input.ResumeName, input.Resume)
	if err != nil {
		return nil, err
	}

	app := &models.JobApplication{
		UserID:         input.ApplicantID,
		JobID:          input.JobID,
		Status:         models.ApplicationPending,
		ResumeFilePath: staged.RelPath,
	}

	err = commitUpload(ctx, s.uow, staged,
		func(repos repository.Repositories) error {
			job, err := repos.Jobs.FindByID(input.JobID)
			if err != nil {
				return lookup(err, ErrJobNotFound, "job")
			}
			app.CompanyID = job.CompanyID

			if err := repos.Jobs.CreateApplication(app); err != nil {
				return insert(err, ErrAlreadyApplied, "application")
			}
			return nil
		},
		func(repos repository.Repositories) error {
			return repos.Jobs.DeleteApplication(app.ID)
		},
	)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordUpload("resume", staged.Size)
	return app, nil
}

// ListApplications returns a job's applications to whoever manages them.
func (s *JobService) ListApplications(ctx context.Context, actorID, jobID uint64) ([]models.JobApplication, error) {
	var apps []models.JobApplication
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		job, err := repos.Jobs.FindByID(jobID)
		if err != nil {
			return lookup(err, ErrJobNotFound, "job")
		}
		actor, err := repos.Users.FindByID(actorID)
		if err != nil {
			return lookup(err, ErrUserNotFound, "user")
		}
		if !managesApplications(actor, job) {
			return ErrCannotManageApplication
		}

		apps, err = repos.Jobs.ListApplications(job.ID)
		if err != nil {
			return fmt.Errorf("failed to list applications: %w", err)
		}
		return nil
	})
	return apps, err
}

// UpdateApplicationStatus records a hiring decision on an application.
func (s *JobService) UpdateApplicationStatus(ctx context.Context, input UpdateApplicationStatusInput) (*models.JobApplication, error) {
	var app *models.JobApplication
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		found, err := repos.Jobs.FindApplication(input.ApplicationID)
		if err != nil {
			return lookup(err, ErrApplicationNotFound, "application")
		}
		if found.JobID != input.JobID {
			return ErrApplicationNotFound
		}

		job, err := repos.Jobs.FindByID(found.JobID)
		if err != nil {
			return lookup(err, ErrJobNotFound, "job")
		}
		actor, err := repos.Users.FindByID(input.ActorID)
		if err != nil {
			return lookup(err, ErrUserNotFound, "user")
		}
		if !managesApplications(actor, job) {
			return ErrCannotManageApplication
		}

		status, err := models.ParseApplicationStatus(strings.TrimSpace(input.Status))
		if err != nil {
			return ErrInvalidApplicationState
		}

		found.Status = status
		found.DecisionNotes = s.sanitizer.Sanitize(input.Notes)
		if err := repos.Jobs.UpdateApplication(found); err != nil {
			return fmt.Errorf("failed to update application: %w", err)
		}
		app = found
		return nil
	})
	return app, err
}

// managesApplications reports whether actor may see and decide on a job's
// applications: employees of the owning company, or the poster of a personal job.
func managesApplications(actor *models.User, job *models.JobPosting) bool {
	if job.CompanyID != nil {
		return actor.BelongsTo(*job.CompanyID)
	}
	return job.PostedBy == actor.ID
}
