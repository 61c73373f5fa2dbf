package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cannaconnect/cannaconnect-api/internal/constants"
	apierrors "github.com/cannaconnect/cannaconnect-api/internal/errors"
	"github.com/cannaconnect/cannaconnect-api/internal/models"
	"github.com/cannaconnect/cannaconnect-api/internal/repository"
	"github.com/cannaconnect/cannaconnect-api/internal/security"
	"github.com/cannaconnect/cannaconnect-api/internal/utils"
)

var (
	ErrNameRequired = apierrors.New(apierrors.ErrInvalidInput, "name cannot be empty")
	ErrBioTooLong   = apierrors.New(apierrors.ErrInvalidInput, fmt.Sprintf("bio must be at most %d characters", constants.MaxBioLength))
	ErrUnknownRole  = apierrors.New(apierrors.ErrInvalidInput, "unknown role")
	ErrCannotAssign = apierrors.New(apierrors.ErrForbidden, "only administrators can change roles")
)

// UserService handles profiles and user lookups.
type UserService struct {
	uow       repository.UnitOfWork
	sanitizer security.TextSanitizer
}

// NewUserService creates a new UserService
func NewUserService(uow repository.UnitOfWork, sanitizer security.TextSanitizer) *UserService {
	return &UserService{uow: uow, sanitizer: sanitizer}
}

// UpdateProfileInput holds the profile fields to change. Nil fields are left alone;
// a non-nil Interests replaces the whole set.
type UpdateProfileInput struct {
	Name      *string
	Bio       *string
	City      *string
	State     *string
	Interests *[]string
}

// GetUser returns a user with company and interests.
func (s *UserService) GetUser(ctx context.Context, userID uint64) (*models.User, error) {
	var user *models.User
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		found, err := repos.Users.FindByID(userID, "Company", "Interests")
		if err != nil {
			return lookup(err, ErrUserNotFound, "user")
		}
		user = found
		return nil
	})
	return user, err
}

// ListUsers returns a page of users and the total count.
func (s *UserService) ListUsers(ctx context.Context, params utils.PaginationParams) ([]models.User, int64, error) {
	var (
		users []models.User
		total int64
	)
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		users, total, err = repos.Users.List(params)
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}
		return nil
	})
	return users, total, err
}

// UpdateProfile applies input to the user's profile and returns the result.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint64, input UpdateProfileInput) (*models.User, error) {
	fields := map[string]interface{}{}

	if name := optionalString(input.Name); name != nil {
		if *name == "" {
			return nil, ErrNameRequired
		}
		if utf8.RuneCountInString(*name) > constants.MaxNameLength {
			return nil, ErrNameTooLong
		}
		fields["name"] = *name
	}
	if input.Bio != nil {
		bio := s.sanitizer.Sanitize(*input.Bio)
		if utf8.RuneCountInString(bio) > constants.MaxBioLength {
			return nil, ErrBioTooLong
		}
		fields["bio"] = bio
	}
	if city := optionalString(input.City); city != nil {
		fields["city"] = *city
	}
	if state := optionalString(input.State); state != nil {
		fields["state"] = *state
	}

	var interestNames []string
	if input.Interests != nil {
		interestNames = s.interestNames(*input.Interests)
	}

	var user *models.User
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		found, err := repos.Users.FindByID(userID)
		if err != nil {
			return lookup(err, ErrUserNotFound, "user")
		}

		if len(fields) > 0 {
			if err := repos.Users.UpdateFields(found.ID, fields); err != nil {
				return fmt.Errorf("failed to update profile: %w", err)
			}
		}

		if input.Interests != nil {
			interests, err := repos.Users.FindOrCreateInterests(interestNames)
			if err != nil {
				return fmt.Errorf("failed to resolve interests: %w", err)
			}
			if err := repos.Users.ReplaceInterests(found, interests); err != nil {
				return fmt.Errorf("failed to update interests: %w", err)
			}
		}

		user, err = repos.Users.FindByID(userID, "Company", "Interests")
		if err != nil {
			return fmt.Errorf("failed to reload user: %w", err)
		}
		return nil
	})
	return user, err
}

// SetRole changes another user's role. Only administrators may do so, and they may
// grant any role including Admin.
func (s *UserService) SetRole(ctx context.Context, actorID, userID uint64, rawRole string) (*models.User, error) {
	role, err := models.ParseRole(rawRole)
	if err != nil {
		return nil, ErrUnknownRole
	}

	var user *models.User
	err = s.uow.Do(ctx, func(repos repository.Repositories) error {
		actor, err := repos.Users.FindByID(actorID)
		if err != nil {
			return lookup(err, ErrUserNotFound, "user")
		}
		if !actor.Role.Can(models.CapManageRoles) {
			return ErrCannotAssign
		}

		target, err := repos.Users.FindByID(userID)
		if err != nil {
			return lookup(err, ErrUserNotFound, "user")
		}
		if err := repos.Users.UpdateFields(target.ID, map[string]interface{}{"role": role}); err != nil {
			return fmt.Errorf("failed to update role: %w", err)
		}
		target.Role = role
		user = target
		return nil
	})
	return user, err
}

// interestNames cleans and de-duplicates interest names, keeping the first spelling.
func (s *UserService) interestNames(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	names := make([]string, 0, len(raw))
	for _, r := range raw {
		name := s.sanitizer.Sanitize(r)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, name)
	}
	return names
}
