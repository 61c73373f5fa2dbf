package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	apierrors "github.com/cannaconnect/cannaconnect-api/internal/errors"
	"github.com/cannaconnect/cannaconnect-api/internal/models"
	"github.com/cannaconnect/cannaconnect-api/internal/repository"
	"github.com/cannaconnect/cannaconnect-api/internal/security"
)

var (
	ErrAdFieldsRequired = apierrors.New(apierrors.ErrInvalidInput, "title, description and link are required")
	ErrAdInvalidURL     = apierrors.New(apierrors.ErrInvalidInput, "link and image_url must be http or https URLs")
	ErrNoCompany        = apierrors.New(apierrors.ErrForbidden, "you must belong to a company to create ads")
	ErrNotAdmin         = apierrors.New(apierrors.ErrForbidden, "administrator role required")
	ErrAdNotFound       = apierrors.New(apierrors.ErrNotFound, "advertisement not found")
)

// AdService handles company advertisements.
type AdService struct {
	uow       repository.UnitOfWork
	sanitizer security.TextSanitizer
}

// NewAdService creates a new AdService
func NewAdService(uow repository.UnitOfWork, sanitizer security.TextSanitizer) *AdService {
	return &AdService{uow: uow, sanitizer: sanitizer}
}

// CreateAdInput represents input for creating an ad
type CreateAdInput struct {
	Title       string
	Description string
	ImageURL    string
	Link        string
}

// ListActive returns the ads currently visible, newest first.
func (s *AdService) ListActive(ctx context.Context) ([]models.Advertisement, error) {
	var ads []models.Advertisement
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		ads, err = repos.Ads.ListActive()
		if err != nil {
			return fmt.Errorf("failed to list ads: %w", err)
		}
		return nil
	})
	return ads, err
}

// CreateAd creates an active ad attributed to the actor's company.
func (s *AdService) CreateAd(ctx context.Context, actorID uint64, input CreateAdInput) (*models.Advertisement, error) {
	ad := &models.Advertisement{
		Title:       s.sanitizer.Sanitize(input.Title),
		Description: s.sanitizer.Sanitize(input.Description),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		Link:        strings.TrimSpace(input.Link),
		Active:      true,
	}
	if ad.Title == "" || ad.Description == "" || ad.Link == "" {
		return nil, ErrAdFieldsRequired
	}
	if !isWebURL(ad.Link) || (ad.ImageURL != "" && !isWebURL(ad.ImageURL)) {
		return nil, ErrAdInvalidURL
	}

	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		actor, err := repos.Users.FindByID(actorID, "Company")
		if err != nil {
			return lookup(err, ErrUserNotFound, "user")
		}
		if actor.CompanyID == nil {
			return ErrNoCompany
		}

		ad.CompanyID = *actor.CompanyID
		if err := repos.Ads.Create(ad); err != nil {
			return fmt.Errorf("failed to create ad: %w", err)
		}
		ad.Company = actor.Company
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ad, nil
}

// ToggleAd flips the active flag of an ad. Administrators only.
func (s *AdService) ToggleAd(ctx context.Context, actorID, adID uint64) (*models.Advertisement, error) {
	var ad *models.Advertisement
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		actor, err := repos.Users.FindByID(actorID)
		if err != nil {
			return lookup(err, ErrUserNotFound, "user")
		}
		if !actor.Role.Can(models.CapModerateAds) {
			return ErrNotAdmin
		}

		found, err := repos.Ads.FindByID(adID)
		if err != nil {
			return lookup(err, ErrAdNotFound, "advertisement")
		}
		found.Active = !found.Active
		if err := repos.Ads.SetActive(found.ID, found.Active); err != nil {
			return fmt.Errorf("failed to toggle ad: %w", err)
		}
		ad = found
		return nil
	})
	return ad, err
}

func isWebURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
