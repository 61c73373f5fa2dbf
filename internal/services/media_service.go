package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cannaconnect/cannaconnect-api/internal/constants"
	apierrors "github.com/cannaconnect/cannaconnect-api/internal/errors"
	"github.com/cannaconnect/cannaconnect-api/internal/metrics"
	"github.com/cannaconnect/cannaconnect-api/internal/models"
	"github.com/cannaconnect/cannaconnect-api/internal/repository"
	"github.com/cannaconnect/cannaconnect-api/internal/storage"
)

var (
	ErrFileRequired         = apierrors.New(apierrors.ErrInvalidInput, "file is required")
	ErrVideoType            = apierrors.New(apierrors.ErrInvalidInput, "video must be one of: "+strings.Join(constants.AllowedVideoExtensions, ", "))
	ErrImageType            = apierrors.New(apierrors.ErrInvalidInput, "image must be one of: "+strings.Join(constants.AllowedImageExtensions, ", "))
	ErrCannotUploadVideo    = apierrors.New(apierrors.ErrForbidden, "your role cannot upload videos")
	ErrInstructionalContent = apierrors.New(apierrors.ErrForbidden, "instructional content is restricted")
	ErrMediaNotFound        = apierrors.New(apierrors.ErrNotFound, "media not found")
	ErrImageNotFound        = apierrors.New(apierrors.ErrNotFound, "image not found")
)

const maxFileNameLength = 255

// MediaService handles video and image uploads.
type MediaService struct {
	uow     repository.UnitOfWork
	store   *storage.FileStore
	metrics metrics.Recorder
}

// NewMediaService creates a new MediaService
func NewMediaService(uow repository.UnitOfWork, store *storage.FileStore, recorder metrics.Recorder) *MediaService {
	return &MediaService{uow: uow, store: store, metrics: recorder}
}

// UploadInput is a single uploaded file.
type UploadInput struct {
	UserID   uint64
	FileName string
	Content  io.Reader
}

// UploadVideo stores a video. Uploads by roles that publish instructional content
// are flagged instructional and attributed to the uploader's company.
func (s *MediaService) UploadVideo(ctx context.Context, input UploadInput) (*models.UserMedia, error) {
	if input.Content == nil || strings.TrimSpace(input.FileName) == "" {
		return nil, ErrFileRequired
	}
	if !storage.HasExtension(input.FileName, constants.AllowedVideoExtensions) {
		return nil, ErrVideoType
	}
	if err := s.checkUploader(ctx, input.UserID, models.CapUploadVideo); err != nil {
		return nil, err
	}

	staged, err := s.store.Stage(constants.VideoDir, input.FileName, input.Content)
	if err != nil {
		return nil, err
	}

	media := &models.UserMedia{
		UserID:   input.UserID,
		FileName: cleanFileName(input.FileName),
		FileType: models.MediaTypeVideo,
		FilePath: staged.RelPath,
	}

	err = commitUpload(ctx, s.uow, staged,
		func(repos repository.Repositories) error {
			user, err := repos.Users.FindByID(input.UserID)
			if err != nil {
				return lookup(err, ErrUserNotFound, "user")
			}
			if !user.Role.Can(models.CapUploadVideo) {
				return ErrCannotUploadVideo
			}
			if user.Role.Can(models.CapPublishInstructional) {
				media.Instructional = true
				media.CompanyID = user.CompanyID
			}

			if err := repos.Media.CreateMedia(media); err != nil {
				return fmt.Errorf("failed to create media: %w", err)
			}
			return nil
		},
		func(repos repository.Repositories) error {
			return repos.Media.DeleteMedia(media.ID)
		},
	)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordUpload(models.MediaTypeVideo, staged.Size)
	return media, nil
}

// OpenMedia returns a video and its opened file. The caller closes the file.
func (s *MediaService) OpenMedia(ctx context.Context, actorID, mediaID uint64) (*models.UserMedia, *os.File, error) {
	var media *models.UserMedia
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		found, err := repos.Media.FindMedia(mediaID)
		if err != nil {
			return lookup(err, ErrMediaNotFound, "media")
		}
		if found.Instructional {
			actor, err := repos.Users.FindByID(actorID)
			if err != nil {
				return lookup(err, ErrUserNotFound, "user")
			}
			if !actor.Role.Can(models.CapViewInstructional) {
				return ErrInstructionalContent
			}
		}
		media = found
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	f, err := s.openFile(media.FilePath, ErrMediaNotFound)
	if err != nil {
		return nil, nil, err
	}
	return media, f, nil
}

// UploadImage stores an image for the user.
func (s *MediaService) UploadImage(ctx context.Context, input UploadInput) (*models.UserImage, error) {
	if input.Content == nil || strings.TrimSpace(input.FileName) == "" {
		return nil, ErrFileRequired
	}
	if !storage.HasExtension(input.FileName, constants.AllowedImageExtensions) {
		return nil, ErrImageType
	}
	if err := s.checkUploader(ctx, input.UserID); err != nil {
		return nil, err
	}

	staged, err := s.store.Stage(constants.ImageDir, input.FileName, input.Content)
	if err != nil {
		return nil, err
	}

	image := &models.UserImage{
		UserID:   input.UserID,
		FileName: cleanFileName(input.FileName),
		FilePath: staged.RelPath,
	}

	err = commitUpload(ctx, s.uow, staged,
		func(repos repository.Repositories) error {
			if _, err := repos.Users.FindByID(input.UserID); err != nil {
				return lookup(err, ErrUserNotFound, "user")
			}
			if err := repos.Media.CreateImage(image); err != nil {
				return fmt.Errorf("failed to create image: %w", err)
			}
			return nil
		},
		func(repos repository.Repositories) error {
			return repos.Media.DeleteImage(image.ID)
		},
	)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordUpload(models.MediaTypeImage, staged.Size)
	return image, nil
}

// ListImages returns a user's images, newest first.
func (s *MediaService) ListImages(ctx context.Context, userID uint64) ([]models.UserImage, error) {
	var images []models.UserImage
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Users.FindByID(userID); err != nil {
			return lookup(err, ErrUserNotFound, "user")
		}
		var err error
		images, err = repos.Media.ListImages(userID)
		if err != nil {
			return fmt.Errorf("failed to list images: %w", err)
		}
		return nil
	})
	return images, err
}

// OpenImage returns an image and its opened file. The caller closes the file.
func (s *MediaService) OpenImage(ctx context.Context, imageID uint64) (*models.UserImage, *os.File, error) {
	var image *models.UserImage
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		found, err := repos.Media.FindImage(imageID)
		if err != nil {
			return lookup(err, ErrImageNotFound, "image")
		}
		image = found
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	f, err := s.openFile(image.FilePath, ErrImageNotFound)
	if err != nil {
		return nil, nil, err
	}
	return image, f, nil
}

// checkUploader rejects unknown users and roles lacking any of needs before anything
// is written to disk. The commit phase checks again.
func (s *MediaService) checkUploader(ctx context.Context, userID uint64, needs ...models.Capability) error {
	return s.uow.Do(ctx, func(repos repository.Repositories) error {
		user, err := repos.Users.FindByID(userID)
		if err != nil {
			return lookup(err, ErrUserNotFound, "user")
		}
		for _, need := range needs {
			if !user.Role.Can(need) {
				return ErrCannotUploadVideo
			}
		}
		return nil
	})
}

func (s *MediaService) openFile(rel string, missing error) (*os.File, error) {
	f, err := s.store.Open(rel)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, missing
		}
		return nil, fmt.Errorf("failed to open %s: %w", rel, err)
	}
	return f, nil
}

// cleanFileName keeps only the base name of a client supplied file name.
func cleanFileName(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if runes := []rune(name); len(runes) > maxFileNameLength {
		name = string(runes[len(runes)-maxFileNameLength:])
	}
	return name
}
