package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cannaconnect/cannaconnect-api/internal/logger"
	"github.com/cannaconnect/cannaconnect-api/internal/repository"
	"github.com/cannaconnect/cannaconnect-api/internal/storage"
)

// lookup maps a missing row to sentinel and wraps any other store failure.
func lookup(err error, sentinel error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return fmt.Errorf("failed to find %s: %w", what, err)
}

// insert maps a uniqueness violation to sentinel and wraps any other store failure.
func insert(err error, sentinel error, what string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return sentinel
	}
	return fmt.Errorf("failed to create %s: %w", what, err)
}

// commitUpload runs the second and third phase of an upload. The staged file is
// discarded when commit fails; when publishing fails the row is removed again with
// compensate.
func commitUpload(
	ctx context.Context,
	uow repository.UnitOfWork,
	staged *storage.Staged,
	commit func(repos repository.Repositories) error,
	compensate func(repos repository.Repositories) error,
) error {
	if err := uow.Do(ctx, commit); err != nil {
		if discardErr := staged.Discard(); discardErr != nil {
			logger.FromContext(ctx).Warn("Failed to discard staged upload", zap.Error(discardErr))
		}
		return err
	}

	if err := staged.Publish(); err != nil {
		if undoErr := uow.Do(ctx, compensate); undoErr != nil {
			logger.FromContext(ctx).Error("Failed to remove row of unpublished upload",
				zap.String("path", staged.RelPath),
				zap.Error(undoErr),
			)
		}
		_ = staged.Discard()
		return fmt.Errorf("failed to store upload: %w", err)
	}
	return nil
}

func optionalString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}
