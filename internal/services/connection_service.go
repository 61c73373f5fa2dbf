package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apierrors "github.com/cannaconnect/cannaconnect-api/internal/errors"
	"github.com/cannaconnect/cannaconnect-api/internal/models"
	"github.com/cannaconnect/cannaconnect-api/internal/repository"
)

var (
	ErrSelfConnection        = apierrors.New(apierrors.ErrInvalidInput, "cannot connect with yourself")
	ErrConnectionExists      = apierrors.New(apierrors.ErrConflict, "connection already exists")
	ErrConnectionNotFound    = apierrors.New(apierrors.ErrNotFound, "connection not found")
	ErrInvalidResponseStatus = apierrors.New(apierrors.ErrInvalidInput, "status must be connected or rejected")
	ErrNotConnectionTarget   = apierrors.New(apierrors.ErrForbidden, "only the invited user can respond to a connection request")
	ErrSelfFavorite          = apierrors.New(apierrors.ErrInvalidInput, "cannot favorite yourself")
	ErrFavoriteForOtherUser  = apierrors.New(apierrors.ErrForbidden, "cannot manage another user's favorites")
	ErrFavoriteExists        = apierrors.New(apierrors.ErrConflict, "user is already a favorite")
	ErrFavoriteNotFound      = apierrors.New(apierrors.ErrNotFound, "favorite not found")
)

// ConnectionService handles the social graph: connection requests and favorites.
type ConnectionService struct {
	uow repository.UnitOfWork
}

// NewConnectionService creates a new ConnectionService
func NewConnectionService(uow repository.UnitOfWork) *ConnectionService {
	return &ConnectionService{uow: uow}
}

// RequestConnection creates a pending connection from requester to target.
func (s *ConnectionService) RequestConnection(ctx context.Context, requesterID, targetID uint64) (*models.Connection, error) {
	if requesterID == targetID {
		return nil, ErrSelfConnection
	}

	conn := &models.Connection{
		UserID:          requesterID,
		ConnectedUserID: targetID,
		Status:          models.ConnectionPending,
	}

	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Users.FindByID(targetID); err != nil {
			return lookup(err, ErrUserNotFound, "user")
		}

		// The unique pair index still guards against concurrent requests.
		if _, err := repos.Connections.FindPair(requesterID, targetID); err == nil {
			return ErrConnectionExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check connection: %w", err)
		}

		if err := repos.Connections.Create(conn); err != nil {
			return insert(err, ErrConnectionExists, "connection")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// RespondToConnection sets the status of a request addressed to actor.
func (s *ConnectionService) RespondToConnection(ctx context.Context, actorID, connectionID uint64, rawStatus string) (*models.Connection, error) {
	status, err := models.ParseConnectionStatus(rawStatus)
	if err != nil || status == models.ConnectionPending {
		return nil, ErrInvalidResponseStatus
	}

	var conn *models.Connection
	err = s.uow.Do(ctx, func(repos repository.Repositories) error {
		found, err := repos.Connections.FindByID(connectionID)
		if err != nil {
			return lookup(err, ErrConnectionNotFound, "connection")
		}
		if found.ConnectedUserID != actorID {
			return ErrNotConnectionTarget
		}

		if err := repos.Connections.UpdateStatus(found.ID, status); err != nil {
			return fmt.Errorf("failed to update connection: %w", err)
		}
		found.Status = status
		conn = found
		return nil
	})
	return conn, err
}

// DeleteConnection removes a connection. Only its requester may do so; anyone else
// sees it as missing.
func (s *ConnectionService) DeleteConnection(ctx context.Context, actorID, connectionID uint64) error {
	return s.uow.Do(ctx, func(repos repository.Repositories) error {
		conn, err := repos.Connections.FindByID(connectionID)
		if err != nil {
			return lookup(err, ErrConnectionNotFound, "connection")
		}
		if conn.UserID != actorID {
			return ErrConnectionNotFound
		}
		if err := repos.Connections.Delete(conn.ID); err != nil {
			return fmt.Errorf("failed to delete connection: %w", err)
		}
		return nil
	})
}

// ListConnections returns the user's connected connections, on either side.
func (s *ConnectionService) ListConnections(ctx context.Context, userID uint64) ([]models.Connection, error) {
	var conns []models.Connection
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		conns, err = repos.Connections.ListConnected(userID)
		if err != nil {
			return fmt.Errorf("failed to list connections: %w", err)
		}
		return nil
	})
	return conns, err
}

// ListPending returns the pending requests addressed to the user, newest first.
// Notifications are projected from the same rows.
func (s *ConnectionService) ListPending(ctx context.Context, userID uint64) ([]models.Connection, error) {
	var conns []models.Connection
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		conns, err = repos.Connections.ListPending(userID)
		if err != nil {
			return fmt.Errorf("failed to list pending connections: %w", err)
		}
		return nil
	})
	return conns, err
}

// AddFavorite marks favoriteUserID as a favorite of ownerID. actorID must be the owner.
func (s *ConnectionService) AddFavorite(ctx context.Context, actorID, ownerID, favoriteUserID uint64) (*models.FavoriteConnect, error) {
	if actorID != ownerID {
		return nil, ErrFavoriteForOtherUser
	}
	if favoriteUserID == ownerID {
		return nil, ErrSelfFavorite
	}

	fav := &models.FavoriteConnect{UserID: ownerID, FavoriteUserID: favoriteUserID}
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		favorite, err := repos.Users.FindByID(favoriteUserID)
		if err != nil {
			return lookup(err, ErrUserNotFound, "user")
		}

		if err := repos.Connections.CreateFavorite(fav); err != nil {
			return insert(err, ErrFavoriteExists, "favorite")
		}
		fav.FavoriteUser = favorite
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fav, nil
}

// ListFavorites returns the user's favorites, newest first.
func (s *ConnectionService) ListFavorites(ctx context.Context, userID uint64) ([]models.FavoriteConnect, error) {
	var favs []models.FavoriteConnect
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		favs, err = repos.Connections.ListFavorites(userID)
		if err != nil {
			return fmt.Errorf("failed to list favorites: %w", err)
		}
		return nil
	})
	return favs, err
}

// RemoveFavorite deletes one of the actor's favorites.
func (s *ConnectionService) RemoveFavorite(ctx context.Context, actorID, favoriteID uint64) error {
	return s.uow.Do(ctx, func(repos repository.Repositories) error {
		fav, err := repos.Connections.FindFavorite(favoriteID)
		if err != nil {
			return lookup(err, ErrFavoriteNotFound, "favorite")
		}
		if fav.UserID != actorID {
			return ErrFavoriteNotFound
		}
		if err := repos.Connections.DeleteFavorite(fav.ID); err != nil {
			return fmt.Errorf("failed to delete favorite: %w", err)
		}
		return nil
	})
}
