package dto

import (
	"time"

	"github.com/cannaconnect/cannaconnect-api/internal/models"
)

// ConnectionDTO represents a connection in API responses
type ConnectionDTO struct {
	ID              uint64                  `json:"id"`
	UserID          uint64                  `json:"user_id"`
	ConnectedUserID uint64                  `json:"connected_user_id"`
	Status          models.ConnectionStatus `json:"status"`
	CreatedAt       time.Time               `json:"created_at"`
	User            *UserSummaryDTO         `json:"user,omitempty"`
	ConnectedUser   *UserSummaryDTO         `json:"connected_user,omitempty"`
}

// FavoriteDTO represents a favorite connect in API responses
type FavoriteDTO struct {
	ID             uint64          `json:"id"`
	UserID         uint64          `json:"user_id"`
	FavoriteUserID uint64          `json:"favorite_user_id"`
	CreatedAt      time.Time       `json:"created_at"`
	FavoriteUser   *UserSummaryDTO `json:"favorite_user,omitempty"`
}

// NotificationDTO is a pending connection request rendered for display.
type NotificationDTO struct {
	ID        uint64    `json:"id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ToConnectionDTO converts a Connection model to ConnectionDTO
func ToConnectionDTO(conn models.Connection) ConnectionDTO {
	dto := ConnectionDTO{
		ID:              conn.ID,
		UserID:          conn.UserID,
		ConnectedUserID: conn.ConnectedUserID,
		Status:          conn.Status,
		CreatedAt:       conn.CreatedAt,
	}

	// Include users if preloaded
	if conn.User != nil {
		user := ToUserSummaryDTO(*conn.User)
		dto.User = &user
	}
	if conn.ConnectedUser != nil {
		user := ToUserSummaryDTO(*conn.ConnectedUser)
		dto.ConnectedUser = &user
	}

	return dto
}

// ToConnectionDTOs converts a slice of connections
func ToConnectionDTOs(conns []models.Connection) []ConnectionDTO {
	out := make([]ConnectionDTO, len(conns))
	for i, conn := range conns {
		out[i] = ToConnectionDTO(conn)
	}
	return out
}

// ToFavoriteDTO converts a FavoriteConnect model to FavoriteDTO
func ToFavoriteDTO(fav models.FavoriteConnect) FavoriteDTO {
	dto := FavoriteDTO{
		ID:             fav.ID,
		UserID:         fav.UserID,
		FavoriteUserID: fav.FavoriteUserID,
		CreatedAt:      fav.CreatedAt,
	}
	if fav.FavoriteUser != nil {
		user := ToUserSummaryDTO(*fav.FavoriteUser)
		dto.FavoriteUser = &user
	}
	return dto
}

// ToFavoriteDTOs converts a slice of favorites
func ToFavoriteDTOs(favs []models.FavoriteConnect) []FavoriteDTO {
	out := make([]FavoriteDTO, len(favs))
	for i, fav := range favs {
		out[i] = ToFavoriteDTO(fav)
	}
	return out
}

// ToNotifications renders pending requests, keeping their order. The requester
// should be preloaded; otherwise a generic sender is named.
func ToNotifications(pending []models.Connection) []NotificationDTO {
	out := make([]NotificationDTO, len(pending))
	for i, conn := range pending {
		sender := "Someone"
		if conn.User != nil && conn.User.Name != "" {
			sender = conn.User.Name
		}
		out[i] = NotificationDTO{
			ID:        conn.ID,
			Message:   sender + " sent you a connection request",
			Timestamp: conn.CreatedAt,
		}
	}
	return out
}
