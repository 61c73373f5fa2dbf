package models

import (
	"fmt"
	"time"
)

type ConnectionStatus string

const (
	ConnectionPending   ConnectionStatus = "pending"
	ConnectionConnected ConnectionStatus = "connected"
	ConnectionRejected  ConnectionStatus = "rejected"
)

// ParseConnectionStatus converts a raw string to a ConnectionStatus.
func ParseConnectionStatus(s string) (ConnectionStatus, error) {
	st := ConnectionStatus(s)
	switch st {
	case ConnectionPending, ConnectionConnected, ConnectionRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown connection status %q", s)
}

// Connection is a request from UserID (requester) to ConnectedUserID (target).
// The ordered pair is unique.
type Connection struct {
	ID              uint64           `gorm:"primarykey" json:"id"`
	UserID          uint64           `gorm:"not null;uniqueIndex:idx_connection_pair,priority:1" json:"user_id"`
	ConnectedUserID uint64           `gorm:"not null;uniqueIndex:idx_connection_pair,priority:2;index:idx_connection_target_status,priority:1" json:"connected_user_id"`
	Status          ConnectionStatus `gorm:"type:varchar(20);not null;index:idx_connection_target_status,priority:2" json:"status"`
	CreatedAt       time.Time        `json:"created_at"`

	// Relations
	User          *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ConnectedUser *User `gorm:"foreignKey:ConnectedUserID;constraint:OnDelete:CASCADE" json:"-"`
}

// FavoriteConnect marks FavoriteUserID as a favorite of UserID. The pair is unique.
type FavoriteConnect struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	UserID         uint64    `gorm:"not null;uniqueIndex:idx_favorite_pair,priority:1" json:"user_id"`
	FavoriteUserID uint64    `gorm:"not null;uniqueIndex:idx_favorite_pair,priority:2" json:"favorite_user_id"`
	CreatedAt      time.Time `json:"created_at"`

	// Relations
	User         *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	FavoriteUser *User `gorm:"foreignKey:FavoriteUserID;constraint:OnDelete:CASCADE" json:"-"`
}
