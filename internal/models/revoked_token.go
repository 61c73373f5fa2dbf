package models

import "time"

// RevokedToken is a blocklist entry; a token whose JTI is present is permanently invalid.
type RevokedToken struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	JTI       string    `gorm:"column:jti;type:varchar(36);uniqueIndex;not null" json:"jti"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (RevokedToken) TableName() string { return "token_blocklist" }

// All returns every model managed by migrations, in dependency order.
func All() []interface{} {
	return []interface{}{
		&Company{},
		&User{},
		&Interest{},
		&Connection{},
		&FavoriteConnect{},
		&JobPosting{},
		&JobComment{},
		&JobApplication{},
		&UserMedia{},
		&UserImage{},
		&Advertisement{},
		&RevokedToken{},
	}
}
