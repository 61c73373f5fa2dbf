package models

import (
	"time"
)

type User struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	Name         string     `gorm:"type:varchar(80);not null" json:"name"`
	Email        string     `gorm:"type:varchar(120);uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"type:varchar(200);not null" json:"-"`
	Bio          string     `gorm:"type:varchar(250)" json:"bio"`
	Role         Role       `gorm:"type:varchar(30);not null" json:"role"`
	City         string     `gorm:"type:varchar(50)" json:"city"`
	State        string     `gorm:"type:varchar(50)" json:"state"`
	ProfileImage string     `gorm:"type:varchar(250)" json:"profile_image"`
	CompanyID    *uint64    `gorm:"index" json:"company_id"`
	IsVerified   bool       `gorm:"not null;default:false" json:"is_verified"`
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	Company   *Company   `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Interests []Interest `gorm:"many2many:user_interests" json:"interests,omitempty"`
}

// BelongsTo reports whether the user is an employee of companyID.
func (u *User) BelongsTo(companyID uint64) bool {
	return u.CompanyID != nil && *u.CompanyID == companyID
}
