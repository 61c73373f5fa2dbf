package models

import "time"

type Advertisement struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	CompanyID   uint64    `gorm:"not null;index" json:"company_id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	ImageURL    string    `gorm:"type:varchar(255)" json:"image_url"`
	Link        string    `gorm:"type:varchar(255);not null" json:"link"`
	Active      bool      `gorm:"not null;index" json:"active"`
	CreatedAt   time.Time `json:"created_at"`

	Company *Company `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"-"`
}
