package models

import "time"

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

type UserMedia struct {
	ID            uint64    `gorm:"primarykey" json:"id"`
	UserID        uint64    `gorm:"not null;index" json:"user_id"`
	CompanyID     *uint64   `gorm:"index" json:"company_id"`
	FileName      string    `gorm:"type:varchar(255);not null" json:"file_name"`
	FileType      string    `gorm:"type:varchar(50);not null" json:"file_type"`
	FilePath      string    `gorm:"type:varchar(255);not null" json:"file_path"`
	Instructional bool      `gorm:"not null;default:false" json:"instructional"`
	UploadedAt    time.Time `gorm:"autoCreateTime" json:"uploaded_at"`

	// Relations
	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Company *Company `gorm:"foreignKey:CompanyID" json:"-"`
}

func (UserMedia) TableName() string { return "user_media" }

type UserImage struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	UserID     uint64    `gorm:"not null;index" json:"user_id"`
	FileName   string    `gorm:"type:varchar(255);not null" json:"file_name"`
	FilePath   string    `gorm:"type:varchar(255);not null" json:"file_path"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
