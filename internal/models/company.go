package models

import "time"

type Company struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Industry    string    `gorm:"type:varchar(100)" json:"industry"`
	CompanySize string    `gorm:"type:varchar(50)" json:"company_size"`
	Location    string    `gorm:"type:varchar(100)" json:"location"`
	Website     string    `gorm:"type:varchar(255)" json:"website"`
	Phone       string    `gorm:"type:varchar(20)" json:"phone"`
	Email       string    `gorm:"type:varchar(120)" json:"email"`
	SocialLinks string    `gorm:"type:varchar(255)" json:"social_links"`
	FoundedYear *int      `json:"founded_year"`
	Verified    bool      `gorm:"not null;default:false" json:"verified"`
	Logo        string    `gorm:"type:varchar(255)" json:"logo"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Employees []User       `gorm:"foreignKey:CompanyID" json:"-"`
	Jobs      []JobPosting `gorm:"foreignKey:CompanyID" json:"-"`
}
