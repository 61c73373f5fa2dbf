package models

type Interest struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(80);uniqueIndex;not null" json:"name"`

	Users []User `gorm:"many2many:user_interests" json:"-"`
}
