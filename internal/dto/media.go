package dto

import (
	"time"

	"github.com/cannaconnect/cannaconnect-api/internal/models"
)

// MediaDTO represents an uploaded video
type MediaDTO struct {
	ID            uint64    `json:"id"`
	UserID        uint64    `json:"user_id"`
	CompanyID     *uint64   `json:"company_id"`
	FileName      string    `json:"file_name"`
	FileType      string    `json:"file_type"`
	Instructional bool      `json:"instructional"`
	UploadedAt    time.Time `json:"uploaded_at"`
}

// ImageDTO represents an uploaded image
type ImageDTO struct {
	ID         uint64    `json:"id"`
	UserID     uint64    `json:"user_id"`
	FileName   string    `json:"file_name"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// AdDTO represents an advertisement in API responses
type AdDTO struct {
	ID          uint64    `json:"id"`
	CompanyID   uint64    `json:"company_id"`
	CompanyName string    `json:"company_name,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Link        string    `json:"link"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToMediaDTO converts a UserMedia model to MediaDTO
func ToMediaDTO(media models.UserMedia) MediaDTO {
	return MediaDTO{
		ID:            media.ID,
		UserID:        media.UserID,
		CompanyID:     media.CompanyID,
		FileName:      media.FileName,
		FileType:      media.FileType,
		Instructional: media.Instructional,
		UploadedAt:    media.UploadedAt,
	}
}

// ToImageDTO converts a UserImage model to ImageDTO
func ToImageDTO(image models.UserImage) ImageDTO {
	return ImageDTO{
		ID:         image.ID,
		UserID:     image.UserID,
		FileName:   image.FileName,
		UploadedAt: image.UploadedAt,
	}
}

// ToImageDTOs converts a slice of images
func ToImageDTOs(images []models.UserImage) []ImageDTO {
	out := make([]ImageDTO, len(images))
	for i, image := range images {
		out[i] = ToImageDTO(image)
	}
	return out
}

// ToAdDTO converts an Advertisement model to AdDTO
func ToAdDTO(ad models.Advertisement) AdDTO {
	dto := AdDTO{
		ID:          ad.ID,
		CompanyID:   ad.CompanyID,
		Title:       ad.Title,
		Description: ad.Description,
		ImageURL:    ad.ImageURL,
		Link:        ad.Link,
		Active:      ad.Active,
		CreatedAt:   ad.CreatedAt,
	}
	if ad.Company != nil {
		dto.CompanyName = ad.Company.Name
	}
	return dto
}

// ToAdDTOs converts a slice of ads
func ToAdDTOs(ads []models.Advertisement) []AdDTO {
	out := make([]AdDTO, len(ads))
	for i, ad := range ads {
		out[i] = ToAdDTO(ad)
	}
	return out
}
