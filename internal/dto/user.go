package dto

import (
	"time"

	"github.com/cannaconnect/cannaconnect-api/internal/models"
)

// UserDTO is the public projection of a user. It never carries the credential.
type UserDTO struct {
	ID           uint64      `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Role         models.Role `json:"role"`
	Bio          string      `json:"bio"`
	City         string      `json:"city"`
	State        string      `json:"state"`
	ProfileImage string      `json:"profile_image"`
	CompanyID    *uint64     `json:"company_id"`
	IsVerified   bool        `json:"is_verified"`
	CreatedAt    time.Time   `json:"created_at"`
}

// ProfileDTO is the caller's own profile.
type ProfileDTO struct {
	UserDTO
	LastLogin *time.Time  `json:"last_login"`
	Company   *CompanyDTO `json:"company,omitempty"`
	Interests []string    `json:"interests"`
}

// UserSummaryDTO is the minimal user shown next to connections and applications.
type UserSummaryDTO struct {
	ID           uint64      `json:"id"`
	Name         string      `json:"name"`
	Role         models.Role `json:"role"`
	ProfileImage string      `json:"profile_image"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users      []UserDTO `json:"users"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalCount int64     `json:"total_count"`
	TotalPages int       `json:"total_pages"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		Bio:          user.Bio,
		City:         user.City,
		State:        user.State,
		ProfileImage: user.ProfileImage,
		CompanyID:    user.CompanyID,
		IsVerified:   user.IsVerified,
		CreatedAt:    user.CreatedAt,
	}
}

// ToProfileDTO converts a user with company and interests preloaded.
func ToProfileDTO(user models.User) ProfileDTO {
	dto := ProfileDTO{
		UserDTO:   ToUserDTO(user),
		LastLogin: user.LastLogin,
		Interests: make([]string, len(user.Interests)),
	}
	for i, interest := range user.Interests {
		dto.Interests[i] = interest.Name
	}
	if user.Company != nil {
		company := ToCompanyDTO(*user.Company)
		dto.Company = &company
	}
	return dto
}

// ToUserSummaryDTO converts a User model to UserSummaryDTO
func ToUserSummaryDTO(user models.User) UserSummaryDTO {
	return UserSummaryDTO{
		ID:           user.ID,
		Name:         user.Name,
		Role:         user.Role,
		ProfileImage: user.ProfileImage,
	}
}

// ToUserListResponse converts a page of users to UserListResponse
func ToUserListResponse(users []models.User, page, pageSize int, totalCount int64) UserListResponse {
	items := make([]UserDTO, len(users))
	for i, user := range users {
		items[i] = ToUserDTO(user)
	}
	return UserListResponse{
		Users:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages(totalCount, pageSize),
	}
}

func totalPages(totalCount int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		pages++
	}
	return pages
}
