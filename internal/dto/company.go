package dto

import (
	"time"

	"github.com/cannaconnect/cannaconnect-api/internal/models"
)

// CompanyDTO represents a company in API responses
type CompanyDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Industry    string    `json:"industry"`
	CompanySize string    `json:"company_size"`
	Location    string    `json:"location"`
	Website     string    `json:"website"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	SocialLinks string    `json:"social_links"`
	FoundedYear *int      `json:"founded_year"`
	Verified    bool      `json:"verified"`
	Logo        string    `json:"logo"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CompanyDetailDTO is a company with the IDs of its employees and job postings.
type CompanyDetailDTO struct {
	CompanyDTO
	EmployeeIDs []uint64 `json:"employee_ids"`
	JobIDs      []uint64 `json:"job_ids"`
}

// ToCompanyDTO converts a Company model to CompanyDTO
func ToCompanyDTO(company models.Company) CompanyDTO {
	return CompanyDTO{
		ID:          company.ID,
		Name:        company.Name,
		Industry:    company.Industry,
		CompanySize: company.CompanySize,
		Location:    company.Location,
		Website:     company.Website,
		Phone:       company.Phone,
		Email:       company.Email,
		SocialLinks: company.SocialLinks,
		FoundedYear: company.FoundedYear,
		Verified:    company.Verified,
		Logo:        company.Logo,
		Description: company.Description,
		CreatedAt:   company.CreatedAt,
	}
}

// ToCompanyDetailDTO converts a company and its member ids to CompanyDetailDTO
func ToCompanyDetailDTO(company models.Company, employeeIDs, jobIDs []uint64) CompanyDetailDTO {
	if employeeIDs == nil {
		employeeIDs = []uint64{}
	}
	if jobIDs == nil {
		jobIDs = []uint64{}
	}
	return CompanyDetailDTO{
		CompanyDTO:  ToCompanyDTO(company),
		EmployeeIDs: employeeIDs,
		JobIDs:      jobIDs,
	}
}
