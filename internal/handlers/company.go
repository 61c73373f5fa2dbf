package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cannaconnect/cannaconnect-api/internal/dto"
	apierrors "github.com/cannaconnect/cannaconnect-api/internal/errors"
	"github.com/cannaconnect/cannaconnect-api/internal/services"
)

type CompanyHandler struct {
	companyService *services.CompanyService
	jobService     *services.JobService
}

func NewCompanyHandler(companyService *services.CompanyService, jobService *services.JobService) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
		jobService:     jobService,
	}
}

// CreateCompany registers a company with the caller as its first employee
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	type CreateCompanyRequest struct {
		Name        string `json:"name"`
		Industry    string `json:"industry"`
		CompanySize string `json:"company_size"`
		Location    string `json:"location"`
		Website     string `json:"website"`
		Phone       string `json:"phone"`
		Email       string `json:"email"`
		SocialLinks string `json:"social_links"`
		FoundedYear *int   `json:"founded_year"`
		Logo        string `json:"logo"`
		Description string `json:"description"`
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateCompanyRequest
	if !bindJSON(c, &req, false) {
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), userID, services.CreateCompanyInput{
		Name:        req.Name,
		Industry:    req.Industry,
		CompanySize: req.CompanySize,
		Location:    req.Location,
		Website:     req.Website,
		Phone:       req.Phone,
		Email:       req.Email,
		SocialLinks: req.SocialLinks,
		FoundedYear: req.FoundedYear,
		Logo:        req.Logo,
		Description: req.Description,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCompanyDTO(*company))
}

// GetCompany returns a company with its employee and job ids
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	details, err := h.companyService.GetCompany(c.Request.Context(), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyDetailDTO(*details.Company, details.EmployeeIDs, details.JobIDs))
}

// CreateCompanyJob posts a job under the company in the path
func (h *CompanyHandler) CreateCompanyJob(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req jobRequest
	if !bindJSON(c, &req, false) {
		return
	}

	input := req.input(userID)
	input.CompanyID = &companyID

	job, err := h.jobService.CreateJob(c.Request.Context(), input)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToJobDTO(*job))
}

// ListCompanyJobs lists a company's job postings
func (h *CompanyHandler) ListCompanyJobs(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	jobs, err := h.companyService.ListCompanyJobs(c.Request.Context(), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJobDTOs(jobs))
}
