package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cannaconnect/cannaconnect-api/internal/constants"
	"github.com/cannaconnect/cannaconnect-api/internal/dto"
	apierrors "github.com/cannaconnect/cannaconnect-api/internal/errors"
	"github.com/cannaconnect/cannaconnect-api/internal/services"
	"github.com/cannaconnect/cannaconnect-api/internal/utils"
)

type JobHandler struct {
	jobService     *services.JobService
	maxUploadBytes int64
}

func NewJobHandler(jobService *services.JobService, maxUploadBytes int64) *JobHandler {
	return &JobHandler{
		jobService:     jobService,
		maxUploadBytes: maxUploadBytes,
	}
}

type jobRequest struct {
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Salary      string  `json:"salary"`
	CompanyID   *uint64 `json:"company_id"`
}

func (r jobRequest) input(posterID uint64) services.CreateJobInput {
	return services.CreateJobInput{
		PosterID:    posterID,
		CompanyID:   r.CompanyID,
		Title:       r.Title,
		Category:    r.Category,
		Description: r.Description,
		Location:    r.Location,
		Salary:      r.Salary,
	}
}

// ListJobs returns a page of jobs, newest first. The total is also sent in
// X-Total-Count.
func (h *JobHandler) ListJobs(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	jobs, total, err := h.jobService.ListJobs(c.Request.Context(), params)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.Header(constants.HeaderTotalCount, strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, dto.ToJobListResponse(jobs, params.Page, params.Limit, total))
}

// GetJob returns a single job
func (h *JobHandler) GetJob(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	job, err := h.jobService.GetJob(c.Request.Context(), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJobDTO(*job))
}

// CreateJob posts a job, optionally under a company given in the body
func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req jobRequest
	if !bindJSON(c, &req, false) {
		return
	}

	job, err := h.jobService.CreateJob(c.Request.Context(), req.input(userID))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToJobDTO(*job))
}

// DeleteJob removes a job with its comments and applications
func (h *JobHandler) DeleteJob(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(c.Request.Context(), userID, id); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Job deleted successfully"})
}

// AddComment comments on a job, optionally replying to another comment
func (h *JobHandler) AddComment(c *gin.Context) {
	type CommentRequest struct {
		Content  string  `json:"content"`
		ParentID *uint64 `json:"parent_id"`
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	jobID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req CommentRequest
	if !bindJSON(c, &req, false) {
		return
	}

	comment, err := h.jobService.AddComment(c.Request.Context(), services.CommentInput{
		JobID:    jobID,
		AuthorID: userID,
		Content:  req.Content,
		ParentID: req.ParentID,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// ListComments returns the job's comments as a tree
func (h *JobHandler) ListComments(c *gin.Context) {
	jobID, ok := idParam(c, "id")
	if !ok {
		return
	}

	comments, err := h.jobService.ListComments(c.Request.Context(), jobID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BuildCommentTree(comments))
}

// Apply submits an application with a multipart "resume" file
func (h *JobHandler) Apply(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	jobID, ok := idParam(c, "id")
	if !ok {
		return
	}

	header, file, ok := formFile(c, "resume", h.maxUploadBytes)
	if !ok {
		return
	}
	defer file.Close()

	app, err := h.jobService.Apply(c.Request.Context(), services.ApplyInput{
		JobID:       jobID,
		ApplicantID: userID,
		ResumeName:  header.Filename,
		Resume:      file,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToApplicationDTO(*app))
}

// ListApplications lists a job's applications for whoever manages them
func (h *JobHandler) ListApplications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	jobID, ok := idParam(c, "id")
	if !ok {
		return
	}

	apps, err := h.jobService.ListApplications(c.Request.Context(), userID, jobID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationDTOs(apps))
}

// UpdateApplicationStatus records a hiring decision
func (h *JobHandler) UpdateApplicationStatus(c *gin.Context) {
	type StatusRequest struct {
		Status        string `json:"status"`
		DecisionNotes string `json:"decision_notes"`
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	jobID, ok := idParam(c, "id")
	if !ok {
		return
	}
	appID, ok := idParam(c, "applicationId")
	if !ok {
		return
	}

	var req StatusRequest
	if !bindJSON(c, &req, false) {
		return
	}

	app, err := h.jobService.UpdateApplicationStatus(c.Request.Context(), services.UpdateApplicationStatusInput{
		JobID:         jobID,
		ApplicationID: appID,
		ActorID:       userID,
		Status:        req.Status,
		Notes:         req.DecisionNotes,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationDTO(*app))
}
