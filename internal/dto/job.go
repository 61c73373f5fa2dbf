package dto

import (
	"cmp"
	"slices"
	"time"

	"github.com/cannaconnect/cannaconnect-api/internal/models"
)

// JobDTO represents a job posting in API responses
type JobDTO struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Salary      string    `json:"salary"`
	PostedBy    uint64    `json:"posted_by"`
	CompanyID   *uint64   `json:"company_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// JobListResponse represents a paginated list of jobs
type JobListResponse struct {
	Jobs       []JobDTO `json:"jobs"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalCount int64    `json:"total_count"`
	TotalPages int      `json:"total_pages"`
}

// CommentDTO is a comment with its replies nested beneath it.
type CommentDTO struct {
	ID        uint64       `json:"id"`
	JobID     uint64       `json:"job_id"`
	UserID    uint64       `json:"user_id"`
	CompanyID *uint64      `json:"company_id"`
	Content   string       `json:"content"`
	ParentID  *uint64      `json:"parent_id"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Replies   []CommentDTO `json:"replies"`
}

// ApplicationDTO represents a job application. DecisionNotes is null while the
// application is pending.
type ApplicationDTO struct {
	ID             uint64                   `json:"id"`
	UserID         uint64                   `json:"user_id"`
	JobID          uint64                   `json:"job_id"`
	CompanyID      *uint64                  `json:"company_id"`
	AppliedAt      time.Time                `json:"applied_at"`
	Status         models.ApplicationStatus `json:"status"`
	ResumeFilePath string                   `json:"resume_file_path"`
	DecisionNotes  *string                  `json:"decision_notes"`
	Applicant      *UserSummaryDTO          `json:"applicant,omitempty"`
}

// ToJobDTO converts a JobPosting model to JobDTO
func ToJobDTO(job models.JobPosting) JobDTO {
	return JobDTO{
		ID:          job.ID,
		Title:       job.Title,
		Category:    job.Category,
		Description: job.Description,
		Location:    job.Location,
		Salary:      job.Salary,
		PostedBy:    job.PostedBy,
		CompanyID:   job.CompanyID,
		CreatedAt:   job.CreatedAt,
	}
}

// ToJobDTOs converts a slice of jobs
func ToJobDTOs(jobs []models.JobPosting) []JobDTO {
	out := make([]JobDTO, len(jobs))
	for i, job := range jobs {
		out[i] = ToJobDTO(job)
	}
	return out
}

// ToJobListResponse converts a page of jobs to JobListResponse
func ToJobListResponse(jobs []models.JobPosting, page, pageSize int, totalCount int64) JobListResponse {
	return JobListResponse{
		Jobs:       ToJobDTOs(jobs),
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages(totalCount, pageSize),
	}
}

// ToCommentDTO converts a single comment without replies.
func ToCommentDTO(comment models.JobComment) CommentDTO {
	return CommentDTO{
		ID:        comment.ID,
		JobID:     comment.JobID,
		UserID:    comment.UserID,
		CompanyID: comment.CompanyID,
		Content:   comment.Content,
		ParentID:  comment.ParentID,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
		Replies:   []CommentDTO{},
	}
}

// BuildCommentTree nests the comments of one job under their parents. Siblings are
// ordered by creation time, then id. A comment whose parent is not in the slice is
// treated as a root.
func BuildCommentTree(comments []models.JobComment) []CommentDTO {
	ordered := slices.Clone(comments)
	slices.SortStableFunc(ordered, func(a, b models.JobComment) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	index := make(map[uint64]int, len(ordered))
	for i, comment := range ordered {
		index[comment.ID] = i
	}

	children := make([][]int, len(ordered))
	var roots []int
	for i, comment := range ordered {
		if comment.ParentID != nil {
			if p, ok := index[*comment.ParentID]; ok && p != i {
				children[p] = append(children[p], i)
				continue
			}
		}
		roots = append(roots, i)
	}

	var build func(i int) CommentDTO
	build = func(i int) CommentDTO {
		node := ToCommentDTO(ordered[i])
		for _, child := range children[i] {
			node.Replies = append(node.Replies, build(child))
		}
		return node
	}

	tree := make([]CommentDTO, 0, len(roots))
	for _, i := range roots {
		tree = append(tree, build(i))
	}
	return tree
}

// ToApplicationDTO converts a JobApplication model to ApplicationDTO
func ToApplicationDTO(app models.JobApplication) ApplicationDTO {
	dto := ApplicationDTO{
		ID:             app.ID,
		UserID:         app.UserID,
		JobID:          app.JobID,
		CompanyID:      app.CompanyID,
		AppliedAt:      app.AppliedAt,
		Status:         app.Status,
		ResumeFilePath: app.ResumeFilePath,
	}
	if app.Status != models.ApplicationPending {
		notes := app.DecisionNotes
		dto.DecisionNotes = &notes
	}
	if app.User != nil {
		applicant := ToUserSummaryDTO(*app.User)
		dto.Applicant = &applicant
	}
	return dto
}

// ToApplicationDTOs converts a slice of applications
func ToApplicationDTOs(apps []models.JobApplication) []ApplicationDTO {
	out := make([]ApplicationDTO, len(apps))
	for i, app := range apps {
		out[i] = ToApplicationDTO(app)
	}
	return out
}
