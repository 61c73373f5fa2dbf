package constants

const (
	// ContextKeyUserID is the gin context key holding the authenticated user ID.
	ContextKeyUserID = "user_id"
	// ContextKeyClaims is the gin context key holding the verified token claims.
	ContextKeyClaims = "token_claims"
	// ContextKeyRequestID is the gin context key holding the request correlation ID.
	ContextKeyRequestID = "request_id"

	HeaderRequestID  = "X-Request-ID"
	HeaderTotalCount = "X-Total-Count"
)

// Pagination bounds
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Account policy
const (
	MinPasswordLength = 5
	MaxNameLength     = 80
	MaxBioLength      = 250
)

// Upload policy
var (
	AllowedImageExtensions  = []string{"png", "jpg", "jpeg", "gif"}
	AllowedVideoExtensions  = []string{"mp4", "mov", "avi"}
	AllowedResumeExtensions = []string{"pdf", "doc", "docx", "txt", "rtf"}
)

const (
	ResumeDir = "resumes"
	VideoDir  = "videos"
	ImageDir  = "images"
)
