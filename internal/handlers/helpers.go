package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/cannaconnect/cannaconnect-api/internal/errors"
	"github.com/cannaconnect/cannaconnect-api/internal/middleware"
)

// idParam parses a positive numeric path parameter, answering 400 when it is not.
func idParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, fmt.Sprintf("Invalid %s", name))
		return 0, false
	}
	return id, true
}

// currentUserID returns the authenticated user, answering 401 when there is none.
func currentUserID(c *gin.Context) (uint64, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return 0, false
	}
	return userID, true
}

// bindJSON decodes the request body into req. An empty body is accepted when
// optional is set.
func bindJSON(c *gin.Context, req interface{}, optional bool) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return true
		}
		apierrors.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}

// formFile opens the multipart file field, capping the request body at maxBytes.
func formFile(c *gin.Context, field string, maxBytes int64) (*multipart.FileHeader, multipart.File, bool) {
	if maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	}

	header, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			apierrors.RespondWithError(c, http.StatusRequestEntityTooLarge,
				apierrors.NewAPIError(apierrors.ErrCodeInvalidInput, fmt.Sprintf("Upload exceeds %d MB", maxBytes>>20)))
		default:
			apierrors.BadRequest(c, fmt.Sprintf("Missing %s upload", field))
		}
		return nil, nil, false
	}

	file, err := header.Open()
	if err != nil {
		apierrors.BadRequest(c, fmt.Sprintf("Unreadable %s upload", field))
		return nil, nil, false
	}
	return header, file, true
}
