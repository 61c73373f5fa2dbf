package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/cannaconnect/cannaconnect-api/internal/dto"
	apierrors "github.com/cannaconnect/cannaconnect-api/internal/errors"
	"github.com/cannaconnect/cannaconnect-api/internal/services"
)

type MediaHandler struct {
	mediaService   *services.MediaService
	maxUploadBytes int64
}

func NewMediaHandler(mediaService *services.MediaService, maxUploadBytes int64) *MediaHandler {
	return &MediaHandler{
		mediaService:   mediaService,
		maxUploadBytes: maxUploadBytes,
	}
}

// UploadVideo stores a multipart "file" video for the caller
func (h *MediaHandler) UploadVideo(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	header, file, ok := formFile(c, "file", h.maxUploadBytes)
	if !ok {
		return
	}
	defer file.Close()

	media, err := h.mediaService.UploadVideo(c.Request.Context(), services.UploadInput{
		UserID:   userID,
		FileName: header.Filename,
		Content:  file,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMediaDTO(*media))
}

// StreamMedia serves a video with range support
func (h *MediaHandler) StreamMedia(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	media, file, err := h.mediaService.OpenMedia(c.Request.Context(), userID, id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	defer file.Close()

	serveFile(c, media.FileName, file)
}

// UploadImage stores a multipart "file" image for the caller
func (h *MediaHandler) UploadImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	header, file, ok := formFile(c, "file", h.maxUploadBytes)
	if !ok {
		return
	}
	defer file.Close()

	image, err := h.mediaService.UploadImage(c.Request.Context(), services.UploadInput{
		UserID:   userID,
		FileName: header.Filename,
		Content:  file,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToImageDTO(*image))
}

// ListUserImages lists the images of the user in the path
func (h *MediaHandler) ListUserImages(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	images, err := h.mediaService.ListImages(c.Request.Context(), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToImageDTOs(images))
}

// GetImage serves an image file
func (h *MediaHandler) GetImage(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	image, file, err := h.mediaService.OpenImage(c.Request.Context(), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	defer file.Close()

	serveFile(c, image.FileName, file)
}

// serveFile writes file with content type from name and Range/If-Modified-Since handling.
func serveFile(c *gin.Context, name string, file *os.File) {
	info, err := file.Stat()
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	http.ServeContent(c.Writer, c.Request, name, info.ModTime(), file)
}
