package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cannaconnect/cannaconnect-api/internal/dto"
	apierrors "github.com/cannaconnect/cannaconnect-api/internal/errors"
	"github.com/cannaconnect/cannaconnect-api/internal/services"
)

type AdHandler struct {
	adService *services.AdService
}

func NewAdHandler(adService *services.AdService) *AdHandler {
	return &AdHandler{adService: adService}
}

// ListAds returns the active ads
func (h *AdHandler) ListAds(c *gin.Context) {
	ads, err := h.adService.ListActive(c.Request.Context())
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAdDTOs(ads))
}

// CreateAd submits an ad for the caller's company
func (h *AdHandler) CreateAd(c *gin.Context) {
	type CreateAdRequest struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		ImageURL    string `json:"image_url"`
		Link        string `json:"link"`
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateAdRequest
	if !bindJSON(c, &req, false) {
		return
	}

	ad, err := h.adService.CreateAd(c.Request.Context(), userID, services.CreateAdInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Link:        req.Link,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAdDTO(*ad))
}

// ToggleAd flips an ad's visibility; admins only
func (h *AdHandler) ToggleAd(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ad, err := h.adService.ToggleAd(c.Request.Context(), userID, id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAdDTO(*ad))
}
