package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cannaconnect/cannaconnect-api/internal/dto"
	apierrors "github.com/cannaconnect/cannaconnect-api/internal/errors"
	"github.com/cannaconnect/cannaconnect-api/internal/services"
)

// ConnectionHandler serves connections, favorites and notifications.
type ConnectionHandler struct {
	connectionService *services.ConnectionService
}

func NewConnectionHandler(connectionService *services.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connectionService: connectionService}
}

// RequestConnection sends a connection request to the user in the path
func (h *ConnectionHandler) RequestConnection(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	targetID, ok := idParam(c, "userId")
	if !ok {
		return
	}

	conn, err := h.connectionService.RequestConnection(c.Request.Context(), userID, targetID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToConnectionDTO(*conn))
}

// RespondToConnection accepts or rejects a request addressed to the caller
func (h *ConnectionHandler) RespondToConnection(c *gin.Context) {
	type RespondRequest struct {
		Status string `json:"status"`
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	connID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req RespondRequest
	if !bindJSON(c, &req, false) {
		return
	}

	conn, err := h.connectionService.RespondToConnection(c.Request.Context(), userID, connID, req.Status)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConnectionDTO(*conn))
}

// DeleteConnection removes a connection the caller requested
func (h *ConnectionHandler) DeleteConnection(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	connID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.connectionService.DeleteConnection(c.Request.Context(), userID, connID); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Connection deleted successfully"})
}

// ListConnections lists the caller's established connections
func (h *ConnectionHandler) ListConnections(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	conns, err := h.connectionService.ListConnections(c.Request.Context(), userID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConnectionDTOs(conns))
}

// ListPending lists requests waiting for the caller's response
func (h *ConnectionHandler) ListPending(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	conns, err := h.connectionService.ListPending(c.Request.Context(), userID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConnectionDTOs(conns))
}

// ListNotifications renders pending requests as notifications, newest first
func (h *ConnectionHandler) ListNotifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	conns, err := h.connectionService.ListPending(c.Request.Context(), userID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNotifications(conns))
}

// AddFavorite favorites a user on behalf of the path user, who must be the caller
func (h *ConnectionHandler) AddFavorite(c *gin.Context) {
	type AddFavoriteRequest struct {
		FavoriteUserID uint64 `json:"favorite_user_id"`
	}

	actorID, ok := currentUserID(c)
	if !ok {
		return
	}
	ownerID, ok := idParam(c, "userId")
	if !ok {
		return
	}

	var req AddFavoriteRequest
	if !bindJSON(c, &req, false) {
		return
	}
	if req.FavoriteUserID == 0 {
		apierrors.BadRequest(c, "favorite_user_id is required")
		return
	}

	fav, err := h.connectionService.AddFavorite(c.Request.Context(), actorID, ownerID, req.FavoriteUserID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToFavoriteDTO(*fav))
}

// ListFavorites lists the caller's favorites
func (h *ConnectionHandler) ListFavorites(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	favs, err := h.connectionService.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFavoriteDTOs(favs))
}

// RemoveFavorite deletes one of the caller's favorites
func (h *ConnectionHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	favID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.connectionService.RemoveFavorite(c.Request.Context(), userID, favID); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Favorite connect removed successfully"})
}
