package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cannaconnect/cannaconnect-api/internal/auth"
	"github.com/cannaconnect/cannaconnect-api/internal/constants"
	apierrors "github.com/cannaconnect/cannaconnect-api/internal/errors"
)

// Authenticator verifies a raw token of the wanted type, including revocation.
type Authenticator interface {
	Authenticate(ctx context.Context, token string, want auth.TokenType) (*auth.Claims, error)
}

// RequireAuth checks for a valid access token in the Authorization header
func RequireAuth(authn Authenticator) gin.HandlerFunc {
	return requireToken(authn, auth.TokenAccess)
}

// RequireRefresh checks for a valid refresh token in the Authorization header
func RequireRefresh(authn Authenticator) gin.HandlerFunc {
	return requireToken(authn, auth.TokenRefresh)
}

func requireToken(authn Authenticator, want auth.TokenType) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		claims, err := authn.Authenticate(c.Request.Context(), token, want)
		if err != nil {
			apierrors.Respond(c, err)
			return
		}

		// Store identity in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyClaims, claims)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(uint64)
	return id, ok
}

// GetClaims retrieves the verified token claims from context
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	v, exists := c.Get(constants.ContextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok && claims != nil
}
