package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ordesk/backoffice/internal/domain/errors"
	"github.com/ordesk/backoffice/internal/domain/model"
	pkgAuth "github.com/ordesk/backoffice/internal/pkg/auth"
)

const (
	// UserContextKey is a gin context key for the authenticated account.
	UserContextKey = "currentUser"
	authCookieName = "backoffice_token"
)

// SessionFacade resolves session tokens into backoffice accounts.
type SessionFacade interface {
	ParseToken(token string) (int64, error)
	UserByID(ctx context.Context, id int64) (*model.User, error)
}

// AuthRequired ensures the request carries a valid session and loads the
// account into the context.
func AuthRequired(facade SessionFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		userID, err := facade.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		user, err := facade.UserByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(UserContextKey, user)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the account holds one of the roles.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		val, ok := c.Get(UserContextKey)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		user, ok := val.(*model.User)
		if !ok {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatus(http.StatusForbidden)
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetSessionCookie writes the session token cookie to the response.
func SetSessionCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
