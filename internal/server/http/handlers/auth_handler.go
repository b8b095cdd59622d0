package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ordesk/backoffice/internal/domain/model"
	"github.com/ordesk/backoffice/internal/server/http/dto"
	"github.com/ordesk/backoffice/internal/server/http/middleware"
)

// AuthHandler processes login and market switching.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	user, token, err := h.facade.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	middleware.SetSessionCookie(c, token)
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, User: dto.NewUserResponse(user)})
}

// Me handles GET /api/session.
func (h *AuthHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// SwitchMarket handles POST /api/session/market. Switching is refused while
// the operator still holds an order in progress.
func (h *AuthHandler) SwitchMarket(c *gin.Context) {
	var req dto.SwitchMarketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	user := CurrentUser(c)
	if err := h.facade.SwitchMarket(c.Request.Context(), user.DisplayName); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"market": string(model.Market(req.Market))})
}
