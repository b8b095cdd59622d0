package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ordesk/backoffice/internal/domain/model"
	"github.com/ordesk/backoffice/internal/domain/repository"
	"github.com/ordesk/backoffice/internal/server/http/dto"
)

// AdminHandler serves the administrative surface: full queue listing, user
// management, audit logs and operator reports.
type AdminHandler struct {
	orders    OrderFacade
	lifecycle LifecycleFacade
	users     UserFacade
	archive   ArchiveFacade
	audit     AuditFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(orders OrderFacade, lifecycle LifecycleFacade, users UserFacade, archive ArchiveFacade, audit AuditFacade) *AdminHandler {
	return &AdminHandler{orders: orders, lifecycle: lifecycle, users: users, archive: archive, audit: audit}
}

// ListOrders handles GET /api/admin/orders.
func (h *AdminHandler) ListOrders(c *gin.Context) {
	var filter repository.ListFilter
	if v := c.Query("status"); v != "" {
		status := model.OrderStatus(v)
		if !status.Valid() {
			c.Status(http.StatusBadRequest)
			return
		}
		filter.Status = &status
	}
	if v := c.Query("callCount"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		filter.CallCount = &n
	}

	orders, err := h.orders.ListOrders(c.Request.Context(), CurrentMarket(c), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponses(orders))
}

// ResetOrder handles POST /api/admin/orders/:id/reset, forcing a stuck order
// back to pending.
func (h *AdminHandler) ResetOrder(c *gin.Context) {
	order, err := h.lifecycle.ResetOrder(c.Request.Context(), CurrentMarket(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}

// CreateUser handles POST /api/admin/users.
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), req.Email, req.Password, req.DisplayName, model.Role(req.Role))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, dto.NewUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// ChangeUserRole handles PUT /api/admin/users/:id/role.
func (h *AdminHandler) ChangeUserRole(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.users.ChangeUserRole(c.Request.Context(), id, model.Role(req.Role)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// DeleteUser handles DELETE /api/admin/users/:id.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Logs handles GET /api/admin/logs.
func (h *AdminHandler) Logs(c *gin.Context) {
	user := c.Query("user")
	if user == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	from, to, err := parseInterval(c)
	if err != nil {
		writeError(c, err)
		return
	}

	entries, err := h.audit.AuditHistory(c.Request.Context(), user, from, to)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAuditEntryResponses(entries))
}

// Reports handles GET /api/admin/reports. An empty operator parameter
// reports on all operators.
func (h *AdminHandler) Reports(c *gin.Context) {
	from, to, err := parseInterval(c)
	if err != nil {
		writeError(c, err)
		return
	}

	stats, err := h.archive.OperatorReport(c.Request.Context(), CurrentMarket(c), c.Query("operator"), from, to)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
