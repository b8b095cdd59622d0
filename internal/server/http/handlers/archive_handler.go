package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ordesk/backoffice/internal/server/http/dto"
)

// ArchiveHandler serves archive lookups and AWB assignment.
type ArchiveHandler struct {
	facade ArchiveFacade
}

// NewArchiveHandler constructs ArchiveHandler.
func NewArchiveHandler(facade ArchiveFacade) *ArchiveHandler {
	return &ArchiveHandler{facade: facade}
}

// ByPhone handles GET /api/archive/orders.
func (h *ArchiveHandler) ByPhone(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	user := CurrentUser(c)
	records, err := h.facade.ArchiveByPhone(c.Request.Context(), CurrentMarket(c), user.DisplayName, phone)
	if err != nil {
		writeError(c, err)
		return
	}
	if len(records) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, dto.NewSentOrderResponses(records))
}

// ByAWB handles GET /api/archive/awb/:code.
func (h *ArchiveHandler) ByAWB(c *gin.Context) {
	record, err := h.facade.ArchiveByAWB(c.Request.Context(), CurrentMarket(c), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSentOrderResponse(record))
}

// AssignAWB handles POST /api/archive/orders/:orderId/awb. The code is
// attached once; repeated assignment conflicts.
func (h *ArchiveHandler) AssignAWB(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.AssignAWBRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.AssignAWB(c.Request.Context(), CurrentMarket(c), orderID, req.AWB); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
